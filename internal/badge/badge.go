// Package badge запечатывает и распечатывает «физический» токен пользователя,
// который печатается на QR-бейдже.
//
// Формат токена (до base64url):
//
//	[версия: 1 байт 0xBA] [время выпуска: 4 байта, unix, big-endian] [nonce: 24 байта] [шифртекст+тег]
//
// Заголовок (версия, время, nonce) аутентифицируется как AAD, поэтому подмена
// любого байта токена приводит к ErrInvalidToken.
package badge

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	tokenVersion byte = 0xBA
	headerSize        = 1 + 4 + chacha20poly1305.NonceSizeX

	// kdfContext фиксирует назначение ключа, выводимого из секрета сервиса.
	kdfContext = "invkeeper 2024-05 badge token sealing key"
)

// ErrInvalidToken возвращается при любой ошибке распечатывания: битый формат,
// неверный тег, чужой ключ или превышен допустимый возраст токена.
var ErrInvalidToken = errors.New("invalid token")

var encoding = base64.RawURLEncoding.Strict()

// Codec запечатывает Payload симметричным ключом сервиса. Безопасен для
// конкурентного использования: после создания не изменяется.
type Codec struct {
	aead   cipher.AEAD
	maxAge time.Duration
	now    func() time.Time
}

// NewCodec создаёт кодек. Ключ XChaCha20-Poly1305 выводится из secret через
// BLAKE3 KDF, поэтому длина секрета произвольная. maxAge == 0 отключает проверку возраста.
func NewCodec(secret []byte, maxAge time.Duration) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("badge: empty sealing secret")
	}
	if maxAge < 0 {
		return nil, errors.New("badge: negative max age")
	}
	key := make([]byte, chacha20poly1305.KeySize)
	blake3.DeriveKey(kdfContext, secret, key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("badge: creating XChaCha20-Poly1305 cipher: %w", err)
	}
	return &Codec{aead: aead, maxAge: maxAge, now: time.Now}, nil
}

// Seal кодирует payload в каноническое представление и запечатывает его.
func (c *Codec) Seal(p Payload) (string, error) {
	plain, err := p.marshal()
	if err != nil {
		return "", fmt.Errorf("badge: encoding payload: %w", err)
	}

	out := make([]byte, headerSize, headerSize+len(plain)+c.aead.Overhead())
	out[0] = tokenVersion
	binary.BigEndian.PutUint32(out[1:5], uint32(c.now().Unix()))
	if _, err := io.ReadFull(rand.Reader, out[5:headerSize]); err != nil {
		return "", fmt.Errorf("badge: generating nonce: %w", err)
	}

	header := out[:headerSize]
	out = c.aead.Seal(out, header[5:], plain, header)
	return encoding.EncodeToString(out), nil
}

// Unseal проверяет и расшифровывает токен. Либо возвращает полный payload, либо ErrInvalidToken.
func (c *Codec) Unseal(token string) (Payload, error) {
	raw, err := encoding.DecodeString(token)
	if err != nil {
		return Payload{}, ErrInvalidToken
	}
	if len(raw) < headerSize+c.aead.Overhead() || raw[0] != tokenVersion {
		return Payload{}, ErrInvalidToken
	}

	header := raw[:headerSize]
	plain, err := c.aead.Open(nil, header[5:], raw[headerSize:], header)
	if err != nil {
		return Payload{}, ErrInvalidToken
	}

	if c.maxAge > 0 {
		issued := time.Unix(int64(binary.BigEndian.Uint32(header[1:5])), 0)
		if c.now().Sub(issued) > c.maxAge {
			return Payload{}, ErrInvalidToken
		}
	}

	var p Payload
	if err := p.unmarshal(plain); err != nil {
		return Payload{}, ErrInvalidToken
	}
	return p, nil
}
