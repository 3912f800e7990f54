// Package passcode хеширует и проверяет короткие числовые пасскоды пользователей.
package passcode

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Verifier - односторонний хеш пасскода.
type Verifier interface {
	// Hash возвращает солёный хеш пасскода.
	Hash(plain string) (string, error)
	// Verify сравнивает пасскод с хешем. Ошибка означает битый хеш, а не «неверный пасскод».
	Verify(plain, hash string) (bool, error)
}

// Bcrypt - реализация Verifier поверх bcrypt.
type Bcrypt struct {
	Cost int
}

var _ Verifier = Bcrypt{}

// NewBcrypt возвращает Verifier со стандартной стоимостью bcrypt.
func NewBcrypt() Bcrypt {
	return Bcrypt{Cost: bcrypt.DefaultCost}
}

func (b Bcrypt) Hash(plain string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (Bcrypt) Verify(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
