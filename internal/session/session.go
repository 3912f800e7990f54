// Package session выдаёт и продлевает короткоживущие сессии.
//
// Сессия хранится у клиента как подписанная капсула (JWT, HS256) в cookie.
// Сервер не держит состояния: истечение пассивное, капсула с просроченным
// exp просто считается отсутствующей.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName - имя cookie с капсулой сессии.
const CookieName = "auth_token"

// DefaultTTL - время жизни сессии по умолчанию. Повторный вход по бейджу дешёвый,
// поэтому TTL намеренно короткий.
const DefaultTTL = time.Minute

// ErrUnauthenticated - капсулы нет, она подделана или истекла.
var ErrUnauthenticated = errors.New("unauthenticated")

// Claims - содержимое капсулы.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Handle - выданная или продлённая сессия.
type Handle struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	Renewed   bool
}

// Manager подписывает и проверяет капсулы. Неизменяем после создания.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager создаёт менеджер сессий.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("session TTL must be > 0")
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL возвращает настроенное время жизни.
func (m *Manager) TTL() time.Duration { return m.ttl }

// BeginOrRenew вызывается только после успешной проверки учётных данных.
// Если у клиента уже есть живая сессия (для любого пользователя), её TTL
// сбрасывается и вторая сессия не создаётся. Иначе выпускается новая сессия для verifiedUserID.
func (m *Manager) BeginOrRenew(current, verifiedUserID string) (Handle, error) {
	if current != "" {
		if h, err := m.Renew(current); err == nil {
			return h, nil
		}
	}
	if verifiedUserID == "" {
		return Handle{}, errors.New("empty user id")
	}
	return m.issue(uuid.NewString(), verifiedUserID, false)
}

// Renew проверяет капсулу и перевыпускает её с exp = now + TTL, сохраняя идентификатор сессии и пользователя.
func (m *Manager) Renew(token string) (Handle, error) {
	c, err := m.parse(token)
	if err != nil {
		return Handle{}, err
	}
	return m.issue(c.ID, c.UserID, true)
}

// CurrentIdentity возвращает пользователя, к которому привязана живая капсула.
func (m *Manager) CurrentIdentity(token string) (string, error) {
	c, err := m.parse(token)
	if err != nil {
		return "", err
	}
	return c.UserID, nil
}

func (m *Manager) issue(id, userID string, renewed bool) (Handle, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID: userID,
	})
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return Handle{}, fmt.Errorf("sign session: %w", err)
	}
	return Handle{ID: id, UserID: userID, Token: signed, ExpiresAt: exp, Renewed: renewed}, nil
}

func (m *Manager) parse(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	t, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil || !t.Valid || claims.UserID == "" {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}
