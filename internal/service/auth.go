package service

import (
	"InvKeeper/internal/badge"
	"InvKeeper/internal/model"
	"InvKeeper/internal/passcode"
	"InvKeeper/internal/repo"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TokenCodec - запечатывание бейдж-токенов.
type TokenCodec interface {
	Seal(p badge.Payload) (string, error)
	Unseal(token string) (badge.Payload, error)
}

var _ TokenCodec = (*badge.Codec)(nil)

// AuthService сверяет бейдж, пасскод и запись пользователя.
// Сессию он не выдаёт: это делает session.Manager после успешного Verify.
type AuthService struct {
	users    repo.UserRepository
	codec    TokenCodec
	verifier passcode.Verifier
	logger   *zap.SugaredLogger
}

// NewAuthService создаёт сервис проверки учётных данных.
func NewAuthService(users repo.UserRepository, codec TokenCodec, verifier passcode.Verifier, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{users: users, codec: codec, verifier: verifier, logger: logger}
}

// Verify выполняет одну проверку без повторов:
// поиск пользователя → распечатывание его сохранённого бейджа → проверка пасскода → сверка полей.
// Возвращает id пользователя при успехе. Хранилище не изменяется ни при каком исходе.
func (s *AuthService) Verify(ctx context.Context, userID, pass, idToken string) (string, error) {
	// пользователь с неразборчивым id заведомо не существует
	id, err := uuid.Parse(userID)
	if err != nil {
		return "", fmt.Errorf("%w: user", ErrNotFound)
	}

	user, err := s.users.GetByID(ctx, id.String())
	if err != nil {
		return "", notFoundOr("load user", "user", err)
	}

	// авторитетный payload берётся из токена, сохранённого у пользователя, а не из присланного
	stored, err := s.codec.Unseal(user.PhysicalToken)
	if err != nil {
		s.logger.Warnw("stored badge token does not unseal", "user_id", user.ID)
		return "", fmt.Errorf("%w: badge", ErrUnauthorized)
	}

	passOK, err := s.verifier.Verify(pass, user.PassHash)
	if err != nil {
		return "", internalErr("verify passcode", err)
	}

	submitted, err := s.codec.Unseal(idToken)
	if err != nil {
		return "", fmt.Errorf("%w: badge", ErrUnauthorized)
	}

	if !passOK ||
		!constantTimeEqual(stored.PassHash, user.PassHash) ||
		!constantTimeEqual(stored.Username, user.Username) ||
		!constantTimeEqual(stored.UserID, user.ID) ||
		submitted != stored {
		return "", fmt.Errorf("%w: credentials", ErrUnauthorized)
	}
	return user.ID, nil
}

// constantTimeEqual сравнивает строки за постоянное время.
func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// BadgeToken возвращает сохранённый бейдж-токен пользователя для печати QR.
func (s *AuthService) BadgeToken(ctx context.Context, userID string) (string, error) {
	id, err := parseID("user id", userID)
	if err != nil {
		return "", err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return "", notFoundOr("load user", "user", err)
	}
	return user.PhysicalToken, nil
}

// User возвращает запись пользователя (без изменения).
func (s *AuthService) User(ctx context.Context, userID string) (*model.User, error) {
	id, err := parseID("user id", userID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("load user", "user", err)
	}
	return user, nil
}

// ProvisionInput - данные для заведения пользователя.
type ProvisionInput struct {
	FullName string
	Username string
	Passcode string
	Role     model.Role
}

// ErrUsernameTaken - имя пользователя уже занято.
var ErrUsernameTaken = fmt.Errorf("%w: username taken", ErrConflict)

// Provision заводит пользователя: хеширует пасскод и один раз выпускает бейдж над {id, username, hash}.
func (s *AuthService) Provision(ctx context.Context, in ProvisionInput) (*model.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Passcode == "" {
		return nil, fmt.Errorf("%w: username and passcode are required", ErrBadRequest)
	}
	role := in.Role
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrBadRequest, in.Role)
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internalErr("check username", err)
	}

	hash, err := s.verifier.Hash(in.Passcode)
	if err != nil {
		return nil, internalErr("hash passcode", err)
	}
	id := uuid.NewString()
	token, err := s.codec.Seal(badge.Payload{UserID: id, Username: username, PassHash: hash})
	if err != nil {
		return nil, internalErr("seal badge", err)
	}

	user := &model.User{
		ID:            id,
		FullName:      strings.TrimSpace(in.FullName),
		Username:      username,
		PassHash:      hash,
		PhysicalToken: token,
		Role:          role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, internalErr("create user", err)
	}
	s.logger.Infow("user provisioned", "user_id", id, "username", username, "role", role)
	return user, nil
}
