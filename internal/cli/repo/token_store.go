package repo

// TokenStore описывает абстракцию хранилища капсулы сессии на клиенте.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}
