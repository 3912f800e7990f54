package repo

// UserContextStore хранит id пользователя последнего успешного входа,
// чтобы qr и whoami работали без явного id.
type UserContextStore interface {
	SaveUserID(userID string) error
	LoadUserID() (string, error)
}
