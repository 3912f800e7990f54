package model

// User - учётная запись. Хеш пасскода и бейдж-токен никогда не отдаются клиенту через JSON.
type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	FullName string `gorm:"not null" json:"full_name"`
	Username string `gorm:"not null;uniqueIndex" json:"username"`
	PassHash string `gorm:"not null" json:"-"`

	// PhysicalToken - запечатанный бейдж-токен (QR), выпускается один раз при заведении пользователя.
	PhysicalToken string `gorm:"column:physical_id_qr_token;not null" json:"-"`
	Role          Role   `gorm:"not null;default:User" json:"role"`
}
