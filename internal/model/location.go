package model

// Location - место хранения (шкаф, комната, полка, коробка, ящик).
type Location struct {
	ID string `gorm:"primaryKey;type:uuid" json:"id"`

	// Identifier - человекочитаемый идентификатор, например номер комнаты. Уникален после обрезки пробелов.
	Identifier string       `gorm:"column:location_identifier;not null;uniqueIndex" json:"location_identifier"`
	MinRole    Role         `gorm:"column:rbac_min_level;not null;default:User" json:"rbac_min_level"`
	Type       LocationType `gorm:"column:location_type;not null" json:"location_type"`

	// MaxCapacity задаётся не для всех мест.
	MaxCapacity *uint16        `gorm:"column:max_capacity" json:"max_capacity,omitempty"`
	Status      LocationStatus `gorm:"column:location_status;not null;default:Available" json:"location_status"`
}
