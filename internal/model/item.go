package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MaxQuantity - верхняя граница количества единиц одного предмета.
const MaxQuantity = 255

// Item - предмет инвентаря, лежащий в одном месте хранения.
type Item struct {
	ID     string     `gorm:"primaryKey;type:uuid" json:"id"`
	Name   string     `gorm:"not null;uniqueIndex" json:"name"` // хранится уже обрезанным
	Status ItemStatus `gorm:"not null;default:Available" json:"status"`

	Quantity uint8   `gorm:"not null;default:0" json:"quantity"`
	ImageURI *string `json:"image_uri,omitempty"`

	// Порядок заёмщиков сохраняется, дубликаты допустимы.
	BorrowerIDs IDList `gorm:"type:text" json:"borrower_ids"`

	// Ссылка на locations.id проверяется сервисом, а не внешним ключом.
	LocationID string `gorm:"type:uuid;not null;index" json:"location_id"`

	// Version увеличивается при каждом изменении и используется для CAS-обновлений.
	Version int64 `gorm:"not null;default:1" json:"version"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IDList - упорядоченный список идентификаторов, хранится в колонке как JSON-массив.
type IDList []string

// Value реализует driver.Valuer.
func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan реализует sql.Scanner.
func (l *IDList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = IDList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("IDList: unsupported source type %T", src)
	}
	if len(raw) == 0 {
		*l = IDList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*l = out
	return nil
}
