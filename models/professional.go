package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList stores a set of strings as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		return nil
	}
	return errors.New("unsupported type for StringList")
}

type Professional struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name        string     `gorm:"not null"`
	Phone       string
	Email       string
	Specialties StringList `gorm:"type:jsonb"`

	// Percentage 0-100, nil when no commission is attributed.
	CommissionRate *float64 `gorm:"type:decimal(5,2)"`
}

func (p *Professional) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
