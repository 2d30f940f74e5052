package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name      string `gorm:"not null"`
	Phone     string `gorm:"index"`
	Email     string
	Address   string
	BirthDate *time.Time

	gorm.Model
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
