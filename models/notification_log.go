package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationLog struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key"`
	UserID        uuid.UUID  `gorm:"type:uuid;index;not null"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index"`
	ClientID      uuid.UUID  `gorm:"type:uuid;index;not null"`

	Kind         string `gorm:"type:varchar(20)"` // confirmation, cancellation, reminder
	Message      string `gorm:"type:text"`
	Channel      string `gorm:"type:varchar(20)"` // whatsapp, sms
	Status       string `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string `gorm:"type:text"`
	SentAt       time.Time

	gorm.Model
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
