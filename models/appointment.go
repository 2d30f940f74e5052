package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

// Appointment stores a single instant; the end time is implied by the
// service duration and never persisted.
type Appointment struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	ClientID       uuid.UUID `gorm:"type:uuid;index;not null"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID      uuid.UUID `gorm:"type:uuid;index;not null"`

	Date   time.Time `gorm:"index;not null"`
	Status string    `gorm:"type:varchar(20);default:'pending'"`

	Client       Client       `gorm:"foreignKey:ClientID"`
	Professional Professional `gorm:"foreignKey:ProfessionalID"`
	Service      Service      `gorm:"foreignKey:ServiceID"`

	Transactions []FinancialTransaction `gorm:"foreignKey:AppointmentID"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
