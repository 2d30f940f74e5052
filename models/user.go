package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"snapagenda-backend/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the salon operator. Every catalog and ledger row is scoped
// to exactly one user.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null"`
	Name     string    `gorm:"not null"`
	Phone    string

	SalonName    string `gorm:"not null"`
	SalonAddress string
	LogoURL      string

	Settings BusinessSettings `gorm:"type:jsonb"`

	SubscriptionStatus string `gorm:"type:varchar(20);default:'trial'"` // trial, active, expired
	TrialEndsAt        *time.Time
	LastLogin          *time.Time

	gorm.Model
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

// DayHours is one weekday entry in the operating-hours map.
type DayHours struct {
	Open   string `json:"open"`  // "HH:MM"
	Close  string `json:"close"` // "HH:MM"
	Active bool   `json:"active"`
}

type BookingRules struct {
	CancellationWindow int `json:"cancellationWindow"` // hours
	BufferTime         int `json:"bufferTime"`         // minutes
}

type OnlineBooking struct {
	Active bool `json:"active"`
}

// NotificationTemplates hold the operator-editable message bodies.
// Placeholders: {nome}, {servico}, {data}, {hora}.
type NotificationTemplates struct {
	Confirmation string `json:"confirmation"`
	Reminder     string `json:"reminder"`
}

// BusinessSettings is stored as a single JSONB document on the user row.
type BusinessSettings struct {
	Hours         map[string]DayHours   `json:"hours"` // keyed by lowercase English weekday
	Rules         BookingRules          `json:"rules"`
	OnlineBooking OnlineBooking         `json:"onlineBooking"`
	Notifications NotificationTemplates `json:"notifications"`
}

func (s BusinessSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *BusinessSettings) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		return nil
	}
	return errors.New("unsupported type for BusinessSettings")
}

func DefaultBusinessSettings() BusinessSettings {
	return BusinessSettings{
		Hours: map[string]DayHours{
			"monday":    {Open: "09:00", Close: "18:00", Active: true},
			"tuesday":   {Open: "09:00", Close: "18:00", Active: true},
			"wednesday": {Open: "09:00", Close: "18:00", Active: true},
			"thursday":  {Open: "09:00", Close: "18:00", Active: true},
			"friday":    {Open: "09:00", Close: "18:00", Active: true},
			"saturday":  {Open: "09:00", Close: "14:00", Active: true},
			"sunday":    {Open: "00:00", Close: "00:00", Active: false},
		},
		Rules: BookingRules{
			CancellationWindow: 24,
			BufferTime:         0,
		},
		OnlineBooking: OnlineBooking{Active: false},
		Notifications: NotificationTemplates{
			Confirmation: "Olá {nome}, seu agendamento de {servico} está confirmado para {data} às {hora}.",
			Reminder:     "Oi {nome}! Passando para lembrar do seu horário de {servico} em {data} às {hora}. Até lá!",
		},
	}
}
