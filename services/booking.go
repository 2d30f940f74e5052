package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"snapagenda-backend/models"
	"snapagenda-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBookingDisabled = errors.New("online booking is not active for this business")
	ErrStepIncomplete  = errors.New("previous booking step is incomplete")
	ErrSessionSpent    = errors.New("booking session already completed")
)

type BookingStep string

const (
	StepService      BookingStep = "service"
	StepProfessional BookingStep = "professional"
	StepDate         BookingStep = "date"
	StepConfirm      BookingStep = "confirm"
	StepSuccess      BookingStep = "success"
)

// BookingSession is the self-service wizard: a strictly linear walk
// through service, professional, date/time and confirmation. Going back
// never clears later selections.
type BookingSession struct {
	Step           BookingStep
	ServiceID      uuid.UUID
	ProfessionalID uuid.UUID
	Date           time.Time
	Time           string
}

func NewBookingSession() *BookingSession {
	return &BookingSession{Step: StepService}
}

func (s *BookingSession) SelectService(id uuid.UUID) error {
	if s.Step == StepSuccess {
		return ErrSessionSpent
	}
	if id == uuid.Nil {
		return ErrStepIncomplete
	}
	s.ServiceID = id
	s.Step = StepProfessional
	return nil
}

func (s *BookingSession) SelectProfessional(id uuid.UUID) error {
	if s.Step == StepSuccess {
		return ErrSessionSpent
	}
	if s.ServiceID == uuid.Nil || id == uuid.Nil {
		return ErrStepIncomplete
	}
	s.ProfessionalID = id
	s.Step = StepDate
	return nil
}

func (s *BookingSession) SelectSlot(date time.Time, clock string) error {
	if s.Step == StepSuccess {
		return ErrSessionSpent
	}
	if s.ServiceID == uuid.Nil || s.ProfessionalID == uuid.Nil {
		return ErrStepIncomplete
	}
	if date.IsZero() || clock == "" {
		return ErrStepIncomplete
	}
	s.Date = date
	s.Time = clock
	s.Step = StepConfirm
	return nil
}

// Back moves one step backward, keeping every selection made so far.
func (s *BookingSession) Back() {
	switch s.Step {
	case StepProfessional:
		s.Step = StepService
	case StepDate:
		s.Step = StepProfessional
	case StepConfirm:
		s.Step = StepDate
	}
}

// Instant combines the chosen calendar date and clock time.
func (s *BookingSession) Instant() (time.Time, error) {
	parts := strings.SplitN(s.Time, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid time %q", s.Time)
	}
	t, err := time.Parse("15:04", s.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q", s.Time)
	}
	return time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(),
		t.Hour(), t.Minute(), 0, 0, s.Date.Location()), nil
}

// BookingService backs the unauthenticated self-service flow. Every
// operation runs against a specific owner's data, identified by the
// opaque id embedded in the booking link.
type BookingService struct {
	db         *gorm.DB
	scheduling *SchedulingService
}

func NewBookingService(db *gorm.DB, scheduling *SchedulingService) *BookingService {
	return &BookingService{db: db, scheduling: scheduling}
}

// LoadBusiness fetches the owner plus the catalogs the wizard lists.
// The whole flow is gated on the online-booking flag.
func (b *BookingService) LoadBusiness(ownerID uuid.UUID) (*models.User, []models.Service, []models.Professional, error) {
	var owner models.User
	if err := b.db.First(&owner, "id = ?", ownerID).Error; err != nil {
		return nil, nil, nil, err
	}
	if !owner.Settings.OnlineBooking.Active {
		return nil, nil, nil, ErrBookingDisabled
	}

	var services []models.Service
	if err := b.db.Where("user_id = ?", ownerID).Order("name").Find(&services).Error; err != nil {
		return nil, nil, nil, err
	}
	var professionals []models.Professional
	if err := b.db.Where("user_id = ?", ownerID).Order("name").Find(&professionals).Error; err != nil {
		return nil, nil, nil, err
	}
	return &owner, services, professionals, nil
}

// Slots returns the bookable start times of a date, with already-booked
// windows and the configured buffer subtracted.
func (b *BookingService) Slots(owner *models.User, date time.Time) ([]string, error) {
	dayStart := utils.BeginningOfDay(date)
	dayEnd := utils.EndOfDay(date)

	var appts []models.Appointment
	if err := b.db.Preload("Service").
		Where("user_id = ? AND status <> ? AND date BETWEEN ? AND ?",
			owner.ID, models.AppointmentCancelled, dayStart, dayEnd).
		Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("load day appointments: %w", err)
	}

	booked := make([]BookedInterval, 0, len(appts))
	for _, a := range appts {
		booked = append(booked, BookedInterval{Start: a.Date, DurationMinutes: a.Service.Duration})
	}

	return AvailableSlots(owner.Settings.Hours, date, booked, owner.Settings.Rules.BufferTime), nil
}

// Submit finishes the wizard: the visitor is matched to an existing
// client by exact phone string (first match wins) or quick-created with
// name and phone only, and the appointment is created pending with its
// standard ledger side effect. The session is single-use afterwards.
func (b *BookingService) Submit(owner *models.User, session *BookingSession, clientName, clientPhone string) (*models.Appointment, error) {
	if session.Step == StepSuccess {
		return nil, ErrSessionSpent
	}
	if session.Step != StepConfirm {
		return nil, ErrStepIncomplete
	}
	clientName = strings.TrimSpace(clientName)
	clientPhone = strings.TrimSpace(clientPhone)
	if clientName == "" || clientPhone == "" {
		return nil, ErrStepIncomplete
	}

	instant, err := session.Instant()
	if err != nil {
		return nil, err
	}

	var client models.Client
	err = b.db.Where("user_id = ? AND phone = ?", owner.ID, clientPhone).
		Order("created_at").First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		client = models.Client{
			UserID: owner.ID,
			Name:   clientName,
			Phone:  clientPhone,
		}
		if err := b.db.Create(&client).Error; err != nil {
			return nil, fmt.Errorf("create client: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("client lookup: %w", err)
	}

	appt, err := b.scheduling.Create(owner.ID, AppointmentInput{
		ClientID:       client.ID,
		ProfessionalID: session.ProfessionalID,
		ServiceID:      session.ServiceID,
		Date:           instant,
	})
	if err != nil {
		return nil, err
	}

	session.Step = StepSuccess
	return appt, nil
}
