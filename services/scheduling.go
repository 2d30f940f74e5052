package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"snapagenda-backend/models"
	"snapagenda-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidStatus = errors.New("invalid appointment status")

// SchedulingService drives the appointment lifecycle and its ledger
// side effects. Every multi-write sequence runs inside one database
// transaction so a failed step never leaves a half-applied state.
type SchedulingService struct {
	db       *gorm.DB
	notifier AppointmentNotifier
}

func NewSchedulingService(db *gorm.DB, notifier AppointmentNotifier) *SchedulingService {
	return &SchedulingService{db: db, notifier: notifier}
}

type AppointmentInput struct {
	ClientID       uuid.UUID
	ProfessionalID uuid.UUID
	ServiceID      uuid.UUID
	Date           time.Time
}

// Create inserts a pending appointment together with its primary income
// transaction: amount is the service price at booking time, description
// "{service} - {client}", accounting date the appointment's day.
func (s *SchedulingService) Create(userID uuid.UUID, in AppointmentInput) (*models.Appointment, error) {
	var client models.Client
	if err := s.db.Where("user_id = ? AND id = ?", userID, in.ClientID).First(&client).Error; err != nil {
		return nil, fmt.Errorf("client lookup: %w", err)
	}
	var professional models.Professional
	if err := s.db.Where("user_id = ? AND id = ?", userID, in.ProfessionalID).First(&professional).Error; err != nil {
		return nil, fmt.Errorf("professional lookup: %w", err)
	}
	var service models.Service
	if err := s.db.Where("user_id = ? AND id = ?", userID, in.ServiceID).First(&service).Error; err != nil {
		return nil, fmt.Errorf("service lookup: %w", err)
	}

	appt := models.Appointment{
		UserID:         userID,
		ClientID:       client.ID,
		ProfessionalID: professional.ID,
		ServiceID:      service.ID,
		Date:           in.Date,
		Status:         models.AppointmentPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&appt).Error; err != nil {
			return err
		}
		entry := models.FinancialTransaction{
			UserID:        userID,
			AppointmentID: &appt.ID,
			Description:   service.Name + " - " + client.Name,
			Amount:        service.Price,
			Type:          models.TransactionIncome,
			Status:        models.TransactionPending,
			Date:          utils.BeginningOfDay(in.Date),
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	return &appt, nil
}

// Update overwrites the appointment's foreign keys and instant. Ledger
// records are left untouched: the price was locked at booking time, even
// when the service changes.
func (s *SchedulingService) Update(userID, apptID uuid.UUID, in AppointmentInput) (*models.Appointment, error) {
	appt, err := s.load(userID, apptID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureOwned(&models.Client{}, userID, in.ClientID); err != nil {
		return nil, err
	}
	if err := s.ensureOwned(&models.Professional{}, userID, in.ProfessionalID); err != nil {
		return nil, err
	}
	if err := s.ensureOwned(&models.Service{}, userID, in.ServiceID); err != nil {
		return nil, err
	}

	appt.ClientID = in.ClientID
	appt.ProfessionalID = in.ProfessionalID
	appt.ServiceID = in.ServiceID
	appt.Date = in.Date

	if err := s.db.Model(&models.Appointment{}).Where("id = ?", appt.ID).
		Updates(map[string]interface{}{
			"client_id":       in.ClientID,
			"professional_id": in.ProfessionalID,
			"service_id":      in.ServiceID,
			"date":            in.Date,
		}).Error; err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	return appt, nil
}

// Confirm marks the appointment confirmed and every linked transaction
// paid, then hands a confirmation notice to the client's messaging app.
// A client without a phone number gets no notice; the confirmation still
// goes through.
func (s *SchedulingService) Confirm(owner *models.User, apptID uuid.UUID) (*models.Appointment, error) {
	appt, err := s.load(owner.ID, apptID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Appointment{}).Where("id = ?", appt.ID).
			Update("status", models.AppointmentConfirmed).Error; err != nil {
			return err
		}
		return tx.Model(&models.FinancialTransaction{}).
			Where("appointment_id = ?", appt.ID).
			Updates(map[string]interface{}{
				"status":  models.TransactionPaid,
				"paid_at": now,
			}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("confirm appointment: %w", err)
	}
	appt.Status = models.AppointmentConfirmed

	if strings.TrimSpace(appt.Client.Phone) != "" && s.notifier != nil {
		if err := s.notifier.NotifyConfirmation(owner, appt); err != nil {
			log.Printf("Confirmation notice for appointment %s: %v", appt.ID, err)
		}
	}

	return appt, nil
}

// Cancel marks the appointment cancelled together with its linked
// transactions and sends a cancellation notice when a phone is on file.
func (s *SchedulingService) Cancel(owner *models.User, apptID uuid.UUID) (*models.Appointment, error) {
	appt, err := s.load(owner.ID, apptID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Appointment{}).Where("id = ?", appt.ID).
			Update("status", models.AppointmentCancelled).Error; err != nil {
			return err
		}
		return tx.Model(&models.FinancialTransaction{}).
			Where("appointment_id = ?", appt.ID).
			Update("status", models.TransactionCancelled).Error
	})
	if err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}
	appt.Status = models.AppointmentCancelled

	if strings.TrimSpace(appt.Client.Phone) != "" && s.notifier != nil {
		if err := s.notifier.NotifyCancellation(owner, appt); err != nil {
			log.Printf("Cancellation notice for appointment %s: %v", appt.ID, err)
		}
	}

	return appt, nil
}

// SendReminder is read-only. Unlike the confirmation path, a missing
// phone number is surfaced to the caller.
func (s *SchedulingService) SendReminder(owner *models.User, apptID uuid.UUID) error {
	appt, err := s.load(owner.ID, apptID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(appt.Client.Phone) == "" {
		return ErrNoPhoneOnFile
	}
	if s.notifier == nil {
		return nil
	}
	return s.notifier.NotifyReminder(owner, appt)
}

// SetStatus covers the statuses without ledger side effects. Confirm and
// Cancel must go through their dedicated paths.
func (s *SchedulingService) SetStatus(userID, apptID uuid.UUID, status string) error {
	if status != models.AppointmentPending && status != models.AppointmentCompleted {
		return ErrInvalidStatus
	}
	result := s.db.Model(&models.Appointment{}).
		Where("user_id = ? AND id = ?", userID, apptID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ensureOwned verifies the row exists under this owner. A store failure
// is surfaced as such, never as a not-found.
func (s *SchedulingService) ensureOwned(model interface{}, userID, id uuid.UUID) error {
	var count int64
	if err := s.db.Model(model).Where("user_id = ? AND id = ?", userID, id).
		Count(&count).Error; err != nil {
		return fmt.Errorf("reference lookup: %w", err)
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *SchedulingService) load(userID, apptID uuid.UUID) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.db.Preload("Client").Preload("Professional").Preload("Service").
		Where("user_id = ? AND id = ?", userID, apptID).
		First(&appt).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}
