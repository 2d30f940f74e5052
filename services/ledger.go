package services

import (
	"errors"
	"fmt"
	"time"

	"snapagenda-backend/models"
	"snapagenda-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount         = errors.New("payment amount must be positive")
	ErrAmountExceedsOriginal = errors.New("payment amount exceeds the original value")
	ErrNotPending            = errors.New("transaction is not pending")
	ErrNotPaid               = errors.New("transaction is not paid")
)

const fiadoPrefix = "Restante/Fiado - "

type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// RecordPayment settles a pending transaction, splitting it when the
// paid amount is below the original. The paid portion keeps the row; the
// remainder becomes a new pending record carrying the original's date so
// the debt keeps its age. The two amounts always sum to the original.
func (s *LedgerService) RecordPayment(userID, txID uuid.UUID, amountPaid float64) (*models.FinancialTransaction, error) {
	var original models.FinancialTransaction
	if err := s.db.Where("user_id = ? AND id = ?", userID, txID).First(&original).Error; err != nil {
		return nil, err
	}

	if amountPaid <= 0 {
		return nil, ErrInvalidAmount
	}
	if amountPaid > original.Amount {
		return nil, ErrAmountExceedsOriginal
	}
	if original.Status != models.TransactionPending {
		return nil, ErrNotPending
	}

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.FinancialTransaction{}).Where("id = ?", original.ID).
			Updates(map[string]interface{}{
				"amount":  amountPaid,
				"status":  models.TransactionPaid,
				"paid_at": now,
			}).Error; err != nil {
			return err
		}

		if amountPaid < original.Amount {
			remainder := models.FinancialTransaction{
				UserID:        userID,
				AppointmentID: original.AppointmentID,
				Description:   fiadoPrefix + original.Description,
				Amount:        original.Amount - amountPaid,
				Type:          original.Type,
				Status:        models.TransactionPending,
				Date:          original.Date,
				Category:      original.Category,
			}
			return tx.Create(&remainder).Error
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	original.Amount = amountPaid
	original.Status = models.TransactionPaid
	original.PaidAt = &now
	return &original, nil
}

// RevertPayment puts a paid transaction back to pending. When the
// payment had been split, the pending remainder sibling is folded back
// in and removed, restoring one pending record at the original amount.
func (s *LedgerService) RevertPayment(userID, txID uuid.UUID) (*models.FinancialTransaction, error) {
	var entry models.FinancialTransaction
	if err := s.db.Where("user_id = ? AND id = ?", userID, txID).First(&entry).Error; err != nil {
		return nil, err
	}
	if entry.Status != models.TransactionPaid {
		return nil, ErrNotPaid
	}

	sibling := s.findRemainder(&entry)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		amount := entry.Amount
		if sibling != nil {
			amount += sibling.Amount
			if err := tx.Delete(&models.FinancialTransaction{}, "id = ?", sibling.ID).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&models.FinancialTransaction{}).Where("id = ?", entry.ID).
			Updates(map[string]interface{}{
				"amount":  amount,
				"status":  models.TransactionPending,
				"paid_at": nil,
			}).Error; err != nil {
			return err
		}
		entry.Amount = amount
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("revert payment: %w", err)
	}

	entry.Status = models.TransactionPending
	entry.PaidAt = nil
	return &entry, nil
}

func (s *LedgerService) findRemainder(entry *models.FinancialTransaction) *models.FinancialTransaction {
	query := s.db.Where("user_id = ? AND status = ? AND description = ?",
		entry.UserID, models.TransactionPending, fiadoPrefix+entry.Description)
	if entry.AppointmentID != nil {
		query = query.Where("appointment_id = ?", *entry.AppointmentID)
	} else {
		query = query.Where("appointment_id IS NULL")
	}

	var sibling models.FinancialTransaction
	if err := query.First(&sibling).Error; err != nil {
		return nil
	}
	return &sibling
}

type ExpenseInput struct {
	Description string
	Amount      float64
	Date        time.Time
	Category    string
	Status      string
}

// CreateExpense inserts a standalone expense record, independent of any
// appointment.
func (s *LedgerService) CreateExpense(userID uuid.UUID, in ExpenseInput) (*models.FinancialTransaction, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	status := in.Status
	if status == "" {
		status = models.TransactionPaid
	}
	if status != models.TransactionPending && status != models.TransactionPaid {
		return nil, fmt.Errorf("invalid expense status %q", in.Status)
	}
	category := in.Category
	if category == "" {
		category = "outros"
	}

	entry := models.FinancialTransaction{
		UserID:      userID,
		Description: in.Description,
		Amount:      in.Amount,
		Type:        models.TransactionExpense,
		Status:      status,
		Date:        utils.BeginningOfDay(in.Date),
		Category:    category,
	}
	if status == models.TransactionPaid {
		now := time.Now()
		entry.PaidAt = &now
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return &entry, nil
}

func (s *LedgerService) UpdateExpense(userID, txID uuid.UUID, in ExpenseInput) (*models.FinancialTransaction, error) {
	var entry models.FinancialTransaction
	if err := s.db.Where("user_id = ? AND id = ? AND type = ?", userID, txID, models.TransactionExpense).
		First(&entry).Error; err != nil {
		return nil, err
	}
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	entry.Description = in.Description
	entry.Amount = in.Amount
	entry.Date = utils.BeginningOfDay(in.Date)
	if in.Category != "" {
		entry.Category = in.Category
	}
	if in.Status != "" {
		entry.Status = in.Status
	}
	if err := s.db.Save(&entry).Error; err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return &entry, nil
}

// MarkExpensePaid flips a pending expense to paid. Expenses have no
// split support.
func (s *LedgerService) MarkExpensePaid(userID, txID uuid.UUID) error {
	now := time.Now()
	result := s.db.Model(&models.FinancialTransaction{}).
		Where("user_id = ? AND id = ? AND type = ?", userID, txID, models.TransactionExpense).
		Updates(map[string]interface{}{
			"status":  models.TransactionPaid,
			"paid_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteTransaction is a hard delete, irreversible.
func (s *LedgerService) DeleteTransaction(userID, txID uuid.UUID) error {
	result := s.db.Where("user_id = ? AND id = ?", userID, txID).
		Delete(&models.FinancialTransaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
