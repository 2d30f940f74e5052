package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"

	TransactionPending   = "pending"
	TransactionPaid      = "paid"
	TransactionCancelled = "cancelled"
)

// ExpenseCategories is the fixed suggestion list; the column itself is
// free-form.
var ExpenseCategories = []string{
	"aluguel", "produtos", "equipamentos", "salarios", "contas", "outros",
}

// FinancialTransaction is a single ledger record. Appointment-linked
// income carries the appointment id; standalone expenses leave it nil.
type FinancialTransaction struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	AppointmentID *uuid.UUID `gorm:"type:uuid;index"`

	Description string    `gorm:"not null"`
	Amount      float64   `gorm:"type:decimal(10,2);not null"`
	Type        string    `gorm:"type:varchar(10);not null"`
	Status      string    `gorm:"type:varchar(10);default:'pending'"`
	Date        time.Time `gorm:"index;not null"` // accounting date
	Category    string
	PaidAt      *time.Time

	Appointment *Appointment `gorm:"foreignKey:AppointmentID"`
}

func (t *FinancialTransaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
