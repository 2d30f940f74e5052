package services

import (
	"errors"
	"testing"
	"time"

	"snapagenda-backend/models"

	"gorm.io/gorm"
)

func TestPartialPaymentSplits(t *testing.T) {
	db := newTestDB(t)
	owner := seedOwner(t, db)
	svc := NewLedgerService(db)

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	original := seedIncome(t, db, owner.ID, "Corte - Maria", 100, date)

	paid, err := svc.RecordPayment(owner.ID, original.ID, 60)
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if paid.Amount != 60 || paid.Status != models.TransactionPaid {
		t.Errorf("paid portion = %.2f %s, want 60.00 paid", paid.Amount, paid.Status)
	}
	if paid.PaidAt == nil {
		t.Error("paid portion has no PaidAt")
	}

	var remainder models.FinancialTransaction
	if err := db.Where("user_id = ? AND id <> ?", owner.ID, original.ID).First(&remainder).Error; err != nil {
		t.Fatalf("remainder not created: %v", err)
	}
	if remainder.Description != "Restante/Fiado - Corte - Maria" {
		t.Errorf("remainder description = %q", remainder.Description)
	}
	if remainder.Amount != 40 {
		t.Errorf("remainder amount = %.2f, want 40.00", remainder.Amount)
	}
	if remainder.Status != models.TransactionPending {
		t.Errorf("remainder status = %q, want pending", remainder.Status)
	}
	if !remainder.Date.Equal(date) {
		t.Errorf("remainder date = %v, want the original's %v", remainder.Date, date)
	}
	if paid.Amount+remainder.Amount != 100 {
		t.Errorf("split sums to %.2f, want the original 100.00", paid.Amount+remainder.Amount)
	}
}

func TestFullPaymentLeavesNoRemainder(t *testing.T) {
	db := newTestDB(t)
	owner := seedOwner(t, db)
	svc := NewLedgerService(db)

	original := seedIncome(t, db, owner.ID, "Manicure - Julia", 50, time.Now())

	if _, err := svc.RecordPayment(owner.ID, original.ID, 50); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	var count int64
	db.Model(&models.FinancialTransaction{}).Where("user_id = ?", owner.ID).Count(&count)
	if count != 1 {
		t.Errorf("transaction count = %d, want 1", count)
	}
}

func TestPaymentRejectionsLeaveLedgerUntouched(t *testing.T) {
	db := newTestDB(t)
	owner := seedOwner(t, db)
	svc := NewLedgerService(db)

	original := seedIncome(t, db, owner.ID, "Corte - Maria", 100, time.Now())

	cases := []struct {
		name   string
		amount float64
		want   error
	}{
		{"zero", 0, ErrInvalidAmount},
		{"negative", -10, ErrInvalidAmount},
		{"exceeds original", 150, ErrAmountExceedsOriginal},
	}
	for _, tc := range cases {
		if _, err := svc.RecordPayment(owner.ID, original.ID, tc.amount); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}

	var reloaded models.FinancialTransaction
	if err := db.First(&reloaded, "id = ?", original.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Amount != 100 || reloaded.Status != models.TransactionPending {
		t.Errorf("rejected payments mutated the record: %.2f %s", reloaded.Amount, reloaded.Status)
	}
	var count int64
	db.Model(&models.FinancialTransaction{}).Where("user_id = ?", owner.ID).Count(&count)
	if count != 1 {
		t.Errorf("transaction count = %d, want 1", count)
	}
}

func TestPayingANonPendingTransaction(t *testing.T) {
	db := newTestDB(t)
	owner := seedOwner(t, db)
	svc := NewLedgerService(db)

	original := seedIncome(t, db, owner.ID, "Corte - Maria", 100, time.Now())
	if _, err := svc.RecordPayment(owner.ID, original.ID, 100); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	if _, err := svc.RecordPayment(owner.ID, original.ID, 100); !errors.Is(err, ErrNotPending) {
		t.Errorf("err = %v, want ErrNotPending", err)
	}
}

func TestRevertMergesRemainder(t *testing.T) {
	db := newTestDB(t)
	owner := seedOwner(t, db)
	svc := NewLedgerService(db)

	original := seedIncome(t, db, owner.ID, "Corte - Maria", 100, time.Now())
	if _, err := svc.RecordPayment(owner.ID, original.ID, 60); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	reverted, err := svc.RevertPayment(owner.ID, original.ID)
	if err != nil {
		t.Fatalf("RevertPayment: %v", err)
	}
	if reverted.Amount != 100 {
		t.Errorf("reverted amount = %.2f, want the original 100.00", reverted.Amount)
	}
	if reverted.Status != models.TransactionPending {
		t.Errorf("reverted status = %q, want pending", reverted.Status)
	}
	if reverted.PaidAt != nil {
		t.Error("reverted record still carries PaidAt")
	}

	var count int64
	db.Model(&models.FinancialTransaction{}).Where("user_id = ?", owner.ID).Count(&count)
	if count != 1 {
		t.Errorf("transaction count after revert = %d, want 1", count)
	}
}

func TestRevertWithoutRemainder(t *testing.T) {
	db := newTestDB(t)
	owner := seedOwner(t, db)
	svc := NewLedgerService(db)

	original := seedIncome(t, db, owner.ID, "Corte - Maria", 100, time.Now())
	if _, err := svc.RecordPayment(owner.ID, original.ID, 100); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	reverted, err := svc.RevertPayment(owner.ID, original.ID)
	if err != nil {
		t.Fatalf("RevertPayment: %v", err)
	}
	if reverted.Amount != 100 || reverted.Status != models.TransactionPending {
		t.Errorf("reverted = %.2f %s, want 100.00 pending", reverted.Amount, reverted.Status)
	}
}

func TestRevertRequiresPaid(t *testing.T) {
	db := newTestDB(t)
	owner := seedOwner(t, db)
	svc := NewLedgerService(db)

	original := seedIncome(t, db, owner.ID, "Corte - Maria", 100, time.Now())
	if _, err := svc.RevertPayment(owner.ID, original.ID); !errors.Is(err, ErrNotPaid) {
		t.Errorf("err = %v, want ErrNotPaid", err)
	}
}

func TestExpenseLifecycle(t *testing.T) {
	db := newTestDB(t)
	owner := seedOwner(t, db)
	svc := NewLedgerService(db)

	created, err := svc.CreateExpense(owner.ID, ExpenseInput{
		Description: "Tinta",
		Amount:      35.50,
		Date:        time.Date(2026, 4, 1, 15, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if created.Status != models.TransactionPaid || created.PaidAt == nil {
		t.Errorf("default expense = %s PaidAt=%v, want paid with timestamp", created.Status, created.PaidAt)
	}
	if created.Category != "outros" {
		t.Errorf("default category = %q, want outros", created.Category)
	}
	if created.Date.Hour() != 0 {
		t.Errorf("expense date not truncated to the day: %v", created.Date)
	}

	pending, err := svc.CreateExpense(owner.ID, ExpenseInput{
		Description: "Aluguel",
		Amount:      1200,
		Date:        time.Now(),
		Category:    "aluguel",
		Status:      models.TransactionPending,
	})
	if err != nil {
		t.Fatalf("CreateExpense pending: %v", err)
	}
	if pending.PaidAt != nil {
		t.Error("pending expense carries PaidAt")
	}

	if err := svc.MarkExpensePaid(owner.ID, pending.ID); err != nil {
		t.Fatalf("MarkExpensePaid: %v", err)
	}
	var reloaded models.FinancialTransaction
	db.First(&reloaded, "id = ?", pending.ID)
	if reloaded.Status != models.TransactionPaid || reloaded.PaidAt == nil {
		t.Errorf("marked expense = %s PaidAt=%v", reloaded.Status, reloaded.PaidAt)
	}

	updated, err := svc.UpdateExpense(owner.ID, created.ID, ExpenseInput{
		Description: "Tinta profissional",
		Amount:      42,
		Date:        time.Now(),
		Category:    "produtos",
	})
	if err != nil {
		t.Fatalf("UpdateExpense: %v", err)
	}
	if updated.Description != "Tinta profissional" || updated.Amount != 42 || updated.Category != "produtos" {
		t.Errorf("UpdateExpense result = %+v", updated)
	}

	if err := svc.DeleteTransaction(owner.ID, created.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	if err := svc.DeleteTransaction(owner.ID, created.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("second delete err = %v, want ErrRecordNotFound", err)
	}
}

func TestPaymentScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	owner := seedOwner(t, db)
	other := seedOwner(t, db)
	svc := NewLedgerService(db)

	entry := seedIncome(t, db, owner.ID, "Corte - Maria", 100, time.Now())
	if _, err := svc.RecordPayment(other.ID, entry.ID, 100); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("cross-owner payment err = %v, want ErrRecordNotFound", err)
	}
}
