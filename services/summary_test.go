package services

import (
	"testing"
	"time"

	"snapagenda-backend/models"

	"github.com/google/uuid"
)

func incomeTx(amount float64, status string, date time.Time) models.FinancialTransaction {
	return models.FinancialTransaction{
		Description: "Corte - Maria",
		Amount:      amount,
		Type:        models.TransactionIncome,
		Status:      status,
		Date:        date,
	}
}

func TestSummarizeTotals(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	txs := []models.FinancialTransaction{
		incomeTx(100, models.TransactionPaid, now),
		incomeTx(50, models.TransactionPending, now),
		incomeTx(30, models.TransactionCancelled, now),
		{
			Description: "Aluguel",
			Amount:      200,
			Type:        models.TransactionExpense,
			Status:      models.TransactionPaid,
			Date:        now,
		},
	}

	sum := Summarize(txs, TransactionFilter{}, now)
	if sum.TotalIncome != 180 {
		t.Errorf("TotalIncome = %.2f, want 180.00 (every status counts)", sum.TotalIncome)
	}
	if sum.Received != 100 {
		t.Errorf("Received = %.2f, want 100.00", sum.Received)
	}
	if sum.Pending != 50 {
		t.Errorf("Pending = %.2f, want 50.00", sum.Pending)
	}
	if sum.TotalExpense != 200 {
		t.Errorf("TotalExpense = %.2f, want 200.00", sum.TotalExpense)
	}
	if sum.Balance != -20 {
		t.Errorf("Balance = %.2f, want -20.00", sum.Balance)
	}
	if sum.Count != 4 {
		t.Errorf("Count = %d, want 4", sum.Count)
	}
}

func TestSummarizeCommission(t *testing.T) {
	now := time.Now()
	rate := 50.0

	withRate := incomeTx(100, models.TransactionPaid, now)
	withRate.Appointment = &models.Appointment{
		Professional: models.Professional{Name: "Bruna", CommissionRate: &rate},
	}
	withoutRate := incomeTx(200, models.TransactionPaid, now)
	withoutRate.Appointment = &models.Appointment{
		Professional: models.Professional{Name: "Carla"},
	}

	sum := Summarize([]models.FinancialTransaction{withRate, withoutRate}, TransactionFilter{}, now)
	if sum.Commission != 50 {
		t.Errorf("Commission = %.2f, want 50.00 (missing rate counts as zero)", sum.Commission)
	}
}

func TestFilterByPeriod(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	txs := []models.FinancialTransaction{
		incomeTx(10, models.TransactionPaid, now),
		incomeTx(20, models.TransactionPaid, now.AddDate(0, 0, -3)),
		incomeTx(30, models.TransactionPaid, now.AddDate(0, -1, 0)),
		incomeTx(40, models.TransactionPaid, now.AddDate(0, -6, 0)),
	}

	cases := []struct {
		period Period
		want   int
	}{
		{PeriodToday, 1},
		{PeriodCurrentMonth, 2},
		{PeriodLastMonth, 1},
		{PeriodAll, 4},
		{"", 4},
	}
	for _, tc := range cases {
		got := len(FilterTransactions(txs, TransactionFilter{Period: tc.period}, now))
		if got != tc.want {
			t.Errorf("period %q matched %d, want %d", tc.period, got, tc.want)
		}
	}
}

func TestFilterByStatusSearchAndProfessional(t *testing.T) {
	now := time.Now()
	proID := uuid.New()

	linked := incomeTx(100, models.TransactionPending, now)
	linked.Appointment = &models.Appointment{ProfessionalID: proID}
	other := incomeTx(50, models.TransactionPaid, now)
	other.Description = "Manicure - Julia"

	txs := []models.FinancialTransaction{linked, other}

	if got := len(FilterTransactions(txs, TransactionFilter{Status: models.TransactionPaid}, now)); got != 1 {
		t.Errorf("status filter matched %d, want 1", got)
	}
	if got := len(FilterTransactions(txs, TransactionFilter{Status: "all"}, now)); got != 2 {
		t.Errorf("status all matched %d, want 2", got)
	}
	if got := len(FilterTransactions(txs, TransactionFilter{Search: "MANICURE"}, now)); got != 1 {
		t.Errorf("case-insensitive search matched %d, want 1", got)
	}
	if got := len(FilterTransactions(txs, TransactionFilter{ProfessionalID: &proID}, now)); got != 1 {
		t.Errorf("professional filter matched %d, want 1", got)
	}
	stranger := uuid.New()
	if got := len(FilterTransactions(txs, TransactionFilter{ProfessionalID: &stranger}, now)); got != 0 {
		t.Errorf("unknown professional matched %d, want 0", got)
	}
}
