package services

import (
	"strings"
	"time"

	"snapagenda-backend/models"
	"snapagenda-backend/utils"

	"github.com/google/uuid"
)

type Period string

const (
	PeriodToday        Period = "today"
	PeriodCurrentMonth Period = "current_month"
	PeriodLastMonth    Period = "last_month"
	PeriodAll          Period = "all"
)

func (p Period) Contains(date, now time.Time) bool {
	switch p {
	case PeriodToday:
		return utils.SameDay(date, now)
	case PeriodCurrentMonth:
		return utils.SameMonth(date, now)
	case PeriodLastMonth:
		return utils.SameMonth(date, now.AddDate(0, -1, 0))
	default:
		return true
	}
}

// LedgerSummary holds the derived statistics of a filtered transaction
// set. Nothing here is persisted; it is recomputed on every view.
type LedgerSummary struct {
	TotalIncome  float64 `json:"totalIncome"`
	Received     float64 `json:"received"`
	Pending      float64 `json:"pending"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
	Commission   float64 `json:"commission"`
	Count        int     `json:"count"`
}

// TransactionFilter narrows a loaded transaction set. Zero values mean
// "no filter" except Period, which defaults to all.
type TransactionFilter struct {
	Period         Period
	Status         string
	Search         string
	ProfessionalID *uuid.UUID
}

func (f TransactionFilter) matches(t models.FinancialTransaction, now time.Time) bool {
	period := f.Period
	if period == "" {
		period = PeriodAll
	}
	if !period.Contains(t.Date, now) {
		return false
	}
	if f.Status != "" && f.Status != "all" && t.Status != f.Status {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Description), strings.ToLower(f.Search)) {
		return false
	}
	if f.ProfessionalID != nil {
		if t.Appointment == nil || t.Appointment.ProfessionalID != *f.ProfessionalID {
			return false
		}
	}
	return true
}

// FilterTransactions keeps the entries matching the filter. Expects
// appointment-linked entries to have Appointment (and its Professional)
// preloaded when a professional filter is in play.
func FilterTransactions(txs []models.FinancialTransaction, f TransactionFilter, now time.Time) []models.FinancialTransaction {
	var out []models.FinancialTransaction
	for _, t := range txs {
		if f.matches(t, now) {
			out = append(out, t)
		}
	}
	return out
}

// Summarize folds the filtered set into the dashboard figures. Income
// totals count every status; received and pending break income down by
// status; commission applies each linked professional's rate to income
// amounts, with a missing rate counting as zero.
func Summarize(txs []models.FinancialTransaction, f TransactionFilter, now time.Time) LedgerSummary {
	var sum LedgerSummary
	for _, t := range txs {
		if !f.matches(t, now) {
			continue
		}
		sum.Count++
		switch t.Type {
		case models.TransactionIncome:
			sum.TotalIncome += t.Amount
			switch t.Status {
			case models.TransactionPaid:
				sum.Received += t.Amount
			case models.TransactionPending:
				sum.Pending += t.Amount
			}
			if t.Appointment != nil && t.Appointment.Professional.CommissionRate != nil {
				sum.Commission += t.Amount * (*t.Appointment.Professional.CommissionRate / 100)
			}
		case models.TransactionExpense:
			sum.TotalExpense += t.Amount
		}
	}
	sum.Balance = sum.TotalIncome - sum.TotalExpense
	return sum
}
