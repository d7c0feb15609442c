package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/models"
)

// recentTransactionLimit is how many entries the dashboard lists.
const recentTransactionLimit = 10

// dashboardService summarises a safe.
type dashboardService struct {
	db     *gorm.DB
	access AccessServicer
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, access AccessServicer) DashboardServicer {
	return &dashboardService{db: db, access: access}
}

// GetDashboard returns the full balance view of a safe, its latest entries
// and the activity of the month containing now.
func (s *dashboardService) GetDashboard(userID, safeID string, now time.Time) (*Dashboard, error) {
	safe, err := s.access.RequireAccess(userID, safeID)
	if err != nil {
		return nil, err
	}
	currencies, err := listCurrencies(s.db)
	if err != nil {
		return nil, err
	}

	var all []models.Transaction
	if err := s.db.Select("currency_id", "type", "amount", "transaction_date").
		Where("safe_id = ?", safeID).
		Find(&all).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var recent []models.Transaction
	if err := s.db.Preload("Currency").
		Where("safe_id = ?", safeID).
		Order("transaction_date DESC, id DESC").
		Limit(recentTransactionLimit).
		Find(&recent).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if recent == nil {
		recent = []models.Transaction{}
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	var monthly []models.Transaction
	for _, t := range all {
		if !t.TransactionDate.Before(monthStart) && t.TransactionDate.Before(monthEnd) {
			monthly = append(monthly, t)
		}
	}

	return &Dashboard{
		Safe:               *safe,
		Balances:           BalancesFor(all, currencies),
		RecentTransactions: recent,
		MonthStart:         monthStart,
		Monthly:            NonTrivialBalances(monthly, currencies),
		Daily:              dailyTotals(monthly, now.Location()),
	}, nil
}

// dailyTotals groups entries by calendar day in loc and currency.
func dailyTotals(transactions []models.Transaction, loc *time.Location) []DailyTotal {
	type key struct{ day, currency string }
	totals := make(map[key]*DailyTotal)
	for _, t := range transactions {
		k := key{t.TransactionDate.In(loc).Format("2006-01-02"), t.CurrencyID}
		dt, ok := totals[k]
		if !ok {
			dt = &DailyTotal{Date: k.day, CurrencyID: k.currency, Income: decimal.Zero, Expense: decimal.Zero}
			totals[k] = dt
		}
		switch t.Type {
		case models.TransactionTypeIncome:
			dt.Income = dt.Income.Add(t.Amount)
		case models.TransactionTypeExpense:
			dt.Expense = dt.Expense.Add(t.Amount)
		}
	}

	out := make([]DailyTotal, 0, len(totals))
	for _, dt := range totals {
		out = append(out, *dt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].CurrencyID < out[j].CurrencyID
	})
	return out
}
