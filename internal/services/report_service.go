package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/models"
)

// Report type filters.
const (
	ReportTypeAll     = "all"
	ReportTypeIncome  = "income"
	ReportTypeExpense = "expense"
)

// reportService builds date-filtered transaction reports.
type reportService struct {
	db     *gorm.DB
	access AccessServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, access AccessServicer) ReportServicer {
	return &reportService{db: db, access: access}
}

// GenerateReport lists the entries matching filter across the safes the user
// can access, oldest first, with per-currency totals. Without dates the report
// covers the month up to today.
func (s *reportService) GenerateReport(userID string, filter ReportFilter, now time.Time) (*Report, error) {
	end := startOfDay(now)
	if filter.EndDate != nil {
		end = startOfDay(*filter.EndDate)
	}
	start := end.AddDate(0, -1, 0)
	if filter.StartDate != nil {
		start = startOfDay(*filter.StartDate)
	}
	if start.After(end) {
		return nil, apperrors.ErrInvalidDateRange
	}

	reportType := filter.Type
	if reportType == "" {
		reportType = ReportTypeAll
	}
	if reportType != ReportTypeAll && reportType != ReportTypeIncome && reportType != ReportTypeExpense {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "report type must be all, income or expense")
	}

	report := &Report{
		StartDate:    start,
		EndDate:      end,
		Type:         reportType,
		Transactions: []models.Transaction{},
		Totals:       Balances{},
	}

	safeIDs, err := s.scope(userID, filter.SafeID)
	if err != nil {
		return nil, err
	}
	if len(safeIDs) == 0 {
		return report, nil
	}

	q := s.db.Model(&models.Transaction{}).
		Where("safe_id IN ?", safeIDs).
		Where("transaction_date >= ? AND transaction_date < ?", start, end.AddDate(0, 0, 1))
	if reportType != ReportTypeAll {
		q = q.Where("type = ?", reportType)
	}
	if filter.CurrentAccountID != nil && *filter.CurrentAccountID != "" {
		account, err := ownedCurrentAccount(s.db, userID, *filter.CurrentAccountID)
		if err != nil {
			return nil, err
		}
		q = q.Where(s.db.Where("current_account_id = ?", account.ID).
			Or("current_account_id IS NULL AND payee_or_payer = ?", account.Name))
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		var employee models.Employee
		if err := findOne(s.db, &employee, apperrors.ErrEmployeeNotFound,
			"id = ? AND user_id = ?", *filter.EmployeeID, userID); err != nil {
			return nil, err
		}
		q = q.Where("payee_or_payer = ?", employee.FullName)
	}

	if err := q.Preload("Currency").Preload("Safe").
		Order("transaction_date ASC, id ASC").
		Find(&report.Transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	currencies, err := listCurrencies(s.db)
	if err != nil {
		return nil, err
	}
	report.Totals = NonTrivialBalances(report.Transactions, currencies)
	report.PrimaryCurrency = primaryCurrency(report.Totals)
	return report, nil
}

// scope returns the safe ids a report may read.
func (s *reportService) scope(userID string, safeID *string) ([]string, error) {
	if safeID != nil && *safeID != "" {
		safe, err := s.access.RequireAccess(userID, *safeID)
		if err != nil {
			return nil, err
		}
		return []string{safe.ID}, nil
	}

	safes, err := s.access.AccessibleSafes(userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(safes))
	for _, safe := range safes {
		ids = append(ids, safe.ID)
	}
	return ids, nil
}

// primaryCurrency picks the currency with the most entries; the first wins ties.
func primaryCurrency(totals Balances) *CurrencyBalance {
	var best *CurrencyBalance
	for i := range totals {
		if best == nil || totals[i].TransactionCount > best.TransactionCount {
			best = &totals[i]
		}
	}
	return best
}
