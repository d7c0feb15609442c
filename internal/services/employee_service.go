package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/models"
	"kasatakip/internal/pagination"
)

// employeeService manages a user's employees.
type employeeService struct {
	db     *gorm.DB
	access AccessServicer
}

// NewEmployeeService creates a new EmployeeServicer.
func NewEmployeeService(db *gorm.DB, access AccessServicer) EmployeeServicer {
	return &employeeService{db: db, access: access}
}

// CreateEmployee adds an employee
func (s *employeeService) CreateEmployee(userID string, in EmployeeInput) (*models.Employee, error) {
	if err := s.validate(userID, &in); err != nil {
		return nil, err
	}

	employee := &models.Employee{
		FullName:         in.FullName,
		Position:         in.Position,
		SalaryAmount:     in.SalaryAmount,
		SalaryCurrencyID: in.SalaryCurrencyID,
		SalaryPeriod:     in.SalaryPeriod,
		HireDate:         in.HireDate,
		IsActive:         in.IsActive,
		DefaultSafeID:    in.DefaultSafeID,
		Notes:            in.Notes,
		UserID:           userID,
	}
	if err := s.db.Create(employee).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.load(userID, employee.ID)
}

// ListEmployees retrieves a paginated list of employees ordered by name
func (s *employeeService) ListEmployees(userID string, filter EmployeeFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Employee], error) {
	base := s.db.Model(&models.Employee{}).Where("user_id = ?", userID)
	if strings.TrimSpace(filter.Search) != "" {
		p := likePattern(filter.Search)
		base = base.Where("LOWER(full_name) LIKE ? OR LOWER(position) LIKE ?", p, p)
	}
	if filter.IsActive != nil {
		base = base.Where("is_active = ?", *filter.IsActive)
	}

	result, err := pagination.Find[models.Employee](base, page, "full_name ASC, id ASC", "SalaryCurrency", "DefaultSafe")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

// GetEmployee retrieves an employee with their payment history
func (s *employeeService) GetEmployee(userID, employeeID string) (*models.Employee, error) {
	employee, err := s.load(userID, employeeID)
	if err != nil {
		return nil, err
	}
	payments, err := employeePayments(s.db, employee.ID)
	if err != nil {
		return nil, err
	}
	employee.Payments = payments
	return employee, nil
}

// UpdateEmployee replaces the editable fields of an employee
func (s *employeeService) UpdateEmployee(userID, employeeID string, in EmployeeInput, version int64) (*models.Employee, error) {
	current, err := s.load(userID, employeeID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(userID, &in); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"full_name":          in.FullName,
		"position":           in.Position,
		"salary_amount":      in.SalaryAmount,
		"salary_currency_id": in.SalaryCurrencyID,
		"salary_period":      in.SalaryPeriod,
		"hire_date":          in.HireDate,
		"is_active":          in.IsActive,
		"default_safe_id":    in.DefaultSafeID,
		"notes":              in.Notes,
	}
	if err := updateVersioned(s.db, &models.Employee{}, employeeID,
		expectedVersion(version, current.Version), updates, apperrors.ErrEmployeeNotFound); err != nil {
		return nil, err
	}
	return s.load(userID, employeeID)
}

// DeleteEmployee removes an employee and their salary payments. The ledger
// entries of those payments stay.
func (s *employeeService) DeleteEmployee(userID, employeeID string) error {
	if _, err := s.load(userID, employeeID); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employeeID).Delete(&models.SalaryPayment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", employeeID).Delete(&models.Employee{}).Error
	})
	return apperrors.AtomicFailure(err)
}

func (s *employeeService) validate(userID string, in *EmployeeInput) error {
	fullName, err := cleanText(in.FullName, 150, "full name")
	if err != nil {
		return err
	}
	if fullName == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "full name is required")
	}
	in.FullName = fullName
	if in.Position, err = cleanText(in.Position, 100, "position"); err != nil {
		return err
	}
	if in.Notes, err = cleanText(in.Notes, 250, "notes"); err != nil {
		return err
	}
	if in.SalaryAmount.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidAmount, "salary amount cannot be negative")
	}
	if in.SalaryPeriod == "" {
		in.SalaryPeriod = models.SalaryPeriodMonthly
	}
	if !in.SalaryPeriod.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown salary period")
	}
	if _, err := requireCurrency(s.db, in.SalaryCurrencyID); err != nil {
		return err
	}
	if in.DefaultSafeID != nil && *in.DefaultSafeID == "" {
		in.DefaultSafeID = nil
	}
	if in.DefaultSafeID != nil {
		if _, err := s.access.RequireAccess(userID, *in.DefaultSafeID); err != nil {
			return err
		}
	}
	return nil
}

func (s *employeeService) load(userID, employeeID string) (*models.Employee, error) {
	var employee models.Employee
	q := s.db.Preload("SalaryCurrency").Preload("DefaultSafe")
	if err := findOne(q, &employee, apperrors.ErrEmployeeNotFound,
		"id = ? AND user_id = ?", employeeID, userID); err != nil {
		return nil, err
	}
	return &employee, nil
}
