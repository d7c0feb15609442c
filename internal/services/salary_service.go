package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/models"
)

// salaryService pays employees out of safes. Every payment carries one
// expense entry in the ledger.
type salaryService struct {
	db     *gorm.DB
	access AccessServicer
	now    func() time.Time
}

// NewSalaryService creates a new SalaryServicer.
func NewSalaryService(db *gorm.DB, access AccessServicer) SalaryServicer {
	return &salaryService{db: db, access: access, now: time.Now}
}

// salaryPlan is a validated salary payment ready to be written.
type salaryPlan struct {
	paymentDate time.Time
	entry       models.Transaction
	description string
}

// CreateSalaryPayment records a payment and its expense entry atomically
func (s *salaryService) CreateSalaryPayment(userID, employeeID string, in SalaryPaymentInput) (*models.SalaryPayment, error) {
	op := newCompositeOp("salary_payment", userID)

	employee, err := s.ownedEmployee(userID, employeeID)
	if err != nil {
		return nil, op.reject(err)
	}
	if in.SafeID == "" && employee.DefaultSafeID != nil {
		in.SafeID = *employee.DefaultSafeID
	}
	if in.CurrencyID == "" {
		in.CurrencyID = employee.SalaryCurrencyID
	}
	plan, err := s.plan(userID, employee, in)
	if err != nil {
		return nil, op.reject(err)
	}
	op.validated()

	transaction := plan.entry
	payment := &models.SalaryPayment{
		EmployeeID:  employee.ID,
		PaymentDate: plan.paymentDate,
		Amount:      transaction.Amount,
		CurrencyID:  transaction.CurrencyID,
		SafeID:      transaction.SafeID,
		Description: plan.description,
		UserID:      userID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}
		payment.TransactionID = &transaction.ID
		return tx.Create(payment).Error
	})
	if err != nil {
		return nil, op.reject(apperrors.AtomicFailure(err))
	}
	op.committed("salary_payment_id", payment.ID, "transaction_id", transaction.ID)

	return s.GetSalaryPayment(userID, payment.ID)
}

// UpdateSalaryPayment changes a payment and rewrites its expense entry in the
// same database transaction. A payment whose entry is gone gets a new one.
func (s *salaryService) UpdateSalaryPayment(userID, paymentID string, in SalaryPaymentInput, version int64) (*models.SalaryPayment, error) {
	current, err := s.GetSalaryPayment(userID, paymentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.RequireAccess(userID, current.SafeID); err != nil {
		return nil, err
	}

	if in.PaymentDate.IsZero() {
		in.PaymentDate = current.PaymentDate
	}
	if in.Amount.IsZero() {
		in.Amount = current.Amount
	}
	if in.CurrencyID == "" {
		in.CurrencyID = current.CurrencyID
	}
	if in.SafeID == "" {
		in.SafeID = current.SafeID
	}
	employee, err := s.ownedEmployee(userID, current.EmployeeID)
	if err != nil {
		return nil, err
	}
	plan, err := s.plan(userID, employee, in)
	if err != nil {
		return nil, err
	}

	entry := plan.entry
	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"payment_date": plan.paymentDate,
			"amount":       entry.Amount,
			"currency_id":  entry.CurrencyID,
			"safe_id":      entry.SafeID,
			"description":  plan.description,
		}
		if err := updateVersioned(tx, &models.SalaryPayment{}, paymentID,
			expectedVersion(version, current.Version), updates, apperrors.ErrSalaryPaymentNotFound); err != nil {
			return err
		}

		if current.TransactionID != nil {
			res := tx.Model(&models.Transaction{}).Where("id = ?", *current.TransactionID).Updates(map[string]interface{}{
				"safe_id":          entry.SafeID,
				"amount":           entry.Amount,
				"currency_id":      entry.CurrencyID,
				"description":      entry.Description,
				"transaction_date": entry.TransactionDate,
				"payee_or_payer":   entry.PayeeOrPayer,
				"version":          gorm.Expr("version + 1"),
			})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				return nil
			}
		}

		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.SalaryPayment{}).Where("id = ?", paymentID).
			Update("transaction_id", entry.ID).Error
	})
	if err != nil {
		return nil, apperrors.AtomicFailure(err)
	}
	return s.GetSalaryPayment(userID, paymentID)
}

// DeleteSalaryPayment removes a payment and its expense entry atomically
func (s *salaryService) DeleteSalaryPayment(userID, paymentID string) error {
	payment, err := s.GetSalaryPayment(userID, paymentID)
	if err != nil {
		return err
	}
	if _, err := s.access.RequireAccess(userID, payment.SafeID); err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.SalaryPayment{}, "id = ?", paymentID).Error; err != nil {
			return err
		}
		if payment.TransactionID == nil {
			return nil
		}
		return tx.Delete(&models.Transaction{}, "id = ?", *payment.TransactionID).Error
	})
	return apperrors.AtomicFailure(err)
}

// GetSalaryPayment retrieves one of the user's salary payments
func (s *salaryService) GetSalaryPayment(userID, paymentID string) (*models.SalaryPayment, error) {
	var payment models.SalaryPayment
	q := s.db.Preload("Employee").Preload("Currency").Preload("Safe")
	if err := findOne(q, &payment, apperrors.ErrSalaryPaymentNotFound,
		"id = ? AND user_id = ?", paymentID, userID); err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetEmployeePayments returns an employee's payment history, newest first
func (s *salaryService) GetEmployeePayments(userID, employeeID string) ([]models.SalaryPayment, error) {
	if _, err := s.ownedEmployee(userID, employeeID); err != nil {
		return nil, err
	}
	return employeePayments(s.db, employeeID)
}

// plan validates in and builds the expense entry for it.
func (s *salaryService) plan(userID string, employee *models.Employee, in SalaryPaymentInput) (*salaryPlan, error) {
	if _, err := s.access.RequireAccess(userID, in.SafeID); err != nil {
		return nil, err
	}
	if err := requirePositive(in.Amount); err != nil {
		return nil, err
	}
	if _, err := requireCurrency(s.db, in.CurrencyID); err != nil {
		return nil, err
	}
	description, err := cleanText(in.Description, maxDescriptionLen, "description")
	if err != nil {
		return nil, err
	}

	now := s.now()
	paymentDate := in.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = startOfDay(now)
	}

	return &salaryPlan{
		paymentDate: paymentDate,
		description: description,
		entry: models.Transaction{
			SafeID:          in.SafeID,
			Type:            models.TransactionTypeExpense,
			Amount:          in.Amount,
			CurrencyID:      in.CurrencyID,
			Description:     truncate(employee.FullName+" - Maaş Ödemesi ("+monthYear(paymentDate)+")", maxDescriptionLen),
			TransactionDate: atClockOf(paymentDate, now),
			PayeeOrPayer:    truncate(employee.FullName, maxPayeeLen),
			UserID:          userID,
		},
	}, nil
}

func (s *salaryService) ownedEmployee(userID, employeeID string) (*models.Employee, error) {
	var employee models.Employee
	if err := findOne(s.db, &employee, apperrors.ErrEmployeeNotFound,
		"id = ? AND user_id = ?", employeeID, userID); err != nil {
		return nil, err
	}
	return &employee, nil
}

func employeePayments(db *gorm.DB, employeeID string) ([]models.SalaryPayment, error) {
	var payments []models.SalaryPayment
	err := db.Preload("Currency").Preload("Safe").
		Where("employee_id = ?", employeeID).
		Order("payment_date DESC, id DESC").
		Find(&payments).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if payments == nil {
		payments = []models.SalaryPayment{}
	}
	return payments, nil
}

// atClockOf returns the calendar day of day at the wall-clock time of clock.
func atClockOf(day, clock time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(), day.Location())
}
