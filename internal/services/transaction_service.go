package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/logger"
	"kasatakip/internal/models"
	"kasatakip/internal/pagination"
)

// transactionService handles the ledger of each safe.
type transactionService struct {
	db     *gorm.DB
	access AccessServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, access AccessServicer) TransactionServicer {
	return &transactionService{
		db:     db,
		access: access,
	}
}

// AddTransaction appends one entry to a safe the user can access
func (s *transactionService) AddTransaction(userID string, in TransactionInput) (*models.Transaction, error) {
	// Validate input
	if !in.Type.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if err := requirePositive(in.Amount); err != nil {
		return nil, err
	}
	description, err := cleanText(in.Description, maxDescriptionLen, "description")
	if err != nil {
		return nil, err
	}
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	payee, err := cleanText(in.PayeeOrPayer, maxPayeeLen, "payee or payer")
	if err != nil {
		return nil, err
	}

	// Access first, then references
	if _, err := s.access.RequireAccess(userID, in.SafeID); err != nil {
		return nil, err
	}
	if _, err := requireCurrency(s.db, in.CurrencyID); err != nil {
		return nil, err
	}
	if in.CurrentAccountID != nil && *in.CurrentAccountID != "" {
		account, err := ownedCurrentAccount(s.db, userID, *in.CurrentAccountID)
		if err != nil {
			return nil, err
		}
		payee = truncate(account.Name, maxPayeeLen)
	} else {
		in.CurrentAccountID = nil
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		SafeID:           in.SafeID,
		Type:             in.Type,
		Amount:           in.Amount,
		CurrencyID:       in.CurrencyID,
		Description:      description,
		TransactionDate:  date,
		PayeeOrPayer:     payee,
		CurrentAccountID: in.CurrentAccountID,
		UserID:           userID,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// UpdateTransaction overwrites the given fields of an entry in place. The
// type is fixed at creation.
func (s *transactionService) UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error) {
	current, err := s.load(transactionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.RequireAccess(userID, current.SafeID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if fields.SafeID != nil && *fields.SafeID != current.SafeID {
		if _, err := s.access.RequireAccess(userID, *fields.SafeID); err != nil {
			return nil, err
		}
		updates["safe_id"] = *fields.SafeID
	}
	if fields.Amount != nil {
		if err := requirePositive(*fields.Amount); err != nil {
			return nil, err
		}
		updates["amount"] = *fields.Amount
	}
	if fields.CurrencyID != nil {
		if _, err := requireCurrency(s.db, *fields.CurrencyID); err != nil {
			return nil, err
		}
		updates["currency_id"] = *fields.CurrencyID
	}
	if fields.Description != nil {
		description, err := cleanText(*fields.Description, maxDescriptionLen, "description")
		if err != nil {
			return nil, err
		}
		if description == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
		}
		updates["description"] = description
	}
	if fields.Date != nil && !fields.Date.IsZero() {
		updates["transaction_date"] = *fields.Date
	}
	if fields.PayeeOrPayer != nil {
		payee, err := cleanText(*fields.PayeeOrPayer, maxPayeeLen, "payee or payer")
		if err != nil {
			return nil, err
		}
		updates["payee_or_payer"] = payee
	}
	switch {
	case fields.ClearCurrentAccount:
		updates["current_account_id"] = nil
	case fields.CurrentAccountID != nil && *fields.CurrentAccountID != "":
		account, err := ownedCurrentAccount(s.db, userID, *fields.CurrentAccountID)
		if err != nil {
			return nil, err
		}
		updates["current_account_id"] = account.ID
		updates["payee_or_payer"] = truncate(account.Name, maxPayeeLen)
	}

	if len(updates) == 0 {
		return current, nil
	}
	if err := updateVersioned(s.db, &models.Transaction{}, transactionID,
		expectedVersion(fields.Version, current.Version), updates, apperrors.ErrTransactionNotFound); err != nil {
		return nil, err
	}
	return s.load(transactionID)
}

// GetTransactionByID retrieves an entry of a safe the user can access
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	transaction, err := s.load(transactionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.RequireAccess(userID, transaction.SafeID); err != nil {
		return nil, err
	}
	return transaction, nil
}

// GetSafeTransactions retrieves a paginated, filtered list of a safe's entries, newest first
func (s *transactionService) GetSafeTransactions(userID, safeID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if _, err := s.access.RequireAccess(userID, safeID); err != nil {
		return nil, err
	}

	base := s.db.Model(&models.Transaction{}).Where("safe_id = ?", safeID)
	base = applyTransactionFilters(base, filter)

	result, err := pagination.Find[models.Transaction](base, page, "transaction_date DESC, id DESC", "Currency")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("transaction_date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("transaction_date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.CurrencyID != nil {
		q = q.Where("currency_id = ?", *f.CurrencyID)
	}
	return q
}

// DeleteTransaction removes an entry together with the composite operation it
// belongs to. For an exchange leg the exchange and its other leg go too; for a
// salary entry the payment goes too. Everything happens in one database
// transaction, so either all rows are removed or none.
func (s *transactionService) DeleteTransaction(userID, transactionID string) (*CascadeResult, error) {
	transaction, err := s.load(transactionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.RequireAccess(userID, transaction.SafeID); err != nil {
		return nil, err
	}

	result := &CascadeResult{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var exchange models.CurrencyExchange
		err := tx.Where("expense_transaction_id = ? OR income_transaction_id = ?", transactionID, transactionID).
			First(&exchange).Error
		switch {
		case err == nil:
			if exchange.UserID != userID {
				return apperrors.WithMessage(apperrors.ErrForbidden, "transaction belongs to another user's currency exchange")
			}
			return deleteExchange(tx, &exchange, transactionID, result)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		var payment models.SalaryPayment
		err = tx.Where("transaction_id = ?", transactionID).First(&payment).Error
		switch {
		case err == nil:
			if payment.UserID != userID {
				return apperrors.WithMessage(apperrors.ErrForbidden, "transaction belongs to another user's salary payment")
			}
			if err := tx.Delete(&models.SalaryPayment{}, "id = ?", payment.ID).Error; err != nil {
				return err
			}
			result.SalaryPaymentID = payment.ID
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if err := tx.Delete(&models.Transaction{}, "id = ?", transactionID).Error; err != nil {
			return err
		}
		result.DeletedTransactionIDs = append(result.DeletedTransactionIDs, transactionID)
		return nil
	})
	if err != nil {
		return nil, apperrors.AtomicFailure(err)
	}

	logger.Get().Infow("Transaction deleted",
		"user_id", userID,
		"transaction_id", transactionID,
		"exchange_id", result.ExchangeID,
		"salary_payment_id", result.SalaryPaymentID,
	)
	return result, nil
}

// deleteExchange removes an exchange, then the leg that was not targeted,
// then the targeted leg. Must run inside a database transaction.
func deleteExchange(tx *gorm.DB, exchange *models.CurrencyExchange, targetID string, result *CascadeResult) error {
	if err := tx.Delete(&models.CurrencyExchange{}, "id = ?", exchange.ID).Error; err != nil {
		return err
	}
	result.ExchangeID = exchange.ID

	if sibling := exchange.Sibling(targetID); sibling != "" {
		res := tx.Delete(&models.Transaction{}, "id = ?", sibling)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			result.DeletedTransactionIDs = append(result.DeletedTransactionIDs, sibling)
		}
	}

	if err := tx.Delete(&models.Transaction{}, "id = ?", targetID).Error; err != nil {
		return err
	}
	result.DeletedTransactionIDs = append(result.DeletedTransactionIDs, targetID)
	return nil
}

func (s *transactionService) load(transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := findOne(s.db.Preload("Currency"), &transaction, apperrors.ErrTransactionNotFound, "id = ?", transactionID); err != nil {
		return nil, err
	}
	return &transaction, nil
}
