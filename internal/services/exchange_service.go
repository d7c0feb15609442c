package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/models"
	"kasatakip/internal/money"
	"kasatakip/internal/pagination"
)

const (
	exchangeDefaultPayee = "Döviz İşlemi"
	// exchangeLegGap separates the expense and income legs so they sort
	// next to each other.
	exchangeLegGap = time.Second
)

// exchangeService records currency exchanges against a safe.
type exchangeService struct {
	db     *gorm.DB
	access AccessServicer
	now    func() time.Time
}

// NewExchangeService creates a new ExchangeServicer.
func NewExchangeService(db *gorm.DB, access AccessServicer) ExchangeServicer {
	return &exchangeService{db: db, access: access, now: time.Now}
}

// CreateExchange writes an expense of the sold amount, an income of the
// bought amount one second later, and the exchange linking them. All three
// rows are committed together or not at all.
func (s *exchangeService) CreateExchange(userID, safeID string, in ExchangeInput) (*ExchangeResult, error) {
	op := newCompositeOp("currency_exchange", userID)

	// Validate
	if _, err := s.access.RequireAccess(userID, safeID); err != nil {
		return nil, op.reject(err)
	}
	if in.SoldCurrencyID == in.BoughtCurrencyID {
		return nil, op.reject(apperrors.ErrSameCurrencyExchange)
	}
	if !in.SoldAccountSource.Valid() || !in.BoughtAccountSource.Valid() {
		return nil, op.reject(apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown account source"))
	}
	if in.SoldAccountSource != models.AccountSourceCash || in.BoughtAccountSource != models.AccountSourceCash {
		return nil, op.reject(apperrors.ErrUnsupportedAccountSource)
	}
	if err := requirePositive(in.SoldAmount); err != nil {
		return nil, op.reject(err)
	}
	if err := requirePositive(in.BoughtAmount); err != nil {
		return nil, op.reject(err)
	}
	sold, err := requireCurrency(s.db, in.SoldCurrencyID)
	if err != nil {
		return nil, op.reject(err)
	}
	bought, err := requireCurrency(s.db, in.BoughtCurrencyID)
	if err != nil {
		return nil, op.reject(err)
	}
	description, err := cleanText(in.Description, maxDescriptionLen, "description")
	if err != nil {
		return nil, op.reject(err)
	}

	payee := exchangeDefaultPayee
	var accountID *string
	if in.CurrentAccountID != nil && *in.CurrentAccountID != "" {
		account, err := ownedCurrentAccount(s.db, userID, *in.CurrentAccountID)
		if err != nil {
			return nil, op.reject(err)
		}
		payee = truncate(account.Name, maxPayeeLen)
		accountID = &account.ID
	}
	if description == "" {
		description = truncate("Döviz Alım/Satım - "+payee, maxDescriptionLen)
	}
	op.validated()

	date := in.ExchangeDate
	if date.IsZero() {
		date = s.now()
	}
	summary := truncate(exchangeSummary(in.SoldAmount, sold, in.BoughtAmount, bought), maxDescriptionLen)

	expense := &models.Transaction{
		SafeID:           safeID,
		Type:             models.TransactionTypeExpense,
		Amount:           in.SoldAmount,
		CurrencyID:       sold.ID,
		Description:      summary,
		TransactionDate:  date,
		PayeeOrPayer:     payee,
		CurrentAccountID: accountID,
		UserID:           userID,
	}
	income := &models.Transaction{
		SafeID:           safeID,
		Type:             models.TransactionTypeIncome,
		Amount:           in.BoughtAmount,
		CurrencyID:       bought.ID,
		Description:      summary,
		TransactionDate:  date.Add(exchangeLegGap),
		PayeeOrPayer:     payee,
		CurrentAccountID: accountID,
		UserID:           userID,
	}
	exchange := &models.CurrencyExchange{
		SoldCurrencyID:      sold.ID,
		SoldAmount:          in.SoldAmount,
		SoldAccountSource:   in.SoldAccountSource,
		BoughtCurrencyID:    bought.ID,
		BoughtAmount:        in.BoughtAmount,
		BoughtAccountSource: in.BoughtAccountSource,
		ExchangeDate:        date,
		CurrentAccountID:    accountID,
		Description:         description,
		MainSafeID:          safeID,
		UserID:              userID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return err
		}
		if err := tx.Create(income).Error; err != nil {
			return err
		}
		exchange.ExpenseTransactionID = expense.ID
		exchange.IncomeTransactionID = income.ID
		return tx.Create(exchange).Error
	})
	if err != nil {
		return nil, op.reject(apperrors.AtomicFailure(err))
	}
	op.committed("exchange_id", exchange.ID, "safe_id", safeID)

	exchange.SoldCurrency = sold
	exchange.BoughtCurrency = bought
	expense.Currency = sold
	income.Currency = bought
	return &ExchangeResult{Exchange: exchange, Expense: expense, Income: income}, nil
}

// GetExchangeByID retrieves one of the user's exchanges
func (s *exchangeService) GetExchangeByID(userID, exchangeID string) (*models.CurrencyExchange, error) {
	var exchange models.CurrencyExchange
	if err := findOne(s.db.Preload("SoldCurrency").Preload("BoughtCurrency"), &exchange, apperrors.ErrExchangeNotFound,
		"id = ? AND user_id = ?", exchangeID, userID); err != nil {
		return nil, err
	}
	return &exchange, nil
}

// ListExchanges retrieves the user's exchanges, newest first
func (s *exchangeService) ListExchanges(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.CurrencyExchange], error) {
	base := s.db.Model(&models.CurrencyExchange{}).Where("user_id = ?", userID)
	result, err := pagination.Find[models.CurrencyExchange](base, page, "exchange_date DESC, id DESC", "SoldCurrency", "BoughtCurrency")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

// exchangeSummary describes a conversion for both ledger legs.
func exchangeSummary(soldAmount decimal.Decimal, sold *models.Currency, boughtAmount decimal.Decimal, bought *models.Currency) string {
	return fmt.Sprintf("Para Bozdurma: %s %s verildi -> %s %s alındı.",
		money.Number(soldAmount), sold.Symbol, money.Number(boughtAmount), bought.Symbol)
}
