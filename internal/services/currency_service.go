package services

import (
	"database/sql"
	"strings"

	"gorm.io/gorm"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/models"
)

// currencyService manages the shared currency list.
type currencyService struct {
	db *gorm.DB
}

// NewCurrencyService creates a new CurrencyServicer.
func NewCurrencyService(db *gorm.DB) CurrencyServicer {
	return &currencyService{db: db}
}

// CreateCurrency adds a currency to the reference list
func (s *currencyService) CreateCurrency(name, symbol string) (*models.Currency, error) {
	name, symbol = strings.TrimSpace(name), strings.TrimSpace(symbol)
	if name == "" || symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name and symbol are required")
	}

	currency := &models.Currency{Name: name, Symbol: symbol}
	if err := s.db.Create(currency).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return currency, nil
}

// ListCurrencies returns every currency ordered by name
func (s *currencyService) ListCurrencies() ([]models.Currency, error) {
	return listCurrencies(s.db)
}

// GetCurrencyByID retrieves a currency
func (s *currencyService) GetCurrencyByID(id string) (*models.Currency, error) {
	var currency models.Currency
	if err := findOne(s.db, &currency, apperrors.ErrCurrencyNotFound, "id = ?", id); err != nil {
		return nil, err
	}
	return &currency, nil
}

// UpdateCurrency renames a currency or changes its symbol
func (s *currencyService) UpdateCurrency(id, name, symbol string, version int64) (*models.Currency, error) {
	current, err := s.GetCurrencyByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name = strings.TrimSpace(name); name != "" {
		updates["name"] = name
	}
	if symbol = strings.TrimSpace(symbol); symbol != "" {
		updates["symbol"] = symbol
	}
	if len(updates) == 0 {
		return current, nil
	}

	if err := updateVersioned(s.db, &models.Currency{}, id, expectedVersion(version, current.Version), updates, apperrors.ErrCurrencyNotFound); err != nil {
		return nil, err
	}
	return s.GetCurrencyByID(id)
}

// DeleteCurrency removes a currency nothing refers to
func (s *currencyService) DeleteCurrency(id string) error {
	if _, err := s.GetCurrencyByID(id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		refs := []struct {
			model interface{}
			query string
		}{
			{&models.Transaction{}, "currency_id = @id"},
			{&models.Employee{}, "salary_currency_id = @id"},
			{&models.SalaryPayment{}, "currency_id = @id"},
			{&models.CurrencyExchange{}, "sold_currency_id = @id OR bought_currency_id = @id"},
			{&models.BankAccount{}, "currency_id = @id"},
		}
		for _, ref := range refs {
			var count int64
			if err := tx.Model(ref.model).Where(ref.query, sql.Named("id", id)).Count(&count).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if count > 0 {
				return apperrors.ErrCurrencyInUse
			}
		}

		if err := tx.Where("id = ?", id).Delete(&models.Currency{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// listCurrencies loads the reference list in display order.
func listCurrencies(db *gorm.DB) ([]models.Currency, error) {
	var currencies []models.Currency
	if err := db.Order("name ASC, id ASC").Find(&currencies).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if currencies == nil {
		currencies = []models.Currency{}
	}
	return currencies, nil
}
