package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/models"
)

// currentAccountService manages counterparties and their running balances.
type currentAccountService struct {
	db *gorm.DB
}

// NewCurrentAccountService creates a new CurrentAccountServicer.
func NewCurrentAccountService(db *gorm.DB) CurrentAccountServicer {
	return &currentAccountService{db: db}
}

// CreateCurrentAccount adds a counterparty
func (s *currentAccountService) CreateCurrentAccount(userID string, in CurrentAccountInput) (*models.CurrentAccount, error) {
	if err := validateCurrentAccount(&in); err != nil {
		return nil, err
	}

	account := &models.CurrentAccount{
		Name:           in.Name,
		Type:           in.Type,
		TaxNumber:      in.TaxNumber,
		IdentityNumber: in.IdentityNumber,
		Address:        in.Address,
		Phone:          in.Phone,
		Email:          in.Email,
		Notes:          in.Notes,
		UserID:         userID,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// ListCurrentAccounts returns the user's counterparties with their non-trivial
// balances. search matches name, tax number, phone and email.
func (s *currentAccountService) ListCurrentAccounts(userID, search string, accountType *models.CounterpartyType) ([]CurrentAccountSummary, error) {
	q := s.db.Where("user_id = ?", userID)
	if strings.TrimSpace(search) != "" {
		p := likePattern(search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(tax_number) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(email) LIKE ?", p, p, p, p)
	}
	if accountType != nil {
		q = q.Where("type = ?", *accountType)
	}

	var accounts []models.CurrentAccount
	if err := q.Order("name ASC, id ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.summarize(userID, accounts)
}

// GetCurrentAccount retrieves a counterparty with its balances
func (s *currentAccountService) GetCurrentAccount(userID, accountID string) (*CurrentAccountSummary, error) {
	account, err := ownedCurrentAccount(s.db, userID, accountID)
	if err != nil {
		return nil, err
	}
	summaries, err := s.summarize(userID, []models.CurrentAccount{*account})
	if err != nil {
		return nil, err
	}
	return &summaries[0], nil
}

// UpdateCurrentAccount replaces the editable fields of a counterparty. A new
// name is carried over to the entries linked by id so history stays attached.
func (s *currentAccountService) UpdateCurrentAccount(userID, accountID string, in CurrentAccountInput, version int64) (*models.CurrentAccount, error) {
	current, err := ownedCurrentAccount(s.db, userID, accountID)
	if err != nil {
		return nil, err
	}
	if err := validateCurrentAccount(&in); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":            in.Name,
		"type":            in.Type,
		"tax_number":      in.TaxNumber,
		"identity_number": in.IdentityNumber,
		"address":         in.Address,
		"phone":           in.Phone,
		"email":           in.Email,
		"notes":           in.Notes,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := updateVersioned(tx, &models.CurrentAccount{}, accountID,
			expectedVersion(version, current.Version), updates, apperrors.ErrCurrentAccountNotFound); err != nil {
			return err
		}
		if in.Name == current.Name {
			return nil
		}
		return tx.Model(&models.Transaction{}).
			Where("current_account_id = ?", accountID).
			Update("payee_or_payer", truncate(in.Name, maxPayeeLen)).Error
	})
	if err != nil {
		return nil, apperrors.AtomicFailure(err)
	}
	return ownedCurrentAccount(s.db, userID, accountID)
}

// DeleteCurrentAccount removes a counterparty nothing refers to
func (s *currentAccountService) DeleteCurrentAccount(userID, accountID string) error {
	account, err := ownedCurrentAccount(s.db, userID, accountID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var txCount, exchangeCount int64
		if err := linkedTransactions(tx, userID, []models.CurrentAccount{*account}).
			Model(&models.Transaction{}).Count(&txCount).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(&models.CurrencyExchange{}).
			Where("current_account_id = ?", accountID).Count(&exchangeCount).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if txCount > 0 || exchangeCount > 0 {
			return apperrors.ErrCurrentAccountInUse
		}
		if err := tx.Where("id = ?", accountID).Delete(&models.CurrentAccount{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// summarize attaches the non-trivial balance view to each account.
func (s *currentAccountService) summarize(userID string, accounts []models.CurrentAccount) ([]CurrentAccountSummary, error) {
	out := make([]CurrentAccountSummary, 0, len(accounts))
	if len(accounts) == 0 {
		return out, nil
	}

	var transactions []models.Transaction
	if err := linkedTransactions(s.db, userID, accounts).
		Select("currency_id", "type", "amount", "payee_or_payer", "current_account_id").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	currencies, err := listCurrencies(s.db)
	if err != nil {
		return nil, err
	}

	byAccount := make(map[string][]models.Transaction, len(accounts))
	byName := make(map[string]string, len(accounts))
	for _, a := range accounts {
		byName[a.Name] = a.ID
	}
	for _, t := range transactions {
		switch {
		case t.CurrentAccountID != nil:
			byAccount[*t.CurrentAccountID] = append(byAccount[*t.CurrentAccountID], t)
		default:
			if id, ok := byName[t.PayeeOrPayer]; ok {
				byAccount[id] = append(byAccount[id], t)
			}
		}
	}

	for _, a := range accounts {
		out = append(out, CurrentAccountSummary{
			CurrentAccount: a,
			Balances:       NonTrivialBalances(byAccount[a.ID], currencies),
		})
	}
	return out, nil
}

// linkedTransactions selects the entries of the given accounts: those linked
// by id, plus the user's unlinked entries whose payee equals an account name.
func linkedTransactions(db *gorm.DB, userID string, accounts []models.CurrentAccount) *gorm.DB {
	ids := make([]string, 0, len(accounts))
	names := make([]string, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
		names = append(names, a.Name)
	}
	return db.Where("current_account_id IN ?", ids).
		Or("current_account_id IS NULL AND user_id = ? AND payee_or_payer IN ?", userID, names)
}

func validateCurrentAccount(in *CurrentAccountInput) error {
	name, err := cleanText(in.Name, 150, "name")
	if err != nil {
		return err
	}
	if name == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	in.Name = name
	if in.Type == "" {
		in.Type = models.CounterpartyCustomer
	}
	if !in.Type.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown current account type")
	}

	fields := []struct {
		value *string
		max   int
		name  string
	}{
		{&in.TaxNumber, 20, "tax number"},
		{&in.IdentityNumber, 11, "identity number"},
		{&in.Address, 500, "address"},
		{&in.Phone, 20, "phone"},
		{&in.Email, 100, "email"},
		{&in.Notes, 250, "notes"},
	}
	for _, f := range fields {
		v, err := cleanText(*f.value, f.max, f.name)
		if err != nil {
			return err
		}
		*f.value = v
	}
	return nil
}
