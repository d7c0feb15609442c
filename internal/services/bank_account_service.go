package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/models"
)

// bankAccountService manages a user's bank accounts.
type bankAccountService struct {
	db *gorm.DB
}

// NewBankAccountService creates a new BankAccountServicer.
func NewBankAccountService(db *gorm.DB) BankAccountServicer {
	return &bankAccountService{db: db}
}

// CreateBankAccount adds a bank account for the user
func (s *bankAccountService) CreateBankAccount(userID string, in BankAccountInput) (*models.BankAccount, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	account := &models.BankAccount{
		BankID:        in.BankID,
		AccountName:   in.AccountName,
		IBAN:          in.IBAN,
		BranchCode:    in.BranchCode,
		AccountNumber: in.AccountNumber,
		CurrencyID:    in.CurrencyID,
		AccountType:   in.AccountType,
		Notes:         in.Notes,
		UserID:        userID,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetBankAccount(userID, account.ID)
}

// ListBankAccounts returns the user's accounts. search matches the account
// name, IBAN and bank name.
func (s *bankAccountService) ListBankAccounts(userID, search string) ([]models.BankAccount, error) {
	q := s.db.Model(&models.BankAccount{}).
		Joins("JOIN banks ON banks.id = bank_accounts.bank_id").
		Where("bank_accounts.user_id = ?", userID)
	if strings.TrimSpace(search) != "" {
		p := likePattern(search)
		q = q.Where("LOWER(bank_accounts.account_name) LIKE ? OR LOWER(bank_accounts.iban) LIKE ? OR LOWER(banks.name) LIKE ?", p, p, p)
	}

	var accounts []models.BankAccount
	if err := q.Preload("Bank").Preload("Currency").
		Order("banks.name ASC, bank_accounts.account_name ASC").
		Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if accounts == nil {
		accounts = []models.BankAccount{}
	}
	return accounts, nil
}

// GetBankAccount retrieves one of the user's bank accounts
func (s *bankAccountService) GetBankAccount(userID, accountID string) (*models.BankAccount, error) {
	var account models.BankAccount
	if err := findOne(s.db.Preload("Bank").Preload("Currency"), &account, apperrors.ErrBankAccountNotFound,
		"id = ? AND user_id = ?", accountID, userID); err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateBankAccount replaces the editable fields of a bank account
func (s *bankAccountService) UpdateBankAccount(userID, accountID string, in BankAccountInput, version int64) (*models.BankAccount, error) {
	current, err := s.GetBankAccount(userID, accountID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"bank_id":        in.BankID,
		"account_name":   in.AccountName,
		"iban":           in.IBAN,
		"branch_code":    in.BranchCode,
		"account_number": in.AccountNumber,
		"currency_id":    in.CurrencyID,
		"account_type":   in.AccountType,
		"notes":          in.Notes,
	}
	if err := updateVersioned(s.db, &models.BankAccount{}, accountID,
		expectedVersion(version, current.Version), updates, apperrors.ErrBankAccountNotFound); err != nil {
		return nil, err
	}
	return s.GetBankAccount(userID, accountID)
}

// DeleteBankAccount removes one of the user's bank accounts
func (s *bankAccountService) DeleteBankAccount(userID, accountID string) error {
	res := s.db.Where("id = ? AND user_id = ?", accountID, userID).Delete(&models.BankAccount{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrBankAccountNotFound
	}
	return nil
}

func (s *bankAccountService) validate(in *BankAccountInput) error {
	name, err := cleanText(in.AccountName, 100, "account name")
	if err != nil {
		return err
	}
	if name == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	in.AccountName = name
	in.IBAN = NormalizeIBAN(in.IBAN)
	if len(in.IBAN) > 34 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "IBAN is too long")
	}
	if in.BranchCode, err = cleanText(in.BranchCode, 10, "branch code"); err != nil {
		return err
	}
	if in.AccountNumber, err = cleanText(in.AccountNumber, 20, "account number"); err != nil {
		return err
	}
	if in.Notes, err = cleanText(in.Notes, 250, "notes"); err != nil {
		return err
	}
	if in.AccountType == "" {
		in.AccountType = models.BankAccountChecking
	}
	if !in.AccountType.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown bank account type")
	}

	var bank models.Bank
	if err := findOne(s.db, &bank, apperrors.ErrBankNotFound, "id = ?", in.BankID); err != nil {
		return err
	}
	_, err = requireCurrency(s.db, in.CurrencyID)
	return err
}

// NormalizeIBAN removes spaces and upper-cases an IBAN.
func NormalizeIBAN(iban string) string {
	return strings.ToUpper(strings.Join(strings.Fields(iban), ""))
}
