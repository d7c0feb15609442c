package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/models"
)

// bankService manages the shared bank list.
type bankService struct {
	db *gorm.DB
}

// NewBankService creates a new BankServicer.
func NewBankService(db *gorm.DB) BankServicer {
	return &bankService{db: db}
}

// CreateBank adds a bank; names are unique
func (s *bankService) CreateBank(name string) (*models.Bank, error) {
	name, err := s.uniqueName(name, "")
	if err != nil {
		return nil, err
	}
	bank := &models.Bank{Name: name}
	if err := s.db.Create(bank).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bank, nil
}

// ListBanks returns every bank ordered by name
func (s *bankService) ListBanks() ([]models.Bank, error) {
	var banks []models.Bank
	if err := s.db.Order("name ASC").Find(&banks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if banks == nil {
		banks = []models.Bank{}
	}
	return banks, nil
}

// UpdateBank renames a bank
func (s *bankService) UpdateBank(id, name string, version int64) (*models.Bank, error) {
	var bank models.Bank
	if err := findOne(s.db, &bank, apperrors.ErrBankNotFound, "id = ?", id); err != nil {
		return nil, err
	}
	name, err := s.uniqueName(name, id)
	if err != nil {
		return nil, err
	}

	if err := updateVersioned(s.db, &models.Bank{}, id, expectedVersion(version, bank.Version),
		map[string]interface{}{"name": name}, apperrors.ErrBankNotFound); err != nil {
		return nil, err
	}
	if err := findOne(s.db, &bank, apperrors.ErrBankNotFound, "id = ?", id); err != nil {
		return nil, err
	}
	return &bank, nil
}

// DeleteBank removes a bank no account refers to
func (s *bankService) DeleteBank(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var bank models.Bank
		if err := findOne(tx, &bank, apperrors.ErrBankNotFound, "id = ?", id); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.BankAccount{}).Where("bank_id = ?", id).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.ErrBankInUse
		}
		if err := tx.Delete(&models.Bank{}, "id = ?", id).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

func (s *bankService) uniqueName(name, exceptID string) (string, error) {
	name, err := cleanText(name, 100, "bank name")
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "bank name is required")
	}
	var count int64
	q := s.db.Model(&models.Bank{}).Where("LOWER(name) = ?", strings.ToLower(name))
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "a bank with this name already exists")
	}
	return name, nil
}
