package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/models"
)

// safeService manages safes and their balances.
type safeService struct {
	db     *gorm.DB
	access AccessServicer
}

// NewSafeService creates a new SafeServicer.
func NewSafeService(db *gorm.DB, access AccessServicer) SafeServicer {
	return &safeService{db: db, access: access}
}

// CreateSafe opens a new safe owned by userID
func (s *safeService) CreateSafe(userID, name string) (*models.Safe, error) {
	name, err := safeName(name)
	if err != nil {
		return nil, err
	}

	safe := &models.Safe{Name: name, UserID: userID}
	if err := s.db.Create(safe).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return safe, nil
}

// ListAccessibleSafes returns the safes userID may work on, flagging the owned ones
func (s *safeService) ListAccessibleSafes(userID string) ([]SafeSummary, error) {
	safes, err := s.access.AccessibleSafes(userID)
	if err != nil {
		return nil, err
	}

	out := make([]SafeSummary, 0, len(safes))
	for _, safe := range safes {
		out = append(out, SafeSummary{Safe: safe, IsOwner: safe.UserID == userID})
	}
	return out, nil
}

// GetSafe retrieves a safe the user has access to
func (s *safeService) GetSafe(userID, safeID string) (*models.Safe, error) {
	return s.access.RequireAccess(userID, safeID)
}

// RenameSafe changes the name of an owned safe
func (s *safeService) RenameSafe(userID, safeID, name string, version int64) (*models.Safe, error) {
	safe, err := s.access.RequireOwner(userID, safeID)
	if err != nil {
		return nil, err
	}
	name, err = safeName(name)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"name": name}
	if err := updateVersioned(s.db, &models.Safe{}, safeID, expectedVersion(version, safe.Version), updates, apperrors.ErrSafeNotFound); err != nil {
		return nil, err
	}
	return s.access.RequireOwner(userID, safeID)
}

// DeleteSafe removes an owned safe together with its transactions and grants.
// Safes referenced by exchanges or salary payments are kept.
func (s *safeService) DeleteSafe(userID, safeID string) error {
	if _, err := s.access.RequireOwner(userID, safeID); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var exchanges, payments int64
		if err := tx.Model(&models.CurrencyExchange{}).Where("main_safe_id = ?", safeID).Count(&exchanges).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(&models.SalaryPayment{}).Where("safe_id = ?", safeID).Count(&payments).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if exchanges > 0 || payments > 0 {
			return apperrors.ErrSafeInUse
		}

		if err := tx.Where("safe_id = ?", safeID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("safe_id = ?", safeID).Delete(&models.SafeAuthorization{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Employee{}).Where("default_safe_id = ?", safeID).
			Update("default_safe_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", safeID).Delete(&models.Safe{}).Error
	})
	return apperrors.AtomicFailure(err)
}

// GetSafeBalances returns the full balance view of one safe
func (s *safeService) GetSafeBalances(userID, safeID string) (Balances, error) {
	if _, err := s.access.RequireAccess(userID, safeID); err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	if err := s.db.Select("currency_id", "type", "amount").
		Where("safe_id = ?", safeID).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	currencies, err := listCurrencies(s.db)
	if err != nil {
		return nil, err
	}
	return BalancesFor(transactions, currencies), nil
}

func safeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "safe name is required")
	}
	if len([]rune(name)) > 100 {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "safe name must be at most 100 characters")
	}
	return name, nil
}
