package services

import (
	"gorm.io/gorm"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/models"
)

// accessService answers "may this user operate on this safe". A user may if
// they own the safe or hold an active grant on it.
type accessService struct {
	db *gorm.DB
}

// NewAccessService creates a new AccessServicer.
func NewAccessService(db *gorm.DB) AccessServicer {
	return &accessService{db: db}
}

// CanAccess reports whether userID owns safeID or holds an active grant on it.
// A safe that does not exist is not accessible.
func (s *accessService) CanAccess(userID, safeID string) (bool, error) {
	if userID == "" || safeID == "" {
		return false, nil
	}
	var count int64
	err := s.db.Model(&models.Safe{}).
		Where("id = ?", safeID).
		Where(s.db.Where("user_id = ?", userID).Or("id IN (?)", activeGrants(s.db, userID))).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// AccessibleSafes returns the owned safes plus the safes granted to userID,
// each once, ordered by name.
func (s *accessService) AccessibleSafes(userID string) ([]models.Safe, error) {
	var safes []models.Safe
	err := s.db.
		Where("user_id = ?", userID).
		Or("id IN (?)", activeGrants(s.db, userID)).
		Order("name ASC, id ASC").
		Find(&safes).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if safes == nil {
		safes = []models.Safe{}
	}
	return safes, nil
}

// RequireAccess loads safeID if userID may use it.
func (s *accessService) RequireAccess(userID, safeID string) (*models.Safe, error) {
	safe, err := s.loadSafe(safeID)
	if err != nil {
		return nil, err
	}
	if safe.UserID == userID {
		return safe, nil
	}

	var count int64
	if err := s.db.Model(&models.SafeAuthorization{}).
		Where("user_id = ? AND safe_id = ? AND is_active = ?", userID, safeID, true).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrSafeAccessDenied
	}
	return safe, nil
}

// RequireOwner loads safeID if userID owns it.
func (s *accessService) RequireOwner(userID, safeID string) (*models.Safe, error) {
	safe, err := s.loadSafe(safeID)
	if err != nil {
		return nil, err
	}
	if safe.UserID != userID {
		return nil, apperrors.ErrNotSafeOwner
	}
	return safe, nil
}

func (s *accessService) loadSafe(safeID string) (*models.Safe, error) {
	if safeID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "safe is required")
	}
	var safe models.Safe
	if err := findOne(s.db, &safe, apperrors.ErrSafeNotFound, "id = ?", safeID); err != nil {
		return nil, err
	}
	return &safe, nil
}

// activeGrants is the subquery of safe ids granted to userID.
func activeGrants(db *gorm.DB, userID string) *gorm.DB {
	return db.Model(&models.SafeAuthorization{}).
		Select("safe_id").
		Where("user_id = ? AND is_active = ?", userID, true)
}
