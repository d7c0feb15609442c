package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/models"
)

// authorizationService lets safe owners share their safes.
type authorizationService struct {
	db     *gorm.DB
	access AccessServicer
}

// NewAuthorizationService creates a new AuthorizationServicer.
func NewAuthorizationService(db *gorm.DB, access AccessServicer) AuthorizationServicer {
	return &authorizationService{db: db, access: access}
}

// AssignAccess grants the user registered under granteeEmail access to an owned safe
func (s *authorizationService) AssignAccess(ownerID, safeID, granteeEmail string) (*models.SafeAuthorization, error) {
	if _, err := s.access.RequireOwner(ownerID, safeID); err != nil {
		return nil, err
	}

	var grantee models.User
	if err := findOne(s.db, &grantee, apperrors.ErrUserNotFound,
		"email = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(granteeEmail)), true); err != nil {
		return nil, err
	}
	if grantee.ID == ownerID {
		return nil, apperrors.ErrSelfGrant
	}

	var count int64
	if err := s.db.Model(&models.SafeAuthorization{}).
		Where("user_id = ? AND safe_id = ?", grantee.ID, safeID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrGrantExists
	}

	grant := &models.SafeAuthorization{
		UserID:      grantee.ID,
		SafeID:      safeID,
		IsActive:    true,
		GrantedDate: time.Now(),
	}
	if err := s.db.Create(grant).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.getGrant(safeID, grantee.ID)
}

// ListGrants returns the grants on every safe ownerID owns, newest first.
// search matches the safe name and the grantee's email or name.
func (s *authorizationService) ListGrants(ownerID, search string) ([]models.SafeAuthorization, error) {
	q := s.db.Model(&models.SafeAuthorization{}).
		Joins("JOIN safes ON safes.id = safe_authorizations.safe_id").
		Joins("JOIN users ON users.id = safe_authorizations.user_id").
		Where("safes.user_id = ?", ownerID)
	if strings.TrimSpace(search) != "" {
		p := likePattern(search)
		q = q.Where("LOWER(safes.name) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(users.full_name) LIKE ?", p, p, p)
	}

	var grants []models.SafeAuthorization
	if err := q.Preload("User").Preload("Safe").
		Order("safe_authorizations.granted_date DESC").
		Find(&grants).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if grants == nil {
		grants = []models.SafeAuthorization{}
	}
	return grants, nil
}

// ToggleAccess flips a grant between active and inactive
func (s *authorizationService) ToggleAccess(ownerID, safeID, granteeID string) (*models.SafeAuthorization, error) {
	if _, err := s.access.RequireOwner(ownerID, safeID); err != nil {
		return nil, err
	}
	grant, err := s.getGrant(safeID, granteeID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.SafeAuthorization{}).
		Where("user_id = ? AND safe_id = ?", granteeID, safeID).
		Update("is_active", !grant.IsActive).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.getGrant(safeID, granteeID)
}

// RevokeAccess deletes a grant. Only the owner of the safe may revoke.
func (s *authorizationService) RevokeAccess(ownerID, safeID, granteeID string) error {
	if _, err := s.access.RequireOwner(ownerID, safeID); err != nil {
		return err
	}

	res := s.db.Where("user_id = ? AND safe_id = ?", granteeID, safeID).Delete(&models.SafeAuthorization{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrGrantNotFound
	}
	return nil
}

func (s *authorizationService) getGrant(safeID, granteeID string) (*models.SafeAuthorization, error) {
	var grant models.SafeAuthorization
	if err := findOne(s.db.Preload("User").Preload("Safe"), &grant, apperrors.ErrGrantNotFound,
		"user_id = ? AND safe_id = ?", granteeID, safeID); err != nil {
		return nil, err
	}
	return &grant, nil
}
