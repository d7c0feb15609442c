package services

import (
	"context"
	"errors"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/logger"
	"kasatakip/internal/models"
	"kasatakip/internal/session"
)

// selectedSafeKey is the session key holding the selected safe id.
const selectedSafeKey = "selected_safe"

// selectionService remembers which safe a session works on.
type selectionService struct {
	store  session.Store
	access AccessServicer
}

// NewSelectionService creates a new SelectionServicer.
func NewSelectionService(store session.Store, access AccessServicer) SelectionServicer {
	return &selectionService{store: store, access: access}
}

// Current returns the session's selected safe. When nothing usable is stored
// it falls back to the first accessible safe and remembers it.
func (s *selectionService) Current(ctx context.Context, sessionID, userID string) (*models.Safe, error) {
	safeID, err := s.store.Get(ctx, sessionID, selectedSafeKey)
	switch {
	case err == nil:
		safe, accessErr := s.access.RequireAccess(userID, safeID)
		if accessErr == nil {
			return safe, nil
		}
		kind := apperrors.KindOf(accessErr)
		if kind != apperrors.KindAuthorization && kind != apperrors.KindNotFound {
			return nil, accessErr
		}
		logger.Get().Infow("Selected safe no longer accessible, re-defaulting",
			"user_id", userID, "safe_id", safeID)
		if err := s.store.Remove(ctx, sessionID, selectedSafeKey); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case errors.Is(err, session.ErrNotFound):
	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	safes, err := s.access.AccessibleSafes(userID)
	if err != nil {
		return nil, err
	}
	if len(safes) == 0 {
		return nil, apperrors.ErrNoAccessibleSafe
	}
	first := safes[0]
	if err := s.store.Set(ctx, sessionID, selectedSafeKey, first.ID); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &first, nil
}

// Select stores safeID as the session's working safe
func (s *selectionService) Select(ctx context.Context, sessionID, userID, safeID string) (*models.Safe, error) {
	safe, err := s.access.RequireAccess(userID, safeID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, sessionID, selectedSafeKey, safe.ID); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return safe, nil
}
