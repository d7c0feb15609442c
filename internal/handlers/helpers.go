package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/middleware"
	"kasatakip/internal/services"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// getSessionID extracts the login session from the Gin context.
func getSessionID(c *gin.Context) (string, error) {
	sessionID := c.GetString(middleware.SessionIDKey)
	if sessionID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return sessionID, nil
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.RenderError(c, err)
}

func invalidInput(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

var flexibleLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseFlexibleTime accepts RFC3339, local date-times and bare dates.
// Values without a zone are read in UTC.
func parseFlexibleTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range flexibleLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, use RFC3339 or YYYY-MM-DD", s)
}

// optionalTime parses s unless it is empty.
func optionalTime(s *string, field string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := parseFlexibleTime(*s)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid "+field+": "+err.Error())
	}
	return &t, nil
}

// queryTime parses an optional date query parameter.
func queryTime(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	return optionalTime(&v, name)
}

// optionalQuery returns a pointer to the query value, or nil when it is absent.
func optionalQuery(c *gin.Context, name string) *string {
	if v := strings.TrimSpace(c.Query(name)); v != "" {
		return &v
	}
	return nil
}

// resolveSafeID returns explicit when given, otherwise the safe selected for
// the caller's session.
func resolveSafeID(c *gin.Context, selection services.SelectionServicer, userID, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	sessionID, err := getSessionID(c)
	if err != nil {
		return "", err
	}
	safe, err := selection.Current(c.Request.Context(), sessionID, userID)
	if err != nil {
		return "", err
	}
	return safe.ID, nil
}
