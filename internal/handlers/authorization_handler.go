package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kasatakip/internal/services"
)

// AuthorizationHandler lets safe owners share their safes.
type AuthorizationHandler struct {
	authorizationService services.AuthorizationServicer
}

// NewAuthorizationHandler creates a new AuthorizationHandler.
func NewAuthorizationHandler(authorizationService services.AuthorizationServicer) *AuthorizationHandler {
	return &AuthorizationHandler{authorizationService: authorizationService}
}

// AssignAccessRequest grants a user access to a safe.
type AssignAccessRequest struct {
	SafeID string `json:"safe_id" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
}

// AssignAccess grants another user access to an owned safe
// @Summary     Grant safe access
// @Tags        safe-authorizations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AssignAccessRequest true "Grant"
// @Success     201 {object} models.SafeAuthorization
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     409 {object} ErrorResponse "Grant exists"
// @Router      /safe-authorizations [post]
func (h *AuthorizationHandler) AssignAccess(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AssignAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	grant, err := h.authorizationService.AssignAccess(userID, req.SafeID, req.Email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"authorization": grant})
}

// ListGrants lists the grants on the caller's safes
// @Summary     List safe grants
// @Tags        safe-authorizations
// @Produce     json
// @Security    BearerAuth
// @Param       search query string false "Matches safe name, grantee email or name"
// @Success     200 {array} models.SafeAuthorization
// @Router      /safe-authorizations [get]
func (h *AuthorizationHandler) ListGrants(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	grants, err := h.authorizationService.ListGrants(userID, c.Query("search"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"authorizations": grants})
}

// ToggleAccess flips a grant between active and inactive
// @Summary     Toggle safe grant
// @Tags        safe-authorizations
// @Produce     json
// @Security    BearerAuth
// @Param       safeId path string true "Safe ID"
// @Param       userId path string true "Grantee user ID"
// @Success     200 {object} models.SafeAuthorization
// @Failure     404 {object} ErrorResponse "Grant not found"
// @Router      /safe-authorizations/{safeId}/{userId}/toggle [post]
func (h *AuthorizationHandler) ToggleAccess(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	grant, err := h.authorizationService.ToggleAccess(userID, c.Param("safeId"), c.Param("userId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"authorization": grant})
}

// RevokeAccess deletes a grant
// @Summary     Revoke safe grant
// @Tags        safe-authorizations
// @Security    BearerAuth
// @Param       safeId path string true "Safe ID"
// @Param       userId path string true "Grantee user ID"
// @Success     204
// @Failure     404 {object} ErrorResponse "Grant not found"
// @Router      /safe-authorizations/{safeId}/{userId} [delete]
func (h *AuthorizationHandler) RevokeAccess(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.authorizationService.RevokeAccess(userID, c.Param("safeId"), c.Param("userId")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
