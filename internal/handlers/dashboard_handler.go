package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kasatakip/internal/services"
)

// DashboardHandler serves the safe dashboard.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	selectionService services.SelectionServicer
	now              func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer, selectionService services.SelectionServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, selectionService: selectionService, now: time.Now}
}

// GetDashboard summarises a safe: balances, recent entries, this month and daily totals
// @Summary     Dashboard
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       safe_id query string false "Safe ID (defaults to the selected safe)"
// @Success     200 {object} services.Dashboard
// @Failure     403 {object} ErrorResponse "No access to the safe"
// @Failure     404 {object} ErrorResponse "No accessible safe"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	safeID, err := resolveSafeID(c, h.selectionService, userID, c.Query("safe_id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(userID, safeID, h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
