package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves transaction reports.
type ReportHandler struct {
	reportService services.ReportServicer
	now           func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService, now: time.Now}
}

// GetTransactionReport returns the filtered transactions with per-currency totals
// @Summary     Transaction report
// @Description Without dates the last month up to today is reported. Without safe_id every accessible safe is included.
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       start_date         query string false "First day (YYYY-MM-DD)"
// @Param       end_date           query string false "Last day, inclusive (YYYY-MM-DD)"
// @Param       type               query string false "all, income or expense"
// @Param       safe_id            query string false "Limit to one safe"
// @Param       current_account_id query string false "Limit to one counterparty"
// @Param       employee_id        query string false "Limit to one employee"
// @Success     200 {object} services.Report
// @Failure     400 {object} ErrorResponse "Invalid date range"
// @Router      /reports/transactions [get]
func (h *ReportHandler) GetTransactionReport(c *gin.Context) {
	report, ok := h.generate(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportTransactionReport renders the same report as an Excel workbook
// @Summary     Export transaction report
// @Tags        reports
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       start_date         query string false "First day (YYYY-MM-DD)"
// @Param       end_date           query string false "Last day, inclusive (YYYY-MM-DD)"
// @Param       type               query string false "all, income or expense"
// @Param       safe_id            query string false "Limit to one safe"
// @Param       current_account_id query string false "Limit to one counterparty"
// @Param       employee_id        query string false "Limit to one employee"
// @Success     200 {file} file
// @Failure     400 {object} ErrorResponse "Invalid date range"
// @Router      /reports/transactions/export [get]
func (h *ReportHandler) ExportTransactionReport(c *gin.Context) {
	report, ok := h.generate(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := services.WriteReportXLSX(report, &buf); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	filename := fmt.Sprintf("rapor_%s_%s.xlsx", report.StartDate.Format("20060102"), report.EndDate.Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ReportHandler) generate(c *gin.Context) (*services.Report, bool) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return nil, false
	}

	filter := services.ReportFilter{
		Type:             c.DefaultQuery("type", services.ReportTypeAll),
		SafeID:           optionalQuery(c, "safe_id"),
		CurrentAccountID: optionalQuery(c, "current_account_id"),
		EmployeeID:       optionalQuery(c, "employee_id"),
	}
	if filter.StartDate, err = queryTime(c, "start_date"); err != nil {
		respondWithError(c, err)
		return nil, false
	}
	if filter.EndDate, err = queryTime(c, "end_date"); err != nil {
		respondWithError(c, err)
		return nil, false
	}

	report, err := h.reportService.GenerateReport(userID, filter, h.now())
	if err != nil {
		respondWithError(c, err)
		return nil, false
	}
	return report, true
}
