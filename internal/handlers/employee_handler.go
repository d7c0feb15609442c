package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/models"
	"kasatakip/internal/pagination"
	"kasatakip/internal/services"
)

// EmployeeHandler serves employees and their salary payments.
type EmployeeHandler struct {
	employeeService services.EmployeeServicer
	salaryService   services.SalaryServicer
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeService services.EmployeeServicer, salaryService services.SalaryServicer) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService, salaryService: salaryService}
}

// EmployeeRequest is the payload for creating or replacing an employee.
type EmployeeRequest struct {
	FullName         string              `json:"full_name" binding:"required,max=150"`
	Position         string              `json:"position" binding:"max=100"`
	SalaryAmount     decimal.Decimal     `json:"salary_amount" swaggertype:"string" example:"25000.00"`
	SalaryCurrencyID string              `json:"salary_currency_id" binding:"required"`
	SalaryPeriod     models.SalaryPeriod `json:"salary_period" binding:"omitempty,salary_period"`
	HireDate         *string             `json:"hire_date"`
	IsActive         *bool               `json:"is_active"`
	DefaultSafeID    *string             `json:"default_safe_id"`
	Notes            string              `json:"notes" binding:"max=250"`
	Version          int64               `json:"version" binding:"omitempty,min=1"`
}

func (r EmployeeRequest) input() (services.EmployeeInput, error) {
	hireDate, err := optionalTime(r.HireDate, "hire_date")
	if err != nil {
		return services.EmployeeInput{}, err
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return services.EmployeeInput{
		FullName:         r.FullName,
		Position:         r.Position,
		SalaryAmount:     r.SalaryAmount,
		SalaryCurrencyID: r.SalaryCurrencyID,
		SalaryPeriod:     r.SalaryPeriod,
		HireDate:         hireDate,
		IsActive:         active,
		DefaultSafeID:    r.DefaultSafeID,
		Notes:            r.Notes,
	}, nil
}

// SalaryPaymentRequest is the payload for recording or editing a salary payment.
// Empty fields fall back to the employee's defaults on create and to the
// stored values on update.
type SalaryPaymentRequest struct {
	PaymentDate *string         `json:"payment_date"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"25000.00"`
	CurrencyID  string          `json:"currency_id"`
	SafeID      string          `json:"safe_id"`
	Description string          `json:"description" binding:"max=200"`
	Version     int64           `json:"version" binding:"omitempty,min=1"`
}

func (r SalaryPaymentRequest) input() (services.SalaryPaymentInput, error) {
	in := services.SalaryPaymentInput{
		Amount:      r.Amount,
		CurrencyID:  r.CurrencyID,
		SafeID:      r.SafeID,
		Description: r.Description,
	}
	date, err := optionalTime(r.PaymentDate, "payment_date")
	if err != nil {
		return in, err
	}
	if date != nil {
		in.PaymentDate = *date
	}
	return in, nil
}

// CreateEmployee adds an employee
// @Summary     Create an employee
// @Tags        employees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body EmployeeRequest true "Employee"
// @Success     201 {object} models.Employee
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /employees [post]
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}
	in, err := req.input()
	if err != nil {
		respondWithError(c, err)
		return
	}

	employee, err := h.employeeService.CreateEmployee(userID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"employee": employee})
}

// ListEmployees lists the caller's employees
// @Summary     List employees
// @Tags        employees
// @Produce     json
// @Security    BearerAuth
// @Param       search    query string false "Matches full name or position"
// @Param       is_active query bool   false "Filter by active flag"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 25, max 200)"
// @Success     200 {object} pagination.PageResponse[models.Employee]
// @Router      /employees [get]
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	filter := services.EmployeeFilter{Search: c.Query("search")}
	if v := c.Query("is_active"); v != "" {
		active, parseErr := strconv.ParseBool(v)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid is_active"))
			return
		}
		filter.IsActive = &active
	}

	result, err := h.employeeService.ListEmployees(userID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetEmployee returns an employee with the payment history
// @Summary     Get an employee
// @Tags        employees
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Employee ID"
// @Success     200 {object} models.Employee
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Router      /employees/{id} [get]
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	employee, err := h.employeeService.GetEmployee(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// UpdateEmployee replaces an employee's fields
// @Summary     Update an employee
// @Tags        employees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string          true "Employee ID"
// @Param       request body EmployeeRequest true "Employee"
// @Success     200 {object} models.Employee
// @Failure     409 {object} ErrorResponse "Concurrency conflict"
// @Router      /employees/{id} [put]
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}
	in, err := req.input()
	if err != nil {
		respondWithError(c, err)
		return
	}

	employee, err := h.employeeService.UpdateEmployee(userID, c.Param("id"), in, req.Version)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// DeleteEmployee removes an employee and the payment records
// @Summary     Delete an employee
// @Description Salary payment rows go with the employee; their ledger entries stay.
// @Tags        employees
// @Security    BearerAuth
// @Param       id path string true "Employee ID"
// @Success     204
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Router      /employees/{id} [delete]
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.employeeService.DeleteEmployee(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateSalaryPayment pays an employee out of a safe
// @Summary     Record a salary payment
// @Description Writes the payment and its expense entry atomically.
// @Tags        employees,salary-payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Employee ID"
// @Param       request body SalaryPaymentRequest true "Payment"
// @Success     201 {object} models.SalaryPayment
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Rolled back"
// @Router      /employees/{id}/salary-payments [post]
func (h *EmployeeHandler) CreateSalaryPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SalaryPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}
	in, err := req.input()
	if err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.salaryService.CreateSalaryPayment(userID, c.Param("id"), in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"salary_payment": payment})
}

// GetEmployeePayments lists an employee's payments, newest first
// @Summary     List salary payments of an employee
// @Tags        employees,salary-payments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Employee ID"
// @Success     200 {array} models.SalaryPayment
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Router      /employees/{id}/salary-payments [get]
func (h *EmployeeHandler) GetEmployeePayments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payments, err := h.salaryService.GetEmployeePayments(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"salary_payments": payments})
}

// GetSalaryPayment returns one payment
// @Summary     Get a salary payment
// @Tags        salary-payments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Salary payment ID"
// @Success     200 {object} models.SalaryPayment
// @Failure     404 {object} ErrorResponse "Salary payment not found"
// @Router      /salary-payments/{id} [get]
func (h *EmployeeHandler) GetSalaryPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.salaryService.GetSalaryPayment(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"salary_payment": payment})
}

// UpdateSalaryPayment edits a payment and rewrites its expense entry
// @Summary     Update a salary payment
// @Tags        salary-payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Salary payment ID"
// @Param       request body SalaryPaymentRequest true "Payment"
// @Success     200 {object} models.SalaryPayment
// @Failure     409 {object} ErrorResponse "Concurrency conflict"
// @Router      /salary-payments/{id} [put]
func (h *EmployeeHandler) UpdateSalaryPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SalaryPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}
	in, err := req.input()
	if err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.salaryService.UpdateSalaryPayment(userID, c.Param("id"), in, req.Version)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"salary_payment": payment})
}

// DeleteSalaryPayment removes a payment together with its expense entry
// @Summary     Delete a salary payment
// @Tags        salary-payments
// @Security    BearerAuth
// @Param       id path string true "Salary payment ID"
// @Success     204
// @Failure     404 {object} ErrorResponse "Salary payment not found"
// @Router      /salary-payments/{id} [delete]
func (h *EmployeeHandler) DeleteSalaryPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.salaryService.DeleteSalaryPayment(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
