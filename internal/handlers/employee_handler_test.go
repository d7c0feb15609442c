package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/models"
	"kasatakip/internal/pagination"
	"kasatakip/internal/services"
)

type mockEmployeeService struct {
	createEmployeeFn func(userID string, in services.EmployeeInput) (*models.Employee, error)
	listEmployeesFn  func(userID string, filter services.EmployeeFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Employee], error)
	getEmployeeFn    func(userID, employeeID string) (*models.Employee, error)
	updateEmployeeFn func(userID, employeeID string, in services.EmployeeInput, version int64) (*models.Employee, error)
	deleteEmployeeFn func(userID, employeeID string) error
}

func (m *mockEmployeeService) CreateEmployee(userID string, in services.EmployeeInput) (*models.Employee, error) {
	if m.createEmployeeFn != nil {
		return m.createEmployeeFn(userID, in)
	}
	return &models.Employee{FullName: in.FullName}, nil
}

func (m *mockEmployeeService) ListEmployees(userID string, filter services.EmployeeFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Employee], error) {
	if m.listEmployeesFn != nil {
		return m.listEmployeesFn(userID, filter, page)
	}
	resp := pagination.NewPageResponse([]models.Employee{}, 1, 25, 0)
	return &resp, nil
}

func (m *mockEmployeeService) GetEmployee(userID, employeeID string) (*models.Employee, error) {
	if m.getEmployeeFn != nil {
		return m.getEmployeeFn(userID, employeeID)
	}
	return &models.Employee{Base: models.Base{ID: employeeID}}, nil
}

func (m *mockEmployeeService) UpdateEmployee(userID, employeeID string, in services.EmployeeInput, version int64) (*models.Employee, error) {
	if m.updateEmployeeFn != nil {
		return m.updateEmployeeFn(userID, employeeID, in, version)
	}
	return &models.Employee{Base: models.Base{ID: employeeID}}, nil
}

func (m *mockEmployeeService) DeleteEmployee(userID, employeeID string) error {
	if m.deleteEmployeeFn != nil {
		return m.deleteEmployeeFn(userID, employeeID)
	}
	return nil
}

var _ services.EmployeeServicer = (*mockEmployeeService)(nil)

type mockSalaryService struct {
	createSalaryPaymentFn func(userID, employeeID string, in services.SalaryPaymentInput) (*models.SalaryPayment, error)
	updateSalaryPaymentFn func(userID, paymentID string, in services.SalaryPaymentInput, version int64) (*models.SalaryPayment, error)
	deleteSalaryPaymentFn func(userID, paymentID string) error
}

func (m *mockSalaryService) CreateSalaryPayment(userID, employeeID string, in services.SalaryPaymentInput) (*models.SalaryPayment, error) {
	if m.createSalaryPaymentFn != nil {
		return m.createSalaryPaymentFn(userID, employeeID, in)
	}
	return &models.SalaryPayment{EmployeeID: employeeID}, nil
}

func (m *mockSalaryService) UpdateSalaryPayment(userID, paymentID string, in services.SalaryPaymentInput, version int64) (*models.SalaryPayment, error) {
	if m.updateSalaryPaymentFn != nil {
		return m.updateSalaryPaymentFn(userID, paymentID, in, version)
	}
	return &models.SalaryPayment{Base: models.Base{ID: paymentID}}, nil
}

func (m *mockSalaryService) DeleteSalaryPayment(userID, paymentID string) error {
	if m.deleteSalaryPaymentFn != nil {
		return m.deleteSalaryPaymentFn(userID, paymentID)
	}
	return nil
}

func (m *mockSalaryService) GetSalaryPayment(_, paymentID string) (*models.SalaryPayment, error) {
	return &models.SalaryPayment{Base: models.Base{ID: paymentID}}, nil
}

func (m *mockSalaryService) GetEmployeePayments(string, string) ([]models.SalaryPayment, error) {
	return []models.SalaryPayment{}, nil
}

var _ services.SalaryServicer = (*mockSalaryService)(nil)

func setupEmployeeRouter(handler *EmployeeHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/employees", handler.CreateEmployee)
	auth.GET("/employees", handler.ListEmployees)
	auth.PUT("/employees/:id", handler.UpdateEmployee)
	auth.POST("/employees/:id/salary-payments", handler.CreateSalaryPayment)
	auth.PUT("/salary-payments/:id", handler.UpdateSalaryPayment)
	auth.DELETE("/salary-payments/:id", handler.DeleteSalaryPayment)
	return r
}

func TestEmployeeHandler_CreateEmployee(t *testing.T) {
	t.Run("new employees are active unless told otherwise", func(t *testing.T) {
		var got services.EmployeeInput
		svc := &mockEmployeeService{
			createEmployeeFn: func(_ string, in services.EmployeeInput) (*models.Employee, error) {
				got = in
				return &models.Employee{FullName: in.FullName}, nil
			},
		}
		r := setupEmployeeRouter(NewEmployeeHandler(svc, &mockSalaryService{}))

		rec := doRequest(r, "POST", "/employees",
			`{"full_name":"Ali Veli","salary_amount":"25000","salary_currency_id":"try","hire_date":"2023-09-01"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !got.IsActive {
			t.Error("expected active employee")
		}
		if got.HireDate == nil || got.HireDate.Format("2006-01-02") != "2023-09-01" {
			t.Errorf("unexpected hire date %v", got.HireDate)
		}
	})

	t.Run("rejects unknown salary period", func(t *testing.T) {
		r := setupEmployeeRouter(NewEmployeeHandler(&mockEmployeeService{}, &mockSalaryService{}))

		rec := doRequest(r, "POST", "/employees",
			`{"full_name":"Ali Veli","salary_currency_id":"try","salary_period":"yearly"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestEmployeeHandler_ListEmployees(t *testing.T) {
	var got services.EmployeeFilter
	svc := &mockEmployeeService{
		listEmployeesFn: func(_ string, filter services.EmployeeFilter, _ pagination.PageRequest) (*pagination.PageResponse[models.Employee], error) {
			got = filter
			resp := pagination.NewPageResponse([]models.Employee{}, 1, 25, 0)
			return &resp, nil
		},
	}
	r := setupEmployeeRouter(NewEmployeeHandler(svc, &mockSalaryService{}))

	rec := doRequest(r, "GET", "/employees?search=ali&is_active=false", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Search != "ali" || got.IsActive == nil || *got.IsActive {
		t.Errorf("unexpected filter %+v", got)
	}

	rec = doRequest(r, "GET", "/employees?is_active=maybe", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEmployeeHandler_SalaryPayments(t *testing.T) {
	t.Run("create maps the payload", func(t *testing.T) {
		var gotEmployee string
		var got services.SalaryPaymentInput
		salary := &mockSalaryService{
			createSalaryPaymentFn: func(_, employeeID string, in services.SalaryPaymentInput) (*models.SalaryPayment, error) {
				gotEmployee, got = employeeID, in
				return &models.SalaryPayment{EmployeeID: employeeID, Amount: in.Amount}, nil
			},
		}
		r := setupEmployeeRouter(NewEmployeeHandler(&mockEmployeeService{}, salary))

		rec := doRequest(r, "POST", "/employees/emp-1/salary-payments",
			`{"payment_date":"2024-03-31","amount":"25000.00"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotEmployee != "emp-1" {
			t.Errorf("expected emp-1, got %q", gotEmployee)
		}
		if !got.Amount.Equal(decimal.NewFromInt(25000)) {
			t.Errorf("expected 25000, got %s", got.Amount)
		}
		if got.PaymentDate.Format("2006-01-02") != "2024-03-31" {
			t.Errorf("unexpected payment date %s", got.PaymentDate)
		}
		if got.SafeID != "" || got.CurrencyID != "" {
			t.Error("expected safe and currency left for employee defaults")
		}
	})

	t.Run("rolled back create is a 500", func(t *testing.T) {
		salary := &mockSalaryService{
			createSalaryPaymentFn: func(string, string, services.SalaryPaymentInput) (*models.SalaryPayment, error) {
				return nil, apperrors.AtomicFailure(apperrors.ErrInternalServer)
			},
		}
		r := setupEmployeeRouter(NewEmployeeHandler(&mockEmployeeService{}, salary))

		rec := doRequest(r, "POST", "/employees/emp-1/salary-payments", `{"amount":1}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ATOMIC_UNIT_FAILURE")
	})

	t.Run("update forwards the version", func(t *testing.T) {
		var gotVersion int64
		salary := &mockSalaryService{
			updateSalaryPaymentFn: func(_, id string, _ services.SalaryPaymentInput, version int64) (*models.SalaryPayment, error) {
				gotVersion = version
				return &models.SalaryPayment{Base: models.Base{ID: id}}, nil
			},
		}
		r := setupEmployeeRouter(NewEmployeeHandler(&mockEmployeeService{}, salary))

		rec := doRequest(r, "PUT", "/salary-payments/p1", `{"amount":"100","version":4}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotVersion != 4 {
			t.Errorf("expected version 4, got %d", gotVersion)
		}
	})

	t.Run("delete returns 204", func(t *testing.T) {
		r := setupEmployeeRouter(NewEmployeeHandler(&mockEmployeeService{}, &mockSalaryService{}))

		rec := doRequest(r, "DELETE", "/salary-payments/p1", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})
}
