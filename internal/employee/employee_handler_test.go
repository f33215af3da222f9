package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-ems/internal/employee"
	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiEnvelope struct {
	Ok   bool                     `json:"ok"`
	Data json.RawMessage          `json:"data"`
	Meta *response.PaginationMeta `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type fakeEmployeeService struct {
	createFn         func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	getAllFn         func(ctx context.Context, filter employee.GetEmployeesFilterRequest) ([]employee.EmployeeResponse, error)
	getOptionsFn     func(ctx context.Context) ([]employee.EmployeeOption, error)
	getByIDFn        func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	updateFn         func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	updateSalaryFn   func(ctx context.Context, id string, req employee.UpdateSalaryRequest) (employee.EmployeeResponse, error)
	toggleVerifiedFn func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	terminateFn      func(ctx context.Context, id string) (employee.EmployeeResponse, error)
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeEmployeeService) GetAll(ctx context.Context, filter employee.GetEmployeesFilterRequest) ([]employee.EmployeeResponse, error) {
	return f.getAllFn(ctx, filter)
}

func (f *fakeEmployeeService) GetOptions(ctx context.Context) ([]employee.EmployeeOption, error) {
	return f.getOptionsFn(ctx)
}

func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.updateFn(ctx, id, req)
}

func (f *fakeEmployeeService) UpdateSalary(ctx context.Context, id string, req employee.UpdateSalaryRequest) (employee.EmployeeResponse, error) {
	return f.updateSalaryFn(ctx, id, req)
}

func (f *fakeEmployeeService) ToggleVerified(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.toggleVerifiedFn(ctx, id)
}

func (f *fakeEmployeeService) Terminate(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.terminateFn(ctx, id)
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestEmployeeHandler_Create(t *testing.T) {
	svc := &fakeEmployeeService{
		createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
			assert.Equal(t, "siti@corp.test", req.Email)
			assert.Equal(t, int64(500000), req.Salary)
			return employee.EmployeeResponse{ID: uuid.New().String(), Email: req.Email, EmploymentStatus: employee.EmploymentActive}, nil
		},
	}

	h := employee.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"full_name":"Siti Rahma","email":"siti@corp.test","salary":500000,"hire_date":"2024-06-01"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestEmployeeHandler_Create_InvalidBody(t *testing.T) {
	svc := &fakeEmployeeService{
		createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
			t.Error("service must not be called on invalid body")
			return employee.EmployeeResponse{}, nil
		},
	}

	h := employee.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"email":"bukan-email"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
}

func TestEmployeeHandler_GetAll_Pagination(t *testing.T) {
	all := make([]employee.EmployeeResponse, 7)
	for i := range all {
		all[i] = employee.EmployeeResponse{ID: uuid.New().String()}
	}

	svc := &fakeEmployeeService{
		getAllFn: func(ctx context.Context, filter employee.GetEmployeesFilterRequest) ([]employee.EmployeeResponse, error) {
			return all, nil
		},
	}

	h := employee.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/employees?page=2&page_size=5", nil)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
	assert.NotNil(t, env.Meta)
	assert.Equal(t, int64(7), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.TotalPages)

	var items []employee.EmployeeResponse
	assert.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 2)
}

func TestEmployeeHandler_UpdateSalary(t *testing.T) {
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			updateSalaryFn: func(ctx context.Context, id string, req employee.UpdateSalaryRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, employeeID, id)
				assert.Equal(t, int64(600000), req.Salary)
				return employee.EmployeeResponse{ID: id, Salary: req.Salary}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/employees/"+employeeID+"/salary", strings.NewReader(`{"salary":600000}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: employeeID}}

		h.UpdateSalary(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("decrease maps to 400", func(t *testing.T) {
		svc := &fakeEmployeeService{
			updateSalaryFn: func(ctx context.Context, id string, req employee.UpdateSalaryRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrSalaryDecrease
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/employees/"+employeeID+"/salary", strings.NewReader(`{"salary":100}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: employeeID}}

		h.UpdateSalary(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})
}

func TestEmployeeHandler_Terminate_NotFound(t *testing.T) {
	svc := &fakeEmployeeService{
		terminateFn: func(ctx context.Context, id string) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		},
	}

	h := employee.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/employees/"+uuid.New().String()+"/terminate", nil)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

	h.Terminate(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
