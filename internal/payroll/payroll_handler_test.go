package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-ems/internal/payroll"
	payrollerrors "go-ems/internal/payroll/errors"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool                     `json:"ok"`
	Data  json.RawMessage          `json:"data"`
	Meta  *response.PaginationMeta `json:"meta"`
	Error *apiError                `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePayrollService struct {
	createFn  func(ctx context.Context, actor contextutil.Actor, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error)
	getAllFn  func(ctx context.Context, filter payroll.GetPayrollsFilterRequest) ([]payroll.PayrollResponse, error)
	getByIDFn func(ctx context.Context, id string) (payroll.PayrollResponse, error)
	approveFn func(ctx context.Context, actor contextutil.Actor, id string, req payroll.ApprovePayrollRequest) (payroll.PayrollResponse, error)
	rejectFn  func(ctx context.Context, actor contextutil.Actor, id string) (payroll.PayrollResponse, error)
	historyFn func(ctx context.Context, actor contextutil.Actor, employeeEmail string, page, limit int) ([]payroll.PayrollResponse, response.PaginationMeta, error)
}

func (f *fakePayrollService) Create(ctx context.Context, actor contextutil.Actor, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
	return f.createFn(ctx, actor, req)
}

func (f *fakePayrollService) GetAll(ctx context.Context, filter payroll.GetPayrollsFilterRequest) ([]payroll.PayrollResponse, error) {
	return f.getAllFn(ctx, filter)
}

func (f *fakePayrollService) GetByID(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakePayrollService) Approve(ctx context.Context, actor contextutil.Actor, id string, req payroll.ApprovePayrollRequest) (payroll.PayrollResponse, error) {
	return f.approveFn(ctx, actor, id, req)
}

func (f *fakePayrollService) Reject(ctx context.Context, actor contextutil.Actor, id string) (payroll.PayrollResponse, error) {
	return f.rejectFn(ctx, actor, id)
}

func (f *fakePayrollService) History(ctx context.Context, actor contextutil.Actor, employeeEmail string, page, limit int) ([]payroll.PayrollResponse, response.PaginationMeta, error) {
	return f.historyFn(ctx, actor, employeeEmail, page, limit)
}

func newTestContext(t *testing.T, actor contextutil.Actor, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req.WithContext(contextutil.WithActor(req.Context(), actor))

	return c, w
}

func TestPayrollHandler_Create(t *testing.T) {
	employeeID := uuid.New().String()
	actor := contextutil.Actor{UserID: uuid.New().String(), Email: "hr@corp.test", Role: rbac.RoleHR}

	svc := &fakePayrollService{
		createFn: func(ctx context.Context, got contextutil.Actor, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
			assert.Equal(t, actor.UserID, got.UserID)
			assert.Equal(t, employeeID, req.EmployeeID)
			assert.Equal(t, "March", req.Month)
			assert.Equal(t, 2025, req.Year)
			return payroll.PayrollResponse{ID: uuid.New().String(), Status: payroll.StatusPending, EmployeeID: req.EmployeeID}, nil
		},
	}

	h := payroll.NewHandler(svc)
	body := `{"employee_id":"` + employeeID + `","month":"March","year":2025}`
	c, w := newTestContext(t, actor, http.MethodPost, "/payroll/request", body)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestPayrollHandler_Create_ValidationError(t *testing.T) {
	svc := &fakePayrollService{
		createFn: func(ctx context.Context, actor contextutil.Actor, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
			t.Error("service must not be called on invalid body")
			return payroll.PayrollResponse{}, nil
		},
	}

	h := payroll.NewHandler(svc)
	c, w := newTestContext(t, contextutil.Actor{Role: rbac.RoleHR}, http.MethodPost, "/payroll/request", `{"month":"March"}`)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.NotNil(t, env.Error)
}

func TestPayrollHandler_Create_DuplicateConflict(t *testing.T) {
	employeeID := uuid.New().String()
	svc := &fakePayrollService{
		createFn: func(ctx context.Context, actor contextutil.Actor, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
			return payroll.PayrollResponse{}, payrollerrors.ErrDuplicatePeriod
		},
	}

	h := payroll.NewHandler(svc)
	body := `{"employee_id":"` + employeeID + `","month":"March","year":2025}`
	c, w := newTestContext(t, contextutil.Actor{Role: rbac.RoleHR}, http.MethodPost, "/payroll/request", body)

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestPayrollHandler_Approve(t *testing.T) {
	recordID := uuid.New().String()
	actor := contextutil.Actor{UserID: uuid.New().String(), Role: rbac.RoleAdmin}

	t.Run("success", func(t *testing.T) {
		txID := "tx_1"
		svc := &fakePayrollService{
			approveFn: func(ctx context.Context, got contextutil.Actor, id string, req payroll.ApprovePayrollRequest) (payroll.PayrollResponse, error) {
				assert.Equal(t, recordID, id)
				assert.Equal(t, "pm_card_visa", req.PaymentMethodID)
				return payroll.PayrollResponse{ID: id, Status: payroll.StatusApproved, TransactionID: &txID}, nil
			},
		}

		h := payroll.NewHandler(svc)
		c, w := newTestContext(t, actor, http.MethodPost, "/payroll/"+recordID+"/approve", `{"payment_method_id":"pm_card_visa"}`)
		c.Params = gin.Params{{Key: "id", Value: recordID}}

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var resp payroll.PayrollResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, payroll.StatusApproved, resp.Status)
		assert.NotNil(t, resp.TransactionID)
	})

	t.Run("payment failure maps to 402", func(t *testing.T) {
		svc := &fakePayrollService{
			approveFn: func(ctx context.Context, got contextutil.Actor, id string, req payroll.ApprovePayrollRequest) (payroll.PayrollResponse, error) {
				return payroll.PayrollResponse{}, payrollerrors.ErrPaymentFailed.WithDetail("Your card was declined.")
			},
		}

		h := payroll.NewHandler(svc)
		c, w := newTestContext(t, actor, http.MethodPost, "/payroll/"+recordID+"/approve", `{"payment_method_id":"pm_card_declined"}`)
		c.Params = gin.Params{{Key: "id", Value: recordID}}

		h.Approve(c)

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "PAYMENT_FAILED", env.Error.Code)
		assert.Contains(t, env.Error.Message, "declined")
	})

	t.Run("invalid transition maps to 400", func(t *testing.T) {
		svc := &fakePayrollService{
			approveFn: func(ctx context.Context, got contextutil.Actor, id string, req payroll.ApprovePayrollRequest) (payroll.PayrollResponse, error) {
				return payroll.PayrollResponse{}, payrollerrors.ErrInvalidTransition
			},
		}

		h := payroll.NewHandler(svc)
		c, w := newTestContext(t, actor, http.MethodPost, "/payroll/"+recordID+"/approve", `{"payment_method_id":"pm_card_visa"}`)
		c.Params = gin.Params{{Key: "id", Value: recordID}}

		h.Approve(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}

func TestPayrollHandler_Reject(t *testing.T) {
	recordID := uuid.New().String()
	actor := contextutil.Actor{UserID: uuid.New().String(), Role: rbac.RoleAdmin}

	svc := &fakePayrollService{
		rejectFn: func(ctx context.Context, got contextutil.Actor, id string) (payroll.PayrollResponse, error) {
			assert.Equal(t, recordID, id)
			return payroll.PayrollResponse{ID: id, Status: payroll.StatusRejected}, nil
		},
	}

	h := payroll.NewHandler(svc)
	c, w := newTestContext(t, actor, http.MethodPost, "/payroll/"+recordID+"/reject", "")
	c.Params = gin.Params{{Key: "id", Value: recordID}}

	h.Reject(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestPayrollHandler_History(t *testing.T) {
	actor := contextutil.Actor{UserID: uuid.New().String(), Email: "budi@corp.test", Role: rbac.RoleEmployee}

	t.Run("passes pagination params and returns meta", func(t *testing.T) {
		svc := &fakePayrollService{
			historyFn: func(ctx context.Context, got contextutil.Actor, email string, page, limit int) ([]payroll.PayrollResponse, response.PaginationMeta, error) {
				assert.Equal(t, "budi@corp.test", email)
				assert.Equal(t, 2, page)
				assert.Equal(t, 5, limit)
				return []payroll.PayrollResponse{{ID: uuid.New().String()}, {ID: uuid.New().String()}},
					response.NewPaginationMeta(7, page, limit), nil
			},
		}

		h := payroll.NewHandler(svc)
		c, w := newTestContext(t, actor, http.MethodGet, "/payments/budi@corp.test?page=2&limit=5", "")
		c.Params = gin.Params{{Key: "email", Value: "budi@corp.test"}}

		h.History(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.NotNil(t, env.Meta)
		assert.Equal(t, int64(7), env.Meta.Total)
		assert.Equal(t, 2, env.Meta.TotalPages)
	})

	t.Run("forbidden maps to 403", func(t *testing.T) {
		svc := &fakePayrollService{
			historyFn: func(ctx context.Context, got contextutil.Actor, email string, page, limit int) ([]payroll.PayrollResponse, response.PaginationMeta, error) {
				return nil, response.PaginationMeta{}, payrollerrors.ErrForbiddenHistory
			},
		}

		h := payroll.NewHandler(svc)
		c, w := newTestContext(t, actor, http.MethodGet, "/payments/siti@corp.test", "")
		c.Params = gin.Params{{Key: "email", Value: "siti@corp.test"}}

		h.History(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestPayrollHandler_GetById_NotFound(t *testing.T) {
	svc := &fakePayrollService{
		getByIDFn: func(ctx context.Context, id string) (payroll.PayrollResponse, error) {
			return payroll.PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		},
	}

	h := payroll.NewHandler(svc)
	c, w := newTestContext(t, contextutil.Actor{Role: rbac.RoleAdmin}, http.MethodGet, "/payroll/"+uuid.New().String(), "")
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

	h.GetById(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
