package payment

import (
	"net/http"

	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type CreateIntentRequest struct {
	Amount     int64  `json:"amount" binding:"required,gt=0"`
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	PayrollID  string `json:"payroll_id" binding:"required,uuid"`
}

type CreateIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type Handler struct {
	gateway Gateway
}

func NewHandler(gateway Gateway) *Handler {
	return &Handler{gateway: gateway}
}

// CreateIntent menerbitkan payment intent untuk card-collection di sisi
// client. Approve terhadap record-nya sendiri tetap lewat endpoint payroll.
func (h *Handler) CreateIntent(c *gin.Context) {
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	intent, err := h.gateway.CreateIntent(c.Request.Context(), CreateIntentParams{
		Amount:     req.Amount,
		PayrollID:  req.PayrollID,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		httpErr := apperror.ToHTTP(apperror.Wrap(err, apperror.CodeServiceUnavailable, "payment provider unavailable", http.StatusBadGateway))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, CreateIntentResponse{ClientSecret: intent.ClientSecret}, nil)
}
