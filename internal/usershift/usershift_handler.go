package usershift

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-timekeep/internal/domain"
	"go-timekeep/internal/shared/apperror"
	"go-timekeep/internal/shared/response"
)

// EmployeeTypeLookup resolves the type of the employee being scheduled.
// Injected to keep this package independent of the employee module.
type EmployeeTypeLookup func(ctx context.Context, companyID, employeeID string) (domain.EmployeeType, error)

type Handler struct {
	service    Service
	lookupType EmployeeTypeLookup
}

func NewHandler(service Service, lookupType EmployeeTypeLookup) *Handler {
	return &Handler{service: service, lookupType: lookupType}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Assign(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req AssignShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	empType, err := h.lookupType(c.Request.Context(), companyID, req.EmployeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.Assign(c.Request.Context(), companyID, empType, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetSchedule(c *gin.Context) {
	companyID := c.GetString("company_id")

	now := time.Now()
	from := now.AddDate(0, 0, -7)
	to := now.AddDate(0, 0, 7)
	if v := c.Query("from"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid from date", nil)
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid to date", nil)
			return
		}
		to = parsed
	}

	resp, err := h.service.GetSchedule(c.Request.Context(), companyID, from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
