package salary

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-timekeep/internal/shared/apperror"
	"go-timekeep/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Compute(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req ComputeSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp, err := h.service.Compute(c.Request.Context(), companyID, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ComputeForCompany(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req ComputeCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp, err := h.service.ComputeForCompany(c.Request.Context(), companyID, req.Month, req.Year)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	companyID := c.GetString("company_id")

	q := ListQuery{EmployeeCode: c.Query("employee_code")}
	if raw := c.Query("month"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			q.Month = &v
		}
	}
	if raw := c.Query("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			q.Year = &v
		}
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if q.Page < 1 {
		q.Page = 1
	}
	q.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if q.PageSize < 1 {
		q.PageSize = 10
	}

	resp, total, err := h.service.GetAll(c.Request.Context(), companyID, q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	meta := response.NewPaginationMeta(total, q.Page, q.PageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	companyID := c.GetString("company_id")
	id := c.Param("id")

	resp, err := h.service.GetByID(c.Request.Context(), companyID, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	companyID := c.GetString("company_id")
	id := c.Param("id")

	var req UpdateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), companyID, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("employee_id")
	if actorID == "" {
		actorID = c.GetString("user_id")
	}
	id := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), companyID, actorID, id, req.Status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GeneratePayslip(c *gin.Context) {
	companyID := c.GetString("company_id")
	id := c.Param("id")

	ref, err := h.service.RenderPayslip(c.Request.Context(), companyID, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payslip_ref": ref}, nil)
}
