package attendance

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-timekeep/internal/shared/apperror"
	"go-timekeep/internal/shared/response"
)

const maxCheckImageBytes = 5 << 20

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

// parseCheckInput reads latitude, longitude and the optional face image
// from the multipart form. The client IP comes from gin, behind the
// trusted proxy configuration.
func parseCheckInput(c *gin.Context) (CheckInput, error) {
	in := CheckInput{IP: c.ClientIP()}

	if raw := c.PostForm("latitude"); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, err
		}
		in.Latitude = &lat
	}
	if raw := c.PostForm("longitude"); raw != "" {
		lng, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, err
		}
		in.Longitude = &lng
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return in, nil
		}
		return in, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxCheckImageBytes))
	if err != nil {
		return in, err
	}
	in.Image = data
	return in, nil
}

func actorID(c *gin.Context) string {
	id := c.GetString("employee_id")
	if id == "" {
		id = c.GetString("user_id")
	}
	return id
}

func (h *Handler) CheckIn(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := actorID(c)

	in, err := parseCheckInput(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.CheckIn(c.Request.Context(), companyID, employeeID, in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := actorID(c)

	in, err := parseCheckInput(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.CheckOut(c.Request.Context(), companyID, employeeID, in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetToday(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := actorID(c)

	resp, err := h.service.GetToday(c.Request.Context(), companyID, employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMy(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := actorID(c)

	q := parseListQuery(c)
	resp, total, err := h.service.GetMy(c.Request.Context(), companyID, employeeID, q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	meta := response.NewPaginationMeta(total, q.Page, q.PageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetAll(c *gin.Context) {
	companyID := c.GetString("company_id")

	q := parseListQuery(c)
	resp, total, err := h.service.GetAll(c.Request.Context(), companyID, q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	meta := response.NewPaginationMeta(total, q.Page, q.PageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func parseListQuery(c *gin.Context) ListQuery {
	q := ListQuery{
		SortBy:   c.DefaultQuery("sort_by", "attendance_date"),
		SortDesc: c.DefaultQuery("sort_dir", "desc") == "desc",
	}

	if raw := c.Query("from"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			q.From = &t
		}
	}
	if raw := c.Query("to"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			q.To = &t
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
	return q
}
