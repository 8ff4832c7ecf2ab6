package clock

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-paytrack/internal/shared/apperror"
	"go-paytrack/internal/shared/response"
)

// PrivilegeChecker is a local interface; the rbac service satisfies it.
type PrivilegeChecker interface {
	IsPrivileged(role string) bool
}

type Handler struct {
	service Service
	priv    PrivilegeChecker
}

func NewHandler(service Service, priv PrivilegeChecker) *Handler {
	return &Handler{service: service, priv: priv}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) ClockIn(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	var req ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.ClockIn(c.Request.Context(), employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ClockOut(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	var req ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.ClockOut(c.Request.Context(), employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ManualUpsert(c *gin.Context) {
	actorID := c.GetString("employee_id")

	var req ManualUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ManualUpsert(c.Request.Context(), actorID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// GetAll lists the caller's own records; privileged roles may list any
// employee via ?employee_id=.
func (h *Handler) GetAll(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	role := c.GetString("role")

	if target := c.Query("employee_id"); target != "" && target != employeeID {
		if !h.priv.IsPrivileged(role) {
			writeServiceError(c, apperror.ErrForbidden)
			return
		}
		employeeID = target
	}

	resp, err := h.service.GetAll(c.Request.Context(), employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}
