package settlement

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-paytrack/internal/shared/apperror"
	"go-paytrack/internal/shared/response"
)

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

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetByYear(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	role := c.GetString("role")

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("year"))
		return
	}

	if target := c.Query("employee_id"); target != "" && target != employeeID {
		if !h.priv.IsPrivileged(role) {
			h.writeServiceError(c, apperror.ErrForbidden)
			return
		}
		employeeID = target
	}

	resp, err := h.service.BuildSettlement(c.Request.Context(), employeeID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Notify(c *gin.Context) {
	actorID := c.GetString("employee_id")

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("year"))
		return
	}

	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.RequestNotification(c.Request.Context(), actorID, req.EmployeeID, year, req.Email); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"enqueued": true}, nil)
}
