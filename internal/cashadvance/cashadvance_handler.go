package cashadvance

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-paytrack/internal/shared/apperror"
	"go-paytrack/internal/shared/response"
)

type PrivilegeChecker interface {
	IsPrivileged(role string) bool
}

type Handler struct {
	service Service
	priv    PrivilegeChecker
	rdb     *redis.Client
}

func NewHandler(service Service, priv PrivilegeChecker) *Handler {
	return &Handler{service: service, priv: priv}
}

func NewHandlerWithRedis(service Service, priv PrivilegeChecker, rdb *redis.Client) *Handler {
	return &Handler{service: service, priv: priv, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	actorID := c.GetString("employee_id")

	var req CreateCashAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

// ApplyPayment is the idempotency-keyed money path: the middleware holds a
// redis lock for the duration and this handler caches the final response
// under the caller's key.
func (h *Handler) ApplyPayment(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	actorID := c.GetString("employee_id")

	var req ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ApplyPayment(c.Request.Context(), actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	role := c.GetString("role")

	if target := c.Query("employee_id"); target != "" && target != employeeID {
		if !h.priv.IsPrivileged(role) {
			h.writeServiceError(c, apperror.ErrForbidden)
			return
		}
		employeeID = target
	}

	resp, err := h.service.GetAll(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
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

func (h *Handler) GetLogs(c *gin.Context) {
	requesterID := c.GetString("employee_id")
	role := c.GetString("role")
	advanceID := c.Param("id")

	resp, err := h.service.GetLogs(c.Request.Context(), requesterID, h.priv.IsPrivileged(role), advanceID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
