package cashadvance

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-paytrack/internal/middleware"
	"go-paytrack/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	advances := r.Group("/cash-advances")
	advances.Use(middleware.AuthMiddleware())
	{
		advances.POST("", middleware.RBACAuthorize(rbacService, "cashadvance", "create"), h.Create)
		advances.GET("", middleware.RBACAuthorize(rbacService, "cashadvance", "read"), h.GetAll)
		advances.POST("/payments",
			middleware.RBACAuthorize(rbacService, "cashadvance", "pay"),
			middleware.Idempotency(rdb),
			h.ApplyPayment,
		)
		advances.GET("/:id/logs", middleware.RBACAuthorize(rbacService, "cashadvance", "read"), h.GetLogs)
	}
}
