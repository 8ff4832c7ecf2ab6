package clock

import (
	"go-paytrack/internal/middleware"
	"go-paytrack/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	clock := r.Group("/clock")
	clock.Use(middleware.AuthMiddleware())
	{
		clock.POST("/in", middleware.RBACAuthorize(rbacService, "clock", "create"), h.ClockIn)
		clock.POST("/out", middleware.RBACAuthorize(rbacService, "clock", "create"), h.ClockOut)
		clock.GET("/records", middleware.RBACAuthorize(rbacService, "clock", "read"), h.GetAll)
		clock.PUT("/manual", middleware.RBACAuthorize(rbacService, "clock", "correct"), h.ManualUpsert)
	}
}
