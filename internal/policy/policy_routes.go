package policy

import (
	"go-paytrack/internal/middleware"
	"go-paytrack/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	settings := r.Group("/settings")
	settings.Use(middleware.AuthMiddleware())
	{
		settings.GET("/payroll", middleware.RBACAuthorize(rbacService, "settings", "read"), h.Get)
		settings.PUT("/payroll", middleware.RBACAuthorize(rbacService, "settings", "update"), h.Update)
	}
}
