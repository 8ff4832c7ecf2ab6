package deduction

import (
	"github.com/gin-gonic/gin"

	"go-paytrack/internal/middleware"
	"go-paytrack/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	deductions := r.Group("/deductions")
	deductions.Use(middleware.AuthMiddleware())
	{
		deductions.GET("/:year", middleware.RBACAuthorize(rbacService, "deduction", "read"), h.GetByYear)
		deductions.PUT("/:year", middleware.RBACAuthorize(rbacService, "deduction", "update"), h.Upsert)
	}
}
