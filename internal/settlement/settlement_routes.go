package settlement

import (
	"github.com/gin-gonic/gin"

	"go-paytrack/internal/middleware"
	"go-paytrack/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	settlements := r.Group("/settlements")
	settlements.Use(middleware.AuthMiddleware())
	{
		settlements.GET("/:year", middleware.RBACAuthorize(rbacService, "settlement", "read"), h.GetByYear)
		settlements.POST("/:year/notify", middleware.RBACAuthorize(rbacService, "settlement", "notify"), h.Notify)
	}
}
