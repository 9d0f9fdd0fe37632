package employee

import (
	"employee-portal/internal/middleware"
	"employee-portal/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	checker middleware.CapabilityChecker,
	auth gin.HandlerFunc,
	logger *zap.Logger,
) {
	manage := middleware.Authorize(checker, rbac.ActionManageEmployees)

	employees := r.Group("/employees")
	employees.Use(auth)
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("/options",
			middleware.RateLimitByUser(5, 20),
			handler.GetOptions,
		)

		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			manage,
			handler.GetAll,
		)

		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			manage,
			handler.GetByID,
		)

		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			manage,
			handler.Create,
		)

		employees.PUT("/:id/manager",
			middleware.RateLimitByUser(0.5, 2),
			manage,
			handler.AssignManager,
		)
	}
}
