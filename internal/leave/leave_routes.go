package leave

import (
	"employee-portal/internal/middleware"
	"employee-portal/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	idem := middleware.Idempotency(rdb, logger)

	requests := r.Group("/leave/requests")
	requests.Use(auth)
	requests.Use(middleware.ContextLogger(logger))
	{
		requests.GET("", middleware.RateLimitByUser(3, 10), handler.List)
		requests.GET("/:id", middleware.RateLimitByUser(3, 10), handler.GetByID)
		requests.POST("", middleware.RateLimitByUser(0.5, 3), idem, handler.Create)
		requests.PATCH("/:id", middleware.RateLimitByUser(1, 5), handler.Update)
		requests.DELETE("/:id", middleware.RateLimitByUser(1, 5), handler.Delete)

		for _, action := range []rbac.Action{
			rbac.ActionApproveManager,
			rbac.ActionRejectManager,
			rbac.ActionApproveHR,
			rbac.ActionRejectHR,
			rbac.ActionCancel,
		} {
			requests.POST("/:id/"+string(action),
				middleware.RateLimitByUser(1, 5),
				idem,
				handler.Transition(action),
			)
		}
	}
}
