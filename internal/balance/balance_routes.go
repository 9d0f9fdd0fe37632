package balance

import (
	"employee-portal/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, logger *zap.Logger) {
	balances := r.Group("/balances")
	balances.Use(auth)
	balances.Use(middleware.ContextLogger(logger))
	{
		balances.GET("/me", middleware.RateLimitByUser(3, 10), handler.GetMine)
	}
}
