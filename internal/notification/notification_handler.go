package notification

import (
	"net/http"
	"strconv"

	"employee-portal/internal/middleware"
	"employee-portal/internal/rbac"
	"employee-portal/internal/shared/apperror"
	"employee-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("notification.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	msgs, err := h.service.ListForCaller(
		c.Request.Context(),
		c.GetString("employee_id"),
		rbac.Role(c.GetString("role")),
		limit,
	)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("notification request failed", zap.Int("status", httpErr.Status), zap.Error(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, msgs, nil)
}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, logger *zap.Logger) {
	notifications := r.Group("/notifications")
	notifications.Use(auth)
	notifications.Use(middleware.ContextLogger(logger))
	{
		notifications.GET("", middleware.RateLimitByUser(3, 10), handler.List)
	}
}
