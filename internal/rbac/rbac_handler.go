package rbac

import (
	"net/http"

	"employee-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type CapabilitiesResponse struct {
	Role         Role         `json:"role"`
	Capabilities []Capability `json:"capabilities"`
}

// Capabilities lists what the caller's role may do so clients can gate UI.
func (h *Handler) Capabilities(c *gin.Context) {
	role, ok := ParseRole(c.GetString("role"))
	if !ok {
		response.Success(c, http.StatusOK, CapabilitiesResponse{Capabilities: []Capability{}}, nil)
		return
	}

	response.Success(c, http.StatusOK, CapabilitiesResponse{
		Role:         role,
		Capabilities: h.service.Capabilities(role),
	}, nil)
}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	group := r.Group("/rbac")
	group.Use(auth)
	{
		group.GET("/capabilities", handler.Capabilities)
	}
}
