package middleware

import (
	"net/http"

	"employee-portal/internal/rbac"
	"employee-portal/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

var ErrForbidden = apperror.New(apperror.CodeForbidden, "You do not have permission to access this resource", http.StatusForbidden)

type CapabilityChecker interface {
	Can(role rbac.Role, action rbac.Action, rel rbac.Relationship) bool
}

// Authorize gates collection-level routes on the caller's role alone.
// Per-object decisions stay inside the services.
func Authorize(checker CapabilityChecker, action rbac.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := rbac.Role(c.GetString("role"))
		if !checker.Can(role, action, rbac.RelNone) {
			abortWith(c, ErrForbidden)
			return
		}
		c.Next()
	}
}
