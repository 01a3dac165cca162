package rmiddleware

import (
	"net/http"

	"github.com/DhavalSuthar-24/pitchside/internal/common"
	responses "github.com/DhavalSuthar-24/pitchside/pkg/matchresponse"
	"github.com/gin-gonic/gin"
)

// RoleMiddleware lets the request through when the authenticated caller holds
// any of requiredRoles. It must run after the auth middleware.
func RoleMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := common.GetPrincipal(c)
		if !ok {
			responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		for _, role := range requiredRoles {
			if principal.HasRole(role) {
				c.Next()
				return
			}
		}
		responses.CodedErrorResponse(c, http.StatusForbidden, "Forbidden", "You don't have permission to access this resource")
	}
}

// AdminMiddleware is a convenience middleware for admin-only access
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(common.RoleAdmin)
}
