package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/DhavalSuthar-24/pitchside/internal/common"
	responses "github.com/DhavalSuthar-24/pitchside/pkg/matchresponse"
	"github.com/gin-gonic/gin"
)

// IdentityProvider turns a bearer credential into a Principal. Implementations
// must reject empty or invalid credentials.
type IdentityProvider interface {
	Authenticate(ctx context.Context, credential string) (common.Principal, error)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// AuthMiddleware requires a valid bearer credential.
func AuthMiddleware(idp IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			responses.ErrorResponse(c, http.StatusUnauthorized, "Authorization header is required")
			return
		}
		credential, ok := bearerToken(c)
		if !ok {
			responses.ErrorResponse(c, http.StatusUnauthorized, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		principal, err := idp.Authenticate(c.Request.Context(), credential)
		if err != nil {
			responses.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token: "+err.Error())
			return
		}
		if principal.UserID == "" {
			responses.ErrorResponse(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		common.SetPrincipal(c, principal)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the caller when a valid credential is sent
// and lets anonymous requests through. A credential that is present but
// invalid is still rejected.
func OptionalAuthMiddleware(idp IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		AuthMiddleware(idp)(c)
	}
}
