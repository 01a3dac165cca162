package common

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// Context keys
	ContextPrincipalKey = "currentPrincipal" // authenticated caller
	ContextRequestIDKey = "requestID"

	RoleAdmin = "admin"
)

// Principal is the caller as resolved by the identity provider. UserID is
// opaque to this service.
type Principal struct {
	UserID string
	Roles  []string
}

func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

func (p Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(ContextPrincipalKey, p)
}

// GetPrincipal returns the authenticated caller, if the request carried one.
func GetPrincipal(c *gin.Context) (Principal, bool) {
	v, exists := c.Get(ContextPrincipalKey)
	if !exists {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextRequestIDKey)
}
