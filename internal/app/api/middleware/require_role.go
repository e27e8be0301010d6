package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rendalink/locador/pkg/response"
	types "github.com/rendalink/locador/pkg/types"
)

// RequireRole gates a route group to the given roles. Principals without a
// resolved profile are rejected.
func RequireRole(roles ...types.Role) gin.HandlerFunc {
	allowed := make(map[types.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		p := PrincipalFromGin(c)
		if p == nil || p.ProfileID == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorT[any](response.APIResponseCodeForbidden, "no profile for credential"))
			return
		}
		if _, ok := allowed[p.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorT[any](response.APIResponseCodeForbidden, "insufficient role"))
			return
		}
		c.Next()
	}
}
