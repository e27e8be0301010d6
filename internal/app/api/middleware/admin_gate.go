package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rendalink/locador/internal/app/service/access"
	"github.com/rendalink/locador/pkg/response"
)

// AdminAccessGate is the server-side counterpart of the UI access gate: it
// blocks admin product routes when the access guard denies the subscription.
// The UI polls the check endpoint separately; this middleware keeps a blocked
// admin from driving the API directly between polls.
func AdminAccessGate(guard *access.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := PrincipalFromGin(c)
		decision := guard.Check(c.Request.Context(), p)
		if !decision.HasAccess {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorT(response.APIResponseCodeForbidden, decision))
			return
		}
		c.Next()
	}
}
