package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rendalink/locador/internal/app/api/middleware"
	"github.com/rendalink/locador/internal/app/service/subscription"
	types "github.com/rendalink/locador/pkg/types"
)

// AccessGuard decides whether an authenticated caller may use the product.
type AccessGuard interface {
	Check(ctx context.Context, principal *types.Principal) *subscription.Decision
}

// @Summary      Check admin access
// @Description  Evaluates the caller's subscription and returns an allow/deny decision. Always 200 with a structured body; non-200 is reserved for transport/auth failures.
// @Tags         Access
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  subscription.Decision
// @Router       /api/v1/access/check [post]
func ApiCheckAccess(guard AccessGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := middleware.PrincipalFromGin(c)
		decision := guard.Check(c.Request.Context(), p)
		// The decision body is the contract of the UI access gate; it is
		// returned bare rather than wrapped in the API envelope.
		c.JSON(http.StatusOK, decision)
	}
}

func RegisterAccessRoutes(r gin.IRouter, guard AccessGuard) {
	r.POST("/access/check", ApiCheckAccess(guard))
}
