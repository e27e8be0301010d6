package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"

	"github.com/rendalink/locador/internal/app/service/profile"
	models "github.com/rendalink/locador/internal/models"
	"github.com/rendalink/locador/pkg/logctx"
	"github.com/rendalink/locador/pkg/response"
	types "github.com/rendalink/locador/pkg/types"
)

const principalKey = "principal"

// ProfileResolver maps an identity-provider subject to a profile row.
// Satisfied by *profile.Service.
type ProfileResolver interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
}

// AuthMiddleware validates the bearer credential and resolves it to a typed
// principal, stored once in the request context. Downstream code reads the
// principal explicitly instead of re-parsing ambient auth state.
//
// A valid token whose subject has no profile row still passes: the principal
// then carries only the user id, and role-gated routes (or the access guard)
// deny it downstream with a descriptive reason.
func AuthMiddleware(secret string, profiles ProfileResolver, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, "missing bearer token"))
			return
		}

		claims := &jwt.StandardClaims{}
		_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, "invalid token"))
			return
		}

		principal := &types.Principal{UserID: claims.Subject}
		p, err := profiles.GetByUserID(c.Request.Context(), claims.Subject)
		switch {
		case err == nil:
			principal.ProfileID = p.ID
			principal.Role = p.Role
		case errors.Is(err, profile.ErrNotFound):
			// stale credential: leave the principal unresolved
		default:
			logctx.FromGin(c, log).Errorw("profile resolution failed", "user_id", claims.Subject, "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, "internal error"))
			return
		}

		c.Set(principalKey, principal)
		ctx := context.WithValue(c.Request.Context(), "user_id", principal.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// PrincipalFromGin returns the principal attached by AuthMiddleware, or nil.
func PrincipalFromGin(c *gin.Context) *types.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(*types.Principal); ok {
			return p
		}
	}
	return nil
}

// SetPrincipal injects a principal; test helper for handlers.
func SetPrincipal(c *gin.Context, p *types.Principal) {
	c.Set(principalKey, p)
}
