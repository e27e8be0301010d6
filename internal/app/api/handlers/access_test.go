package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/rendalink/locador/internal/app/api/middleware"
	"github.com/rendalink/locador/internal/app/service/subscription"
	types "github.com/rendalink/locador/pkg/types"
)

type stubGuard struct {
	decision *subscription.Decision
	gotRole  types.Role
}

func (s *stubGuard) Check(_ context.Context, p *types.Principal) *subscription.Decision {
	if p != nil {
		s.gotRole = p.Role
	}
	return s.decision
}

func TestApiCheckAccess_DenialBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	guard := &stubGuard{decision: &subscription.Decision{
		HasAccess: false,
		Reason:    "Sem créditos disponíveis",
		Snapshot:  &subscription.Snapshot{ID: "sub-1", Status: types.SubscriptionStatusActive, Credits: 0},
	}}

	r := gin.New()
	r.POST("/access/check", func(c *gin.Context) {
		middleware.SetPrincipal(c, &types.Principal{UserID: "u", ProfileID: "p", Role: types.RoleAdmin})
		ApiCheckAccess(guard)(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/access/check", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, types.RoleAdmin, guard.gotRole)

	var body struct {
		HasAccess    bool   `json:"hasAccess"`
		Reason       string `json:"reason"`
		Subscription *struct {
			ID      string `json:"id"`
			Credits int    `json:"credits"`
		} `json:"subscription"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.False(t, body.HasAccess)
	require.Equal(t, "Sem créditos disponíveis", body.Reason)
	require.NotNil(t, body.Subscription)
	require.Equal(t, "sub-1", body.Subscription.ID)
}

func TestApiCheckAccess_AllowOmitsEmptySnapshot(t *testing.T) {
	gin.SetMode(gin.TestMode)
	guard := &stubGuard{decision: &subscription.Decision{HasAccess: true}}

	r := gin.New()
	r.POST("/access/check", ApiCheckAccess(guard))

	req := httptest.NewRequest(http.MethodPost, "/access/check", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"hasAccess":true`)
	require.NotContains(t, w.Body.String(), `"subscription"`)
}
