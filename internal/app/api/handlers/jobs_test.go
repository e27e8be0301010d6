package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rendalink/locador/internal/app/service/billingjob"
)

type stubRunner struct {
	summary *billingjob.Summary
	err     error
	runs    int
}

func (s *stubRunner) Run(_ context.Context) (*billingjob.Summary, error) {
	s.runs++
	return s.summary, s.err
}

func newJobRouter(runner JobRunner, token string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterJobRoutes(r, runner, token, zap.NewNop().Sugar())
	return r
}

func TestApiConsumeCredits_RequiresServiceToken(t *testing.T) {
	runner := &stubRunner{summary: &billingjob.Summary{}}
	r := newJobRouter(runner, "secret-token")

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong token", "Bearer nope"},
		{"bare wrong token", "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/jobs/consume-credits", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.Contains(t, w.Body.String(), `"success":false`)
		})
	}
	require.Equal(t, 0, runner.runs)
}

func TestApiConsumeCredits_EmptyConfiguredTokenAlwaysRejects(t *testing.T) {
	runner := &stubRunner{}
	r := newJobRouter(runner, "")

	req := httptest.NewRequest(http.MethodPost, "/jobs/consume-credits", nil)
	req.Header.Set("Authorization", "Bearer ")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, 0, runner.runs)
}

func TestApiConsumeCredits_Success(t *testing.T) {
	runner := &stubRunner{summary: &billingjob.Summary{
		ProcessedCount: 12,
		BlockedCount:   3,
		Message:        "12 subscriptions processed, 3 blocked",
	}}
	r := newJobRouter(runner, "secret-token")

	req := httptest.NewRequest(http.MethodPost, "/jobs/consume-credits", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body ConsumeCreditsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, 12, body.ProcessedCount)
	require.Equal(t, 3, body.BlockedCount)
	require.Equal(t, "12 subscriptions processed, 3 blocked", body.Message)
}

func TestApiConsumeCredits_RunFailure(t *testing.T) {
	runner := &stubRunner{err: errors.New("failed to list subscriptions: timeout")}
	r := newJobRouter(runner, "secret-token")

	req := httptest.NewRequest(http.MethodPost, "/jobs/consume-credits", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body JobErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.False(t, body.Success)
	require.Contains(t, body.Error, "failed to list subscriptions")
}
