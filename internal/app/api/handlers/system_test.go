package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	subsvc "github.com/rendalink/locador/internal/app/service/subscription"
	models "github.com/rendalink/locador/internal/models"
	types "github.com/rendalink/locador/pkg/types"
)

type stubSubAdmin struct {
	sub *models.Subscription

	gotAmount      int
	gotDescription string
	gotOperator    string
	gotReason      string
}

func (s *stubSubAdmin) Scan(_ context.Context, _ *subsvc.ScanSubscriptionsRequest) (*subsvc.ScanSubscriptionsResponse, error) {
	return &subsvc.ScanSubscriptionsResponse{Items: []*models.Subscription{s.sub}, Total: 1}, nil
}

func (s *stubSubAdmin) GetByID(_ context.Context, id string) (*models.Subscription, error) {
	if s.sub == nil || s.sub.ID != id {
		return nil, subsvc.ErrNotFound
	}
	return s.sub, nil
}

func (s *stubSubAdmin) AdjustCredits(_ context.Context, id string, amount int, description, operatorID string) (*models.Subscription, error) {
	if s.sub == nil || s.sub.ID != id {
		return nil, subsvc.ErrNotFound
	}
	s.gotAmount = amount
	s.gotDescription = description
	s.gotOperator = operatorID
	s.sub.Credits += amount
	if s.sub.Credits < 0 {
		s.sub.Credits = 0
	}
	return s.sub, nil
}

func (s *stubSubAdmin) Block(_ context.Context, id, reason, operatorID string) (*models.Subscription, error) {
	if s.sub == nil || s.sub.ID != id {
		return nil, subsvc.ErrNotFound
	}
	s.gotReason = reason
	s.gotOperator = operatorID
	s.sub.IsBlocked = true
	s.sub.BlockReason = reason
	return s.sub, nil
}

func (s *stubSubAdmin) Unblock(_ context.Context, id, operatorID string) (*models.Subscription, error) {
	if s.sub == nil || s.sub.ID != id {
		return nil, subsvc.ErrNotFound
	}
	s.sub.IsBlocked = false
	s.sub.BlockReason = ""
	return s.sub, nil
}

func (s *stubSubAdmin) ListTransactions(_ context.Context, _ string, _, _ int) ([]*models.CreditTransaction, error) {
	return []*models.CreditTransaction{{ID: "tx-1", Amount: -1}}, nil
}

func newSystemRouter(svc SubscriptionAdmin) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterSystemRoutes(r.Group("/system"), svc)
	return r
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestApiAdjustCredits(t *testing.T) {
	svc := &stubSubAdmin{sub: &models.Subscription{ID: "sub-1", Credits: 2, Status: types.SubscriptionStatusActive}}
	r := newSystemRouter(svc)

	body, _ := json.Marshal(AdjustCreditsRequest{Amount: 5, Description: "cortesia"})
	req := httptest.NewRequest(http.MethodPost, "/system/subscriptions/sub-1/credits", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	e := decodeEnvelope(t, w)
	require.Equal(t, 0, e.Code)
	require.Equal(t, 5, svc.gotAmount)
	require.Equal(t, "cortesia", svc.gotDescription)

	var item SubscriptionItem
	require.NoError(t, json.Unmarshal(e.Data, &item))
	require.Equal(t, 7, item.Credits)
}

func TestApiAdjustCredits_MissingAmount(t *testing.T) {
	svc := &stubSubAdmin{sub: &models.Subscription{ID: "sub-1"}}
	r := newSystemRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/system/subscriptions/sub-1/credits", bytes.NewReader([]byte(`{"description":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	e := decodeEnvelope(t, w)
	require.NotEqual(t, 0, e.Code)
	require.Equal(t, 0, svc.gotAmount)
}

func TestApiGetSubscription_NotFound(t *testing.T) {
	svc := &stubSubAdmin{sub: &models.Subscription{ID: "sub-1"}}
	r := newSystemRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/system/subscriptions/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	e := decodeEnvelope(t, w)
	require.NotEqual(t, 0, e.Code)
	require.Equal(t, "not found", e.Message)
}

func TestApiBlockAndUnblockSubscription(t *testing.T) {
	svc := &stubSubAdmin{sub: &models.Subscription{ID: "sub-1", Credits: 3, Status: types.SubscriptionStatusActive}}
	r := newSystemRouter(svc)

	body, _ := json.Marshal(BlockSubscriptionRequest{Reason: "teste"})
	req := httptest.NewRequest(http.MethodPost, "/system/subscriptions/sub-1/block", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "teste", svc.gotReason)
	require.True(t, svc.sub.IsBlocked)

	req = httptest.NewRequest(http.MethodPost, "/system/subscriptions/sub-1/unblock", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, svc.sub.IsBlocked)
}

func TestApiListSubscriptions(t *testing.T) {
	svc := &stubSubAdmin{sub: &models.Subscription{ID: "sub-1", OwnerID: "owner-1", Credits: 4}}
	r := newSystemRouter(svc)

	body, _ := json.Marshal(ListSubscriptionsRequest{From: 0, Size: 10})
	req := httptest.NewRequest(http.MethodPost, "/system/subscriptions/list", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	e := decodeEnvelope(t, w)
	require.Equal(t, 0, e.Code)

	var res ListSubscriptionsResponse
	require.NoError(t, json.Unmarshal(e.Data, &res))
	require.Equal(t, int64(1), res.Total)
	require.Len(t, res.Items, 1)
	require.Equal(t, "owner-1", res.Items[0].OwnerID)
}
