package billingjob

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	models "github.com/rendalink/locador/internal/models"
	types "github.com/rendalink/locador/pkg/types"
)

type fakeStore struct {
	subs    []*models.Subscription
	listErr error

	persisted []persistCall
	failFor   map[string]error
}

type persistCall struct {
	before *models.Subscription
	after  *models.Subscription
	ledger *models.CreditTransaction
}

func (f *fakeStore) ListConsumable(ctx context.Context) ([]*models.Subscription, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.subs, nil
}

func (f *fakeStore) PersistConsumption(ctx context.Context, before, after *models.Subscription, ledger *models.CreditTransaction) error {
	if err, ok := f.failFor[after.ID]; ok {
		return err
	}
	f.persisted = append(f.persisted, persistCall{before: before, after: after, ledger: ledger})
	// Mirror what the real store does: the caller's row now reflects the write.
	*f.subs[f.indexOf(after.ID)] = *after
	return nil
}

func (f *fakeStore) indexOf(id string) int {
	for i, s := range f.subs {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func testSub(id string, credits int, anchoredAgo time.Duration, now time.Time) *models.Subscription {
	anchored := now.Add(-anchoredAgo)
	return &models.Subscription{
		ID:               id,
		OwnerID:          "owner-" + id,
		Credits:          credits,
		Status:           types.SubscriptionStatusActive,
		CreditsUpdatedAt: &anchored,
	}
}

func newTestService(store *fakeStore, now time.Time) *Service {
	svc := newService(store, types.DefaultCreditPolicy(), zap.NewNop().Sugar())
	svc.nowFn = func() time.Time { return now }
	return svc
}

func TestRun_ConsumesDueSubscriptions(t *testing.T) {
	now := time.Now()
	store := &fakeStore{subs: []*models.Subscription{
		testSub("due", 5, 31*24*time.Hour, now),
		testSub("fresh", 5, 10*24*time.Hour, now),
	}}
	svc := newTestService(store, now)

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ProcessedCount)
	assert.Equal(t, 0, summary.BlockedCount)
	assert.Equal(t, "1 subscriptions processed, 0 blocked", summary.Message)

	require.Len(t, store.persisted, 1)
	call := store.persisted[0]
	assert.Equal(t, "due", call.after.ID)
	assert.Equal(t, 5, call.before.Credits)
	assert.Equal(t, 4, call.after.Credits)
	assert.Equal(t, -1, call.ledger.Amount)
	assert.Equal(t, types.CreditTransactionTypeMonthlyConsumption, call.ledger.Type)
	assert.Equal(t, "Consumo automático de créditos após 30 dias", call.ledger.Description)

	// The untouched row keeps its balance and anchor.
	assert.Equal(t, 5, store.subs[1].Credits)
}

func TestRun_BlocksExhaustedSubscription(t *testing.T) {
	now := time.Now()
	store := &fakeStore{subs: []*models.Subscription{
		testSub("last-credit", 1, 31*24*time.Hour, now),
	}}
	svc := newTestService(store, now)

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ProcessedCount)
	assert.Equal(t, 1, summary.BlockedCount)

	after := store.persisted[0].after
	assert.Equal(t, 0, after.Credits)
	assert.Equal(t, types.SubscriptionStatusExpired, after.Status)
	assert.True(t, after.IsBlocked)
	assert.Equal(t, "Créditos esgotados", after.BlockReason)
}

func TestRun_RerunIsIdempotentWithinPeriod(t *testing.T) {
	now := time.Now()
	store := &fakeStore{subs: []*models.Subscription{
		testSub("due", 5, 31*24*time.Hour, now),
	}}
	svc := newTestService(store, now)

	_, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, store.subs[0].Credits)

	// The first run re-anchored the timer to now, so a second run on the
	// same day consumes nothing.
	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.ProcessedCount)
	assert.Equal(t, 4, store.subs[0].Credits)
}

func TestRun_PerRowFailureSkipsAndContinues(t *testing.T) {
	now := time.Now()
	store := &fakeStore{
		subs: []*models.Subscription{
			testSub("broken", 5, 31*24*time.Hour, now),
			testSub("fine", 5, 31*24*time.Hour, now),
		},
		failFor: map[string]error{"broken": errors.New("deadlock")},
	}
	svc := newTestService(store, now)

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ProcessedCount)
	require.Len(t, store.persisted, 1)
	assert.Equal(t, "fine", store.persisted[0].after.ID)
	// The failed row is untouched in the store.
	assert.Equal(t, 5, store.subs[0].Credits)
}

func TestRun_ListFailureAborts(t *testing.T) {
	store := &fakeStore{listErr: errors.New("connection refused")}
	svc := newTestService(store, time.Now())

	summary, err := svc.Run(context.Background())
	assert.Nil(t, summary)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list subscriptions")
}
