package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rendalink/locador/internal/app/service/subscription"
	models "github.com/rendalink/locador/internal/models"
	types "github.com/rendalink/locador/pkg/types"
)

type fakeSource struct {
	sub *models.Subscription
	err error
}

func (f *fakeSource) GetByOwnerID(ctx context.Context, ownerID string) (*models.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sub, nil
}

func newTestGuard(src SubscriptionSource) *Service {
	return newService(src, types.DefaultCreditPolicy(), zap.NewNop().Sugar())
}

func adminPrincipal() *types.Principal {
	return &types.Principal{UserID: "user-1", ProfileID: "profile-1", Role: types.RoleAdmin}
}

func TestCheck_NoPrincipal(t *testing.T) {
	guard := newTestGuard(&fakeSource{})

	for _, p := range []*types.Principal{nil, {UserID: "user-1", Role: types.RoleAdmin}} {
		d := guard.Check(context.Background(), p)
		assert.False(t, d.HasAccess)
		assert.Equal(t, ReasonProfileNotFound, d.Reason)
	}
}

func TestCheck_NonAdminBypasses(t *testing.T) {
	// No subscription on file at all; tenants still pass.
	guard := newTestGuard(&fakeSource{err: subscription.ErrNotFound})

	for _, role := range []types.Role{types.RoleTenant, types.RoleSystemOwner} {
		d := guard.Check(context.Background(), &types.Principal{UserID: "u", ProfileID: "p", Role: role})
		assert.True(t, d.HasAccess, "role %s", role)
		assert.Empty(t, d.Reason)
	}
}

func TestCheck_AdminWithoutSubscription(t *testing.T) {
	guard := newTestGuard(&fakeSource{err: subscription.ErrNotFound})

	d := guard.Check(context.Background(), adminPrincipal())
	assert.False(t, d.HasAccess)
	assert.Equal(t, ReasonSubscriptionNotFound, d.Reason)
}

func TestCheck_StoreFailureFailsClosed(t *testing.T) {
	guard := newTestGuard(&fakeSource{err: errors.New("connection reset")})

	d := guard.Check(context.Background(), adminPrincipal())
	assert.False(t, d.HasAccess)
	assert.Equal(t, ReasonInternalError, d.Reason)
}

func TestCheck_DelegatesToPolicy(t *testing.T) {
	tests := []struct {
		name       string
		sub        *models.Subscription
		wantAccess bool
		wantReason string
	}{
		{
			name:       "active with credits",
			sub:        &models.Subscription{ID: "s", Credits: 5, Status: types.SubscriptionStatusActive},
			wantAccess: true,
		},
		{
			name:       "exhausted credits",
			sub:        &models.Subscription{ID: "s", Credits: 0, Status: types.SubscriptionStatusActive},
			wantReason: "Sem créditos disponíveis",
		},
		{
			name:       "manually blocked",
			sub:        &models.Subscription{ID: "s", Credits: 5, Status: types.SubscriptionStatusActive, IsBlocked: true, BlockReason: "teste"},
			wantReason: "teste",
		},
		{
			name:       "cancelled",
			sub:        &models.Subscription{ID: "s", Credits: 5, Status: types.SubscriptionStatusCancelled},
			wantReason: "Assinatura inativa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := newTestGuard(&fakeSource{sub: tt.sub})
			d := guard.Check(context.Background(), adminPrincipal())
			assert.Equal(t, tt.wantAccess, d.HasAccess)
			assert.Equal(t, tt.wantReason, d.Reason)
			require.NotNil(t, d.Snapshot)
			assert.Equal(t, tt.sub.Credits, d.Snapshot.Credits)
		})
	}
}
