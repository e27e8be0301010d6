package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "github.com/rendalink/locador/internal/models"
	types "github.com/rendalink/locador/pkg/types"
)

func testPolicy() types.CreditPolicy {
	return types.DefaultCreditPolicy()
}

func subWith(credits int, status types.SubscriptionStatus, blocked bool, blockReason string) *models.Subscription {
	return &models.Subscription{
		ID:          "sub-1",
		OwnerID:     "owner-1",
		Credits:     credits,
		Status:      status,
		IsBlocked:   blocked,
		BlockReason: blockReason,
	}
}

func TestEvaluateAccess_Precedence(t *testing.T) {
	tests := []struct {
		name       string
		sub        *models.Subscription
		wantAccess bool
		wantReason string
	}{
		{
			name:       "no credits wins over everything else",
			sub:        subWith(0, types.SubscriptionStatusActive, false, ""),
			wantAccess: false,
			wantReason: "Sem créditos disponíveis",
		},
		{
			name:       "no credits reported even when also blocked",
			sub:        subWith(0, types.SubscriptionStatusActive, true, "teste"),
			wantAccess: false,
			wantReason: "Sem créditos disponíveis",
		},
		{
			name:       "blocked uses stored reason",
			sub:        subWith(3, types.SubscriptionStatusActive, true, "teste"),
			wantAccess: false,
			wantReason: "teste",
		},
		{
			name:       "blocked without stored reason falls back to generic",
			sub:        subWith(3, types.SubscriptionStatusActive, true, ""),
			wantAccess: false,
			wantReason: "Conta bloqueada",
		},
		{
			name:       "inactive status checked last",
			sub:        subWith(3, types.SubscriptionStatusCancelled, false, ""),
			wantAccess: false,
			wantReason: "Assinatura inativa",
		},
		{
			name:       "suspended status denies",
			sub:        subWith(3, types.SubscriptionStatusSuspended, false, ""),
			wantAccess: false,
			wantReason: "Assinatura inativa",
		},
		{
			name:       "trial with credits allows",
			sub:        subWith(5, types.SubscriptionStatusTrial, false, ""),
			wantAccess: true,
			wantReason: "",
		},
		{
			name:       "active with credits allows",
			sub:        subWith(1, types.SubscriptionStatusActive, false, ""),
			wantAccess: true,
			wantReason: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := EvaluateAccess(tt.sub, testPolicy())
			assert.Equal(t, tt.wantAccess, d.HasAccess)
			assert.Equal(t, tt.wantReason, d.Reason)
			require.NotNil(t, d.Snapshot)
			assert.Equal(t, tt.sub.ID, d.Snapshot.ID)
			assert.Equal(t, tt.sub.Credits, d.Snapshot.Credits)
		})
	}
}

func TestConsumptionDue(t *testing.T) {
	now := time.Now()
	policy := testPolicy()

	tests := []struct {
		name   string
		anchor time.Duration // how long ago the timer was anchored
		want   bool
	}{
		{"exactly 30 days", 30 * 24 * time.Hour, true},
		{"more than 30 days", 45 * 24 * time.Hour, true},
		{"29 days", 29 * 24 * time.Hour, false},
		{"just under 30 days", 30*24*time.Hour - time.Minute, false},
		{"fresh", time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchored := now.Add(-tt.anchor)
			sub := subWith(3, types.SubscriptionStatusActive, false, "")
			sub.CreditsUpdatedAt = &anchored
			assert.Equal(t, tt.want, ConsumptionDue(sub, now, policy))
		})
	}
}

func TestConsumptionDue_FallsBackToCreatedAt(t *testing.T) {
	now := time.Now()
	sub := subWith(3, types.SubscriptionStatusActive, false, "")
	sub.CreditsUpdatedAt = nil
	sub.CreatedAt = now.Add(-31 * 24 * time.Hour)
	assert.True(t, ConsumptionDue(sub, now, testPolicy()))

	sub.CreatedAt = now.Add(-10 * 24 * time.Hour)
	assert.False(t, ConsumptionDue(sub, now, testPolicy()))
}

func TestApplyConsumption_Decrement(t *testing.T) {
	now := time.Now()
	sub := subWith(5, types.SubscriptionStatusActive, false, "")

	blocked := ApplyConsumption(sub, now, testPolicy())

	assert.False(t, blocked)
	assert.Equal(t, 4, sub.Credits)
	assert.Equal(t, types.SubscriptionStatusActive, sub.Status)
	assert.False(t, sub.IsBlocked)
	require.NotNil(t, sub.CreditsUpdatedAt)
	assert.True(t, sub.CreditsUpdatedAt.Equal(now))
}

func TestApplyConsumption_LastCreditExpiresAndBlocks(t *testing.T) {
	now := time.Now()
	sub := subWith(1, types.SubscriptionStatusActive, false, "")

	blocked := ApplyConsumption(sub, now, testPolicy())

	assert.True(t, blocked)
	assert.Equal(t, 0, sub.Credits)
	assert.Equal(t, types.SubscriptionStatusExpired, sub.Status)
	assert.True(t, sub.IsBlocked)
	assert.Equal(t, "Créditos esgotados", sub.BlockReason)
}

func TestApplyConsumption_ClampsAtZero(t *testing.T) {
	now := time.Now()
	policy := testPolicy()
	policy.CreditsPerPeriod = 3
	sub := subWith(1, types.SubscriptionStatusActive, false, "")

	ApplyConsumption(sub, now, policy)

	assert.Equal(t, 0, sub.Credits)
}

func TestApplyConsumption_AlreadyBlockedKeepsReason(t *testing.T) {
	now := time.Now()
	sub := subWith(1, types.SubscriptionStatusActive, true, "bloqueio manual")

	blocked := ApplyConsumption(sub, now, testPolicy())

	// Not newly blocked; the manual reason stays.
	assert.False(t, blocked)
	assert.Equal(t, types.SubscriptionStatusExpired, sub.Status)
	assert.Equal(t, "bloqueio manual", sub.BlockReason)
}

func TestApplyConsumption_ConfigurableMessages(t *testing.T) {
	now := time.Now()
	policy := testPolicy()
	policy.MsgCreditsExhausted = "credits exhausted"
	sub := subWith(1, types.SubscriptionStatusActive, false, "")

	ApplyConsumption(sub, now, policy)

	assert.Equal(t, "credits exhausted", sub.BlockReason)
}
