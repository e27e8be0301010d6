package billingjob

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rendalink/locador/internal/app/service/subscription"
	models "github.com/rendalink/locador/internal/models"
	"github.com/rendalink/locador/pkg/config"
	"github.com/rendalink/locador/pkg/logctx"
	types "github.com/rendalink/locador/pkg/types"
)

// SubscriptionStore is the persistence surface the job needs. Satisfied by
// *subscription.Service.
type SubscriptionStore interface {
	ListConsumable(ctx context.Context) ([]*models.Subscription, error)
	PersistConsumption(ctx context.Context, before, after *models.Subscription, ledger *models.CreditTransaction) error
}

// Summary reports one job run.
type Summary struct {
	ProcessedCount int    `json:"processedCount"`
	BlockedCount   int    `json:"blockedCount"`
	Message        string `json:"message"`
}

// Service is the credit consumption job: it scans active subscriptions with
// a positive balance and removes one credit from each whose 30-day period
// has elapsed, expiring and blocking those that hit zero.
type Service struct {
	store  SubscriptionStore
	policy types.CreditPolicy
	log    *zap.SugaredLogger
	nowFn  func() time.Time
}

func NewService(cfg *config.Config, subSvc *subscription.Service, log *zap.SugaredLogger) *Service {
	return newService(subSvc, cfg.Policy, log)
}

func newService(store SubscriptionStore, policy types.CreditPolicy, log *zap.SugaredLogger) *Service {
	return &Service{store: store, policy: policy.Normalize(), log: log, nowFn: time.Now}
}

// Run executes one batch pass. Per-row failures are logged and skipped; the
// batch keeps going and still reports success, so a partial run is visible
// only in the logs and the counts.
func (s *Service) Run(ctx context.Context) (*Summary, error) {
	log := logctx.FromCtx(ctx, s.log)

	subs, err := s.store.ListConsumable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	now := s.nowFn()
	summary := &Summary{}

	for _, sub := range subs {
		if !subscription.ConsumptionDue(sub, now, s.policy) {
			continue
		}

		before := *sub
		after := *sub
		blocked := subscription.ApplyConsumption(&after, now, s.policy)

		ledger := &models.CreditTransaction{
			SubscriptionID: after.ID,
			OwnerID:        after.OwnerID,
			Amount:         -s.policy.CreditsPerPeriod,
			Type:           types.CreditTransactionTypeMonthlyConsumption,
			Description:    fmt.Sprintf("Consumo automático de créditos após %d dias", s.policy.PeriodDays),
		}

		if err := s.store.PersistConsumption(ctx, &before, &after, ledger); err != nil {
			log.Errorw("failed to consume credits, skipping subscription",
				"subscription_id", sub.ID, "owner_id", sub.OwnerID, "err", err)
			continue
		}

		summary.ProcessedCount++
		if blocked {
			summary.BlockedCount++
			log.Infow("subscription exhausted credits and was blocked",
				"subscription_id", after.ID, "owner_id", after.OwnerID)
		}
	}

	summary.Message = fmt.Sprintf("%d subscriptions processed, %d blocked", summary.ProcessedCount, summary.BlockedCount)
	log.Infow("credit consumption job finished",
		"scanned", len(subs), "processed", summary.ProcessedCount, "blocked", summary.BlockedCount)
	return summary, nil
}
