package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	models "github.com/rendalink/locador/internal/models"
	"github.com/rendalink/locador/pkg/config"
	"github.com/rendalink/locador/pkg/logctx"
	"github.com/rendalink/locador/pkg/tool"
	types "github.com/rendalink/locador/pkg/types"
)

// ErrNotFound is returned when a subscription or related row does not exist.
var ErrNotFound = errors.New("subscription not found")

type Service struct {
	cfg *config.Config
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, db: db, log: log}
}

// Policy returns the effective credit policy.
func (s *Service) Policy() types.CreditPolicy {
	return s.cfg.Policy.Normalize()
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &sub, nil
}

func (s *Service) GetByOwnerID(ctx context.Context, ownerID string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subscription by owner: %w", err)
	}
	return &sub, nil
}

type ScanSubscriptionsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanSubscriptionsResponse struct {
	Items []*models.Subscription `json:"items"`
	Total int64                  `json:"total"`
}

// filtersAnd combines multiple CommonFilter into a single clause.Expression
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

// Scan implements paginated listing with filters for the system-owner console.
func (s *Service) Scan(ctx context.Context, req *ScanSubscriptionsRequest) (*ScanSubscriptionsResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.Subscription{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	var rows []*models.Subscription
	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if req.SortBy != "" {
		q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return &ScanSubscriptionsResponse{Items: rows, Total: total}, nil
}

// AdjustCredits applies a signed manual credit adjustment on behalf of a
// system owner. The balance is clamped at zero and the credit timer is
// re-anchored; a ledger entry records the change.
func (s *Service) AdjustCredits(ctx context.Context, subscriptionID string, amount int, description, operatorID string) (*models.Subscription, error) {
	if amount == 0 {
		return nil, fmt.Errorf("amount must be non-zero")
	}

	var sub models.Subscription
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", subscriptionID).First(&sub).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load subscription: %w", err)
		}
		before := sub

		now := time.Now()
		newCredits := sub.Credits + amount
		if newCredits < 0 {
			// record the effective delta, not the requested one
			amount = -sub.Credits
			newCredits = 0
		}
		sub.Credits = newCredits
		sub.CreditsUpdatedAt = &now

		if err := tx.Save(&sub).Error; err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		ledger := &models.CreditTransaction{
			ID:             tool.GenerateUUIDV7(),
			SubscriptionID: sub.ID,
			OwnerID:        sub.OwnerID,
			Amount:         amount,
			Type:           types.CreditTransactionTypeManualAdjustment,
			Description:    description,
			OperatorID:     operatorID,
		}
		if err := tx.Create(ledger).Error; err != nil {
			return fmt.Errorf("failed to append credit transaction: %w", err)
		}

		s.writeLog(ctx, &before, &sub, types.SubscriptionChangeReasonManualAdjustment, datatypes.JSONMap{"operator_id": operatorID})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Block suspends a subscription with a human-readable reason.
func (s *Service) Block(ctx context.Context, subscriptionID, reason, operatorID string) (*models.Subscription, error) {
	if reason == "" {
		reason = s.Policy().MsgAccountBlocked
	}
	return s.setBlocked(ctx, subscriptionID, true, reason, types.SubscriptionStatusSuspended, types.SubscriptionChangeReasonBlock, operatorID)
}

// Unblock lifts a block and reactivates the subscription.
func (s *Service) Unblock(ctx context.Context, subscriptionID, operatorID string) (*models.Subscription, error) {
	return s.setBlocked(ctx, subscriptionID, false, "", types.SubscriptionStatusActive, types.SubscriptionChangeReasonUnblock, operatorID)
}

func (s *Service) setBlocked(ctx context.Context, subscriptionID string, blocked bool, reason string, status types.SubscriptionStatus, changeReason types.SubscriptionChangeReason, operatorID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", subscriptionID).First(&sub).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load subscription: %w", err)
		}
		before := sub

		sub.IsBlocked = blocked
		sub.BlockReason = reason
		sub.Status = status
		if err := tx.Save(&sub).Error; err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		s.writeLog(ctx, &before, &sub, changeReason, datatypes.JSONMap{"operator_id": operatorID})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListTransactions returns the credit ledger for a subscription, newest first.
func (s *Service) ListTransactions(ctx context.Context, subscriptionID string, from, size int) ([]*models.CreditTransaction, error) {
	if size <= 0 {
		size = 50
	}
	if from < 0 {
		from = 0
	}
	var rows []*models.CreditTransaction
	if err := s.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("created_at desc").
		Offset(from).Limit(size).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list credit transactions: %w", err)
	}
	return rows, nil
}

// ListConsumable returns the rows the consumption job may touch: active
// subscriptions holding at least one credit. Zero-credit rows are never
// selected, so an exhausted subscription cannot be decremented twice.
func (s *Service) ListConsumable(ctx context.Context) ([]*models.Subscription, error) {
	var rows []*models.Subscription
	if err := s.db.WithContext(ctx).
		Where("status = ? AND credits > 0", types.SubscriptionStatusActive).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list consumable subscriptions: %w", err)
	}
	return rows, nil
}

// PersistConsumption saves a consumed subscription together with its ledger
// entry in one transaction, keeping the expired/blocked flip atomic with the
// decrement.
func (s *Service) PersistConsumption(ctx context.Context, before, after *models.Subscription, ledger *models.CreditTransaction) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(after).Error; err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}
		if ledger.ID == "" {
			ledger.ID = tool.GenerateUUIDV7()
		}
		if err := tx.Create(ledger).Error; err != nil {
			return fmt.Errorf("failed to append credit transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.writeLog(ctx, before, after, types.SubscriptionChangeReasonConsumption, datatypes.JSONMap{"trigger": "consume_credits_job"})
	return nil
}

// writeLog persists a before/after snapshot asynchronously; errors are logged
// but never surfaced to the caller.
func (s *Service) writeLog(ctx context.Context, before, after *models.Subscription, reason types.SubscriptionChangeReason, extra datatypes.JSONMap) {
	var b, a *models.Subscription
	if before != nil {
		cp := *before
		b = &cp
	}
	if after != nil {
		cp := *after
		a = &cp
	}
	go func() {
		entry := &models.SubscriptionLog{
			ID:      tool.GenerateUUIDV7(),
			OwnerID: a.OwnerID,
			Reason:  reason,
			Before:  datatypes.NewJSONType(b),
			After:   datatypes.NewJSONType(a),
			Extra:   extra,
		}
		if err := s.db.Save(entry).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save subscription log: %v", err)
		}
	}()
}
