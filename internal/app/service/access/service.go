package access

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/rendalink/locador/internal/app/service/subscription"
	models "github.com/rendalink/locador/internal/models"
	"github.com/rendalink/locador/pkg/config"
	"github.com/rendalink/locador/pkg/logctx"
	types "github.com/rendalink/locador/pkg/types"
)

// Denial reasons for the pre-policy paths. The policy-level reasons
// (credits/block/status) come from the configured CreditPolicy.
const (
	ReasonProfileNotFound      = "Profile not found"
	ReasonSubscriptionNotFound = "No subscription found"
	ReasonInternalError        = "Internal server error"
)

// SubscriptionSource is the read path the guard needs. Satisfied by
// *subscription.Service.
type SubscriptionSource interface {
	GetByOwnerID(ctx context.Context, ownerID string) (*models.Subscription, error)
}

// Service is the request-time access guard: given a resolved principal it
// decides whether the admin session may use the product right now. It is
// read-only and safe under arbitrary concurrency.
type Service struct {
	subs   SubscriptionSource
	policy types.CreditPolicy
	log    *zap.SugaredLogger
}

func NewService(cfg *config.Config, subSvc *subscription.Service, log *zap.SugaredLogger) *Service {
	return newService(subSvc, cfg.Policy, log)
}

func newService(subs SubscriptionSource, policy types.CreditPolicy, log *zap.SugaredLogger) *Service {
	return &Service{subs: subs, policy: policy.Normalize(), log: log}
}

// Check evaluates the caller's access. It never returns an error: every
// failure mode, including unexpected store errors, collapses into a denial
// so the gate fails closed.
func (s *Service) Check(ctx context.Context, principal *types.Principal) *subscription.Decision {
	if principal == nil || principal.ProfileID == "" {
		return &subscription.Decision{HasAccess: false, Reason: ReasonProfileNotFound}
	}

	// The gate only restricts admins; every other role passes through.
	if principal.Role != types.RoleAdmin {
		return &subscription.Decision{HasAccess: true}
	}

	sub, err := s.subs.GetByOwnerID(ctx, principal.ProfileID)
	if err != nil {
		if errors.Is(err, subscription.ErrNotFound) {
			return &subscription.Decision{HasAccess: false, Reason: ReasonSubscriptionNotFound}
		}
		logctx.FromCtx(ctx, s.log).Errorw("access check failed", "profile_id", principal.ProfileID, "err", err)
		return &subscription.Decision{HasAccess: false, Reason: ReasonInternalError}
	}

	d := subscription.EvaluateAccess(sub, s.policy)
	return &d
}
