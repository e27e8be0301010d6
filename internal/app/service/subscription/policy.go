package subscription

import (
	"time"

	models "github.com/rendalink/locador/internal/models"
	types "github.com/rendalink/locador/pkg/types"
)

// Decision is the access-check outcome consumed by the admin UI gate.
type Decision struct {
	HasAccess bool      `json:"hasAccess"`
	Reason    string    `json:"reason"`
	Snapshot  *Snapshot `json:"subscription,omitempty"`
}

// Snapshot is the subscription view returned alongside a decision.
type Snapshot struct {
	ID               string                   `json:"id"`
	Status           types.SubscriptionStatus `json:"status"`
	Credits          int                      `json:"credits"`
	IsBlocked        bool                     `json:"is_blocked"`
	BlockReason      string                   `json:"block_reason"`
	CreditsUpdatedAt *time.Time               `json:"credits_updated_at"`
}

func NewSnapshot(sub *models.Subscription) *Snapshot {
	if sub == nil {
		return nil
	}
	return &Snapshot{
		ID:               sub.ID,
		Status:           sub.Status,
		Credits:          sub.Credits,
		IsBlocked:        sub.IsBlocked,
		BlockReason:      sub.BlockReason,
		CreditsUpdatedAt: sub.CreditsUpdatedAt,
	}
}

// EvaluateAccess decides whether the subscription grants product access.
// Denial reasons are reported in a fixed precedence: exhausted credits,
// then the block flag, then a non-usable status.
func EvaluateAccess(sub *models.Subscription, policy types.CreditPolicy) Decision {
	d := Decision{Snapshot: NewSnapshot(sub)}

	hasCredits := sub.Credits > 0
	notBlocked := !sub.IsBlocked
	usableStatus := sub.Status.Usable()

	if hasCredits && notBlocked && usableStatus {
		d.HasAccess = true
		return d
	}

	switch {
	case !hasCredits:
		d.Reason = policy.MsgNoCredits
	case !notBlocked:
		if sub.BlockReason != "" {
			d.Reason = sub.BlockReason
		} else {
			d.Reason = policy.MsgAccountBlocked
		}
	default:
		d.Reason = policy.MsgInactiveSubscription
	}
	return d
}

// ConsumptionDue reports whether a full credit period has elapsed since the
// last credit mutation (or row creation if credits were never touched).
func ConsumptionDue(sub *models.Subscription, now time.Time, policy types.CreditPolicy) bool {
	elapsedDays := int(now.Sub(sub.CreditAnchor()).Hours() / 24)
	return elapsedDays >= policy.PeriodDays
}

// ApplyConsumption mutates sub in place: removes one period's worth of
// credits clamped at zero and, when the balance hits zero, flips the row to
// expired+blocked in the same mutation so no intermediate state is ever
// persisted. The credit timer is re-anchored to now either way.
// Returns true when the subscription became blocked.
func ApplyConsumption(sub *models.Subscription, now time.Time, policy types.CreditPolicy) bool {
	newCredits := sub.Credits - policy.CreditsPerPeriod
	if newCredits < 0 {
		newCredits = 0
	}
	sub.Credits = newCredits

	blocked := false
	if newCredits == 0 {
		sub.Status = types.SubscriptionStatusExpired
		if !sub.IsBlocked {
			sub.IsBlocked = true
			sub.BlockReason = policy.MsgCreditsExhausted
			blocked = true
		}
	}
	sub.CreditsUpdatedAt = &now
	return blocked
}
