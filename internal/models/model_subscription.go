package models

import (
	"time"

	"github.com/rendalink/locador/pkg/types"
)

// Subscription is the billing/access record governing one owner's platform
// usage. Credits buy usage time: one credit is nominally 30 days.
type Subscription struct {
	ID      string                   `gorm:"column:id;type:uuid;primary_key" json:"id"`
	OwnerID string                   `gorm:"column:owner_id;type:uuid;not null;uniqueIndex" json:"owner_id"`
	Credits int                      `gorm:"column:credits;not null;default:0" json:"credits"`
	Status  types.SubscriptionStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	// CreditsUpdatedAt anchors the 30-day consumption timer. Nil until the
	// first credit mutation; the consumption job falls back to CreatedAt.
	CreditsUpdatedAt *time.Time `gorm:"column:credits_updated_at;default:null" json:"credits_updated_at"`

	IsBlocked   bool   `gorm:"column:is_blocked;not null;default:false" json:"is_blocked"`
	BlockReason string `gorm:"column:block_reason;type:varchar(255);not null;default:''" json:"block_reason"`

	PlanType types.PlanType `gorm:"column:plan_type;type:varchar(32);not null;default:'basic'" json:"plan_type"`
	// MonthlyAmount is the plan price in cents.
	MonthlyAmount int64 `gorm:"column:monthly_amount;type:bigint;not null;default:0" json:"monthly_amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscription"
}

// CreditAnchor is the reference time for the consumption timer.
func (s *Subscription) CreditAnchor() time.Time {
	if s.CreditsUpdatedAt != nil {
		return *s.CreditsUpdatedAt
	}
	return s.CreatedAt
}
