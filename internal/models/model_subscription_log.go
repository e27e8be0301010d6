package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/rendalink/locador/pkg/types"
)

// SubscriptionLog records subscription state changes with before/after
// snapshots. Use case: troubleshooting.
type SubscriptionLog struct {
	ID      string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	OwnerID string `gorm:"column:owner_id;type:uuid;index:idx_owner_id_id,priority:1;not null"`
	// Reason is the change reason.
	Reason types.SubscriptionChangeReason `gorm:"column:reason;type:varchar(64);not null"`
	// Before stores subscription data before the change in JSON format.
	Before datatypes.JSONType[*Subscription] `gorm:"column:before;type:jsonb;default:'null'"`
	// After stores subscription data after the change in JSON format.
	After datatypes.JSONType[*Subscription] `gorm:"column:after;type:jsonb;default:'null'"`
	// Extra stores additional context such as operator id and trigger source.
	Extra     datatypes.JSONMap `gorm:"column:extra;type:jsonb;default:'{}'"`
	CreatedAt time.Time
}

func (SubscriptionLog) TableName() string {
	return "subscription_log"
}
