package models

import (
	"time"

	"github.com/rendalink/locador/pkg/types"
)

// CreditTransaction is an append-only ledger entry written whenever a
// subscription's credits change. Audit/history display only; policy logic
// never reads it back.
type CreditTransaction struct {
	ID             string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	SubscriptionID string `gorm:"column:subscription_id;type:uuid;not null;index:idx_subscription_id_id,priority:1" json:"subscription_id"`
	OwnerID        string `gorm:"column:owner_id;type:uuid;not null" json:"owner_id"`
	// Amount is signed: negative for consumption/removal, positive for top-ups.
	Amount      int                         `gorm:"column:amount;not null" json:"amount"`
	Type        types.CreditTransactionType `gorm:"column:type;type:varchar(32);not null" json:"type"`
	Description string                      `gorm:"column:description;type:varchar(255);not null;default:''" json:"description"`
	// OperatorID is the system-owner profile behind a manual adjustment; empty
	// for automatic consumption.
	OperatorID string `gorm:"column:operator_id;type:uuid;not null;default:''" json:"operator_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (CreditTransaction) TableName() string {
	return "credit_transaction"
}
