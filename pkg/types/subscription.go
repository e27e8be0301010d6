package types

type SubscriptionStatus string

const (
	SubscriptionStatusTrial     SubscriptionStatus = "trial"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusSuspended SubscriptionStatus = "suspended"
)

// Usable reports whether the status grants product access on its own.
// Credits and the block flag are evaluated separately.
func (s SubscriptionStatus) Usable() bool {
	return s == SubscriptionStatusActive || s == SubscriptionStatusTrial
}

type SubscriptionChangeReason string

const (
	SubscriptionChangeReasonConsumption      SubscriptionChangeReason = "monthly_consumption"
	SubscriptionChangeReasonManualAdjustment SubscriptionChangeReason = "manual_adjustment"
	SubscriptionChangeReasonBlock            SubscriptionChangeReason = "block"
	SubscriptionChangeReasonUnblock          SubscriptionChangeReason = "unblock"
)

type CreditTransactionType string

const (
	CreditTransactionTypeMonthlyConsumption CreditTransactionType = "monthly_consumption"
	CreditTransactionTypeManualAdjustment   CreditTransactionType = "manual_adjustment"
)

type PlanType string

const (
	PlanTypeBasic        PlanType = "basic"
	PlanTypeProfessional PlanType = "professional"
)
