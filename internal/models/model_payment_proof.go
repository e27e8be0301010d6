package models

import "time"

type PaymentProofStatus string

const (
	PaymentProofStatusPending  PaymentProofStatus = "pending"
	PaymentProofStatusApproved PaymentProofStatus = "approved"
	PaymentProofStatusRejected PaymentProofStatus = "rejected"
)

// PaymentProof is a tenant-submitted proof of rent payment. The file itself
// lives in external storage; only the URL is persisted here.
type PaymentProof struct {
	ID       string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	OwnerID  string `gorm:"column:owner_id;type:uuid;not null;index" json:"owner_id"`
	TenantID string `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	// ReferenceMonth identifies the rent period, formatted "2006-01".
	ReferenceMonth string `gorm:"column:reference_month;type:varchar(7);not null" json:"reference_month"`
	// Amount paid, in cents.
	Amount  int64  `gorm:"column:amount;type:bigint;not null" json:"amount"`
	FileURL string `gorm:"column:file_url;type:varchar(512);not null" json:"file_url"`

	Status     PaymentProofStatus `gorm:"column:status;type:varchar(16);not null;default:'pending'" json:"status"`
	ReviewedAt *time.Time         `gorm:"column:reviewed_at;default:null" json:"reviewed_at"`
	ReviewNote string             `gorm:"column:review_note;type:varchar(255);not null;default:''" json:"review_note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PaymentProof) TableName() string {
	return "payment_proof"
}
