package models

import "time"

type RepairPriority string

const (
	RepairPriorityLow    RepairPriority = "low"
	RepairPriorityMedium RepairPriority = "medium"
	RepairPriorityHigh   RepairPriority = "high"
)

type RepairStatus string

const (
	RepairStatusOpen       RepairStatus = "open"
	RepairStatusInProgress RepairStatus = "in_progress"
	RepairStatusResolved   RepairStatus = "resolved"
	RepairStatusCancelled  RepairStatus = "cancelled"
)

// RepairRequest is a maintenance ticket opened by a tenant for a property.
type RepairRequest struct {
	ID         string  `gorm:"column:id;type:uuid;primary_key" json:"id"`
	OwnerID    string  `gorm:"column:owner_id;type:uuid;not null;index" json:"owner_id"`
	TenantID   string  `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	PropertyID *string `gorm:"column:property_id;type:uuid;default:null" json:"property_id"`

	Title       string         `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description string         `gorm:"column:description;type:text;not null;default:''" json:"description"`
	Priority    RepairPriority `gorm:"column:priority;type:varchar(16);not null;default:'medium'" json:"priority"`
	Status      RepairStatus   `gorm:"column:status;type:varchar(16);not null;default:'open'" json:"status"`
	ResolvedAt  *time.Time     `gorm:"column:resolved_at;default:null" json:"resolved_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RepairRequest) TableName() string {
	return "repair_request"
}
