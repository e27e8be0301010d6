package models

import "time"

// Property is a rental unit managed by an owner.
type Property struct {
	ID      string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	OwnerID string `gorm:"column:owner_id;type:uuid;not null;index" json:"owner_id"`
	Name    string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Address string `gorm:"column:address;type:varchar(255);not null" json:"address"`
	City    string `gorm:"column:city;type:varchar(128);not null;default:''" json:"city"`
	State   string `gorm:"column:state;type:varchar(64);not null;default:''" json:"state"`
	// RentAmount is the monthly rent in cents.
	RentAmount int64  `gorm:"column:rent_amount;type:bigint;not null;default:0" json:"rent_amount"`
	Bedrooms   int    `gorm:"column:bedrooms;not null;default:0" json:"bedrooms"`
	Notes      string `gorm:"column:notes;type:text;not null;default:''" json:"notes"`
	IsActive   bool   `gorm:"column:is_active;not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Property) TableName() string {
	return "property"
}
