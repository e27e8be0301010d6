package models

import "time"

// Tenant is a renter registered under an owner, optionally assigned to a
// property. CPF is the Brazilian taxpayer id tenants use to identify
// themselves on the tenant portal.
type Tenant struct {
	ID      string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	OwnerID string `gorm:"column:owner_id;type:uuid;not null;uniqueIndex:unique_owner_cpf,priority:1" json:"owner_id"`
	// ProfileID links the tenant to a platform login when one exists.
	ProfileID  *string `gorm:"column:profile_id;type:uuid;default:null;index" json:"profile_id"`
	PropertyID *string `gorm:"column:property_id;type:uuid;default:null" json:"property_id"`
	Name       string  `gorm:"column:name;type:varchar(255);not null" json:"name"`
	CPF        string  `gorm:"column:cpf;type:varchar(14);not null;uniqueIndex:unique_owner_cpf,priority:2" json:"cpf"`
	Email      string  `gorm:"column:email;type:varchar(255);not null;default:''" json:"email"`
	Phone      string  `gorm:"column:phone;type:varchar(32);not null;default:''" json:"phone"`
	// RentDueDay is the day of month rent falls due (1..28).
	RentDueDay int  `gorm:"column:rent_due_day;not null;default:5" json:"rent_due_day"`
	IsActive   bool `gorm:"column:is_active;not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Tenant) TableName() string {
	return "tenant"
}
