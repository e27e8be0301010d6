package models

import (
	"time"

	"github.com/rendalink/locador/pkg/types"
)

// Profile links an authenticated identity to a platform role. One row per
// user of the identity provider.
type Profile struct {
	ID     string     `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID string     `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex" json:"user_id"`
	Name   string     `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email  string     `gorm:"column:email;type:varchar(255);not null" json:"email"`
	Role   types.Role `gorm:"column:role;type:varchar(32);not null" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profile"
}
