package models

import "time"

type User struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"not null"`
	Email         string `gorm:"not null;uniqueIndex"`
	EmailVerified bool   `gorm:"not null;default:false"`
	Password      string `gorm:"not null" json:"-"`
	BusinessName  *string
	Role          Role   `gorm:"type:varchar(20);not null;default:'user'"`
	Plan          string `gorm:"not null;default:'free'"`
	PlanExpiresAt *time.Time
	// Currency is a display label only; amounts are never converted.
	Currency     string `gorm:"type:varchar(8);not null;default:'USD'"`
	Banned       bool   `gorm:"not null;default:false"`
	BanReason    *string
	BanExpiresAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items   []InventoryItem `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;"`
	Recipes []Recipe        `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;"`
}

// IsActive reports whether the account is free of a ban in force at now.
// A ban whose expiry has passed is treated as lifted; nothing clears it in the background.
func (u *User) IsActive(now time.Time) bool {
	if !u.Banned {
		return true
	}
	return u.BanExpiresAt != nil && !now.Before(*u.BanExpiresAt)
}
