package models

import "time"

// Recipe is owned by the recipe subsystem; this module only counts and cascades it.
type Recipe struct {
	ID        uint   `gorm:"primaryKey"`
	OwnerID   uint   `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
