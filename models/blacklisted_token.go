package models

import "time"

// BlacklistedToken records a logged-out access token until it would have expired anyway.
type BlacklistedToken struct {
	ID        uint   `gorm:"primaryKey"`
	Token     string `gorm:"not null;unique;index"`
	ExpiresAt int64  `gorm:"not null;index"`
	CreatedAt time.Time
}
