package dto

import "time"

// UpdateUserInput overwrites the editable profile of an account. An empty currency keeps the current one
// and a null planExpiresAt clears the expiry.
type UpdateUserInput struct {
	Name          string     `json:"name" binding:"required"`
	Email         string     `json:"email" binding:"required,email"`
	EmailVerified bool       `json:"emailVerified"`
	BusinessName  *string    `json:"businessName"`
	Plan          string     `json:"plan" binding:"required"`
	PlanExpiresAt *time.Time `json:"planExpiresAt"`
	Currency      string     `json:"currency"`
}

type SetRoleInput struct {
	Role string `json:"role" binding:"required"`
}

// BanUserInput bans permanently when ExpiresInSeconds is omitted.
type BanUserInput struct {
	Reason           string `json:"reason"`
	ExpiresInSeconds *int64 `json:"expiresInSeconds"`
}

type CreateAdminInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type UserResponse struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	EmailVerified bool       `json:"emailVerified"`
	BusinessName  *string    `json:"businessName"`
	Role          string     `json:"role"`
	Plan          string     `json:"plan"`
	PlanExpiresAt *time.Time `json:"planExpiresAt"`
	Currency      string     `json:"currency"`
	Banned        bool       `json:"banned"`
	BanReason     *string    `json:"banReason"`
	BanExpiresAt  *time.Time `json:"banExpiresAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type UserDirectoryResponse struct {
	Users  []UserResponse `json:"users"`
	Admins []UserResponse `json:"admins"`
}
