package services

import "crumbs/models"

// Caller is the authenticated (id, role) pair the session gate vouches for.
type Caller struct {
	ID   uint
	Role models.Role
}

func CallerFor(user *models.User) Caller {
	return Caller{ID: user.ID, Role: user.Role.Normalize()}
}
