package models

import "strings"

// Role is an ordered permission level: user < admin < superadmin.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

var roleRank = map[Role]int{
	RoleUser:       1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

// ParseRole normalizes a stored or submitted role. ok is false for unknown values.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.TrimSpace(strings.ToLower(s)))
	if r == "" {
		return RoleUser, true
	}
	_, ok := roleRank[r]
	return r, ok
}

// Normalize maps unknown or empty roles onto RoleUser.
func (r Role) Normalize() Role {
	parsed, ok := ParseRole(string(r))
	if !ok {
		return RoleUser
	}
	return parsed
}

// AtLeast reports whether r ranks at or above other.
func (r Role) AtLeast(other Role) bool {
	return roleRank[r.Normalize()] >= roleRank[other.Normalize()]
}

// IsStaff reports whether r belongs to the admin class (admin or superadmin).
func (r Role) IsStaff() bool {
	return r.AtLeast(RoleAdmin)
}

// CanManage reports whether an actor holding r may act on an account holding target.
// Superadmins manage everyone; admins manage plain users only.
func (r Role) CanManage(target Role) bool {
	switch r.Normalize() {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		return !target.IsStaff()
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
