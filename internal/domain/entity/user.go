package entity

import "time"

// Valid roles for User.
const (
	RoleDirector    = "director"
	RoleManager     = "manager"
	RoleProcurement = "procurement"
	RoleAgent       = "agent"
)

// Operating branches. The branch is the tenancy key for inventory and reporting.
const (
	Branch1 = "branch1"
	Branch2 = "branch2"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleDirector, RoleManager, RoleProcurement, RoleAgent:
		return true
	}
	return false
}

// ValidBranch reports whether branch is one of the two operating branches.
func ValidBranch(branch string) bool {
	return branch == Branch1 || branch == Branch2
}

// User represents a system user. Email is unique case-insensitive (stored
// lowercase); PasswordHash is bcrypt and never serialized to clients.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string // director, manager, procurement, agent
	Branch       string // branch1, branch2
	Contact      string // phone, 10-15 digits
	Photo        string // optional profile photo URL
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
