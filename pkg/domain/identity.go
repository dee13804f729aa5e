package domain

import (
	"fmt"
	"strings"
)

// Role is a portal authorization role. Kept as a string for easy JSON
// persistence; valid values are the constants below.
type Role string

const (
	RoleStudent   Role = "student"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
	RoleTPO       Role = "tpo"
)

// ValidRole returns true if r is one of the four portal roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleStudent, RoleRecruiter, RoleAdmin, RoleTPO:
		return true
	}
	return false
}

// HomeRoute returns the landing route for a role. Admin and TPO share the
// admin dashboard.
func (r Role) HomeRoute() string {
	switch r {
	case RoleRecruiter:
		return "/recruiter/dashboard"
	case RoleAdmin, RoleTPO:
		return "/admin/dashboard"
	default:
		return "/dashboard"
	}
}

// Identity is the authenticated user as trusted by this client for the
// current session.
type Identity struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Verified bool   `json:"isVerified"`
}

// Validate reports whether the identity is a complete record. Partial or
// malformed identities (e.g. from a stale cache) must be discarded, never
// adopted.
func (id Identity) Validate() error {
	if strings.TrimSpace(id.ID) == "" {
		return fmt.Errorf("identity missing id")
	}
	if strings.TrimSpace(id.Email) == "" {
		return fmt.Errorf("identity missing email")
	}
	if !ValidRole(id.Role) {
		return fmt.Errorf("identity has unknown role %q", id.Role)
	}
	return nil
}
