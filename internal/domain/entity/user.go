package entity

import (
	"strings"
	"time"

	"github.com/invoicedesk/invoicedesk-api/internal/domain"
)

// Valid user roles.
const (
	RoleAdmin   = "admin"
	RoleRegular = "regular"
)

// ValidRole reports whether r is a known role.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleRegular
}

// User is an operator of the system. Users are global, not company-scoped:
// the company boundary applies to ledger data, not to accounts.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, never the plain password after persisting
	FirstName    string
	LastName     string
	Phone        string
	Role         string
	Active       bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the user's invariants before persisting.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return domain.NewValidationError("username", "username is required")
	}
	if len(u.Username) < 3 {
		return domain.NewValidationError("username", "username must be at least 3 characters")
	}
	if strings.TrimSpace(u.Email) == "" {
		return domain.NewValidationError("email", "email is required")
	}
	if !validEmail(u.Email) {
		return domain.NewValidationError("email", "invalid email format")
	}
	if !ValidRole(u.Role) {
		return domain.NewValidationError("role", "invalid role")
	}
	return nil
}

// FullName joins first and last name, falling back to the username.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
