package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of subject roles. Anything outside the set is
// rejected at the token boundary, never carried through as a bare string.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// ParseRole validates a role string against the closed enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidToken, s)
	}
}

// Identity is the authenticated subject reconstructed from a verified token.
// It is ephemeral: bound to a single request context and never persisted.
type Identity struct {
	SubjectID uuid.UUID
	Role      Role
	ExpiresAt time.Time
}

// User is a registered account. PasswordHash is a bcrypt hash and never
// leaves the repository layer in responses.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
