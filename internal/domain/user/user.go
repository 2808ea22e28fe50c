package user

import (
	"context"
	"strings"
	"time"

	"stayhub/internal/domain/shared/fault"
)

var (
	ErrNotFound = fault.New(fault.NotFound, "user: not found")
)

type ID string

type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
)

// User is consumed, not owned, by the booking engine: the directory behind
// it is an external collaborator.
type User struct {
	ID        ID
	Email     string
	Name      string
	Enabled   bool
	Roles     []Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Directory is the narrow read contract against the external user store.
type Directory interface {
	ByID(ctx context.Context, id ID) (*User, error)
	Exists(ctx context.Context, id ID) (bool, error)
}

// CanBook reports whether the user may act as a guest: the account must be
// enabled and carry the guest role.
func (u *User) CanBook() bool {
	return u != nil && u.Enabled && u.HasRole(RoleGuest)
}

func (u *User) HasRole(role Role) bool {
	role = normalizeRole(role)
	if role == "" {
		return false
	}
	for _, current := range u.Roles {
		if normalizeRole(current) == role {
			return true
		}
	}
	return false
}

func normalizeRole(role Role) Role {
	return Role(strings.ToLower(strings.TrimSpace(string(role))))
}
