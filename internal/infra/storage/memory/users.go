package memory

import (
	"context"
	"strings"
	"sync"

	domainuser "stayhub/internal/domain/user"
)

// UserDirectory keeps user records in memory. It plays the external user
// store in tests and standalone runs.
type UserDirectory struct {
	mu   sync.RWMutex
	byID map[domainuser.ID]*domainuser.User
}

func NewUserDirectory() *UserDirectory {
	return &UserDirectory{byID: make(map[domainuser.ID]*domainuser.User)}
}

func (d *UserDirectory) ByID(ctx context.Context, id domainuser.ID) (*domainuser.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if user, ok := d.byID[id]; ok {
		return cloneUser(user), nil
	}
	return nil, domainuser.ErrNotFound
}

func (d *UserDirectory) Exists(ctx context.Context, id domainuser.ID) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.byID[id]
	return ok, nil
}

// Put registers or replaces a user record.
func (d *UserDirectory) Put(ctx context.Context, user *domainuser.User) error {
	if user == nil || strings.TrimSpace(string(user.ID)) == "" {
		return domainuser.ErrNotFound
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byID[user.ID] = cloneUser(user)
	return nil
}

func cloneUser(u *domainuser.User) *domainuser.User {
	if u == nil {
		return nil
	}
	copyUser := *u
	copyUser.Roles = append([]domainuser.Role(nil), u.Roles...)
	return &copyUser
}

var _ domainuser.Directory = (*UserDirectory)(nil)
