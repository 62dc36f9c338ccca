// Package memory holds an in-process UserRepository used as the reference
// adapter in tests and when the service runs with database.driver=memory.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/samber/lo"
	"github.com/shandysiswandi/mailinglist/internal/mailinglist/entity"
)

type UserRepository struct {
	mu    sync.RWMutex
	users []entity.UserData
}

// NewUserRepository seeds the repository with users. The slice is copied.
func NewUserRepository(users []entity.UserData) *UserRepository {
	return &UserRepository{users: slices.Clone(users)}
}

func (r *UserRepository) Add(_ context.Context, user entity.UserData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = append(r.users, user)
	return nil
}

func (r *UserRepository) Exists(_ context.Context, user entity.UserData) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Contains(r.users, user), nil
}

func (r *UserRepository) FindUserByEmail(_ context.Context, email string) (*entity.UserData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, found := lo.Find(r.users, func(u entity.UserData) bool {
		return u.Email == email
	})
	if !found {
		return nil, nil
	}

	return &user, nil
}

func (r *UserRepository) FindAllUsers(_ context.Context) ([]entity.UserData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.users), nil
}

// Ping always succeeds; it lets the health endpoint treat every repository alike.
func (r *UserRepository) Ping(context.Context) error {
	return nil
}
