package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"student_dashboard_backend/internal/model"
	"student_dashboard_backend/internal/util"
)

type UserRepository struct {
	mu    sync.RWMutex
	seq   sequence
	users map[uint]model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uint]model.User)}
}

func (r *UserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return util.ErrEmailRegistered
		}
	}
	now := nowFunc()
	user.ID = r.seq.nextID()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id uint) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, util.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}
	return nil, util.ErrUserNotFound
}

func (r *UserRepository) UpdateLastLogin(_ context.Context, id uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return util.ErrUserNotFound
	}
	u.LastLogin = &at
	r.users[id] = u
	return nil
}
