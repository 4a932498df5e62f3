// Package memory provides process-local stores used when no database is configured.
package memory

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]model.User
	byEmail map[string]uuid.UUID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[uuid.UUID]model.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func cloneUser(u model.User) model.User {
	u.PasswordHash = bytes.Clone(u.PasswordHash)
	return u
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *UserRepository) Create(_ context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(user.Email)
	if _, exists := r.byEmail[key]; exists {
		return model.User{}, model.ErrDuplicateEmail
	}

	user = cloneUser(user)
	r.byID[user.ID] = user
	r.byEmail[key] = user.ID
	return cloneUser(user), nil
}

func (r *UserRepository) Update(_ context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[user.ID]
	if !ok {
		return model.User{}, model.ErrNotFound
	}

	oldKey, newKey := emailKey(current.Email), emailKey(user.Email)
	if oldKey != newKey {
		if _, taken := r.byEmail[newKey]; taken {
			return model.User{}, model.ErrDuplicateEmail
		}
		delete(r.byEmail, oldKey)
		r.byEmail[newKey] = user.ID
	}

	current.Name = user.Name
	current.Email = user.Email
	current.AvatarKey = user.AvatarKey
	current.UpdatedAt = user.UpdatedAt
	r.byID[user.ID] = current

	return cloneUser(current), nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash []byte, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return model.ErrNotFound
	}
	current.PasswordHash = bytes.Clone(passwordHash)
	current.UpdatedAt = updatedAt
	r.byID[id] = current
	return nil
}
