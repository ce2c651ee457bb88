package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/lostfound-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository keeps users in process memory.
type UserRepository struct {
	mu    sync.RWMutex
	users []model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(_ context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	for _, existing := range r.users {
		switch {
		case existing.Username == user.Username:
			return model.User{}, &model.ConflictError{Field: "username", Value: user.Username}
		case existing.Email == user.Email:
			return model.User{}, &model.ConflictError{Field: "email", Value: user.Email}
		case existing.ID == user.ID:
			return model.User{}, &model.ConflictError{Field: "id", Value: user.ID}
		}
	}

	r.users = append(r.users, user)

	return user, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (model.User, error) {
	return r.find(func(u model.User) bool { return u.ID == id })
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (model.User, error) {
	return r.find(func(u model.User) bool { return u.Username == username })
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (model.User, error) {
	return r.find(func(u model.User) bool { return u.Email == email })
}

func (r *UserRepository) find(match func(model.User) bool) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if match(user) {
			return user, nil
		}
	}

	return model.User{}, model.ErrNotFound
}
