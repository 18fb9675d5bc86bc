package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gatherly/eventsapi/internal/domain/user"
)

type UsersRepo struct {
	mu    sync.RWMutex
	items map[string]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items: make(map[string]user.User),
	}
}

func (r *UsersRepo) Create(_ context.Context, req user.CreateUserRequest, passwordHash string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Email == req.Email {
			return user.User{}, user.ErrEmailTaken
		}
	}

	u := user.NewFromCreateRequest(req, passwordHash)
	r.items[u.ID] = u

	return u, nil
}

func (r *UsersRepo) GetByID(_ context.Context, id string) (user.User, error) {
	r.mu.RLock()
	u, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Email == email {
			return u, nil
		}
	}

	return user.User{}, user.ErrNotFound
}

func (r *UsersRepo) Update(_ context.Context, id string, req user.UpdateUserRequest, passwordHash string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	for otherID, other := range r.items {
		if otherID != id && other.Email == req.Email {
			return user.User{}, user.ErrEmailTaken
		}
	}

	u.Name = req.Name
	u.Email = req.Email
	u.PasswordHash = passwordHash
	u.IsHost = req.IsHost
	u.IsAdmin = req.IsAdmin
	u.UpdatedAt = time.Now().UTC()

	r.items[id] = u

	return u, nil
}

func (r *UsersRepo) Delete(_ context.Context, id string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	delete(r.items, id)

	return u, nil
}
