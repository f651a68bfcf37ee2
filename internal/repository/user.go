package repository

import (
	"github.com/userapi/userapi/internal/model"
)

// Insert stores a new user. It reports false without modifying the
// store if a user with the same ID already exists.
func (r *Repository) Insert(user model.User) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; exists {
		return false
	}
	r.users[user.ID] = user
	return true
}

// Get returns the user with the given ID.
func (r *Repository) Get(id string) (model.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	return user, ok
}

// List returns every stored user in no particular order.
// An empty store yields an empty, non-nil slice.
func (r *Repository) List() []model.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users
}

// Update applies patch to the user with the given ID and returns the
// result.
func (r *Repository) Update(id string, patch model.UserPatch) (model.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return model.User{}, false
	}
	patch.Apply(&user)
	r.users[id] = user
	return user, true
}

// Remove deletes the user with the given ID, reporting whether it existed.
func (r *Repository) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return false
	}
	delete(r.users, id)
	return true
}
