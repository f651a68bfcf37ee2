// Package repository provides the in-memory user store.
package repository

import (
	"sync"

	"github.com/userapi/userapi/internal/model"
)

// Repository is a mutex-guarded map of user ID to user record.
// Every method holds the lock for exactly one map operation and
// returns copies, so callers never share a record with the store.
type Repository struct {
	mu    sync.Mutex
	users map[string]model.User
}

// New creates an empty Repository.
func New() *Repository {
	return &Repository{
		users: make(map[string]model.User),
	}
}

// Len returns the number of stored users.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}
