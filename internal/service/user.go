// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/userapi/userapi/internal/events"
	"github.com/userapi/userapi/internal/metrics"
	"github.com/userapi/userapi/internal/model"
	"github.com/userapi/userapi/internal/repository"
)

// Service errors.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNameRequired  = errors.New("name is required")
	ErrEmailRequired = errors.New("email is required")
	ErrIDCollision   = errors.New("generated user ID already exists")
)

// EventPublisher emits user lifecycle events without blocking.
type EventPublisher interface {
	PublishAsync(event events.UserEventPayload)
}

// UserService handles user business logic.
type UserService struct {
	repo    *repository.Repository
	events  EventPublisher
	metrics metrics.Recorder
	now     func() time.Time
	newID   func() string
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository, publisher EventPublisher, recorder metrics.Recorder) *UserService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		repo:    repo,
		events:  publisher,
		metrics: recorder,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   NewUserID,
	}
}

// NewUserID returns a fresh user identifier. ULIDs drawn from
// ulid.Make are strictly increasing within the process, so concurrent
// callers never receive the same value.
func NewUserID() string {
	return model.IDPrefix + ulid.Make().String()
}

// CreateUserInput defines input for creating a user.
type CreateUserInput struct {
	Name  string
	Email string
}

// Validate checks that every required field is present.
func (in CreateUserInput) Validate() error {
	if in.Name == "" {
		return ErrNameRequired
	}
	if in.Email == "" {
		return ErrEmailRequired
	}
	return nil
}

// CreateUser validates input and stores a new user.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (model.User, error) {
	if err := input.Validate(); err != nil {
		s.metrics.IncValidationFailed()
		return model.User{}, err
	}

	user := model.User{
		ID:        s.newID(),
		Name:      input.Name,
		Email:     input.Email,
		CreatedAt: s.now(),
	}

	if !s.repo.Insert(user) {
		return model.User{}, ErrIDCollision
	}

	s.metrics.IncUserCreated()
	s.events.PublishAsync(events.NewUserEvent(events.TypeUserCreated, user.ID, user.CreatedAt))

	return user, nil
}

// ListUsers returns all users in no particular order.
func (s *UserService) ListUsers(ctx context.Context) []model.User {
	return s.repo.List()
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (model.User, error) {
	user, ok := s.repo.Get(id)
	if !ok {
		s.metrics.IncUserNotFound()
		return model.User{}, ErrUserNotFound
	}
	return user, nil
}

// UpdateUser overwrites the fields present in patch.
func (s *UserService) UpdateUser(ctx context.Context, id string, patch model.UserPatch) (model.User, error) {
	user, ok := s.repo.Update(id, patch)
	if !ok {
		s.metrics.IncUserNotFound()
		return model.User{}, ErrUserNotFound
	}

	// An empty patch is a read; nothing changed, so nothing is announced.
	if patch.IsEmpty() {
		return user, nil
	}

	s.metrics.IncUserUpdated()
	s.events.PublishAsync(events.NewUserEvent(events.TypeUserUpdated, user.ID, s.now()))

	return user, nil
}

// DeleteUser removes a user by ID.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if !s.repo.Remove(id) {
		s.metrics.IncUserNotFound()
		return ErrUserNotFound
	}

	s.metrics.IncUserDeleted()
	s.events.PublishAsync(events.NewUserEvent(events.TypeUserDeleted, id, s.now()))

	return nil
}

// Count returns the number of stored users.
func (s *UserService) Count() int {
	return s.repo.Len()
}
