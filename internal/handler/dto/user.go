// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/userapi/userapi/internal/model"

// CreateUserRequest represents the request body for creating a user.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserRequest represents the request body for updating a user.
// Omitted or null fields are left unchanged.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// ToPatch converts the request into a model patch.
func (r UpdateUserRequest) ToPatch() model.UserPatch {
	return model.UserPatch{
		Name:  r.Name,
		Email: r.Email,
	}
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}
