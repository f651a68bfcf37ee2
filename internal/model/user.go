// Package model defines domain entities for the application.
package model

import "time"

// IDPrefix is prepended to every generated user ID.
const IDPrefix = "user_"

// User represents a stored user record.
// ID and CreatedAt are assigned once at creation and never change.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserPatch describes a partial update. Nil fields are left unchanged.
type UserPatch struct {
	Name  *string
	Email *string
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil
}

// Apply overwrites the fields present in the patch.
// ID and CreatedAt are never touched.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}
