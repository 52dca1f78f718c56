package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a row of the users table.
// It carries no persistence tags; column names come from UserSchema.
type User struct {
	UUID          uuid.UUID `json:"uuid"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Phone         *string   `json:"phone,omitempty"`
	AvatarKey     *string   `json:"avatar_key,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateUser holds the columns written when a user is inserted.
// created_at and verified are left to database defaults.
type CreateUser struct {
	UUID      uuid.UUID `json:"uuid"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     *string   `json:"phone,omitempty"`
}

// UpdateUser is a partial update; nil fields are left untouched.
type UpdateUser struct {
	Email         *string `json:"email,omitempty"`
	FirstName     *string `json:"first_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	AvatarKey     *string `json:"avatar_key,omitempty"`
	EmailVerified *bool   `json:"email_verified,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u UpdateUser) IsEmpty() bool {
	return u == UpdateUser{}
}
