package model

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
// Emails are stored lowercased; lookups expect a normalized email.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) (User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash []byte, updatedAt time.Time) error
}

// User represents a registered user with authentication material.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash []byte
	AvatarKey    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterParams contains parameters to register a user.
type RegisterParams struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=8,max=72"`
}

// ProfileUpdate is a partial update of user profile fields. Nil fields are left untouched.
type ProfileUpdate struct {
	Name  *string
	Email *string
}

// Session is an issued bearer token bound to a user.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      User
}

// PublicUser is a user without secrets, safe to return to clients.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public strips authentication material from the user. avatarURL is used when
// the user has an uploaded avatar; otherwise an initials avatar is generated.
func (u User) Public(avatarURL string) PublicUser {
	avatar := avatarURL
	if u.AvatarKey == "" || avatar == "" {
		avatar = "https://ui-avatars.com/api/?name=" + url.QueryEscape(u.Name) + "&background=random"
	}

	return PublicUser{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
