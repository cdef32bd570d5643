package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type ProfileVisibility string

const (
	VisibilityPublic  ProfileVisibility = "public"
	VisibilityPrivate ProfileVisibility = "private"
)

type User struct {
	ID                uuid.UUID         `json:"id"`
	Username          string            `json:"username"`
	DisplayName       string            `json:"display_name"`
	AvatarURL         *string           `json:"avatar_url"`
	Verified          bool              `json:"verified"`
	Banned            bool              `json:"-"`
	FollowerCount     int               `json:"follower_count"`
	ProfileVisibility ProfileVisibility `json:"profile_visibility"`
	PasswordHash      string            `json:"-"`
	CreatedAt         time.Time         `json:"created_at"`
}

var ErrUserNotFound = errors.New("user not found")

// EffectiveVisibility treats a missing or malformed privacy record as public.
func (u *User) EffectiveVisibility() ProfileVisibility {
	if u.ProfileVisibility == VisibilityPrivate {
		return VisibilityPrivate
	}
	return VisibilityPublic
}

type Order string

const (
	OrderDefault Order = "default"
	OrderPopular Order = "popular"
	OrderRecent  Order = "recent"
)

type SearchFilters struct {
	VerifiedOnly bool
	CreatedAfter *time.Time
	OrderBy      Order
}

type Repository interface {
	// SearchByText matches text case-insensitively against username or
	// display name, excluding banned accounts.
	SearchByText(ctx context.Context, text string, filters SearchFilters, limit int) ([]User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
}
