package post

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Synapse-Social-Media/web-sub000/internal/domain/user"
)

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityFollowers Visibility = "followers"
	VisibilityPrivate   Visibility = "private"
)

type Post struct {
	ID           uuid.UUID  `json:"id"`
	AuthorID     uuid.UUID  `json:"author_id"`
	Content      string     `json:"content"`
	Visibility   Visibility `json:"visibility"`
	LikeCount    int        `json:"like_count"`
	CommentCount int        `json:"comment_count"`
	CreatedAt    time.Time  `json:"created_at"`
	Author       user.User  `json:"author"`
}

type Order string

const (
	OrderDefault Order = "default"
	OrderPopular Order = "popular"
	OrderRecent  Order = "recent"
)

type SearchFilters struct {
	CreatedAfter *time.Time
	OrderBy      Order
}

type Repository interface {
	// SearchByText matches text as a case-insensitive substring of post
	// content, excluding soft-deleted posts and banned authors. Rows come
	// joined with their author summary.
	SearchByText(ctx context.Context, text string, filters SearchFilters, limit int) ([]Post, error)
	// FindRecent returns posts created at or after since, newest first,
	// with the same exclusions as SearchByText.
	FindRecent(ctx context.Context, since time.Time, limit int) ([]Post, error)
}
