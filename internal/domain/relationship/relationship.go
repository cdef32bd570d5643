package relationship

import (
	"context"

	"github.com/google/uuid"
)

// Snapshot holds the requester's full block and follow sets, loaded once per
// request and shared read-only across concurrent search providers. It must
// never be reused for a different requester.
type Snapshot struct {
	RequesterID   uuid.UUID
	Authenticated bool

	blocked   map[uuid.UUID]struct{}
	following map[uuid.UUID]struct{}
}

func NewSnapshot(requesterID uuid.UUID, blocked, following map[uuid.UUID]struct{}) *Snapshot {
	if blocked == nil {
		blocked = map[uuid.UUID]struct{}{}
	}
	if following == nil {
		following = map[uuid.UUID]struct{}{}
	}
	return &Snapshot{
		RequesterID:   requesterID,
		Authenticated: true,
		blocked:       blocked,
		following:     following,
	}
}

// AnonymousSnapshot represents a requester with no identity: no blocks, no
// follows, sees public content only.
func AnonymousSnapshot() *Snapshot {
	return &Snapshot{
		blocked:   map[uuid.UUID]struct{}{},
		following: map[uuid.UUID]struct{}{},
	}
}

// BlockedWith reports whether a block exists in either direction between the
// requester and the given user.
func (s *Snapshot) BlockedWith(id uuid.UUID) bool {
	_, ok := s.blocked[id]
	return ok
}

func (s *Snapshot) Follows(id uuid.UUID) bool {
	_, ok := s.following[id]
	return ok
}

type Repository interface {
	// BlockSet returns every user blocked by or blocking the given user.
	BlockSet(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error)
	// FollowSet returns every user the given user follows.
	FollowSet(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error)
}
