package relationship

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Synapse-Social-Media/web-sub000/internal/domain/post"
	"github.com/Synapse-Social-Media/web-sub000/internal/domain/user"
)

func idSet(ids ...uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func TestCanSeeUser_BlockWinsOverEverything(t *testing.T) {
	requester := uuid.New()
	blocked := uuid.New()

	snap := NewSnapshot(requester, idSet(blocked), idSet(blocked))

	candidate := &user.User{ID: blocked, ProfileVisibility: user.VisibilityPublic}
	assert.False(t, CanSeeUser(snap, candidate), "a block must hide even public, followed profiles")
}

func TestCanSeeUser_SelfIsAlwaysVisible(t *testing.T) {
	requester := uuid.New()
	snap := NewSnapshot(requester, nil, nil)

	candidate := &user.User{ID: requester, ProfileVisibility: user.VisibilityPrivate}
	assert.True(t, CanSeeUser(snap, candidate))
}

func TestCanSeeUser_PrivateProfileNeedsFollow(t *testing.T) {
	requester := uuid.New()
	private := uuid.New()

	notFollowing := NewSnapshot(requester, nil, nil)
	following := NewSnapshot(requester, nil, idSet(private))

	candidate := &user.User{ID: private, ProfileVisibility: user.VisibilityPrivate}
	assert.False(t, CanSeeUser(notFollowing, candidate))
	assert.True(t, CanSeeUser(following, candidate))
}

func TestCanSeeUser_MissingPrivacyRecordIsPublic(t *testing.T) {
	snap := NewSnapshot(uuid.New(), nil, nil)

	candidate := &user.User{ID: uuid.New()}
	assert.True(t, CanSeeUser(snap, candidate))
}

func TestCanSeePost_Tiers(t *testing.T) {
	requester := uuid.New()
	author := uuid.New()

	stranger := NewSnapshot(requester, nil, nil)
	follower := NewSnapshot(requester, nil, idSet(author))
	self := NewSnapshot(author, nil, nil)

	tests := []struct {
		name       string
		visibility post.Visibility
		snap       *Snapshot
		want       bool
	}{
		{"public visible to stranger", post.VisibilityPublic, stranger, true},
		{"followers hidden from stranger", post.VisibilityFollowers, stranger, false},
		{"followers visible to follower", post.VisibilityFollowers, follower, true},
		{"followers visible to author", post.VisibilityFollowers, self, true},
		{"private hidden from follower", post.VisibilityPrivate, follower, false},
		{"private visible to author", post.VisibilityPrivate, self, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &post.Post{ID: uuid.New(), AuthorID: author, Visibility: tt.visibility}
			assert.Equal(t, tt.want, CanSeePost(tt.snap, p))
		})
	}
}

func TestCanSeePost_BlockedAuthorHidesPublicPost(t *testing.T) {
	requester := uuid.New()
	author := uuid.New()
	snap := NewSnapshot(requester, idSet(author), nil)

	p := &post.Post{ID: uuid.New(), AuthorID: author, Visibility: post.VisibilityPublic}
	assert.False(t, CanSeePost(snap, p))
}

func TestCanSeePost_Anonymous(t *testing.T) {
	snap := AnonymousSnapshot()
	author := uuid.New()

	assert.True(t, CanSeePost(snap, &post.Post{AuthorID: author, Visibility: post.VisibilityPublic}))
	assert.False(t, CanSeePost(snap, &post.Post{AuthorID: author, Visibility: post.VisibilityFollowers}))
	assert.False(t, CanSeePost(snap, &post.Post{AuthorID: author, Visibility: post.VisibilityPrivate}))
}
