package trending

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Synapse-Social-Media/web-sub000/internal/domain/post"
	"github.com/Synapse-Social-Media/web-sub000/pkg/logger"
)

type fakePostRepo struct {
	posts []post.Post
	err   error
}

func (f *fakePostRepo) SearchByText(_ context.Context, _ string, _ post.SearchFilters, limit int) ([]post.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.posts) > limit {
		return f.posts[:limit], nil
	}
	return f.posts, nil
}

func (f *fakePostRepo) FindRecent(_ context.Context, since time.Time, limit int) ([]post.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]post.Post, 0)
	for _, p := range f.posts {
		if p.CreatedAt.Before(since) {
			continue
		}
		out = append(out, p)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type fakeRelationshipRepo struct {
	blocked   map[uuid.UUID]struct{}
	following map[uuid.UUID]struct{}
}

func (f *fakeRelationshipRepo) BlockSet(context.Context, uuid.UUID) (map[uuid.UUID]struct{}, error) {
	return f.blocked, nil
}

func (f *fakeRelationshipRepo) FollowSet(context.Context, uuid.UUID) (map[uuid.UUID]struct{}, error) {
	return f.following, nil
}

func taggedPost(tag string, age time.Duration, visibility post.Visibility) post.Post {
	return post.Post{
		ID:         uuid.New(),
		AuthorID:   uuid.New(),
		Content:    "something about #" + tag,
		Visibility: visibility,
		CreatedAt:  time.Now().UTC().Add(-age),
	}
}

func TestTrending_MinimumOccurrenceThreshold(t *testing.T) {
	posts := []post.Post{
		// two occurrences: below threshold
		taggedPost("rare", time.Hour, post.VisibilityPublic),
		taggedPost("rare", 2*time.Hour, post.VisibilityPublic),
		// three occurrences: included
		taggedPost("common", time.Hour, post.VisibilityPublic),
		taggedPost("common", 2*time.Hour, post.VisibilityPublic),
		taggedPost("common", 3*time.Hour, post.VisibilityPublic),
	}

	uc := NewTrendingUseCase(&fakePostRepo{posts: posts}, &fakeRelationshipRepo{}, logger.NewNop())

	out, err := uc.Execute(context.Background(), TrendingInput{Limit: 10})
	require.NoError(t, err)

	require.Len(t, out.Topics, 1)
	assert.Equal(t, "common", out.Topics[0].Tag)
	assert.Equal(t, 3, out.Topics[0].PostCount)
}

func TestTrending_RecentTagOutranksSpreadTag(t *testing.T) {
	posts := []post.Post{
		taggedPost("hot", time.Hour, post.VisibilityPublic),
		taggedPost("hot", 2*time.Hour, post.VisibilityPublic),
		taggedPost("hot", 3*time.Hour, post.VisibilityPublic),
		taggedPost("slow", time.Hour, post.VisibilityPublic),
		taggedPost("slow", 3*24*time.Hour, post.VisibilityPublic),
		taggedPost("slow", 6*24*time.Hour, post.VisibilityPublic),
	}

	uc := NewTrendingUseCase(&fakePostRepo{posts: posts}, &fakeRelationshipRepo{}, logger.NewNop())

	out, err := uc.Execute(context.Background(), TrendingInput{Limit: 10})
	require.NoError(t, err)

	require.Len(t, out.Topics, 2)
	assert.Equal(t, "hot", out.Topics[0].Tag)
	assert.Greater(t, out.Topics[0].TrendingScore, out.Topics[1].TrendingScore)
}

func TestTrending_AnonymousSeesOnlyPublicPosts(t *testing.T) {
	posts := []post.Post{
		taggedPost("secretclub", time.Hour, post.VisibilityFollowers),
		taggedPost("secretclub", 2*time.Hour, post.VisibilityFollowers),
		taggedPost("secretclub", 3*time.Hour, post.VisibilityFollowers),
		taggedPost("open", time.Hour, post.VisibilityPublic),
		taggedPost("open", 2*time.Hour, post.VisibilityPublic),
		taggedPost("open", 3*time.Hour, post.VisibilityPublic),
	}

	uc := NewTrendingUseCase(&fakePostRepo{posts: posts}, &fakeRelationshipRepo{}, logger.NewNop())

	out, err := uc.Execute(context.Background(), TrendingInput{Authenticated: false, Limit: 10})
	require.NoError(t, err)

	require.Len(t, out.Topics, 1)
	assert.Equal(t, "open", out.Topics[0].Tag)
}

func TestTrending_BlockedAuthorExcluded(t *testing.T) {
	blockedAuthor := uuid.New()

	posts := make([]post.Post, 0)
	for i := 0; i < 3; i++ {
		p := taggedPost("blockedtag", time.Duration(i+1)*time.Hour, post.VisibilityPublic)
		p.AuthorID = blockedAuthor
		posts = append(posts, p)
	}

	uc := NewTrendingUseCase(
		&fakePostRepo{posts: posts},
		&fakeRelationshipRepo{blocked: map[uuid.UUID]struct{}{blockedAuthor: {}}},
		logger.NewNop(),
	)

	out, err := uc.Execute(context.Background(), TrendingInput{
		RequesterID:   uuid.New(),
		Authenticated: true,
		Limit:         10,
	})
	require.NoError(t, err)
	assert.Empty(t, out.Topics)
}

func TestTrending_StoreFailureYieldsEmptyNotError(t *testing.T) {
	uc := NewTrendingUseCase(&fakePostRepo{err: errors.New("store down")}, &fakeRelationshipRepo{}, logger.NewNop())

	out, err := uc.Execute(context.Background(), TrendingInput{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, out.Topics)
}

func TestTrending_LimitTruncates(t *testing.T) {
	posts := make([]post.Post, 0)
	for _, tag := range []string{"one", "two", "three"} {
		for i := 0; i < 3; i++ {
			posts = append(posts, taggedPost(tag, time.Duration(i+1)*time.Hour, post.VisibilityPublic))
		}
	}

	uc := NewTrendingUseCase(&fakePostRepo{posts: posts}, &fakeRelationshipRepo{}, logger.NewNop())

	out, err := uc.Execute(context.Background(), TrendingInput{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out.Topics, 2)
}
