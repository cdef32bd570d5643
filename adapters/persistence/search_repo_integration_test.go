package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/Synapse-Social-Media/web-sub000/internal/domain/post"
	"github.com/Synapse-Social-Media/web-sub000/internal/domain/relationship"
	"github.com/Synapse-Social-Media/web-sub000/internal/domain/user"
)

type SearchRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	userRepo    user.Repository
	postRepo    post.Repository
	relRepo     relationship.Repository

	alice uuid.UUID
	bob   uuid.UUID
	carol uuid.UUID
}

func (s *SearchRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.userRepo = NewPostgresUserRepo(pool)
	s.postRepo = NewPostgresPostRepo(pool)
	s.relRepo = NewPostgresRelationshipRepo(pool)

	s.alice = s.seedUser(ctx, "alice", "Alice Gopher", true, false, 500)
	s.bob = s.seedUser(ctx, "bob_gopher", "Bob", false, false, 10)
	s.carol = s.seedUser(ctx, "carol", "Carol Banned", false, true, 9000)

	_, err = pool.Exec(ctx,
		`INSERT INTO privacy_settings (user_id, profile_visibility) VALUES ($1, 'private')`,
		s.bob)
	if err != nil {
		s.T().Fatalf("Failed to seed privacy settings: %s", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO user_blocks (blocker_id, blocked_id) VALUES ($1, $2)`,
		s.bob, s.alice)
	if err != nil {
		s.T().Fatalf("Failed to seed block: %s", err)
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO user_follows (follower_id, following_id) VALUES ($1, $2)`,
		s.alice, s.bob)
	if err != nil {
		s.T().Fatalf("Failed to seed follow: %s", err)
	}
}

func (s *SearchRepoIntegrationTestSuite) seedUser(ctx context.Context, username, displayName string, verified, banned bool, followers int) uuid.UUID {
	id := uuid.New()
	_, err := s.dbPool.Exec(ctx, `
		INSERT INTO users (id, username, display_name, password_hash, verified, banned, follower_count)
		VALUES ($1, $2, $3, 'hashedpassword', $4, $5, $6)`,
		id, username, displayName, verified, banned, followers)
	if err != nil {
		s.T().Fatalf("Failed to seed user %s: %s", username, err)
	}
	return id
}

func (s *SearchRepoIntegrationTestSuite) seedPost(ctx context.Context, authorID uuid.UUID, content string, visibility post.Visibility, likes int, createdAt time.Time) uuid.UUID {
	id := uuid.New()
	_, err := s.dbPool.Exec(ctx, `
		INSERT INTO posts (id, author_id, content, visibility, like_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, authorID, content, visibility, likes, createdAt)
	if err != nil {
		s.T().Fatalf("Failed to seed post: %s", err)
	}
	return id
}

func (s *SearchRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestSearchRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(SearchRepoIntegrationTestSuite))
}

func (s *SearchRepoIntegrationTestSuite) Test_UserSearch_ExcludesBannedAndDefaultsVisibility() {
	ctx := context.Background()

	users, err := s.userRepo.SearchByText(ctx, "o", user.SearchFilters{}, 20)
	s.NoError(err)

	byUsername := make(map[string]user.User, len(users))
	for _, u := range users {
		byUsername[u.Username] = u
	}

	s.Contains(byUsername, "alice")
	s.Contains(byUsername, "bob_gopher")
	s.NotContains(byUsername, "carol")

	alice := byUsername["alice"]
	bob := byUsername["bob_gopher"]
	s.Equal(user.VisibilityPublic, alice.EffectiveVisibility())
	s.Equal(user.VisibilityPrivate, bob.EffectiveVisibility())
}

func (s *SearchRepoIntegrationTestSuite) Test_UserSearch_VerifiedOnlyFilter() {
	ctx := context.Background()

	users, err := s.userRepo.SearchByText(ctx, "o", user.SearchFilters{VerifiedOnly: true}, 20)
	s.NoError(err)
	s.Len(users, 1)
	s.Equal("alice", users[0].Username)
}

func (s *SearchRepoIntegrationTestSuite) Test_FindByUsername_CaseInsensitive() {
	ctx := context.Background()

	found, err := s.userRepo.FindByUsername(ctx, "ALICE")
	s.NoError(err)
	s.Equal(s.alice, found.ID)
	s.Equal("hashedpassword", found.PasswordHash)

	_, err = s.userRepo.FindByUsername(ctx, "nobody")
	s.ErrorIs(err, user.ErrUserNotFound)
}

func (s *SearchRepoIntegrationTestSuite) Test_PostSearch_MatchesContentWithAuthor() {
	ctx := context.Background()

	s.seedPost(ctx, s.alice, "shipping the new search engine #golang", post.VisibilityPublic, 42, time.Now().UTC())
	s.seedPost(ctx, s.alice, "unrelated musings", post.VisibilityPublic, 1, time.Now().UTC())

	posts, err := s.postRepo.SearchByText(ctx, "search engine", post.SearchFilters{}, 20)
	s.NoError(err)
	s.Len(posts, 1)
	s.Equal("alice", posts[0].Author.Username)
	s.Equal(42, posts[0].LikeCount)
}

func (s *SearchRepoIntegrationTestSuite) Test_FindRecent_HonorsCutoff() {
	ctx := context.Background()

	now := time.Now().UTC()
	recent := s.seedPost(ctx, s.bob, "fresh #trending take", post.VisibilityPublic, 0, now.Add(-time.Hour))
	s.seedPost(ctx, s.bob, "stale #trending take", post.VisibilityPublic, 0, now.Add(-30*24*time.Hour))

	posts, err := s.postRepo.FindRecent(ctx, now.Add(-7*24*time.Hour), 100)
	s.NoError(err)

	ids := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	s.Contains(ids, recent)
	for _, p := range posts {
		s.True(p.CreatedAt.After(now.Add(-7 * 24 * time.Hour)))
	}
}

func (s *SearchRepoIntegrationTestSuite) Test_BlockSet_IsSymmetric() {
	ctx := context.Background()

	// bob blocked alice, so each must appear in the other's set.
	aliceBlocks, err := s.relRepo.BlockSet(ctx, s.alice)
	s.NoError(err)
	s.Contains(aliceBlocks, s.bob)

	bobBlocks, err := s.relRepo.BlockSet(ctx, s.bob)
	s.NoError(err)
	s.Contains(bobBlocks, s.alice)
}

func (s *SearchRepoIntegrationTestSuite) Test_FollowSet() {
	ctx := context.Background()

	following, err := s.relRepo.FollowSet(ctx, s.alice)
	s.NoError(err)
	s.Contains(following, s.bob)

	bobFollowing, err := s.relRepo.FollowSet(ctx, s.bob)
	s.NoError(err)
	s.NotContains(bobFollowing, s.alice)
}
