package persistence

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Synapse-Social-Media/web-sub000/internal/domain/user"
)

type postgresUserRepo struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepo(db *pgxpool.Pool) user.Repository {
	return &postgresUserRepo{db: db}
}

// SearchByText over-fetches candidates matching username or display name,
// joined with the privacy record (absent record reads as public). Ordering is
// the coarse pre-sort that decides which candidates get evaluated first.
func (r *postgresUserRepo) SearchByText(ctx context.Context, text string, filters user.SearchFilters, limit int) ([]user.User, error) {
	pattern := "%" + text + "%"

	builder := psql.Select(
		"u.id", "u.username", "u.display_name", "u.avatar_url",
		"u.verified", "u.banned", "u.follower_count",
		"COALESCE(ps.profile_visibility, 'public')", "u.created_at",
	).
		From("users u").
		LeftJoin("privacy_settings ps ON ps.user_id = u.id").
		Where(sq.Eq{"u.banned": false}).
		Where(sq.Or{
			sq.ILike{"u.username": pattern},
			sq.ILike{"u.display_name": pattern},
		}).
		Limit(uint64(limit))

	if filters.VerifiedOnly {
		builder = builder.Where(sq.Eq{"u.verified": true})
	}
	if filters.CreatedAfter != nil {
		builder = builder.Where(sq.GtOrEq{"u.created_at": *filters.CreatedAfter})
	}

	switch filters.OrderBy {
	case user.OrderPopular:
		builder = builder.OrderBy("u.follower_count DESC")
	case user.OrderRecent:
		builder = builder.OrderBy("u.created_at DESC")
	default:
		builder = builder.OrderBy("u.verified DESC", "u.follower_count DESC")
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user search query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute user search query: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		var u user.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.DisplayName, &u.AvatarURL,
			&u.Verified, &u.Banned, &u.FollowerCount,
			&u.ProfileVisibility, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

func (r *postgresUserRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `
		SELECT u.id, u.username, u.display_name, u.avatar_url,
		       u.verified, u.banned, u.follower_count,
		       COALESCE(ps.profile_visibility, 'public'), u.password_hash, u.created_at
		FROM users u
		LEFT JOIN privacy_settings ps ON ps.user_id = u.id
		WHERE LOWER(u.username) = LOWER($1)
	`

	u := &user.User{}
	err := r.db.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.DisplayName, &u.AvatarURL,
		&u.Verified, &u.Banned, &u.FollowerCount,
		&u.ProfileVisibility, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("error when query user: %w", err)
	}

	return u, nil
}
