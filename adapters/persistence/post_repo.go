package persistence

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Synapse-Social-Media/web-sub000/internal/domain/post"
)

type postgresPostRepo struct {
	db *pgxpool.Pool
}

func NewPostgresPostRepo(db *pgxpool.Pool) post.Repository {
	return &postgresPostRepo{db: db}
}

var postColumns = []string{
	"p.id", "p.author_id", "p.content", "p.visibility",
	"p.like_count", "p.comment_count", "p.created_at",
	"a.id", "a.username", "a.display_name", "a.avatar_url",
	"a.verified", "a.follower_count",
}

func (r *postgresPostRepo) baseSelect() sq.SelectBuilder {
	return psql.Select(postColumns...).
		From("posts p").
		Join("users a ON a.id = p.author_id").
		Where("p.deleted_at IS NULL").
		Where(sq.Eq{"a.banned": false})
}

func scanPosts(rows pgx.Rows) ([]post.Post, error) {
	defer rows.Close()

	posts := make([]post.Post, 0)
	for rows.Next() {
		var p post.Post
		if err := rows.Scan(
			&p.ID, &p.AuthorID, &p.Content, &p.Visibility,
			&p.LikeCount, &p.CommentCount, &p.CreatedAt,
			&p.Author.ID, &p.Author.Username, &p.Author.DisplayName, &p.Author.AvatarURL,
			&p.Author.Verified, &p.Author.FollowerCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}
	return posts, nil
}

func (r *postgresPostRepo) SearchByText(ctx context.Context, text string, filters post.SearchFilters, limit int) ([]post.Post, error) {
	builder := r.baseSelect().
		Where(sq.ILike{"p.content": "%" + text + "%"}).
		Limit(uint64(limit))

	if filters.CreatedAfter != nil {
		builder = builder.Where(sq.GtOrEq{"p.created_at": *filters.CreatedAfter})
	}

	switch filters.OrderBy {
	case post.OrderPopular:
		builder = builder.OrderBy("p.like_count DESC")
	default:
		builder = builder.OrderBy("p.created_at DESC")
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build post search query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute post search query: %w", err)
	}
	return scanPosts(rows)
}

func (r *postgresPostRepo) FindRecent(ctx context.Context, since time.Time, limit int) ([]post.Post, error) {
	builder := r.baseSelect().
		Where(sq.GtOrEq{"p.created_at": since}).
		OrderBy("p.created_at DESC").
		Limit(uint64(limit))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build recent posts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute recent posts query: %w", err)
	}
	return scanPosts(rows)
}
