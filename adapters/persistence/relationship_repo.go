package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Synapse-Social-Media/web-sub000/internal/domain/relationship"
)

type postgresRelationshipRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRelationshipRepo(db *pgxpool.Pool) relationship.Repository {
	return &postgresRelationshipRepo{db: db}
}

func scanIDSet(rows pgx.Rows) (map[uuid.UUID]struct{}, error) {
	defer rows.Close()

	set := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id row: %w", err)
		}
		set[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating id rows: %w", err)
	}
	return set, nil
}

// BlockSet loads blocks in both directions in one query, since exclusion is
// symmetric.
func (r *postgresRelationshipRepo) BlockSet(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	query := `
		SELECT blocked_id FROM user_blocks WHERE blocker_id = $1
		UNION
		SELECT blocker_id FROM user_blocks WHERE blocked_id = $1
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute block set query: %w", err)
	}
	return scanIDSet(rows)
}

func (r *postgresRelationshipRepo) FollowSet(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	query := `SELECT following_id FROM user_follows WHERE follower_id = $1`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute follow set query: %w", err)
	}
	return scanIDSet(rows)
}
