package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Synapse-Social-Media/web-sub000/internal/domain/relationship"
	"github.com/Synapse-Social-Media/web-sub000/internal/domain/search"
	"github.com/Synapse-Social-Media/web-sub000/internal/domain/user"
)

func (uc *SearchUseCase) searchUsers(ctx context.Context, snap *relationship.Snapshot, q search.Query, limit int) []search.Result {
	if limit <= 0 {
		return nil
	}

	now := time.Now().UTC()
	filters := user.SearchFilters{
		VerifiedOnly: q.VerifiedOnly,
		CreatedAfter: q.DateRange.Cutoff(now),
		OrderBy:      userOrder(q.SortBy),
	}

	candidates, err := uc.userRepo.SearchByText(ctx, q.Text, filters, overFetchFactor*limit)
	if err != nil {
		uc.logger.Error("User search provider failed, returning empty result", err, zap.String("query", q.Text))
		return nil
	}

	results := make([]search.Result, 0, limit)
	for i := range candidates {
		u := &candidates[i]
		if !relationship.CanSeeUser(snap, u) {
			continue
		}
		results = append(results, search.Result{
			ID:             u.ID.String(),
			Type:           search.ResultUser,
			RelevanceScore: search.ScoreUser(u, q.Text, i),
			User:           toUserSummary(u),
		})
		if len(results) >= limit {
			break
		}
	}
	return results
}

func userOrder(s search.SortBy) user.Order {
	switch s {
	case search.SortPopular:
		return user.OrderPopular
	case search.SortRecent:
		return user.OrderRecent
	default:
		return user.OrderDefault
	}
}

func toUserSummary(u *user.User) *search.UserSummary {
	return &search.UserSummary{
		ID:            u.ID,
		Username:      u.Username,
		DisplayName:   u.DisplayName,
		AvatarURL:     u.AvatarURL,
		Verified:      u.Verified,
		FollowerCount: u.FollowerCount,
	}
}
