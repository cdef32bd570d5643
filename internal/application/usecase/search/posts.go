package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Synapse-Social-Media/web-sub000/internal/domain/post"
	"github.com/Synapse-Social-Media/web-sub000/internal/domain/relationship"
	"github.com/Synapse-Social-Media/web-sub000/internal/domain/search"
)

func (uc *SearchUseCase) searchPosts(ctx context.Context, snap *relationship.Snapshot, q search.Query, limit int) []search.Result {
	if limit <= 0 {
		return nil
	}

	now := time.Now().UTC()
	filters := post.SearchFilters{
		CreatedAfter: q.DateRange.Cutoff(now),
		OrderBy:      postOrder(q.SortBy),
	}

	candidates, err := uc.postRepo.SearchByText(ctx, q.Text, filters, overFetchFactor*limit)
	if err != nil {
		uc.logger.Error("Post search provider failed, returning empty result", err, zap.String("query", q.Text))
		return nil
	}

	results := make([]search.Result, 0, limit)
	for i := range candidates {
		p := &candidates[i]
		if !relationship.CanSeePost(snap, p) {
			continue
		}
		results = append(results, search.Result{
			ID:             p.ID.String(),
			Type:           search.ResultPost,
			RelevanceScore: search.ScorePost(p, q.Text, i, now),
			Post:           toPostSummary(p),
		})
		if len(results) >= limit {
			break
		}
	}
	return results
}

func postOrder(s search.SortBy) post.Order {
	switch s {
	case search.SortPopular:
		return post.OrderPopular
	case search.SortRecent:
		return post.OrderRecent
	default:
		return post.OrderDefault
	}
}

func toPostSummary(p *post.Post) *search.PostSummary {
	return &search.PostSummary{
		ID:           p.ID,
		Content:      p.Content,
		AuthorID:     p.AuthorID,
		CreatedAt:    p.CreatedAt,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		Visibility:   string(p.Visibility),
		Author:       *toUserSummary(&p.Author),
	}
}
