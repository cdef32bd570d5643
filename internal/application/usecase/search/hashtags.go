package search

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Synapse-Social-Media/web-sub000/internal/domain/post"
	"github.com/Synapse-Social-Media/web-sub000/internal/domain/relationship"
	"github.com/Synapse-Social-Media/web-sub000/internal/domain/search"
)

// hashtagScanLimit bounds how many matching posts are scanned for tags.
const hashtagScanLimit = 200

func (uc *SearchUseCase) searchHashtags(ctx context.Context, snap *relationship.Snapshot, q search.Query, limit int) []search.Result {
	if limit <= 0 {
		return nil
	}

	normalized := search.NormalizeHashtagQuery(q.Text)
	if normalized == "" {
		return nil
	}

	candidates, err := uc.postRepo.SearchByText(ctx, normalized, post.SearchFilters{}, hashtagScanLimit)
	if err != nil {
		uc.logger.Error("Hashtag search provider failed, returning empty result", err, zap.String("query", normalized))
		return nil
	}

	now := time.Now().UTC()
	counts := make(map[string]int)
	occurrences := make(map[string][]time.Time)

	for i := range candidates {
		p := &candidates[i]
		if !relationship.CanSeePost(snap, p) {
			continue
		}
		for _, tag := range search.ExtractHashtags(p.Content) {
			if !strings.Contains(tag, normalized) {
				continue
			}
			counts[tag]++
			occurrences[tag] = append(occurrences[tag], p.CreatedAt)
		}
	}

	// Alphabetical walk keeps the ordering deterministic across calls.
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	results := make([]search.Result, 0, len(tags))
	for _, tag := range tags {
		results = append(results, search.Result{
			ID:             tag,
			Type:           search.ResultHashtag,
			RelevanceScore: search.ScoreHashtag(tag, normalized, counts[tag]),
			Hashtag: &search.HashtagSummary{
				Tag:           tag,
				PostCount:     counts[tag],
				TrendingScore: search.TrendingScore(occurrences[tag], now),
			},
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
