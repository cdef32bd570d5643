package trending

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/Synapse-Social-Media/web-sub000/internal/domain/post"
	"github.com/Synapse-Social-Media/web-sub000/internal/domain/relationship"
	"github.com/Synapse-Social-Media/web-sub000/internal/domain/search"
	"github.com/Synapse-Social-Media/web-sub000/pkg/logger"
)

const (
	// Window of posts considered for trending computation.
	windowDays = 7
	// Tags below this occurrence count are discarded.
	minOccurrences = 3
	// Upper bound on posts scanned per computation.
	scanLimit = 1000

	DefaultLimit = 10
	MaxLimit     = 50
)

type TrendingUseCase struct {
	postRepo         post.Repository
	relationshipRepo relationship.Repository
	logger           logger.Logger
}

func NewTrendingUseCase(pRepo post.Repository, rRepo relationship.Repository, log logger.Logger) *TrendingUseCase {
	return &TrendingUseCase{
		postRepo:         pRepo,
		relationshipRepo: rRepo,
		logger:           log,
	}
}

type TrendingInput struct {
	RequesterID   uuid.UUID
	Authenticated bool
	Limit         int
}

type TrendingOutput struct {
	Topics []search.TrendingTopic
}

var tracer = otel.Tracer("trending_usecase")

// Execute recomputes trending hashtags from scratch over the recent window of
// posts visible to the requester. Nothing is cached here; callers add caching
// externally if they need it.
func (uc *TrendingUseCase) Execute(ctx context.Context, input TrendingInput) (*TrendingOutput, error) {
	ctx, span := tracer.Start(ctx, "Trending")
	defer span.End()

	if input.Limit <= 0 {
		input.Limit = DefaultLimit
	}
	if input.Limit > MaxLimit {
		input.Limit = MaxLimit
	}

	out := &TrendingOutput{Topics: []search.TrendingTopic{}}

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -windowDays)

	posts, err := uc.postRepo.FindRecent(ctx, since, scanLimit)
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Trending scan failed, returning empty topic list", err)
		return out, nil
	}

	snap := relationship.AnonymousSnapshot()
	if input.Authenticated {
		blocked, err := uc.relationshipRepo.BlockSet(ctx, input.RequesterID)
		if err != nil {
			span.RecordError(err)
			uc.logger.Error("Failed to load block set for trending", err, zap.String("requester_id", input.RequesterID.String()))
			return out, nil
		}
		following, err := uc.relationshipRepo.FollowSet(ctx, input.RequesterID)
		if err != nil {
			span.RecordError(err)
			uc.logger.Error("Failed to load follow set for trending", err, zap.String("requester_id", input.RequesterID.String()))
			return out, nil
		}
		snap = relationship.NewSnapshot(input.RequesterID, blocked, following)
	}

	occurrences := make(map[string][]time.Time)
	for i := range posts {
		p := &posts[i]
		if !relationship.CanSeePost(snap, p) {
			continue
		}
		for _, tag := range search.ExtractHashtags(p.Content) {
			occurrences[tag] = append(occurrences[tag], p.CreatedAt)
		}
	}

	topics := make([]search.TrendingTopic, 0, len(occurrences))
	for tag, times := range occurrences {
		if len(times) < minOccurrences {
			continue
		}
		topics = append(topics, search.TrendingTopic{
			Tag:           tag,
			PostCount:     len(times),
			TrendingScore: search.TrendingScore(times, now),
		})
	}

	sort.Slice(topics, func(i, j int) bool {
		if topics[i].TrendingScore != topics[j].TrendingScore {
			return topics[i].TrendingScore > topics[j].TrendingScore
		}
		if topics[i].PostCount != topics[j].PostCount {
			return topics[i].PostCount > topics[j].PostCount
		}
		return topics[i].Tag < topics[j].Tag
	})
	if len(topics) > input.Limit {
		topics = topics[:input.Limit]
	}

	span.SetAttributes(attribute.Int("trending.topic_count", len(topics)))

	out.Topics = topics
	return out, nil
}
