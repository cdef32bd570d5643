package search

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/Synapse-Social-Media/web-sub000/adapters/event"
	"github.com/Synapse-Social-Media/web-sub000/internal/domain/post"
	"github.com/Synapse-Social-Media/web-sub000/internal/domain/relationship"
	"github.com/Synapse-Social-Media/web-sub000/internal/domain/search"
	"github.com/Synapse-Social-Media/web-sub000/internal/domain/user"
	"github.com/Synapse-Social-Media/web-sub000/pkg/logger"
)

// Each provider over-fetches this multiple of its sub-limit to absorb
// privacy-filtering losses. There is no refill loop: result counts may fall
// short of the requested limit after filtering.
const overFetchFactor = 2

type SearchUseCase struct {
	userRepo         user.Repository
	postRepo         post.Repository
	relationshipRepo relationship.Repository
	kafkaClient      *event.KafkaProducerClient
	logger           logger.Logger
}

func NewSearchUseCase(
	uRepo user.Repository,
	pRepo post.Repository,
	rRepo relationship.Repository,
	kClient *event.KafkaProducerClient,
	log logger.Logger,
) *SearchUseCase {
	return &SearchUseCase{
		userRepo:         uRepo,
		postRepo:         pRepo,
		relationshipRepo: rRepo,
		kafkaClient:      kClient,
		logger:           log,
	}
}

type SearchInput struct {
	RequesterID   uuid.UUID
	Authenticated bool
	Query         search.Query
}

type SearchOutput struct {
	Results []search.Result
}

var tracer = otel.Tracer("search_usecase")

func (uc *SearchUseCase) Execute(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	ctx, span := tracer.Start(ctx, "Search")
	defer span.End()

	input.Query.Normalize()
	q := input.Query

	// Searching without an identity yields nothing. Kept silent rather than
	// rejected, pending product confirmation.
	if !input.Authenticated {
		uc.logger.Debug("Unauthenticated search, returning empty result set", zap.String("query", q.Text))
		return &SearchOutput{Results: []search.Result{}}, nil
	}

	snap, err := uc.loadSnapshot(ctx, input.RequesterID)
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to load relationship snapshot", err, zap.String("requester_id", input.RequesterID.String()))
		return &SearchOutput{Results: []search.Result{}}, nil
	}

	userLimit, postLimit, hashtagLimit := subLimits(q.Type, q.Limit)

	// The three providers are independent; the snapshot is shared read-only.
	var userResults, postResults, hashtagResults []search.Result
	done := make(chan struct{}, 3)

	run := func(dst *[]search.Result, provider func(context.Context, *relationship.Snapshot, search.Query, int) []search.Result, limit int) {
		go func() {
			defer func() { done <- struct{}{} }()
			*dst = provider(ctx, snap, q, limit)
		}()
	}

	run(&userResults, uc.searchUsers, userLimit)
	run(&postResults, uc.searchPosts, postLimit)
	run(&hashtagResults, uc.searchHashtags, hashtagLimit)
	for i := 0; i < 3; i++ {
		<-done
	}

	merged := make([]search.Result, 0, len(userResults)+len(postResults)+len(hashtagResults))
	merged = append(merged, userResults...)
	merged = append(merged, postResults...)
	merged = append(merged, hashtagResults...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].RelevanceScore > merged[j].RelevanceScore
	})
	if len(merged) > q.Limit {
		merged = merged[:q.Limit]
	}

	span.SetAttributes(
		attribute.String("search.query", q.Text),
		attribute.String("search.type", string(q.Type)),
		attribute.Int("search.result_count", len(merged)),
	)

	uc.publishSearchEvent(input, len(merged))

	return &SearchOutput{Results: merged}, nil
}

// loadSnapshot fetches the requester's full block and follow sets exactly
// once, so providers filter in memory instead of round-tripping per candidate.
func (uc *SearchUseCase) loadSnapshot(ctx context.Context, requesterID uuid.UUID) (*relationship.Snapshot, error) {
	blocked, err := uc.relationshipRepo.BlockSet(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	following, err := uc.relationshipRepo.FollowSet(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return relationship.NewSnapshot(requesterID, blocked, following), nil
}

// subLimits splits the overall limit between providers. A single-type query
// hands the full limit to that provider; the rest get zero.
func subLimits(t search.Type, limit int) (users, posts, hashtags int) {
	switch t {
	case search.TypeUsers:
		return limit, 0, 0
	case search.TypePosts:
		return 0, limit, 0
	case search.TypeHashtags:
		return 0, 0, limit
	default:
		return ceilDiv(limit, 3), ceilDiv(limit, 2), ceilDiv(limit, 4)
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func (uc *SearchUseCase) publishSearchEvent(input SearchInput, resultCount int) {
	if uc.kafkaClient == nil {
		return
	}
	go func() {
		err := uc.kafkaClient.PublishSearchEvent(context.Background(), event.SearchEventPayload{
			EventType:   event.SearchEventTypePerformed,
			Query:       input.Query.Text,
			SearchType:  string(input.Query.Type),
			ResultCount: resultCount,
			RequesterID: input.RequesterID,
			OccurredAt:  time.Now().UTC(),
		})
		if err != nil {
			uc.logger.Error("Failed to publish Kafka search event", err, zap.String("query", input.Query.Text))
		}
	}()
}
