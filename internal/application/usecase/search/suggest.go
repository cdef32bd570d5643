package search

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Synapse-Social-Media/web-sub000/internal/domain/search"
)

const (
	suggestionsPerKind = 3
	maxSuggestions     = 6
)

type SuggestInput struct {
	RequesterID   uuid.UUID
	Authenticated bool
	Text          string
}

type SuggestOutput struct {
	Suggestions []search.Suggestion
}

// Suggest composes a lightweight typeahead view from the top user and
// hashtag matches.
func (uc *SearchUseCase) Suggest(ctx context.Context, input SuggestInput) (*SuggestOutput, error) {
	ctx, span := tracer.Start(ctx, "Suggest")
	defer span.End()

	out := &SuggestOutput{Suggestions: []search.Suggestion{}}

	if strings.TrimSpace(input.Text) == "" || !input.Authenticated {
		return out, nil
	}

	snap, err := uc.loadSnapshot(ctx, input.RequesterID)
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to load relationship snapshot for suggestions", err, zap.String("requester_id", input.RequesterID.String()))
		return out, nil
	}

	q := search.Query{Text: input.Text}
	q.Normalize()

	for _, r := range uc.searchUsers(ctx, snap, q, suggestionsPerKind) {
		out.Suggestions = append(out.Suggestions, search.Suggestion{
			ID:     r.ID,
			Text:   r.User.Username,
			Type:   string(search.ResultUser),
			Avatar: r.User.AvatarURL,
		})
	}
	for _, r := range uc.searchHashtags(ctx, snap, q, suggestionsPerKind) {
		out.Suggestions = append(out.Suggestions, search.Suggestion{
			ID:   r.ID,
			Text: "#" + r.Hashtag.Tag,
			Type: string(search.ResultHashtag),
		})
	}

	if len(out.Suggestions) > maxSuggestions {
		out.Suggestions = out.Suggestions[:maxSuggestions]
	}
	return out, nil
}
