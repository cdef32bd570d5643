package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Synapse-Social-Media/web-sub000/adapters/persistence"
	searchUC "github.com/Synapse-Social-Media/web-sub000/internal/application/usecase/search"
	trendingUC "github.com/Synapse-Social-Media/web-sub000/internal/application/usecase/trending"
	"github.com/Synapse-Social-Media/web-sub000/internal/domain/search"
	"github.com/Synapse-Social-Media/web-sub000/pkg/apperror"
	"github.com/Synapse-Social-Media/web-sub000/pkg/logger"
)

type SearchHandler struct {
	searchUseCase   *searchUC.SearchUseCase
	trendingUseCase *trendingUC.TrendingUseCase
	trendingCache   *persistence.RedisTrendingCache
	logger          logger.Logger
}

func NewSearchHandler(
	sUC *searchUC.SearchUseCase,
	tUC *trendingUC.TrendingUseCase,
	cache *persistence.RedisTrendingCache,
	log logger.Logger,
) *SearchHandler {
	return &SearchHandler{
		searchUseCase:   sUC,
		trendingUseCase: tUC,
		trendingCache:   cache,
		logger:          log,
	}
}

func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.Error(apperror.NewInvalidInput("'q' query param is required", nil))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	userID, authenticated := GetUserIDFromGinContext(c)

	input := searchUC.SearchInput{
		RequesterID:   userID,
		Authenticated: authenticated,
		Query: search.Query{
			Text:         query,
			Type:         search.Type(c.DefaultQuery("type", string(search.TypeAll))),
			SortBy:       search.SortBy(c.DefaultQuery("sort_by", string(search.SortRelevance))),
			DateRange:    search.DateRange(c.DefaultQuery("date_range", string(search.DateAll))),
			VerifiedOnly: c.Query("verified_only") == "true",
			Limit:        limit,
		},
	}

	output, err := h.searchUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]SearchResultDTO, len(output.Results))
	for i, res := range output.Results {
		dtos[i] = ToSearchResultDTO(res)
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *SearchHandler) Suggestions(c *gin.Context) {
	userID, authenticated := GetUserIDFromGinContext(c)

	input := searchUC.SuggestInput{
		RequesterID:   userID,
		Authenticated: authenticated,
		Text:          c.Query("q"),
	}

	output, err := h.searchUseCase.Suggest(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]SuggestionDTO, len(output.Suggestions))
	for i, s := range output.Suggestions {
		dtos[i] = ToSuggestionDTO(s)
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *SearchHandler) Trending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 {
		limit = trendingUC.DefaultLimit
	}
	if limit > trendingUC.MaxLimit {
		limit = trendingUC.MaxLimit
	}

	userID, authenticated := GetUserIDFromGinContext(c)

	// Only the anonymous view is globally identical, so only that one is
	// served from cache.
	if !authenticated {
		if topics, ok := h.trendingCache.Get(c.Request.Context(), limit); ok {
			c.JSON(http.StatusOK, toTrendingDTOs(topics))
			return
		}
	}

	output, err := h.trendingUseCase.Execute(c.Request.Context(), trendingUC.TrendingInput{
		RequesterID:   userID,
		Authenticated: authenticated,
		Limit:         limit,
	})
	if err != nil {
		c.Error(err)
		return
	}

	if !authenticated {
		h.trendingCache.Set(c.Request.Context(), limit, output.Topics)
	}

	c.JSON(http.StatusOK, toTrendingDTOs(output.Topics))
}

func toTrendingDTOs(topics []search.TrendingTopic) []TrendingTopicDTO {
	dtos := make([]TrendingTopicDTO, len(topics))
	for i, t := range topics {
		dtos[i] = ToTrendingTopicDTO(t)
	}
	return dtos
}
