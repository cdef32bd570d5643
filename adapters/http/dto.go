package http

import (
	"time"

	"github.com/Synapse-Social-Media/web-sub000/internal/domain/search"
)

// Search DTOs

type UserSummaryDTO struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	DisplayName   string  `json:"display_name"`
	AvatarURL     *string `json:"avatar_url"`
	Verified      bool    `json:"verified"`
	FollowerCount int     `json:"follower_count"`
}

type PostSummaryDTO struct {
	ID           string         `json:"id"`
	Content      string         `json:"content"`
	AuthorID     string         `json:"author_id"`
	CreatedAt    time.Time      `json:"created_at"`
	LikeCount    int            `json:"like_count"`
	CommentCount int            `json:"comment_count"`
	Visibility   string         `json:"visibility"`
	Author       UserSummaryDTO `json:"author"`
}

type HashtagSummaryDTO struct {
	Tag           string  `json:"tag"`
	PostCount     int     `json:"post_count"`
	TrendingScore float64 `json:"trending_score"`
}

type SearchResultDTO struct {
	ID             string             `json:"id"`
	Type           string             `json:"type"`
	RelevanceScore float64            `json:"relevance_score"`
	User           *UserSummaryDTO    `json:"user,omitempty"`
	Post           *PostSummaryDTO    `json:"post,omitempty"`
	Hashtag        *HashtagSummaryDTO `json:"hashtag,omitempty"`
}

func toUserSummaryDTO(u *search.UserSummary) *UserSummaryDTO {
	if u == nil {
		return nil
	}
	return &UserSummaryDTO{
		ID:            u.ID.String(),
		Username:      u.Username,
		DisplayName:   u.DisplayName,
		AvatarURL:     u.AvatarURL,
		Verified:      u.Verified,
		FollowerCount: u.FollowerCount,
	}
}

func toPostSummaryDTO(p *search.PostSummary) *PostSummaryDTO {
	if p == nil {
		return nil
	}
	author := toUserSummaryDTO(&p.Author)
	return &PostSummaryDTO{
		ID:           p.ID.String(),
		Content:      p.Content,
		AuthorID:     p.AuthorID.String(),
		CreatedAt:    p.CreatedAt,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		Visibility:   p.Visibility,
		Author:       *author,
	}
}

func toHashtagSummaryDTO(h *search.HashtagSummary) *HashtagSummaryDTO {
	if h == nil {
		return nil
	}
	return &HashtagSummaryDTO{
		Tag:           h.Tag,
		PostCount:     h.PostCount,
		TrendingScore: h.TrendingScore,
	}
}

func ToSearchResultDTO(r search.Result) SearchResultDTO {
	return SearchResultDTO{
		ID:             r.ID,
		Type:           string(r.Type),
		RelevanceScore: r.RelevanceScore,
		User:           toUserSummaryDTO(r.User),
		Post:           toPostSummaryDTO(r.Post),
		Hashtag:        toHashtagSummaryDTO(r.Hashtag),
	}
}

// Trending / suggestion DTOs

type TrendingTopicDTO struct {
	Tag           string  `json:"tag"`
	PostCount     int     `json:"post_count"`
	TrendingScore float64 `json:"trending_score"`
}

func ToTrendingTopicDTO(t search.TrendingTopic) TrendingTopicDTO {
	return TrendingTopicDTO{
		Tag:           t.Tag,
		PostCount:     t.PostCount,
		TrendingScore: t.TrendingScore,
	}
}

type SuggestionDTO struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Type   string  `json:"type"`
	Avatar *string `json:"avatar,omitempty"`
}

func ToSuggestionDTO(s search.Suggestion) SuggestionDTO {
	return SuggestionDTO{
		ID:     s.ID,
		Text:   s.Text,
		Type:   s.Type,
		Avatar: s.Avatar,
	}
}
