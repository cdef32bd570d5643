package search

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeAll      Type = "all"
	TypeUsers    Type = "users"
	TypePosts    Type = "posts"
	TypeHashtags Type = "hashtags"
)

type SortBy string

const (
	SortRelevance SortBy = "relevance"
	SortPopular   SortBy = "popular"
	SortRecent    SortBy = "recent"
)

type DateRange string

const (
	DateAll   DateRange = "all"
	DateToday DateRange = "today"
	DateWeek  DateRange = "week"
	DateMonth DateRange = "month"
	DateYear  DateRange = "year"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type Query struct {
	Text         string
	Type         Type
	SortBy       SortBy
	DateRange    DateRange
	VerifiedOnly bool
	Limit        int
}

// Normalize fills unset fields with their defaults and bounds the limit.
func (q *Query) Normalize() {
	if q.Type == "" {
		q.Type = TypeAll
	}
	if q.SortBy == "" {
		q.SortBy = SortRelevance
	}
	if q.DateRange == "" {
		q.DateRange = DateAll
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
}

// Cutoff maps a date range to the minimum created_at it admits. A nil return
// means no cutoff.
func (d DateRange) Cutoff(now time.Time) *time.Time {
	var t time.Time
	switch d {
	case DateToday:
		t = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case DateWeek:
		t = now.AddDate(0, 0, -7)
	case DateMonth:
		t = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case DateYear:
		t = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	default:
		return nil
	}
	return &t
}

type ResultType string

const (
	ResultUser    ResultType = "user"
	ResultPost    ResultType = "post"
	ResultHashtag ResultType = "hashtag"
)

type UserSummary struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	DisplayName   string    `json:"display_name"`
	AvatarURL     *string   `json:"avatar_url"`
	Verified      bool      `json:"verified"`
	FollowerCount int       `json:"follower_count"`
}

type PostSummary struct {
	ID           uuid.UUID   `json:"id"`
	Content      string      `json:"content"`
	AuthorID     uuid.UUID   `json:"author_id"`
	CreatedAt    time.Time   `json:"created_at"`
	LikeCount    int         `json:"like_count"`
	CommentCount int         `json:"comment_count"`
	Visibility   string      `json:"visibility"`
	Author       UserSummary `json:"author"`
}

type HashtagSummary struct {
	Tag           string  `json:"tag"`
	PostCount     int     `json:"post_count"`
	TrendingScore float64 `json:"trending_score"`
}

// Result is a tagged union: exactly one of User, Post, Hashtag is set,
// according to Type.
type Result struct {
	ID             string          `json:"id"`
	Type           ResultType      `json:"type"`
	RelevanceScore float64         `json:"relevance_score"`
	User           *UserSummary    `json:"user,omitempty"`
	Post           *PostSummary    `json:"post,omitempty"`
	Hashtag        *HashtagSummary `json:"hashtag,omitempty"`
}

type TrendingTopic struct {
	Tag           string  `json:"tag"`
	PostCount     int     `json:"post_count"`
	TrendingScore float64 `json:"trending_score"`
}

type Suggestion struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Type   string  `json:"type"`
	Avatar *string `json:"avatar,omitempty"`
}
