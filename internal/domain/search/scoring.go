package search

import (
	"math"
	"strings"
	"time"

	"github.com/Synapse-Social-Media/web-sub000/internal/domain/post"
	"github.com/Synapse-Social-Media/web-sub000/internal/domain/user"
)

// Relevance scores are clamped to 1.0. All terms are non-negative additions,
// so no lower clamp is needed. position is the candidate's 0-based index in
// its provider's pre-sorted fetch order, not its final rank.

func clampScore(s float64) float64 {
	if s > 1.0 {
		return 1.0
	}
	return s
}

func ScoreUser(u *user.User, query string, position int) float64 {
	score := 1.0 - 0.1*float64(position)

	if u.Verified {
		score += 0.3
	}
	score += math.Log10(float64(u.FollowerCount)+1) * 0.1

	q := strings.ToLower(query)
	username := strings.ToLower(u.Username)
	displayName := strings.ToLower(u.DisplayName)

	if username == q {
		score += 0.5
	}
	if displayName == q {
		score += 0.4
	}
	if strings.Contains(username, q) {
		score += 0.2
	}
	if strings.Contains(displayName, q) {
		score += 0.1
	}

	return clampScore(score)
}

func ScorePost(p *post.Post, query string, position int, now time.Time) float64 {
	score := 1.0 - 0.05*float64(position)

	score += math.Log10(float64(p.LikeCount)+1) * 0.1
	score += math.Log10(float64(p.CommentCount)+1) * 0.05

	if p.Author.Verified {
		score += 0.2
	}

	content := strings.ToLower(p.Content)
	for _, term := range strings.Fields(strings.ToLower(query)) {
		score += 0.1 * float64(strings.Count(content, term))
	}

	if now.Sub(p.CreatedAt) < 24*time.Hour {
		score += 0.2
	}

	return clampScore(score)
}

func ScoreHashtag(tag, normalizedQuery string, occurrences int) float64 {
	score := 0.5

	if tag == normalizedQuery {
		score += 0.5
	}
	if strings.HasPrefix(tag, normalizedQuery) {
		score += 0.3
	}
	score += math.Log10(float64(occurrences)+1) * 0.1

	return clampScore(score)
}

// TrendingScore combines occurrence volume with the fraction of occurrences
// that fall within the last 24 hours.
func TrendingScore(occurrences []time.Time, now time.Time) float64 {
	if len(occurrences) == 0 {
		return 0
	}

	volume := math.Min(float64(len(occurrences))/100.0, 1.0)

	recent := 0
	for _, t := range occurrences {
		if now.Sub(t) <= 24*time.Hour {
			recent++
		}
	}
	recency := float64(recent) / float64(len(occurrences))

	return volume*0.4 + recency*0.6
}
