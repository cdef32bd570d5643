package relationship

import (
	"github.com/Synapse-Social-Media/web-sub000/internal/domain/post"
	"github.com/Synapse-Social-Media/web-sub000/internal/domain/user"
)

// CanSeeUser decides whether the requester behind snap may see the candidate
// profile. A block in either direction wins over everything else.
func CanSeeUser(snap *Snapshot, candidate *user.User) bool {
	if snap.BlockedWith(candidate.ID) {
		return false
	}
	if snap.Authenticated && snap.RequesterID == candidate.ID {
		return true
	}
	if candidate.EffectiveVisibility() == user.VisibilityPublic {
		return true
	}
	return snap.Follows(candidate.ID)
}

// CanSeePost applies the post's visibility tier against the requester's
// relationship to the author.
func CanSeePost(snap *Snapshot, p *post.Post) bool {
	if snap.BlockedWith(p.AuthorID) {
		return false
	}
	switch p.Visibility {
	case post.VisibilityPublic:
		return true
	case post.VisibilityFollowers:
		if !snap.Authenticated {
			return false
		}
		return snap.RequesterID == p.AuthorID || snap.Follows(p.AuthorID)
	case post.VisibilityPrivate:
		return snap.Authenticated && snap.RequesterID == p.AuthorID
	default:
		return false
	}
}
