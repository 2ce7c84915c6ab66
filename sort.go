package mintpaper

import (
	"slices"
	"strings"
	"time"
)

// SortPosts returns a copy of posts ordered newest first by LatestDatetime.
// Posts with equal timestamps are ordered by slug so the result is stable
// across calls.
func SortPosts(posts []BlogPost) []BlogPost {
	sorted := slices.Clone(posts)
	if sorted == nil {
		sorted = []BlogPost{}
	}
	slices.SortStableFunc(sorted, func(a, b BlogPost) int {
		if c := b.LatestDatetime().Compare(a.LatestDatetime()); c != 0 {
			return c
		}
		return strings.Compare(a.Slug, b.Slug)
	})
	return sorted
}

// PostFilter reports whether a post is publicly visible at now. Drafts are
// hidden; scheduled posts become visible margin before their publish time.
func PostFilter(p BlogPost, now time.Time, margin time.Duration) bool {
	if p.Draft {
		return false
	}
	return !p.PubDatetime.Add(-margin).After(now)
}

// VisiblePosts filters posts with PostFilter and sorts the survivors.
func VisiblePosts(posts []BlogPost, now time.Time, margin time.Duration) []BlogPost {
	visible := make([]BlogPost, 0, len(posts))
	for _, p := range posts {
		if PostFilter(p, now, margin) {
			visible = append(visible, p)
		}
	}
	return SortPosts(visible)
}
