package mintpaper

import (
	"slices"
	"strings"
)

// PostsByTag returns the posts carrying tag, newest first. The tag is
// expected in slug form already; each post's raw tags are slugified before
// comparison. The input slice is left untouched and a non-nil slice is
// always returned.
func PostsByTag(posts []BlogPost, tag string) []BlogPost {
	matched := make([]BlogPost, 0)
	for _, p := range posts {
		if slices.Contains(SlugifyAll(p.Tags), tag) {
			matched = append(matched, p)
		}
	}
	return SortPosts(matched)
}

// UniqueTags collects the distinct tags used by posts, sorted by slug.
func UniqueTags(posts []BlogPost) []TagInfo {
	seen := make(map[string]struct{})
	var tags []TagInfo
	for _, p := range posts {
		for _, raw := range p.Tags {
			tag := Slugify(raw)
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, TagInfo{Tag: tag, Name: strings.TrimSpace(raw)})
		}
	}
	slices.SortFunc(tags, func(a, b TagInfo) int {
		return strings.Compare(a.Tag, b.Tag)
	})
	return tags
}
