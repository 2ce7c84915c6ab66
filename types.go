package mintpaper

import "time"

// BlogPost is the core content type stored in SQLite and rendered by templates.
type BlogPost struct {
	Title       string
	Slug        string
	Description string
	Content     string
	Tags        []string
	PubDatetime time.Time
	ModDatetime time.Time // zero when the post was never modified
	Draft       bool
	Featured    bool
	OGImage     string
	Link        string
}

// LatestDatetime is the timestamp posts are ordered by: the modification
// time when one is recorded, the publish time otherwise.
func (p BlogPost) LatestDatetime() time.Time {
	if !p.ModDatetime.IsZero() {
		return p.ModDatetime
	}
	return p.PubDatetime
}

// Image is metadata for an uploaded image stored under the uploads directory.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// TagInfo pairs a normalized tag with the first raw spelling seen for it.
type TagInfo struct {
	Tag  string
	Name string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	OGImage     string
}
