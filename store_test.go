package mintpaper

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "blog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStoreIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog.db")
	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewStore(path)
	require.NoError(t, err, "reopening must tolerate the existing og_image column")
	require.NoError(t, s.Close())
}

func TestSaveAndGetPost(t *testing.T) {
	s := setupTestStore(t)

	pub := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	in := BlogPost{
		Slug:        "test-post",
		Title:       "Test Post",
		Description: "A test post",
		Content:     "# Hello",
		Tags:        []string{"Go", " Web Dev ", ""},
		PubDatetime: pub,
		Featured:    true,
		OGImage:     "/public/uploads/cover.webp",
	}
	require.NoError(t, s.SavePost(in))

	got, err := s.GetPostAny("test-post")
	require.NoError(t, err)
	assert.Equal(t, "Test Post", got.Title)
	assert.Equal(t, "A test post", got.Description)
	assert.Equal(t, "# Hello", got.Content)
	assert.Equal(t, []string{"Go", "Web Dev"}, got.Tags)
	assert.True(t, got.PubDatetime.Equal(pub))
	assert.True(t, got.ModDatetime.IsZero())
	assert.True(t, got.Featured)
	assert.False(t, got.Draft)
	assert.Equal(t, "/public/uploads/cover.webp", got.OGImage)
	assert.Equal(t, "/posts/test-post/", got.Link)
}

func TestSavePostRequiresSlug(t *testing.T) {
	s := setupTestStore(t)
	assert.Error(t, s.SavePost(BlogPost{Title: "No slug"}))
}

func TestSavePostReplaces(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.SavePost(BlogPost{Slug: "p", Title: "First", PubDatetime: day(1)}))
	require.NoError(t, s.SavePost(BlogPost{Slug: "p", Title: "Second", PubDatetime: day(1), ModDatetime: day(2)}))

	got, err := s.GetPostAny("p")
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Title)
	assert.True(t, got.ModDatetime.Equal(day(2)))

	all, err := s.ListAllPosts()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDraftsHiddenFromPublicQueries(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.SavePost(BlogPost{Slug: "published", Title: "Published", PubDatetime: day(1)}))
	require.NoError(t, s.SavePost(BlogPost{Slug: "draft", Title: "Draft", PubDatetime: day(2), Draft: true}))

	got, err := s.GetPostAny("draft")
	require.NoError(t, err)
	assert.True(t, got.Draft)

	posts, err := s.ListPosts()
	require.NoError(t, err)
	assert.Equal(t, []string{"published"}, slugs(posts))

	all, err := s.ListAllPosts()
	require.NoError(t, err)
	assert.Equal(t, []string{"draft", "published"}, slugs(all))
}

func TestListPostsOrder(t *testing.T) {
	s := setupTestStore(t)

	edited := BlogPost{Slug: "edited", Title: "Edited", PubDatetime: day(1), ModDatetime: day(10)}
	require.NoError(t, s.SavePost(BlogPost{Slug: "older", Title: "Older", PubDatetime: day(3)}))
	require.NoError(t, s.SavePost(BlogPost{Slug: "newer", Title: "Newer", PubDatetime: day(5)}))
	require.NoError(t, s.SavePost(edited))

	posts, err := s.ListPosts()
	require.NoError(t, err)
	assert.Equal(t, []string{"edited", "newer", "older"}, slugs(posts))
}

func TestDeletePost(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.SavePost(BlogPost{Slug: "gone", Title: "Gone", PubDatetime: day(1)}))
	require.NoError(t, s.DeletePost("gone"))

	_, err := s.GetPostAny("gone")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestImages(t *testing.T) {
	s := setupTestStore(t)

	older := Image{Filename: "a.webp", OriginalName: "a.png", Width: 800, Height: 600, Size: 1234, UploadedAt: "2024-01-01T00:00:00Z"}
	newer := Image{Filename: "b.webp", OriginalName: "b.jpg", Width: 400, Height: 300, Size: 99, UploadedAt: "2024-02-01T00:00:00Z"}
	require.NoError(t, s.SaveImage(older))
	require.NoError(t, s.SaveImage(newer))

	images, err := s.ListImages()
	require.NoError(t, err)
	assert.Equal(t, []Image{newer, older}, images)

	require.NoError(t, s.DeleteImage("a.webp"))
	images, err = s.ListImages()
	require.NoError(t, err)
	assert.Equal(t, []Image{newer}, images)
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{",go,web,", []string{"go", "web"}},
		{",Web Dev,", []string{"Web Dev"}},
		{",,", nil},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseTags(tt.input), "ParseTags(%q)", tt.input)
	}
}
