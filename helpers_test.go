package mintpaper

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "https://example.com/posts/hello/", BuildURL("https://example.com", "posts", "hello"))
	assert.Equal(t, "https://example.com/", BuildURL("https://example.com/", ""))
	assert.Equal(t, "https://example.com", BuildURL("https://example.com"))
}

func TestFilterEmpty(t *testing.T) {
	assert.Equal(t, []string{"go", "web"}, FilterEmpty([]string{" go ", "", "  ", "web"}))
	assert.Nil(t, FilterEmpty(nil))
}

func TestFilterRelatedPosts(t *testing.T) {
	current := post("current", 5, "Go", "Web Dev")
	posts := []BlogPost{
		current,
		post("shares-go", 4, "go"),
		post("shares-web", 3, "web-dev"),
		post("unrelated", 2, "rust"),
	}
	assert.Equal(t, []string{"shares-go", "shares-web"}, slugs(FilterRelatedPosts(current, posts)))
}

func TestFeaturedPosts(t *testing.T) {
	a := post("a", 1)
	a.Featured = true
	c := post("c", 3)
	c.Featured = true
	assert.Equal(t, []string{"a", "c"}, slugs(FeaturedPosts([]BlogPost{a, post("b", 2), c})))
}

func TestBlogPostingJsonLD(t *testing.T) {
	cfg := DefaultConfig()
	p := post("hello", 1, "go", "web")
	p.ModDatetime = day(2)

	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(BlogPostingJsonLD(p, cfg)), &data))
	assert.Equal(t, "BlogPosting", data["@type"])
	assert.Equal(t, "https://mintu.org/posts/hello/", data["url"])
	assert.Equal(t, "go, web", data["keywords"])
	assert.Contains(t, data, "dateModified")
}

func TestWebsiteJsonLD(t *testing.T) {
	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(WebsiteJsonLD(DefaultConfig())), &data))
	assert.Equal(t, "WebSite", data["@type"])
	assert.Equal(t, "Mint's Blog", data["name"])
	assert.Equal(t, "en", data["inLanguage"])
}

func TestBuildFeed(t *testing.T) {
	cfg := DefaultConfig()
	edited := post("edited", 1)
	edited.ModDatetime = day(9)
	feed := BuildFeed(cfg, []BlogPost{post("newer", 5), edited})

	require.Len(t, feed.Items, 2)
	assert.Equal(t, "https://mintu.org/posts/newer/", feed.Items[0].Link.Href)
	assert.True(t, feed.Updated.Equal(day(9)))

	rss, err := feed.ToRss()
	require.NoError(t, err)
	assert.Contains(t, rss, "<title>Mint&#39;s Blog</title>")
	assert.Contains(t, rss, "https://mintu.org/posts/edited/")
}

func TestBuildSitemap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PostPerPage = 2
	posts := []BlogPost{post("c", 3), post("b", 2), post("a", 1)}
	tags := []TagInfo{{Tag: "go", Name: "Go"}}

	set := buildSitemap(cfg, posts, tags)
	var locs []string
	for _, u := range set.URLs {
		locs = append(locs, u.Loc)
	}
	assert.Equal(t, []string{
		"https://mintu.org",
		"https://mintu.org/posts/",
		"https://mintu.org/tags/",
		"https://mintu.org/posts/2/",
		"https://mintu.org/posts/c/",
		"https://mintu.org/posts/b/",
		"https://mintu.org/posts/a/",
		"https://mintu.org/tags/go/",
	}, locs)
	assert.Equal(t, "2024-03-03", set.URLs[4].LastMod)

	out, err := xml.Marshal(set)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`))
}
