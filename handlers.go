package mintpaper

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/undefinedmint/mintpaper/theme"
)

func (a *App) notFound(c echo.Context) error {
	return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
}

func (a *App) handleIndex(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	recent := Paginate(a.Config.PageSizes(), posts, "", true)
	recent.Path = "/posts"
	return Render(c, a.Views.Index(FeaturedPosts(posts), recent))
}

func (a *App) handlePosts(c echo.Context) error {
	return a.renderPostsPage(c, "1")
}

// handlePostOrPage serves /posts/:param/ which is either a post slug or an
// archive page number. Slugs win so a post may be named "2".
func (a *App) handlePostOrPage(c echo.Context) error {
	param := pathParam(c, "param")
	post, err := a.Cache.GetPost(param)
	switch {
	case err == nil:
		return a.renderPost(c, post)
	case !errors.Is(err, ErrNotFound):
		return err
	}
	return a.renderPostsPage(c, param)
}

func (a *App) renderPostsPage(c echo.Context, page string) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	p := Paginate(a.Config.PageSizes(), posts, page, false)
	if p.NotFound() {
		return a.notFound(c)
	}
	p.Path = "/posts"
	return Render(c, a.Views.Posts(p))
}

func (a *App) renderPost(c echo.Context, post BlogPost) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(post, FilterRelatedPosts(post, posts)))
}

func (a *App) handleTags(c echo.Context) error {
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Tags(tags))
}

func (a *App) handleTagPosts(c echo.Context) error {
	tag := pathParam(c, "tag")
	page := pathParam(c, "page")
	if page == "" {
		page = "1"
	}
	posts, err := a.Cache.ListPosts(tag)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return a.notFound(c)
	}
	p := Paginate(a.Config.PageSizes(), posts, page, false)
	if p.NotFound() {
		return a.notFound(c)
	}
	p.Path = "/tags/" + tag
	return Render(c, a.Views.TagPosts(tagInfo(tag, posts), p))
}

// tagInfo recovers the display spelling of tag from the posts carrying it.
func tagInfo(tag string, posts []BlogPost) TagInfo {
	for _, t := range UniqueTags(posts) {
		if t.Tag == tag {
			return t
		}
	}
	return TagInfo{Tag: tag, Name: tag}
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts, tags)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleThemeCSS(c echo.Context) error {
	th := theme.Default()
	th.DarkMode = a.Config.LightAndDarkMode
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", []byte(th.CSS()))
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	sitemap := strings.TrimRight(a.Config.Website, "/") + "/sitemap.xml"
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s\n", sitemap)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = a.notFound(c)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func pathParam(c echo.Context, name string) string {
	v := c.Param(name)
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}
