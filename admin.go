package mintpaper

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminPost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	post, err := a.Store.GetPostAny(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, a.Views.AdminFormPartial(post, CsrfToken(c)))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		a.Log.Warn().Str("ip", ip).Msg("login rate limited")
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// parseFormDatetime accepts either a date ("2006-01-02") or an RFC 3339
// timestamp. An empty value yields the zero time.
func parseFormDatetime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04", v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datetime %q", v)
	}
	return t, nil
}

// postFromForm builds a BlogPost from the admin editor form. The returned
// message is non-empty when the form is rejected.
func (a *App) postFromForm(c echo.Context) (BlogPost, string) {
	title := strings.TrimSpace(c.FormValue("title"))
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return BlogPost{}, "Slug is required. Add a title or slug."
	}
	pub, err := parseFormDatetime(c.FormValue("pub_datetime"))
	if err != nil {
		return BlogPost{}, "Invalid publish date. Use YYYY-MM-DD."
	}
	if pub.IsZero() {
		pub = a.now().UTC()
	}
	mod, err := parseFormDatetime(c.FormValue("mod_datetime"))
	if err != nil {
		return BlogPost{}, "Invalid modified date. Use YYYY-MM-DD."
	}
	return BlogPost{
		Slug:        slug,
		Title:       title,
		Description: c.FormValue("description"),
		Content:     c.FormValue("content"),
		Tags:        FilterEmpty(strings.Split(c.FormValue("tags"), ",")),
		PubDatetime: pub,
		ModDatetime: mod,
		Draft:       c.FormValue("draft") != "",
		Featured:    c.FormValue("featured") != "",
		OGImage:     strings.TrimSpace(c.FormValue("og_image")),
	}, ""
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	post, msg := a.postFromForm(c)
	if msg != "" {
		return a.renderAdminDashboard(c, msg)
	}
	if err := a.Store.SavePost(post); err != nil {
		return err
	}
	a.Cache.Invalidate()
	a.Log.Info().Str("slug", post.Slug).Bool("draft", post.Draft).Msg("post saved")
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	if err := a.Store.DeletePost(slug); err != nil {
		return err
	}
	a.Cache.Invalidate()
	a.Log.Info().Str("slug", slug).Msg("post deleted")
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Store.ListAllPosts()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(posts, msg, CsrfToken(c)))
}
