// Package mintpaper is a personal blog engine built with Go, Echo, and templ.
// It serves an AstroPaper-style site: a paginated landing page and archive,
// tag listings, RSS, a sitemap, theme CSS, and a small admin for posts and
// image uploads.
//
// Users provide their own templ components via the ViewFuncs struct (the
// views subpackage ships a default set), and mintpaper handles the handler
// logic, middleware, pagination, and database operations.
package mintpaper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ViewFuncs holds the templ components the framework calls when rendering
// pages. Listing views receive a PostPage whose CurrentPage is never the
// not-found sentinel; those requests are routed to NotFound instead.
type ViewFuncs struct {
	Index            func(featured []BlogPost, recent PostPage) templ.Component
	Posts            func(page PostPage) templ.Component
	Post             func(post BlogPost, related []BlogPost) templ.Component
	Tags             func(tags []TagInfo) templ.Component
	TagPosts         func(tag TagInfo, page PostPage) templ.Component
	AdminLogin       func(showError bool, csrfToken string) templ.Component
	AdminDashboard   func(posts []BlogPost, message string, csrfToken string) templ.Component
	AdminFormPartial func(post BlogPost, csrfToken string) templ.Component
	AdminImages      func(images []Image, csrfToken string) templ.Component
	NotFound         func() templ.Component
	ServerError      func() templ.Component
}

// App is the central mintpaper application. It wires together the store,
// cache, handlers, middleware, and templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs
	Log    zerolog.Logger

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
	now          func() time.Time
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true

	a := &App{
		Config:    cfg,
		Echo:      e,
		Views:     views,
		Log:       NewLogger(os.Stderr, cfg.LogLevel, false),
		staticDir: "public",
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup validates the configuration, opens the store, and registers
// middleware and routes. Start calls it; tests call it directly and drive
// a.Echo through httptest.
func (a *App) Setup() error {
	if err := a.Config.Validate(); err != nil {
		return fmt.Errorf("mintpaper: %w", err)
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("mintpaper: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL, a.Config.ScheduledPostMargin)
	a.Cache.now = a.now

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and serves HTTP until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.Log.Info().Str("addr", a.Config.Addr).Str("site", a.Config.Website).Msg("starting server")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/theme.css", a.handleThemeCSS)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/rss.xml", a.handleFeed)
	e.GET("/", a.handleIndex)
	e.GET("/posts/", a.handlePosts)
	e.GET("/posts/:param/", a.handlePostOrPage)
	e.GET("/tags/", a.handleTags)
	e.GET("/tags/:tag/", a.handleTagPosts)
	e.GET("/tags/:tag/:page/", a.handleTagPosts)

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/post/:slug/", a.handleAdminPost)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/post/:slug/", a.handleAdminDelete)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
