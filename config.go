package mintpaper

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when a SiteConfig fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Social is a link rendered in the header and footer social bar.
type Social struct {
	Name      string `mapstructure:"name" yaml:"name"`
	Href      string `mapstructure:"href" yaml:"href"`
	LinkTitle string `mapstructure:"link_title" yaml:"link_title"`
	Active    bool   `mapstructure:"active" yaml:"active"`
}

// Locale controls the html lang attribute and date formatting.
type Locale struct {
	Lang     string   `mapstructure:"lang" yaml:"lang"`           // html lang code (default "en")
	LangTags []string `mapstructure:"lang_tags" yaml:"lang_tags"` // BCP 47 tags picking the date layout
}

// LogoImage describes the optional header logo served from /public.
type LogoImage struct {
	Enable bool `mapstructure:"enable" yaml:"enable"`
	SVG    bool `mapstructure:"svg" yaml:"svg"`
	Width  int  `mapstructure:"width" yaml:"width"`
	Height int  `mapstructure:"height" yaml:"height"`
}

// SiteConfig holds all configuration for a mintpaper site. The yaml tags
// mirror the mapstructure ones so a config written by "mintpaper init"
// reads back unchanged.
type SiteConfig struct {
	Website          string `mapstructure:"website" yaml:"website"` // canonical URL
	Author           string `mapstructure:"author" yaml:"author"`
	Profile          string `mapstructure:"profile" yaml:"profile"`
	Description      string `mapstructure:"description" yaml:"description"`
	Title            string `mapstructure:"title" yaml:"title"`
	OGImage          string `mapstructure:"og_image" yaml:"og_image"`
	LightAndDarkMode bool   `mapstructure:"light_and_dark_mode" yaml:"light_and_dark_mode"`

	PostPerIndex        int           `mapstructure:"post_per_index" yaml:"post_per_index"`
	PostPerPage         int           `mapstructure:"post_per_page" yaml:"post_per_page"`
	ScheduledPostMargin time.Duration `mapstructure:"scheduled_post_margin" yaml:"scheduled_post_margin"`

	Locale  Locale    `mapstructure:"locale" yaml:"locale"`
	Logo    LogoImage `mapstructure:"logo" yaml:"logo"`
	Socials []Social  `mapstructure:"socials" yaml:"socials"`

	Addr         string `mapstructure:"addr" yaml:"addr"`                   // listen address (default ":3000")
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"` // SQLite path (default "data/blog.db")

	AdminPassword string `mapstructure:"admin_password" yaml:"admin_password"`
	SessionSecret string `mapstructure:"session_secret" yaml:"session_secret"`
	CookieSecure  bool   `mapstructure:"cookie_secure" yaml:"cookie_secure"`

	PostCacheTTL time.Duration `mapstructure:"post_cache_ttl" yaml:"post_cache_ttl"`
	LogLevel     string        `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the configuration of the original site.
func DefaultConfig() SiteConfig {
	cfg := SiteConfig{
		Website:          "https://mintu.org",
		Author:           "Mint",
		Profile:          "https://satnaing.dev/",
		Description:      "Mint's Hello World",
		Title:            "Mint's Blog",
		OGImage:          "astropaper-og.jpg",
		LightAndDarkMode: true,
		Logo: LogoImage{
			SVG:    true,
			Width:  216,
			Height: 46,
		},
		Socials: []Social{
			{
				Name:      "Mail",
				Href:      "mailto:undefinedmint@proton.me",
				LinkTitle: "Send an email to me",
				Active:    true,
			},
			{
				Name:      "WeChat",
				Href:      "/assets/wechat-qrcode.jpg",
				LinkTitle: "Add me on WeChat: i__am__mint",
				Active:    true,
			},
		},
	}
	cfg.setDefaults()
	return cfg
}

func (c *SiteConfig) setDefaults() {
	if c.Title == "" {
		c.Title = "Blog"
	}
	if c.Website == "" {
		c.Website = "http://localhost:3000"
	}
	if c.PostPerIndex == 0 {
		c.PostPerIndex = 4
	}
	if c.PostPerPage == 0 {
		c.PostPerPage = 3
	}
	if c.ScheduledPostMargin == 0 {
		c.ScheduledPostMargin = 15 * time.Minute
	}
	if c.Locale.Lang == "" {
		c.Locale.Lang = "en"
	}
	if c.Locale.LangTags == nil {
		c.Locale.LangTags = []string{"en-EN"}
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = zerolog.LevelInfoValue
	}
}

// Validate checks the values the site cannot run without.
func (c SiteConfig) Validate() error {
	if c.PostPerIndex <= 0 {
		return fmt.Errorf("%w: post_per_index must be positive", ErrInvalidConfig)
	}
	if c.PostPerPage <= 0 {
		return fmt.Errorf("%w: post_per_page must be positive", ErrInvalidConfig)
	}
	if c.AdminPassword == "" {
		return fmt.Errorf("%w: admin_password is required", ErrInvalidConfig)
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("%w: session_secret is required", ErrInvalidConfig)
	}
	return nil
}

// PageSizes returns the pagination sizes configured for the site.
func (c SiteConfig) PageSizes() PageSizes {
	return PageSizes{PerIndex: c.PostPerIndex, PerPage: c.PostPerPage}
}

// ActiveSocials returns the socials marked active, in configured order.
func (c SiteConfig) ActiveSocials() []Social {
	var out []Social
	for _, s := range c.Socials {
		if s.Active {
			out = append(out, s)
		}
	}
	return out
}

// envKeys are the scalar settings that may be overridden with MINTPAPER_*
// environment variables, e.g. MINTPAPER_POST_PER_PAGE.
var envKeys = []string{
	"website", "author", "profile", "description", "title", "og_image",
	"light_and_dark_mode", "post_per_index", "post_per_page",
	"scheduled_post_margin", "locale.lang", "addr", "database_path",
	"admin_password", "session_secret", "cookie_secure", "post_cache_ttl",
	"log_level",
}

// LoadConfig reads the settings file at path (YAML, TOML or JSON) over
// DefaultConfig and applies MINTPAPER_* environment overrides. A missing
// file is not an error.
func LoadConfig(path string) (SiteConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("MINTPAPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return SiteConfig{}, fmt.Errorf("mintpaper: bind env %s: %w", key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return SiteConfig{}, fmt.Errorf("mintpaper: read config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return SiteConfig{}, fmt.Errorf("mintpaper: stat config %s: %w", path, err)
		}
	}

	cfg := DefaultConfig()
	// Lists from the file replace the defaults instead of merging by index.
	if v.IsSet("socials") {
		cfg.Socials = nil
	}
	if v.IsSet("locale.lang_tags") {
		cfg.Locale.LangTags = nil
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("mintpaper: decode config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger replaces the default stderr logger.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) {
		a.Log = l
	}
}

// WithClock overrides the time source used for scheduled-post visibility.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
