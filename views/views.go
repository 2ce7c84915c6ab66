// Package views is the default set of mintpaper templates. Every view is a
// templ.Component backed by an embedded html/template page rendered inside
// a shared layout.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/text/language"

	"github.com/undefinedmint/mintpaper"
	"github.com/undefinedmint/mintpaper/markdown"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"index", "posts", "post", "tags", "tag", "notfound", "servererror",
	"admin_login", "admin_dashboard", "admin_form", "admin_images",
}

// pageData is the value every template executes against.
type pageData struct {
	Site      mintpaper.SiteConfig
	Meta      mintpaper.PageMeta
	JSONLD    template.JS
	Featured  []mintpaper.BlogPost
	Page      mintpaper.PostPage
	Post      mintpaper.BlogPost
	Related   []mintpaper.BlogPost
	Tags      []mintpaper.TagInfo
	Tag       mintpaper.TagInfo
	Posts     []mintpaper.BlogPost
	Images    []mintpaper.Image
	Message   string
	CSRF      string
	ShowError bool
}

type renderer struct {
	cfg   mintpaper.SiteConfig
	pages map[string]*template.Template
}

// dateLayouts pairs the languages with a dedicated date layout; the first
// entry is the fallback for everything else.
var dateLayouts = []struct {
	tag    language.Tag
	layout string
}{
	{language.English, "Jan 2, 2006"},
	{language.Chinese, "2006年1月2日"},
	{language.Japanese, "2006年1月2日"},
	{language.Korean, "2006년 1월 2일"},
}

var dateMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(dateLayouts))
	for i, d := range dateLayouts {
		tags[i] = d.tag
	}
	return language.NewMatcher(tags)
}()

// DateLayout returns the time layout for displayed dates, picked from the
// site's BCP 47 language tags in order of preference.
func DateLayout(langTags []string) string {
	tags := make([]language.Tag, 0, len(langTags))
	for _, s := range langTags {
		tags = append(tags, language.Make(s))
	}
	_, i, _ := dateMatcher.Match(tags...)
	return dateLayouts[i].layout
}

func funcs(cfg mintpaper.SiteConfig) template.FuncMap {
	layout := DateLayout(cfg.Locale.LangTags)
	return template.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(layout)
		},
		"isoDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(time.RFC3339)
		},
		"inputDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(time.DateOnly)
		},
		"markdown": func(s string) (template.HTML, error) {
			h, err := markdown.ToHTML(s)
			return template.HTML(h), err
		},
		"minutes":    markdown.ReadingMinutes,
		"slug":       mintpaper.Slugify,
		"joinTags":   mintpaper.JoinTags,
		"pathEscape": mintpaper.PathEscape,
		"add":        func(a, b int) int { return a + b },
	}
}

func newRenderer(cfg mintpaper.SiteConfig) (*renderer, error) {
	r := &renderer{cfg: cfg, pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs(cfg)).ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *renderer) page(name string, data pageData) templ.Component {
	data.Site = r.cfg
	if data.Meta.Title == "" {
		data.Meta.Title = r.cfg.Title
	}
	if data.Meta.Description == "" {
		data.Meta.Description = r.cfg.Description
	}
	if data.Meta.OGType == "" {
		data.Meta.OGType = "website"
	}
	if data.Meta.OGImage == "" && r.cfg.OGImage != "" {
		data.Meta.OGImage = strings.TrimRight(r.cfg.Website, "/") + "/" + strings.TrimLeft(r.cfg.OGImage, "/")
	}
	if data.JSONLD == "" {
		data.JSONLD = template.JS(mintpaper.WebsiteJsonLD(r.cfg))
	}
	t := r.pages[name]
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, "layout", data)
	})
}

func (r *renderer) meta(title, description string, segments ...string) mintpaper.PageMeta {
	m := mintpaper.PageMeta{
		Title:       title,
		Description: description,
		URL:         mintpaper.BuildURL(r.cfg.Website, segments...),
	}
	if title != r.cfg.Title {
		m.Title = title + " | " + r.cfg.Title
	}
	return m
}

// New parses the embedded templates and returns view functions bound to cfg.
func New(cfg mintpaper.SiteConfig) (mintpaper.ViewFuncs, error) {
	r, err := newRenderer(cfg)
	if err != nil {
		return mintpaper.ViewFuncs{}, err
	}
	return mintpaper.ViewFuncs{
		Index: func(featured []mintpaper.BlogPost, recent mintpaper.PostPage) templ.Component {
			return r.page("index", pageData{
				Meta:     r.meta(cfg.Title, cfg.Description),
				Featured: featured,
				Page:     recent,
			})
		},
		Posts: func(page mintpaper.PostPage) templ.Component {
			return r.page("posts", pageData{
				Meta: r.meta("Posts", "All the articles I've posted.", "posts"),
				Page: page,
			})
		},
		Post: func(post mintpaper.BlogPost, related []mintpaper.BlogPost) templ.Component {
			meta := r.meta(post.Title, post.Description, "posts", post.Slug)
			meta.OGType = "article"
			if post.OGImage != "" {
				meta.OGImage = post.OGImage
			}
			return r.page("post", pageData{
				Meta:    meta,
				JSONLD:  template.JS(mintpaper.BlogPostingJsonLD(post, cfg)),
				Post:    post,
				Related: related,
			})
		},
		Tags: func(tags []mintpaper.TagInfo) templ.Component {
			return r.page("tags", pageData{
				Meta: r.meta("Tags", "All the tags used in posts.", "tags"),
				Tags: tags,
			})
		},
		TagPosts: func(tag mintpaper.TagInfo, page mintpaper.PostPage) templ.Component {
			return r.page("tag", pageData{
				Meta: r.meta("Tag: "+tag.Name, "All the articles with the tag \""+tag.Name+"\".", "tags", tag.Tag),
				Tag:  tag,
				Page: page,
			})
		},
		AdminLogin: func(showError bool, csrfToken string) templ.Component {
			return r.page("admin_login", pageData{Meta: r.meta("Admin", ""), ShowError: showError, CSRF: csrfToken})
		},
		AdminDashboard: func(posts []mintpaper.BlogPost, message string, csrfToken string) templ.Component {
			return r.page("admin_dashboard", pageData{Meta: r.meta("Admin", ""), Posts: posts, Message: message, CSRF: csrfToken})
		},
		AdminFormPartial: func(post mintpaper.BlogPost, csrfToken string) templ.Component {
			return r.page("admin_form", pageData{Meta: r.meta("Edit "+post.Title, ""), Post: post, CSRF: csrfToken})
		},
		AdminImages: func(images []mintpaper.Image, csrfToken string) templ.Component {
			return r.page("admin_images", pageData{Meta: r.meta("Images", ""), Images: images, CSRF: csrfToken})
		},
		NotFound: func() templ.Component {
			return r.page("notfound", pageData{Meta: r.meta("404 Not Found", "")})
		},
		ServerError: func() templ.Component {
			return r.page("servererror", pageData{Meta: r.meta("Server Error", "")})
		},
	}, nil
}

// Must is New for package-level initialisation; it panics on template errors.
func Must(cfg mintpaper.SiteConfig) mintpaper.ViewFuncs {
	v, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return v
}
