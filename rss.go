package mintpaper

import (
	"net/http"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
)

// BuildFeed assembles the RSS feed for posts under cfg.
func BuildFeed(cfg SiteConfig, posts []BlogPost) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       cfg.Title,
		Link:        &feeds.Link{Href: BuildURL(cfg.Website)},
		Description: cfg.Description,
		Author:      &feeds.Author{Name: cfg.Author},
	}
	for _, p := range posts {
		postURL := BuildURL(cfg.Website, "posts", p.Slug)
		item := &feeds.Item{
			Title:       p.Title,
			Link:        &feeds.Link{Href: postURL},
			Id:          postURL,
			Description: p.Description,
			Created:     p.PubDatetime,
			Updated:     p.ModDatetime,
		}
		feed.Items = append(feed.Items, item)
		if updated := p.LatestDatetime(); updated.After(feed.Updated) {
			feed.Updated = updated
		}
	}
	return feed
}

func (a *App) renderRSS(c echo.Context, posts []BlogPost) error {
	rss, err := BuildFeed(a.Config, posts).ToRss()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}
