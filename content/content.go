// Package content loads Markdown posts with YAML front matter from disk.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/undefinedmint/mintpaper"
)

const delim = "---"

// DefaultTag is assigned to posts that declare no tags.
const DefaultTag = "others"

var (
	// ErrNoFrontMatter is returned when a file does not open with a
	// front matter block.
	ErrNoFrontMatter = errors.New("no front matter")

	// ErrUnclosedFrontMatter is returned when the closing delimiter is missing.
	ErrUnclosedFrontMatter = errors.New("unclosed front matter")

	// ErrMissingTitle is returned when the front matter has no title.
	ErrMissingTitle = errors.New("missing title")
)

// FrontMatter is the metadata block at the top of a post file.
type FrontMatter struct {
	Title       string     `yaml:"title"`
	Slug        string     `yaml:"slug"`
	Author      string     `yaml:"author"`
	PubDatetime time.Time  `yaml:"pubDatetime"`
	ModDatetime *time.Time `yaml:"modDatetime"`
	Description string     `yaml:"description"`
	Tags        []string   `yaml:"tags"`
	Draft       bool       `yaml:"draft"`
	Featured    bool       `yaml:"featured"`
	OGImage     string     `yaml:"ogImage"`
}

// Split separates the front matter block from the body. Leading blank
// lines before the opening delimiter are ignored.
func Split(r io.Reader) (front []byte, body []byte, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var fm bytes.Buffer
	opened := false
	for rest := data; len(rest) > 0; {
		line := rest
		next := len(rest)
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line = rest[:i]
			next = i + 1
		}
		rest = rest[next:]
		trimmed := strings.TrimRight(string(line), " \t\r")

		if !opened {
			if trimmed == "" {
				continue
			}
			if trimmed != delim {
				return nil, nil, ErrNoFrontMatter
			}
			opened = true
			continue
		}
		if trimmed == delim {
			return fm.Bytes(), rest, nil
		}
		fm.Write(line)
		fm.WriteByte('\n')
	}
	if !opened {
		return nil, nil, ErrNoFrontMatter
	}
	return nil, nil, ErrUnclosedFrontMatter
}

// Parse reads one post. A missing slug is derived from the title; posts
// without tags get DefaultTag.
func Parse(r io.Reader) (mintpaper.BlogPost, error) {
	front, body, err := Split(r)
	if err != nil {
		return mintpaper.BlogPost{}, err
	}
	var fm FrontMatter
	if err := yaml.Unmarshal(front, &fm); err != nil {
		return mintpaper.BlogPost{}, fmt.Errorf("decode front matter: %w", err)
	}
	if strings.TrimSpace(fm.Title) == "" {
		return mintpaper.BlogPost{}, ErrMissingTitle
	}

	slug := mintpaper.Slugify(fm.Slug)
	if slug == "" {
		slug = mintpaper.Slugify(fm.Title)
	}
	tags := mintpaper.FilterEmpty(fm.Tags)
	if len(tags) == 0 {
		tags = []string{DefaultTag}
	}
	post := mintpaper.BlogPost{
		Title:       strings.TrimSpace(fm.Title),
		Slug:        slug,
		Description: strings.TrimSpace(fm.Description),
		Content:     strings.TrimLeft(string(body), "\r\n"),
		Tags:        tags,
		PubDatetime: fm.PubDatetime,
		Draft:       fm.Draft,
		Featured:    fm.Featured,
		OGImage:     fm.OGImage,
		Link:        "/posts/" + slug + "/",
	}
	if fm.ModDatetime != nil {
		post.ModDatetime = *fm.ModDatetime
	}
	return post, nil
}

// ParseFile reads the post stored at path.
func ParseFile(path string) (mintpaper.BlogPost, error) {
	f, err := os.Open(path)
	if err != nil {
		return mintpaper.BlogPost{}, err
	}
	defer f.Close()
	post, err := Parse(f)
	if err != nil {
		return mintpaper.BlogPost{}, fmt.Errorf("%s: %w", path, err)
	}
	if post.PubDatetime.IsZero() {
		if st, err := f.Stat(); err == nil {
			post.PubDatetime = st.ModTime().UTC()
		}
	}
	return post, nil
}

// LoadDir parses every .md file below dir, in path order.
func LoadDir(dir string) ([]mintpaper.BlogPost, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	posts := make([]mintpaper.BlogPost, 0, len(paths))
	for _, p := range paths {
		post, err := ParseFile(p)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}
