package mintpaper

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database and provides CRUD operations for blog posts
// and uploaded images.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed while the admin writes; busy_timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT ',,',
    pub_datetime TEXT NOT NULL,
    mod_datetime TEXT NOT NULL DEFAULT '',
    draft INTEGER NOT NULL DEFAULT 0,
    featured INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`ALTER TABLE posts ADD COLUMN og_image TEXT NOT NULL DEFAULT '';`); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate column") {
			return nil
		}
		return err
	}
	return nil
}

const postColumns = `slug, title, description, content, tags, pub_datetime, mod_datetime, draft, featured, og_image`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (BlogPost, error) {
	var slug, title, description, content, tags, pub, mod, ogImage string
	var draft, featured int
	if err := row.Scan(&slug, &title, &description, &content, &tags, &pub, &mod, &draft, &featured, &ogImage); err != nil {
		return BlogPost{}, err
	}
	pubAt, err := parseDatetime(pub)
	if err != nil {
		return BlogPost{}, fmt.Errorf("post %s: pub_datetime: %w", slug, err)
	}
	modAt, err := parseDatetime(mod)
	if err != nil {
		return BlogPost{}, fmt.Errorf("post %s: mod_datetime: %w", slug, err)
	}
	return BlogPost{
		Slug:        slug,
		Title:       title,
		Description: description,
		Content:     content,
		Tags:        ParseTags(tags),
		PubDatetime: pubAt,
		ModDatetime: modAt,
		Draft:       draft == 1,
		Featured:    featured == 1,
		OGImage:     ogImage,
		Link:        "/posts/" + slug + "/",
	}, nil
}

func (s *Store) queryPosts(query string, args ...any) ([]BlogPost, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns all non-draft posts, newest first. Scheduled posts are
// included; visibility by publish time is decided by the caller.
func (s *Store) ListPosts() ([]BlogPost, error) {
	posts, err := s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE draft = 0`)
	if err != nil {
		return nil, err
	}
	return SortPosts(posts), nil
}

// ListAllPosts returns every post (drafts included), newest first.
func (s *Store) ListAllPosts() ([]BlogPost, error) {
	posts, err := s.queryPosts(`SELECT ` + postColumns + ` FROM posts`)
	if err != nil {
		return nil, err
	}
	return SortPosts(posts), nil
}

// GetPostAny returns a post by slug regardless of draft status. Public
// reads go through PostCache, which applies visibility.
func (s *Store) GetPostAny(slug string) (BlogPost, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug))
}

// SavePost upserts a blog post. Tags are stored trimmed in their raw
// spelling; lookups compare slugs.
func (s *Store) SavePost(p BlogPost) error {
	if p.Slug == "" {
		return fmt.Errorf("save post: empty slug")
	}
	tags := FilterEmpty(p.Tags)
	tagString := "," + strings.Join(tags, ",") + ","
	_, err := s.db.Exec(`INSERT OR REPLACE INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Description, p.Content, tagString,
		formatDatetime(p.PubDatetime), formatDatetime(p.ModDatetime),
		boolInt(p.Draft), boolInt(p.Featured), p.OGImage)
	return err
}

// DeletePost removes a post by slug.
func (s *Store) DeletePost(slug string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE slug = ?`, slug)
	return err
}

// SaveImage records metadata for an uploaded image.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns uploaded images, most recent first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC, filename`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func formatDatetime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseDatetime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
