package hdsite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when a requested post does not exist.
	ErrNotFound = sql.ErrNoRows

	// ErrDuplicateSlug is returned when an insert or update violates the
	// unique constraint on blogs.slug.
	ErrDuplicateSlug = errors.New("slug already exists")
)

func init() {
	// modernc.org/sqlite registers under "sqlite"; teach sqlx its bindvar.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Store wraps a SQLite database and provides CRUD operations for blog posts.
// One Store is opened per process and shared by all requests.
type Store struct {
	db *sqlx.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema if missing. Both side effects are
// idempotent and safe to repeat.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write access, busy_timeout so writers wait
	// instead of returning SQLITE_BUSY, synchronous=NORMAL is safe under WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
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
CREATE TABLE IF NOT EXISTS blogs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    content TEXT NOT NULL,
    excerpt TEXT NOT NULL DEFAULT '',
    featured_image TEXT NOT NULL DEFAULT '',
    language TEXT NOT NULL DEFAULT 'tr',
    published INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`)
	return err
}

const blogColumns = `id, title, slug, content, excerpt, featured_image, language, published, created_at, updated_at`

// LanguageAll is the sentinel that disables language filtering in ListBlogs.
const LanguageAll = "all"

// ListBlogs returns all posts ordered by creation time descending. The
// sentinel LanguageAll returns every row; any other value filters by exact
// string match on the language column. Language values are not validated —
// filtering on an unknown language simply returns nothing.
func (s *Store) ListBlogs(language string) ([]BlogPost, error) {
	posts := []BlogPost{}
	var err error
	if language == LanguageAll || language == "" {
		err = s.db.Select(&posts, `SELECT `+blogColumns+` FROM blogs ORDER BY created_at DESC, id DESC`)
	} else {
		err = s.db.Select(&posts, `SELECT `+blogColumns+` FROM blogs WHERE language = ? ORDER BY created_at DESC, id DESC`, language)
	}
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetByID returns a single post by id, or ErrNotFound.
func (s *Store) GetByID(id int64) (BlogPost, error) {
	var p BlogPost
	err := s.db.Get(&p, `SELECT `+blogColumns+` FROM blogs WHERE id = ?`, id)
	if err != nil {
		return BlogPost{}, err
	}
	return p, nil
}

// GetBySlug returns a single post by slug, or ErrNotFound. Public detail
// pages resolve posts this way.
func (s *Store) GetBySlug(slug string) (BlogPost, error) {
	var p BlogPost
	err := s.db.Get(&p, `SELECT `+blogColumns+` FROM blogs WHERE slug = ?`, slug)
	if err != nil {
		return BlogPost{}, err
	}
	return p, nil
}

// Create inserts a new post and returns its assigned id. The caller must
// have resolved a slug already; uniqueness is enforced only by the UNIQUE
// constraint and surfaces as ErrDuplicateSlug.
func (s *Store) Create(in BlogInput) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	language := in.Language
	if language == "" {
		language = "tr"
	}
	res, err := s.db.Exec(
		`INSERT INTO blogs (title, slug, content, excerpt, featured_image, language, published, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Title, in.Slug, in.Content, in.Excerpt, in.FeaturedImage, language, boolToInt(in.Published), now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateSlug, in.Slug)
		}
		return 0, err
	}
	return res.LastInsertId()
}

// Update replaces every mutable field of the post with id, refreshes
// updated_at, and returns the refreshed row. ID and created_at are never
// touched. Returns ErrNotFound for an unknown id.
func (s *Store) Update(id int64, in BlogInput) (BlogPost, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.Exec(
		`UPDATE blogs SET title = ?, slug = ?, content = ?, excerpt = ?, featured_image = ?, language = ?, published = ?, updated_at = ?
		 WHERE id = ?`,
		in.Title, in.Slug, in.Content, in.Excerpt, in.FeaturedImage, in.Language, boolToInt(in.Published), now, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return BlogPost{}, fmt.Errorf("%w: %s", ErrDuplicateSlug, in.Slug)
		}
		return BlogPost{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return BlogPost{}, err
	}
	if n == 0 {
		return BlogPost{}, ErrNotFound
	}
	return s.GetByID(id)
}

// Delete removes the post with id. Deleting a nonexistent id is not an
// error at this layer.
func (s *Store) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM blogs WHERE id = ?`, id)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
