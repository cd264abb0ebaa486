// Package sqlite provides a SQLite implementation of the ArticleDB interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
	"github.com/ersonp/campaign-memory/internal/infrastructure/config"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Timestamps are stored as UTC text so that DATE() and lexicographic
// ordering agree with the effective-date comparison.
const (
	timestampLayout = "2006-01-02 15:04:05.000"
	dateLayout      = "2006-01-02"
)

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// effectiveDateExpr computes a revision's effective date: the session date
// when present, else the date portion of the creation timestamp. Every
// temporal comparison in this package goes through this one expression.
const effectiveDateExpr = "COALESCE(r.session_date, DATE(r.created_at))"

// Repository implements ports.ArticleDB using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Articles (named knowledge units; slugs are immutable, no delete path)
	CREATE TABLE IF NOT EXISTS article (
		id TEXT PRIMARY KEY,
		slug TEXT UNIQUE NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Article revisions (append-only full-text snapshots)
	CREATE TABLE IF NOT EXISTS article_revision (
		id TEXT PRIMARY KEY,
		article_id TEXT NOT NULL REFERENCES article(id),
		session_date TEXT,                -- NULL = edit outside a session context
		source TEXT NOT NULL,             -- 'LLM' | 'HUMAN'
		content_md TEXT NOT NULL,         -- full markdown body, not a diff
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_revision_article ON article_revision(article_id);
	CREATE INDEX IF NOT EXISTS idx_revision_session ON article_revision(article_id, session_date);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Seed inserts the starter articles if the article table is empty. Each
// starter gets one revision dated at the Unix epoch so that any real
// cutoff sees a body. Safe to invoke on every startup.
func (r *Repository) Seed(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM article").Scan(&existing)
	if err != nil {
		return fmt.Errorf("checking for existing articles: %w", err)
	}
	if existing > 0 {
		return nil
	}

	epoch := time.Unix(0, 0).UTC().Format(timestampLayout)
	now := timeNow().UTC().Format(timestampLayout)

	for _, stub := range entities.StarterArticles {
		articleID := generateUUID()
		_, err = tx.ExecContext(ctx,
			"INSERT INTO article (id, slug, title, description, created_at) VALUES (?, ?, ?, ?, ?)",
			articleID, stub.Slug, stub.Title, stub.Description, now,
		)
		if err != nil {
			return fmt.Errorf("seeding article %s: %w", stub.Slug, err)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO article_revision (id, article_id, session_date, source, content_md, created_at) VALUES (?, ?, NULL, ?, ?, ?)",
			generateUUID(), articleID, entities.SourceHuman, stub.Body, epoch,
		)
		if err != nil {
			return fmt.Errorf("seeding revision for %s: %w", stub.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}

// ListArticles returns metadata for every article, ordered by slug.
func (r *Repository) ListArticles(ctx context.Context) ([]entities.ArticleMeta, error) {
	query := `
		SELECT slug, title, description
		FROM article
		ORDER BY slug ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	metas := make([]entities.ArticleMeta, 0, 16)
	for rows.Next() {
		var m entities.ArticleMeta
		if err := rows.Scan(&m.Slug, &m.Title, &m.Description); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		metas = append(metas, m)
	}
	return metas, rows.Err()
}

// FindArticleBySlug finds an article by slug. Returns nil if not found.
func (r *Repository) FindArticleBySlug(ctx context.Context, slug string) (*entities.Article, error) {
	query := `
		SELECT id, slug, title, description, created_at
		FROM article
		WHERE slug = ?
	`
	row := r.db.QueryRowContext(ctx, query, slug)

	var article entities.Article
	var createdAt string
	err := row.Scan(
		&article.ID,
		&article.Slug,
		&article.Title,
		&article.Description,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning article: %w", err)
	}

	article.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// CreateArticle creates an article together with its initial revision in a
// single transaction. This is the admin path; the normal write path never
// creates articles.
func (r *Repository) CreateArticle(ctx context.Context, article *entities.Article, initialBody, source string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if article.ID == "" {
		article.ID = generateUUID()
	}
	now := timeNow().UTC()
	article.CreatedAt = now

	_, err = tx.ExecContext(ctx,
		"INSERT INTO article (id, slug, title, description, created_at) VALUES (?, ?, ?, ?, ?)",
		article.ID, article.Slug, article.Title, article.Description, now.Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting article %s: %w", article.Slug, err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO article_revision (id, article_id, session_date, source, content_md, created_at) VALUES (?, ?, NULL, ?, ?, ?)",
		generateUUID(), article.ID, source, initialBody, now.Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting initial revision for %s: %w", article.Slug, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ContentAsOf returns the body of the revision with the greatest effective
// date on or before cutoff. Among revisions sharing an effective date the
// one inserted last wins. Returns "" if the slug is unknown or every
// revision is strictly after cutoff.
func (r *Repository) ContentAsOf(ctx context.Context, slug string, cutoff time.Time) (string, error) {
	query := `
		SELECT r.content_md
		FROM article_revision r
		JOIN article a ON a.id = r.article_id
		WHERE a.slug = ?
		  AND ` + effectiveDateExpr + ` <= ?
		ORDER BY ` + effectiveDateExpr + ` DESC,
		         r.created_at DESC,
		         r.rowid DESC
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, slug, entities.DateOnly(cutoff).Format(dateLayout))

	var content string
	err := row.Scan(&content)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying revision for %s: %w", slug, err)
	}
	return content, nil
}

// InsertRevision appends a revision to an existing article. The lookup and
// insert run in one transaction so a crash mid-write cannot leave a
// revision half-written.
func (r *Repository) InsertRevision(ctx context.Context, slug, contentMD string, sessionDate *time.Time, source string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var articleID string
	err = tx.QueryRowContext(ctx, "SELECT id FROM article WHERE slug = ?", slug).Scan(&articleID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", entities.ErrUnknownArticle, slug)
	}
	if err != nil {
		return fmt.Errorf("looking up article %s: %w", slug, err)
	}

	var sessionDateVal any
	if sessionDate != nil {
		sessionDateVal = entities.DateOnly(*sessionDate).Format(dateLayout)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO article_revision (id, article_id, session_date, source, content_md, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		generateUUID(), articleID, sessionDateVal, source, contentMD, timeNow().UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting revision for %s: %w", slug, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListRevisions returns an article's full history, newest first.
func (r *Repository) ListRevisions(ctx context.Context, slug string) ([]entities.Revision, error) {
	query := `
		SELECT r.id, r.article_id, r.session_date, r.source, r.content_md, r.created_at
		FROM article_revision r
		JOIN article a ON a.id = r.article_id
		WHERE a.slug = ?
		ORDER BY r.created_at DESC, r.rowid DESC
	`
	rows, err := r.db.QueryContext(ctx, query, slug)
	if err != nil {
		return nil, fmt.Errorf("querying revisions: %w", err)
	}
	defer rows.Close()

	revisions := make([]entities.Revision, 0, 16)
	for rows.Next() {
		var rev entities.Revision
		var sessionDate sql.NullString
		var createdAt string

		if err := rows.Scan(
			&rev.ID,
			&rev.ArticleID,
			&sessionDate,
			&rev.Source,
			&rev.ContentMD,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning revision: %w", err)
		}

		if sessionDate.Valid {
			d, err := time.ParseInLocation(dateLayout, sessionDate.String, time.UTC)
			if err != nil {
				return nil, fmt.Errorf("parsing session date: %w", err)
			}
			rev.SessionDate = &d
		}

		rev.CreatedAt, err = parseTimestamp(createdAt)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, rev)
	}
	return revisions, rows.Err()
}

// CountRevisions counts how many revisions an article has.
func (r *Repository) CountRevisions(ctx context.Context, slug string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM article_revision r
		JOIN article a ON a.id = r.article_id
		WHERE a.slug = ?
	`
	var count int
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting revisions: %w", err)
	}
	return count, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(timestampLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp: %w", err)
	}
	return t, nil
}
