// Package ports defines the interfaces between the domain and infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
)

// ArticleDB is the persistence interface for the temporal article store.
// Each call is one implicit transaction: a crash mid-write can never leave
// a revision half-written.
type ArticleDB interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Seed inserts the starter articles if the store is empty. Seed
	// revisions are dated at the Unix epoch so they are visible at any
	// real cutoff. Safe to invoke on every startup.
	Seed(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// ListArticles returns metadata for every article, ordered by slug.
	ListArticles(ctx context.Context) ([]entities.ArticleMeta, error)

	// FindArticleBySlug finds an article by slug. Returns nil if not found.
	FindArticleBySlug(ctx context.Context, slug string) (*entities.Article, error)

	// CreateArticle creates an article together with its initial revision.
	// This is the admin path; the normal write path never creates articles.
	CreateArticle(ctx context.Context, article *entities.Article, initialBody, source string) error

	// ContentAsOf returns the body of the revision with the greatest
	// effective date on or before cutoff, ties broken by latest insertion.
	// Returns "" if the slug is unknown or every revision is after cutoff.
	ContentAsOf(ctx context.Context, slug string, cutoff time.Time) (string, error)

	// InsertRevision appends a revision to an existing article. Returns an
	// error wrapping entities.ErrUnknownArticle if the slug does not exist.
	InsertRevision(ctx context.Context, slug, contentMD string, sessionDate *time.Time, source string) error

	// ListRevisions returns an article's full history, newest first.
	ListRevisions(ctx context.Context, slug string) ([]entities.Revision, error)

	// CountRevisions counts how many revisions an article has.
	CountRevisions(ctx context.Context, slug string) (int, error)
}
