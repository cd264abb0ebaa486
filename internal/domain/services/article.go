// Package services contains the domain services of the campaign memory store.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
	"github.com/ersonp/campaign-memory/internal/domain/ports"
)

// ArticleService answers "what did this article say as of date D" without
// ever exposing content whose effective date is after D, and appends new
// revisions. Reads fail soft; writes fail loud.
type ArticleService struct {
	db  ports.ArticleDB
	log *slog.Logger
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db ports.ArticleDB, log *slog.Logger) *ArticleService {
	return &ArticleService{
		db:  db,
		log: log,
	}
}

// List returns metadata for every article, ordered by slug. Metadata is
// always fully visible regardless of cutoff. Listing is advisory: a storage
// error degrades to an empty list with a logged error.
func (s *ArticleService) List(ctx context.Context) []entities.ArticleMeta {
	metas, err := s.db.ListArticles(ctx)
	if err != nil {
		s.log.Error("listing articles", "error", err)
		return []entities.ArticleMeta{}
	}
	return metas
}

// GetAsOf returns, for each requested slug, the article body as it existed
// on or before cutoff. Every requested slug is present in the result: an
// unknown slug, an article whose revisions are all after cutoff, and a
// storage error all collapse to "" so callers get a deterministic,
// spoiler-free view without special-casing "doesn't exist yet".
func (s *ArticleService) GetAsOf(ctx context.Context, slugs []string, cutoff time.Time) map[string]string {
	result := make(map[string]string, len(slugs))
	for _, slug := range slugs {
		content, err := s.db.ContentAsOf(ctx, slug, cutoff)
		if err != nil {
			s.log.Error("reading article", "slug", slug, "cutoff", cutoff.Format("2006-01-02"), "error", err)
			content = ""
		}
		result[slug] = content
	}
	return result
}

// Update appends a revision to an existing article. contentMD is the entire
// replacement body; callers read the current body via GetAsOf and merge
// before writing. A nil sessionDate marks an edit made outside a session
// context, dated by its creation timestamp instead. Writing to an unknown
// slug returns an error wrapping entities.ErrUnknownArticle; storage errors
// propagate so a lost write is never silent.
func (s *ArticleService) Update(ctx context.Context, slug, contentMD string, sessionDate *time.Time, source string) error {
	if err := s.db.InsertRevision(ctx, slug, contentMD, sessionDate, source); err != nil {
		return fmt.Errorf("updating article %s: %w", slug, err)
	}
	return nil
}

// History returns an article's revision history, newest first.
func (s *ArticleService) History(ctx context.Context, slug string) ([]entities.Revision, error) {
	return s.db.ListRevisions(ctx, slug)
}
