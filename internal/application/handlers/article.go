package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
	"github.com/ersonp/campaign-memory/internal/domain/services"
)

// ArticleHandler handles article reads and manual updates.
type ArticleHandler struct {
	articles *services.ArticleService
}

// NewArticleHandler creates a new article handler.
func NewArticleHandler(articles *services.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		articles: articles,
	}
}

// List returns metadata for every article.
func (h *ArticleHandler) List(ctx context.Context) []entities.ArticleMeta {
	return h.articles.List(ctx)
}

// GetResult contains a point-in-time view of one or more articles.
type GetResult struct {
	AsOf     time.Time
	Articles map[string]string
}

// Get returns each requested article as it existed on or before cutoff.
func (h *ArticleHandler) Get(ctx context.Context, slugs []string, cutoff time.Time) (*GetResult, error) {
	if len(slugs) == 0 {
		return nil, errors.New("no article slugs given")
	}

	return &GetResult{
		AsOf:     entities.DateOnly(cutoff),
		Articles: h.articles.GetAsOf(ctx, slugs, cutoff),
	}, nil
}

// Update appends a manually authored revision to an article.
func (h *ArticleHandler) Update(ctx context.Context, slug, contentMD string, sessionDate *time.Time) error {
	if contentMD == "" {
		return fmt.Errorf("article %s: empty content", slug)
	}
	return h.articles.Update(ctx, slug, contentMD, sessionDate, entities.SourceHuman)
}

// History returns an article's revision history, newest first.
func (h *ArticleHandler) History(ctx context.Context, slug string) ([]entities.Revision, error) {
	revisions, err := h.articles.History(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("reading history of %s: %w", slug, err)
	}
	if len(revisions) == 0 {
		return nil, fmt.Errorf("%w: %s", entities.ErrUnknownArticle, slug)
	}
	return revisions, nil
}
