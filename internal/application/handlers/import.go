package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
	"github.com/ersonp/campaign-memory/internal/domain/ports"
	"github.com/ersonp/campaign-memory/internal/domain/services"
	"github.com/ersonp/campaign-memory/internal/infrastructure/parsers"
)

// ImportHandler handles importing articles from markdown files.
type ImportHandler struct {
	db       ports.ArticleDB
	articles *services.ArticleService
}

// NewImportHandler creates a new import handler.
func NewImportHandler(db ports.ArticleDB, articles *services.ArticleService) *ImportHandler {
	return &ImportHandler{
		db:       db,
		articles: articles,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	// SessionDate dates the imported revision; nil means the revision is
	// dated by its import timestamp.
	SessionDate *time.Time
	// Update allows appending to an existing article. Without it an
	// import that hits an existing slug fails.
	Update bool
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Slug    string
	Title   string
	Created bool
}

// Handle imports one markdown file as an article revision, creating the
// article when the slug is new.
func (h *ImportHandler) Handle(ctx context.Context, filePath string, opts ImportOptions) (*ImportResult, error) {
	parser, err := parsers.ForFile(filePath)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	raw, err := parser.Parse(file, filePath)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	existing, err := h.db.FindArticleBySlug(ctx, raw.Slug)
	if err != nil {
		return nil, fmt.Errorf("looking up article %s: %w", raw.Slug, err)
	}

	if existing == nil {
		article := &entities.Article{
			Slug:        raw.Slug,
			Title:       raw.Title,
			Description: raw.Description,
		}
		if err := h.db.CreateArticle(ctx, article, raw.Body, entities.SourceHuman); err != nil {
			return nil, fmt.Errorf("creating article %s: %w", raw.Slug, err)
		}
		return &ImportResult{Slug: raw.Slug, Title: raw.Title, Created: true}, nil
	}

	if !opts.Update {
		return nil, fmt.Errorf("article %s already exists (use update to append a revision)", raw.Slug)
	}

	if err := h.articles.Update(ctx, raw.Slug, raw.Body, opts.SessionDate, entities.SourceHuman); err != nil {
		return nil, err
	}
	return &ImportResult{Slug: raw.Slug, Title: existing.Title, Created: false}, nil
}

// HandleDir imports every markdown file in a directory, skipping
// non-markdown entries. Per-file failures are joined so one bad file
// doesn't abort the batch.
func (h *ImportHandler) HandleDir(ctx context.Context, dirPath string, opts ImportOptions) ([]ImportResult, error) {
	dirEntries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var results []ImportResult
	var errs []error
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		if _, err := parsers.ForFile(entry.Name()); err != nil {
			continue
		}

		result, err := h.Handle(ctx, filepath.Join(dirPath, entry.Name()), opts)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", entry.Name(), err))
			continue
		}
		results = append(results, *result)
	}
	return results, errors.Join(errs...)
}
