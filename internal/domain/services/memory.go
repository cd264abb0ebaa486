package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
	"github.com/ersonp/campaign-memory/internal/domain/ports"
)

// MemoryService drives automated article updates: it reads each article as
// it existed on or before the session date, asks the LLM for a complete
// replacement body incorporating the session digest, and appends the result
// as a session-dated revision. Reading at the session cutoff is what keeps
// later sessions from leaking backward into earlier ones being reprocessed.
type MemoryService struct {
	articles *ArticleService
	llm      ports.LLMClient
	log      *slog.Logger
}

// NewMemoryService creates a new MemoryService.
func NewMemoryService(articles *ArticleService, llm ports.LLMClient, log *slog.Logger) *MemoryService {
	return &MemoryService{
		articles: articles,
		llm:      llm,
		log:      log,
	}
}

// DigestResult reports which articles a digest touched.
type DigestResult struct {
	Updated   []string `json:"updated"`
	Unchanged []string `json:"unchanged"`
}

// ApplyDigest folds a session digest into the campaign memory. When slugs is
// empty every article is considered. Per-article LLM failures are isolated
// and joined into the returned error so one bad draft doesn't lose the rest
// of the session.
func (s *MemoryService) ApplyDigest(ctx context.Context, slugs []string, digest string, sessionDate time.Time) (*DigestResult, error) {
	if strings.TrimSpace(digest) == "" {
		return nil, errors.New("digest is empty")
	}

	metas := s.articles.List(ctx)
	if len(slugs) > 0 {
		metas = filterMetas(metas, slugs)
	}
	if len(metas) == 0 {
		return nil, errors.New("no matching articles")
	}

	metaSlugs := make([]string, len(metas))
	for i, m := range metas {
		metaSlugs[i] = m.Slug
	}
	prior := s.articles.GetAsOf(ctx, metaSlugs, sessionDate)

	result := &DigestResult{}
	var errs []error
	for _, meta := range metas {
		current := prior[meta.Slug]

		revised, err := s.llm.ReviseArticle(ctx, meta, current, digest)
		if err != nil {
			errs = append(errs, fmt.Errorf("revising %s: %w", meta.Slug, err))
			continue
		}

		revised = strings.TrimSpace(revised)
		if revised == "" || revised == strings.TrimSpace(current) {
			result.Unchanged = append(result.Unchanged, meta.Slug)
			continue
		}

		if err := s.articles.Update(ctx, meta.Slug, revised, &sessionDate, entities.SourceLLM); err != nil {
			errs = append(errs, err)
			continue
		}
		s.log.Info("updated article", "slug", meta.Slug, "session", sessionDate.Format("2006-01-02"))
		result.Updated = append(result.Updated, meta.Slug)
	}

	return result, errors.Join(errs...)
}

func filterMetas(metas []entities.ArticleMeta, slugs []string) []entities.ArticleMeta {
	wanted := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		wanted[s] = true
	}
	filtered := make([]entities.ArticleMeta, 0, len(slugs))
	for _, m := range metas {
		if wanted[m.Slug] {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
