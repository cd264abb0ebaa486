// Package mocks provides in-memory fakes of the domain ports for testing.
package mocks

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
)

// ArticleDB is a mock implementation of ports.ArticleDB backed by maps.
// Set Err to make every call fail with it.
type ArticleDB struct {
	Articles  map[string]*entities.Article  // keyed by slug
	Revisions map[string][]entities.Revision // keyed by slug, insertion order
	Err       error

	// Now stamps inserted revisions; advance it in tests to control
	// created_at ordering.
	Now time.Time
}

// NewArticleDB creates a new mock ArticleDB.
func NewArticleDB() *ArticleDB {
	return &ArticleDB{
		Articles:  make(map[string]*entities.Article),
		Revisions: make(map[string][]entities.Revision),
		Now:       time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// AddArticle registers an article with a single revision.
func (m *ArticleDB) AddArticle(slug, title, description, body string, sessionDate *time.Time, createdAt time.Time) {
	m.Articles[slug] = &entities.Article{
		ID:          "article-" + slug,
		Slug:        slug,
		Title:       title,
		Description: description,
	}
	m.Revisions[slug] = append(m.Revisions[slug], entities.Revision{
		ID:          fmt.Sprintf("rev-%s-%d", slug, len(m.Revisions[slug])),
		ArticleID:   "article-" + slug,
		SessionDate: sessionDate,
		Source:      entities.SourceHuman,
		ContentMD:   body,
		CreatedAt:   createdAt,
	})
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *ArticleDB) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Seed inserts the starter articles if the store is empty.
func (m *ArticleDB) Seed(_ context.Context) error {
	return m.Err
}

// Close closes the database connection.
func (m *ArticleDB) Close() error {
	return nil
}

// ListArticles returns metadata for every article, ordered by slug.
func (m *ArticleDB) ListArticles(_ context.Context) ([]entities.ArticleMeta, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	metas := make([]entities.ArticleMeta, 0, len(m.Articles))
	for _, a := range m.Articles {
		metas = append(metas, a.Meta())
	}
	sort.Slice(metas, func(i, j int) bool {
		return metas[i].Slug < metas[j].Slug
	})
	return metas, nil
}

// FindArticleBySlug finds an article by slug.
func (m *ArticleDB) FindArticleBySlug(_ context.Context, slug string) (*entities.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Articles[slug], nil
}

// CreateArticle creates an article with its initial revision.
func (m *ArticleDB) CreateArticle(_ context.Context, article *entities.Article, initialBody, source string) error {
	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.Articles[article.Slug]; exists {
		return fmt.Errorf("article %s already exists", article.Slug)
	}
	if article.ID == "" {
		article.ID = "article-" + article.Slug
	}
	m.Articles[article.Slug] = article
	m.Revisions[article.Slug] = append(m.Revisions[article.Slug], entities.Revision{
		ID:        fmt.Sprintf("rev-%s-%d", article.Slug, len(m.Revisions[article.Slug])),
		ArticleID: article.ID,
		Source:    source,
		ContentMD: initialBody,
		CreatedAt: m.Now,
	})
	return nil
}

// ContentAsOf mirrors the SQL point-in-time query: greatest effective date
// on or before cutoff, ties broken by latest created_at then insertion.
func (m *ArticleDB) ContentAsOf(_ context.Context, slug string, cutoff time.Time) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}

	cutoffDate := entities.DateOnly(cutoff)
	best := -1
	revs := m.Revisions[slug]
	for i, rev := range revs {
		if rev.EffectiveDate().After(cutoffDate) {
			continue
		}
		if best == -1 || wins(&revs[i], &revs[best]) {
			best = i
		}
	}
	if best == -1 {
		return "", nil
	}
	return revs[best].ContentMD, nil
}

// wins reports whether a beats b under the visibility ordering. Equal
// effective dates and timestamps fall back to insertion order, which the
// caller guarantees by iterating forward.
func wins(a, b *entities.Revision) bool {
	ad, bd := a.EffectiveDate(), b.EffectiveDate()
	if !ad.Equal(bd) {
		return ad.After(bd)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return true
}

// InsertRevision appends a revision to an existing article.
func (m *ArticleDB) InsertRevision(_ context.Context, slug, contentMD string, sessionDate *time.Time, source string) error {
	if m.Err != nil {
		return m.Err
	}
	article, exists := m.Articles[slug]
	if !exists {
		return fmt.Errorf("%w: %s", entities.ErrUnknownArticle, slug)
	}
	m.Revisions[slug] = append(m.Revisions[slug], entities.Revision{
		ID:          fmt.Sprintf("rev-%s-%d", slug, len(m.Revisions[slug])),
		ArticleID:   article.ID,
		SessionDate: sessionDate,
		Source:      source,
		ContentMD:   contentMD,
		CreatedAt:   m.Now,
	})
	return nil
}

// ListRevisions returns an article's history, newest first.
func (m *ArticleDB) ListRevisions(_ context.Context, slug string) ([]entities.Revision, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	revs := m.Revisions[slug]
	result := make([]entities.Revision, len(revs))
	for i, rev := range revs {
		result[len(revs)-1-i] = rev
	}
	return result, nil
}

// CountRevisions counts how many revisions an article has.
func (m *ArticleDB) CountRevisions(_ context.Context, slug string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Revisions[slug]), nil
}
