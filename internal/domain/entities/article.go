// Package entities contains core domain data structures.
package entities

import "time"

// Article is a named, versioned knowledge unit (a wiki-style lore page).
// The slug is assigned at creation and never changes; articles are never
// deleted through the normal write path.
type Article struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ArticleMeta is the listing view of an article. Metadata is always fully
// visible; only revision bodies are date-scoped.
type ArticleMeta struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Meta returns the listing view of the article.
func (a *Article) Meta() ArticleMeta {
	return ArticleMeta{
		Slug:        a.Slug,
		Title:       a.Title,
		Description: a.Description,
	}
}

// RevisionSource identifies the provenance of a revision.
const (
	SourceHuman = "HUMAN"
	SourceLLM   = "LLM"
)

// Revision is one immutable full-text snapshot of an article. Revisions are
// append-only: the current body of an article as of a date is derived from
// its revision history, never stored directly.
type Revision struct {
	ID          string     `json:"id"`
	ArticleID   string     `json:"article_id"`
	SessionDate *time.Time `json:"session_date,omitempty"` // nil for edits made outside a session
	Source      string     `json:"source"`
	ContentMD   string     `json:"content_md"` // full replacement body, not a diff
	CreatedAt   time.Time  `json:"created_at"`
}

// EffectiveDate returns the date used for temporal visibility comparisons:
// the session date when set, else the date portion of the creation timestamp.
func (r *Revision) EffectiveDate() time.Time {
	if r.SessionDate != nil {
		return DateOnly(*r.SessionDate)
	}
	return DateOnly(r.CreatedAt)
}

// DateOnly truncates a timestamp to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
