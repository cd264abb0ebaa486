package ports

import (
	"context"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
)

// LLMClient drafts article revisions.
type LLMClient interface {
	// ReviseArticle returns the complete replacement body for an article,
	// merging the current body with new information from a session digest.
	// An empty result means the digest adds nothing to this article.
	ReviseArticle(ctx context.Context, article entities.ArticleMeta, current, digest string) (string, error)
}
