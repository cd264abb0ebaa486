// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
	"github.com/ersonp/campaign-memory/internal/domain/ports"
	"github.com/ersonp/campaign-memory/internal/infrastructure/config"
)

// InitHandler handles campaign store initialization.
type InitHandler struct {
	db ports.ArticleDB
}

// NewInitHandler creates a new init handler.
func NewInitHandler(db ports.ArticleDB) *InitHandler {
	return &InitHandler{
		db: db,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath   string
	DatabasePath string
	Articles     int
}

// Handle initializes the campaign memory store: it writes the default
// config, creates the database schema and seeds the starter articles.
func (h *InitHandler) Handle(ctx context.Context, basePath string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("campaign already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	if err := h.db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	if err := h.db.Seed(ctx); err != nil {
		return nil, fmt.Errorf("seeding articles: %w", err)
	}

	return &InitResult{
		ConfigPath:   config.ConfigFilePath(basePath),
		DatabasePath: config.DatabasePath(basePath),
		Articles:     len(entities.StarterArticles),
	}, nil
}
