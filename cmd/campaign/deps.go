package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ersonp/campaign-memory/internal/application/handlers"
	"github.com/ersonp/campaign-memory/internal/domain/services"
	"github.com/ersonp/campaign-memory/internal/infrastructure/config"
	llm "github.com/ersonp/campaign-memory/internal/infrastructure/llm/openai"
	"github.com/ersonp/campaign-memory/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/campaign-memory/internal/infrastructure/wiki/notion"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config         *config.Config
	ArticleHandler *handlers.ArticleHandler
	ImportHandler  *handlers.ImportHandler
}

// internalDeps holds all dependencies including low-level components.
// Used internally by helper functions.
type internalDeps struct {
	Deps
	db       *sqlite.Repository
	log      *slog.Logger
	articles *services.ArticleService
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including low-level components.
func withInternalDeps(fn func(*internalDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if !config.Exists(cwd) {
		return errors.New("campaign not initialized (run 'campaign init' first)")
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := sqlite.NewRepository(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	// Re-seed an empty store so known slugs always have a body, even when
	// the database file was removed after init.
	if err := db.Seed(ctx); err != nil {
		return fmt.Errorf("seeding articles: %w", err)
	}

	log := newLogger()
	articles := services.NewArticleService(db, log)

	deps := &internalDeps{
		Deps: Deps{
			Config:         cfg,
			ArticleHandler: handlers.NewArticleHandler(articles),
			ImportHandler:  handlers.NewImportHandler(db, articles),
		},
		db:       db,
		log:      log,
		articles: articles,
	}

	return fn(deps)
}

// withEntityHandler provides access to the EntityHandler for entity commands.
// The Notion client is only built here so article commands work without
// Notion credentials.
func withEntityHandler(fn func(*handlers.EntityHandler) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	wiki, err := notion.NewClient(cfg.Notion)
	if err != nil {
		return fmt.Errorf("creating notion client: %w", err)
	}

	cache := services.NewEntityCache(wiki, newLogger())
	return fn(handlers.NewEntityHandler(cache))
}

// withDigestHandler provides access to the DigestHandler for digest commands.
func withDigestHandler(fn func(*handlers.DigestHandler) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		llmClient, err := llm.NewClient(d.Config.LLM)
		if err != nil {
			return fmt.Errorf("creating llm client: %w", err)
		}

		memory := services.NewMemoryService(d.articles, llmClient, d.log)
		return fn(handlers.NewDigestHandler(memory))
	})
}

// newLogger builds the process logger writing to stderr, so command output
// on stdout stays pipeable.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if globalVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
