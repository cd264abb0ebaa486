package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
	"github.com/ersonp/campaign-memory/internal/domain/services"
)

// EntityHandler handles the entity registry.
type EntityHandler struct {
	cache *services.EntityCache
}

// NewEntityHandler creates a new entity handler.
func NewEntityHandler(cache *services.EntityCache) *EntityHandler {
	return &EntityHandler{
		cache: cache,
	}
}

// List returns every known entity, sorted by name.
func (h *EntityHandler) List(ctx context.Context) []entities.Entity {
	return h.cache.All(ctx)
}

// Get returns the named entity.
func (h *EntityHandler) Get(ctx context.Context, name string) (entities.Entity, error) {
	e, ok := h.cache.Get(ctx, name)
	if !ok {
		return entities.Entity{}, fmt.Errorf("%w: %s", entities.ErrEntityNotFound, name)
	}
	return e, nil
}

// Add registers a newly discovered entity.
func (h *EntityHandler) Add(ctx context.Context, name, typeName, aliases, misspellings, description string, firstAppearance time.Time) error {
	if name == "" {
		return fmt.Errorf("entity name is required")
	}

	entityType, err := entities.ParseEntityType(typeName)
	if err != nil {
		return err
	}

	return h.cache.Create(ctx, services.NewEntity(name, entityType, aliases, misspellings, description, firstAppearance))
}

// Edit applies a partial update to an existing entity.
func (h *EntityHandler) Edit(ctx context.Context, name string, upd entities.EntityUpdate) error {
	return h.cache.Update(ctx, name, upd)
}

// SyncResult contains the result of a sync run.
type SyncResult struct {
	Synced  int
	Pending int
}

// Sync pushes locally changed entities to the remote wiki. Pending counts
// the entities still dirty after the run; a partial failure reports both
// the progress made and the joined per-entity errors.
func (h *EntityHandler) Sync(ctx context.Context) (*SyncResult, error) {
	synced, err := h.cache.Sync(ctx)
	result := &SyncResult{
		Synced:  synced,
		Pending: h.cache.Dirty(),
	}
	if err != nil {
		return result, fmt.Errorf("syncing entities: %w", err)
	}
	return result, nil
}
