package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
	"github.com/ersonp/campaign-memory/internal/domain/ports"
)

// EntityCache is a process-lifetime registry of named entities mirrored to
// the remote wiki. The remote database is imported once per run; after that
// every read and write is memory-only until Sync pushes dirty entries back.
// The cache is an explicit constructed object so tests get a fresh one.
type EntityCache struct {
	wiki ports.WikiDB
	log  *slog.Logger

	mu          sync.Mutex
	entities    map[string]*entities.Entity
	initialized bool
}

// NewEntityCache creates a new, unloaded EntityCache.
func NewEntityCache(wiki ports.WikiDB, log *slog.Logger) *EntityCache {
	return &EntityCache{
		wiki:     wiki,
		log:      log,
		entities: make(map[string]*entities.Entity),
	}
}

// Initialize imports the remote entity database into the cache. It runs at
// most once per cache: later calls are no-ops even after a failed import,
// so a flaky remote cannot trigger repeated implicit imports mid-run. An
// import failure leaves the cache empty but usable; Sync will create the
// remote copies for anything discovered locally.
func (c *EntityCache) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initializeLocked(ctx)
}

// IsInitialized reports whether the one-time import has run.
func (c *EntityCache) IsInitialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

func (c *EntityCache) initializeLocked(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	c.initialized = true

	remote, err := c.wiki.ListEntities(ctx)
	if err != nil {
		c.log.Error("importing entity database", "error", err)
		return fmt.Errorf("importing entity database: %w", err)
	}

	for _, e := range remote {
		e.Modified = false
		c.entities[e.Name] = e
	}
	return nil
}

// ensureLoaded runs the one-time import, logging rather than failing: read
// and write callers should keep working against the local cache even when
// the remote is down.
func (c *EntityCache) ensureLoaded(ctx context.Context) {
	if !c.initialized {
		// Error already logged in initializeLocked.
		_ = c.initializeLocked(ctx)
	}
}

// All returns every cached entity, sorted by name. The first call imports
// the remote database; subsequent calls are served from memory only.
func (c *EntityCache) All(ctx context.Context) []entities.Entity {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)

	result := make([]entities.Entity, 0, len(c.entities))
	for _, e := range c.entities {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Get returns a copy of the named entity, if cached.
func (c *EntityCache) Get(ctx context.Context, name string) (entities.Entity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)

	e, ok := c.entities[name]
	if !ok {
		return entities.Entity{}, false
	}
	return *e, true
}

// Create registers a newly discovered entity. The canonical name must not
// already exist (case-sensitive exact match); callers check existence first
// via All. New entities are dirty until the next successful Sync.
func (c *EntityCache) Create(ctx context.Context, entity entities.Entity) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)

	if _, exists := c.entities[entity.Name]; exists {
		return fmt.Errorf("%w: %s", entities.ErrDuplicateEntity, entity.Name)
	}

	entity.ExternalID = ""
	entity.Modified = true
	stored := entity
	c.entities[entity.Name] = &stored
	return nil
}

// Update enriches an existing entity. Nil fields in upd mean "no change",
// never "clear to empty". Aliases and misspellings merge by union so known
// name variants are never silently discarded; the first appearance date is
// immutable once set. Only fields that actually change mark the entity
// dirty. A non-empty upd.ExternalID must match the cached remote identity,
// which guards against updates driven by stale caller-side data.
func (c *EntityCache) Update(ctx context.Context, name string, upd entities.EntityUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)

	e, ok := c.entities[name]
	if !ok {
		return fmt.Errorf("%w: %s", entities.ErrEntityNotFound, name)
	}

	if upd.ExternalID != "" && upd.ExternalID != e.ExternalID {
		return fmt.Errorf("%w: entity %s has remote id %q, caller claimed %q",
			entities.ErrIdentityMismatch, name, e.ExternalID, upd.ExternalID)
	}

	if upd.Type != nil && *upd.Type != e.Type {
		e.Type = *upd.Type
		e.Modified = true
	}
	if upd.Aliases != nil {
		if merged := entities.MergeNameList(e.Aliases, *upd.Aliases); !entities.EqualNameList(merged, e.Aliases) {
			e.Aliases = merged
			e.Modified = true
		}
	}
	if upd.Misspellings != nil {
		if merged := entities.MergeNameList(e.Misspellings, *upd.Misspellings); !entities.EqualNameList(merged, e.Misspellings) {
			e.Misspellings = merged
			e.Modified = true
		}
	}
	if upd.Description != nil && *upd.Description != e.Description {
		e.Description = *upd.Description
		e.Modified = true
	}
	if upd.FirstAppearance != nil && e.FirstAppearance.IsZero() {
		e.FirstAppearance = *upd.FirstAppearance
		e.Modified = true
	}
	return nil
}

// Dirty returns the number of entities with unsynchronized changes.
func (c *EntityCache) Dirty() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, e := range c.entities {
		if e.Modified {
			count++
		}
	}
	return count
}

// Sync pushes every dirty entity to the remote wiki: a create when the
// entity has no remote identity yet, an update otherwise. The dirty flag is
// cleared only on confirmed success, so an interrupted run resumes where it
// left off. One entity's failure never blocks the others; failures are
// joined into the returned error and retried on the next Sync call. This is
// the only operation that writes to the remote target.
func (c *EntityCache) Sync(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)

	names := make([]string, 0, len(c.entities))
	for name, e := range c.entities {
		if e.Modified {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	synced := 0
	var errs []error
	for _, name := range names {
		e := c.entities[name]
		if err := c.pushEntity(ctx, e); err != nil {
			c.log.Warn("syncing entity", "name", name, "error", err)
			errs = append(errs, fmt.Errorf("syncing %s: %w", name, err))
			continue
		}
		e.Modified = false
		synced++
	}
	return synced, errors.Join(errs...)
}

func (c *EntityCache) pushEntity(ctx context.Context, e *entities.Entity) error {
	if e.ExternalID == "" {
		id, err := c.wiki.CreateEntity(ctx, e)
		if err != nil {
			return err
		}
		e.ExternalID = id
		return nil
	}
	return c.wiki.UpdateEntity(ctx, e)
}

// NewEntity builds an Entity for Create with the discovery date recorded.
func NewEntity(name string, entityType entities.EntityType, aliases, misspellings, description string, firstAppearance time.Time) entities.Entity {
	return entities.Entity{
		Name:            name,
		Type:            entityType,
		Aliases:         aliases,
		Misspellings:    misspellings,
		Description:     description,
		FirstAppearance: firstAppearance,
	}
}
