package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
	"github.com/ersonp/campaign-memory/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestEntityCache_Initialize(t *testing.T) {
	t.Run("imports remote once", func(t *testing.T) {
		wiki := mocks.NewWikiDB()
		wiki.AddRemote(entities.Entity{Name: "Aragorn", Type: entities.TypePC})

		cache := NewEntityCache(wiki, testLogger())
		assert.False(t, cache.IsInitialized())

		ctx := context.Background()
		all := cache.All(ctx)
		require.Len(t, all, 1)
		assert.Equal(t, "Aragorn", all[0].Name)
		assert.False(t, all[0].Modified, "imported entities start clean")
		assert.True(t, cache.IsInitialized())

		// Subsequent reads are memory-only.
		cache.All(ctx)
		cache.All(ctx)
		assert.Equal(t, 1, wiki.ListCalls)
	})

	t.Run("import failure degrades to empty cache", func(t *testing.T) {
		wiki := mocks.NewWikiDB()
		wiki.ListErr = errors.New("remote unreachable")

		cache := NewEntityCache(wiki, testLogger())
		require.Error(t, cache.Initialize(context.Background()))
		assert.True(t, cache.IsInitialized())
		assert.Empty(t, cache.All(context.Background()))

		// No re-import after the failed attempt.
		assert.Equal(t, 1, wiki.ListCalls)
	})
}

func TestEntityCache_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("new entity starts dirty", func(t *testing.T) {
		cache := NewEntityCache(mocks.NewWikiDB(), testLogger())

		e := NewEntity("Aragorn", entities.TypePC, "Strider", "Aragon", "Ranger of the North", date(2024, 3, 1))
		require.NoError(t, cache.Create(ctx, e))

		got, ok := cache.Get(ctx, "Aragorn")
		require.True(t, ok)
		assert.True(t, got.Modified)
		assert.Empty(t, got.ExternalID)
		assert.Equal(t, "Strider", got.Aliases)
	})

	t.Run("duplicate name fails and count is unchanged", func(t *testing.T) {
		cache := NewEntityCache(mocks.NewWikiDB(), testLogger())

		require.NoError(t, cache.Create(ctx, NewEntity("Aragorn", entities.TypePC, "", "", "", date(2024, 3, 1))))
		err := cache.Create(ctx, NewEntity("Aragorn", entities.TypeNPC, "", "", "", date(2024, 4, 1)))
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrDuplicateEntity)
		assert.Len(t, cache.All(ctx), 1)
	})

	t.Run("name match is case-sensitive", func(t *testing.T) {
		cache := NewEntityCache(mocks.NewWikiDB(), testLogger())

		require.NoError(t, cache.Create(ctx, NewEntity("Aragorn", entities.TypePC, "", "", "", date(2024, 3, 1))))
		require.NoError(t, cache.Create(ctx, NewEntity("aragorn", entities.TypeNPC, "", "", "", date(2024, 3, 1))))
		assert.Len(t, cache.All(ctx), 2)
	})
}

func TestEntityCache_Update(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*EntityCache, *mocks.WikiDB) {
		t.Helper()
		wiki := mocks.NewWikiDB()
		wiki.AddRemote(entities.Entity{
			Name:    "Aragorn",
			Type:    entities.TypePC,
			Aliases: "Strider",
		})
		return NewEntityCache(wiki, testLogger()), wiki
	}

	t.Run("unknown entity", func(t *testing.T) {
		cache, _ := setup(t)
		err := cache.Update(ctx, "Boromir", entities.EntityUpdate{Description: strPtr("of Gondor")})
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrEntityNotFound)
	})

	t.Run("aliases and misspellings merge by union", func(t *testing.T) {
		cache, _ := setup(t)

		err := cache.Update(ctx, "Aragorn", entities.EntityUpdate{
			Aliases:      strPtr("Elessar, strider"),
			Misspellings: strPtr("Aragon"),
		})
		require.NoError(t, err)

		got, _ := cache.Get(ctx, "Aragorn")
		assert.Equal(t, "Strider, Elessar", got.Aliases)
		assert.Equal(t, "Aragon", got.Misspellings)
		assert.True(t, got.Modified)
	})

	t.Run("no-op update stays clean", func(t *testing.T) {
		cache, _ := setup(t)

		sameType := entities.TypePC
		err := cache.Update(ctx, "Aragorn", entities.EntityUpdate{
			Type:    &sameType,
			Aliases: strPtr("Strider"),
		})
		require.NoError(t, err)

		got, _ := cache.Get(ctx, "Aragorn")
		assert.False(t, got.Modified)
		assert.Equal(t, 0, cache.Dirty())
	})

	t.Run("formatting-only alias update stays clean", func(t *testing.T) {
		wiki := mocks.NewWikiDB()
		wiki.AddRemote(entities.Entity{
			Name:    "Aragorn",
			Type:    entities.TypePC,
			Aliases: "Strider,Elessar",
		})
		cache := NewEntityCache(wiki, testLogger())

		err := cache.Update(ctx, "Aragorn", entities.EntityUpdate{
			Aliases: strPtr("strider, Elessar"),
		})
		require.NoError(t, err)

		got, _ := cache.Get(ctx, "Aragorn")
		assert.Equal(t, "Strider,Elessar", got.Aliases, "no semantic change, cached value untouched")
		assert.False(t, got.Modified)
		assert.Equal(t, 0, cache.Dirty())
	})

	t.Run("nil fields mean no change", func(t *testing.T) {
		cache, _ := setup(t)

		require.NoError(t, cache.Update(ctx, "Aragorn", entities.EntityUpdate{}))
		got, _ := cache.Get(ctx, "Aragorn")
		assert.Equal(t, "Strider", got.Aliases)
		assert.False(t, got.Modified)
	})

	t.Run("identity mismatch rejected", func(t *testing.T) {
		cache, _ := setup(t)

		err := cache.Update(ctx, "Aragorn", entities.EntityUpdate{
			Description: strPtr("heir of Isildur"),
			ExternalID:  "page-stale",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrIdentityMismatch)

		got, _ := cache.Get(ctx, "Aragorn")
		assert.Empty(t, got.Description, "rejected update must not apply")
	})

	t.Run("matching identity accepted", func(t *testing.T) {
		cache, _ := setup(t)

		got, _ := cache.Get(ctx, "Aragorn")
		err := cache.Update(ctx, "Aragorn", entities.EntityUpdate{
			Description: strPtr("heir of Isildur"),
			ExternalID:  got.ExternalID,
		})
		require.NoError(t, err)
	})

	t.Run("first appearance is immutable once set", func(t *testing.T) {
		cache := NewEntityCache(mocks.NewWikiDB(), testLogger())
		first := date(2024, 3, 1)
		require.NoError(t, cache.Create(ctx, NewEntity("Boromir", entities.TypeNPC, "", "", "", first)))

		later := date(2024, 5, 1)
		require.NoError(t, cache.Update(ctx, "Boromir", entities.EntityUpdate{FirstAppearance: &later}))

		got, _ := cache.Get(ctx, "Boromir")
		assert.Equal(t, first, got.FirstAppearance)
	})

	t.Run("first appearance backfills when unset", func(t *testing.T) {
		cache, _ := setup(t)

		first := date(2024, 5, 1)
		require.NoError(t, cache.Update(ctx, "Aragorn", entities.EntityUpdate{FirstAppearance: &first}))

		got, _ := cache.Get(ctx, "Aragorn")
		assert.Equal(t, first, got.FirstAppearance)
		assert.True(t, got.Modified)
	})
}

func TestEntityCache_Sync(t *testing.T) {
	ctx := context.Background()

	t.Run("creates then updates", func(t *testing.T) {
		wiki := mocks.NewWikiDB()
		cache := NewEntityCache(wiki, testLogger())

		require.NoError(t, cache.Create(ctx, NewEntity("Aragorn", entities.TypePC, "", "", "", date(2024, 3, 1))))

		synced, err := cache.Sync(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, synced)
		assert.Equal(t, 1, wiki.CreateCalls)

		got, _ := cache.Get(ctx, "Aragorn")
		assert.NotEmpty(t, got.ExternalID)
		assert.False(t, got.Modified)

		// Second change goes out as an update, not a create.
		require.NoError(t, cache.Update(ctx, "Aragorn", entities.EntityUpdate{Description: strPtr("King")}))
		synced, err = cache.Sync(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, synced)
		assert.Equal(t, 1, wiki.CreateCalls)
		assert.Equal(t, 1, wiki.UpdateCalls)
	})

	t.Run("idempotent when clean", func(t *testing.T) {
		wiki := mocks.NewWikiDB()
		cache := NewEntityCache(wiki, testLogger())

		require.NoError(t, cache.Create(ctx, NewEntity("Aragorn", entities.TypePC, "", "", "", date(2024, 3, 1))))
		_, err := cache.Sync(ctx)
		require.NoError(t, err)

		creates, updates := wiki.CreateCalls, wiki.UpdateCalls
		synced, err := cache.Sync(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, synced)
		assert.Equal(t, creates, wiki.CreateCalls, "clean sync must not touch the remote")
		assert.Equal(t, updates, wiki.UpdateCalls)
	})

	t.Run("failures stay dirty and retry on next call", func(t *testing.T) {
		wiki := mocks.NewWikiDB()
		wiki.FailNames["Boromir"] = true
		cache := NewEntityCache(wiki, testLogger())

		require.NoError(t, cache.Create(ctx, NewEntity("Aragorn", entities.TypePC, "", "", "", date(2024, 3, 1))))
		require.NoError(t, cache.Create(ctx, NewEntity("Boromir", entities.TypeNPC, "", "", "", date(2024, 3, 1))))

		synced, err := cache.Sync(ctx)
		require.Error(t, err)
		assert.Equal(t, 1, synced, "one failure must not block the others")
		assert.Equal(t, 1, cache.Dirty())

		wiki.FailNames = map[string]bool{}
		synced, err = cache.Sync(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, synced)
		assert.Equal(t, 0, cache.Dirty())
	})
}
