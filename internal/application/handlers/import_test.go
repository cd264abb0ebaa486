package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
	"github.com/ersonp/campaign-memory/internal/domain/mocks"
	"github.com/ersonp/campaign-memory/internal/domain/services"
)

func newImportFixture() (*ImportHandler, *mocks.ArticleDB) {
	db := mocks.NewArticleDB()
	return NewImportHandler(db, services.NewArticleService(db, testLogger())), db
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new article", func(t *testing.T) {
		handler, db := newImportFixture()
		path := writeFile(t, t.TempDir(), "villains.md", "---\ntitle: Villains\ndescription: Antagonists.\n---\n# Villains\n\nThe Dread Baron.\n")

		result, err := handler.Handle(ctx, path, ImportOptions{})
		require.NoError(t, err)
		assert.Equal(t, "villains", result.Slug)
		assert.Equal(t, "Villains", result.Title)
		assert.True(t, result.Created)

		require.Len(t, db.Revisions["villains"], 1)
		assert.Equal(t, entities.SourceHuman, db.Revisions["villains"][0].Source)
	})

	t.Run("existing slug requires update", func(t *testing.T) {
		handler, db := newImportFixture()
		db.AddArticle("villains", "Villains", "Antagonists.", "# Villains\n", nil, date(1970, 1, 1))
		path := writeFile(t, t.TempDir(), "villains.md", "# Villains\n\nRevised.\n")

		_, err := handler.Handle(ctx, path, ImportOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")

		session := date(2024, 3, 1)
		result, err := handler.Handle(ctx, path, ImportOptions{Update: true, SessionDate: &session})
		require.NoError(t, err)
		assert.False(t, result.Created)

		revs := db.Revisions["villains"]
		require.Len(t, revs, 2)
		require.NotNil(t, revs[1].SessionDate)
		assert.Equal(t, session, *revs[1].SessionDate)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		handler, _ := newImportFixture()
		path := writeFile(t, t.TempDir(), "villains.txt", "text")

		_, err := handler.Handle(ctx, path, ImportOptions{})
		require.Error(t, err)
	})
}

func TestImportHandler_HandleDir(t *testing.T) {
	ctx := context.Background()
	handler, db := newImportFixture()

	dir := t.TempDir()
	writeFile(t, dir, "villains.md", "# Villains\n")
	writeFile(t, dir, "factions.md", "# Factions\n")
	writeFile(t, dir, "notes.txt", "skipped")
	writeFile(t, dir, "broken.md", "no heading here\n")

	results, err := handler.HandleDir(ctx, dir, ImportOptions{})
	require.Error(t, err, "broken file must surface")
	assert.Contains(t, err.Error(), "broken.md")

	require.Len(t, results, 2)
	assert.Len(t, db.Articles, 2)
}
