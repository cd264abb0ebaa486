package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
	"github.com/ersonp/campaign-memory/internal/domain/mocks"
	"github.com/ersonp/campaign-memory/internal/domain/services"
)

func newArticleFixture() (*ArticleHandler, *mocks.ArticleDB) {
	db := mocks.NewArticleDB()
	db.AddArticle("characters", "Characters", "Campaign cast.", "# Characters\n", nil, date(1970, 1, 1))
	return NewArticleHandler(services.NewArticleService(db, testLogger())), db
}

func TestArticleHandler_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns point-in-time view", func(t *testing.T) {
		handler, _ := newArticleFixture()

		result, err := handler.Get(ctx, []string{"characters"}, date(2024, 3, 1))
		require.NoError(t, err)
		assert.Equal(t, date(2024, 3, 1), result.AsOf)
		assert.Equal(t, "# Characters\n", result.Articles["characters"])
	})

	t.Run("cutoff is truncated to the date", func(t *testing.T) {
		handler, _ := newArticleFixture()

		result, err := handler.Get(ctx, []string{"characters"}, date(2024, 3, 1).Add(15*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, date(2024, 3, 1), result.AsOf)
	})

	t.Run("no slugs rejected", func(t *testing.T) {
		handler, _ := newArticleFixture()
		_, err := handler.Get(ctx, nil, date(2024, 3, 1))
		require.Error(t, err)
	})
}

func TestArticleHandler_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("appends a human revision", func(t *testing.T) {
		handler, db := newArticleFixture()

		session := date(2024, 3, 1)
		require.NoError(t, handler.Update(ctx, "characters", "# Characters\nNew.", &session))

		revs := db.Revisions["characters"]
		require.Len(t, revs, 2)
		assert.Equal(t, entities.SourceHuman, revs[1].Source)
	})

	t.Run("empty content rejected", func(t *testing.T) {
		handler, db := newArticleFixture()

		require.Error(t, handler.Update(ctx, "characters", "", nil))
		assert.Len(t, db.Revisions["characters"], 1)
	})

	t.Run("unknown article", func(t *testing.T) {
		handler, _ := newArticleFixture()
		err := handler.Update(ctx, "nonexistent-slug", "body", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrUnknownArticle)
	})
}

func TestArticleHandler_History(t *testing.T) {
	ctx := context.Background()

	t.Run("newest first", func(t *testing.T) {
		handler, db := newArticleFixture()
		session := date(2024, 3, 1)
		require.NoError(t, db.InsertRevision(ctx, "characters", "v2", &session, entities.SourceLLM))

		revisions, err := handler.History(ctx, "characters")
		require.NoError(t, err)
		require.Len(t, revisions, 2)
		assert.Equal(t, "v2", revisions[0].ContentMD)
	})

	t.Run("unknown article", func(t *testing.T) {
		handler, _ := newArticleFixture()
		_, err := handler.History(ctx, "nonexistent-slug")
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrUnknownArticle)
	})
}
