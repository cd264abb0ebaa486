package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/campaign-memory/internal/domain/mocks"
	"github.com/ersonp/campaign-memory/internal/domain/services"
)

func newDigestFixture() (*DigestHandler, *mocks.ArticleDB, *mocks.LLM) {
	db := mocks.NewArticleDB()
	db.AddArticle("characters", "Characters", "Campaign cast.", "# Characters\n", nil, date(1970, 1, 1))

	llm := mocks.NewLLM()
	articles := services.NewArticleService(db, testLogger())
	return NewDigestHandler(services.NewMemoryService(articles, llm, testLogger())), db, llm
}

func TestDigestHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("session date from filename", func(t *testing.T) {
		handler, db, llm := newDigestFixture()
		llm.Responses["characters"] = "# Characters\nAragorn appears.\n"
		path := writeFile(t, t.TempDir(), "2024-03-01.md", "Aragorn joined the party.")

		result, err := handler.Handle(ctx, path, nil, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, []string{"characters"}, result.Updated)

		revs := db.Revisions["characters"]
		require.Len(t, revs, 2)
		require.NotNil(t, revs[1].SessionDate)
		assert.Equal(t, date(2024, 3, 1), *revs[1].SessionDate)
	})

	t.Run("explicit date wins over filename", func(t *testing.T) {
		handler, db, llm := newDigestFixture()
		llm.Responses["characters"] = "# Characters\nChanged.\n"
		path := writeFile(t, t.TempDir(), "latest.md", "digest")

		_, err := handler.Handle(ctx, path, nil, date(2024, 4, 2))
		require.NoError(t, err)

		revs := db.Revisions["characters"]
		require.Len(t, revs, 2)
		assert.Equal(t, date(2024, 4, 2), *revs[1].SessionDate)
	})

	t.Run("undateable filename rejected", func(t *testing.T) {
		handler, _, _ := newDigestFixture()
		path := writeFile(t, t.TempDir(), "latest.md", "digest")

		_, err := handler.Handle(ctx, path, nil, time.Time{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "session date")
	})

	t.Run("missing file", func(t *testing.T) {
		handler, _, _ := newDigestFixture()
		_, err := handler.Handle(ctx, "/nonexistent/2024-03-01.md", nil, time.Time{})
		require.Error(t, err)
	})
}

func TestSessionDateFromFilename(t *testing.T) {
	got, err := SessionDateFromFilename("transcripts/digests/2024-03-01.md")
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 1), got)

	_, err = SessionDateFromFilename("digests/session-notes.md")
	require.Error(t, err)

	_, err = SessionDateFromFilename("digests/2024-13-99.md")
	require.Error(t, err)
}
