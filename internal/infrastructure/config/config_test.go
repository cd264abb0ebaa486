package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing config file", func(t *testing.T) {
		_, err := Load(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config file not found")
	})

	t.Run("defaults applied", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "notion:\n  entity_database_id: db-123\n")

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "openai", cfg.LLM.Provider)
		assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
		assert.Equal(t, "db-123", cfg.Notion.EntityDatabaseID)
		assert.Equal(t, DatabasePath(dir), cfg.SQLite.Path)
	})

	t.Run("explicit values win over defaults", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "llm:\n  model: gpt-4o\nsqlite:\n  path: /tmp/other.db\n")

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o", cfg.LLM.Model)
		assert.Equal(t, "/tmp/other.db", cfg.SQLite.Path)
	})

	t.Run("env overrides fill empty keys only", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "llm:\n  api_key: from-file\n")

		t.Setenv("OPENAI_API_KEY", "from-env")
		t.Setenv("NOTION_API_KEY", "notion-env")

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.LLM.APIKey)
		assert.Equal(t, "notion-env", cfg.Notion.APIKey)
	})
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteDefault(dir))
	assert.True(t, Exists(dir))

	// Refuses to overwrite
	require.Error(t, WriteDefault(dir))
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.Notion.EntityDatabaseID = "db-456"
	require.NoError(t, Write(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "db-456", loaded.Notion.EntityDatabaseID)
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(ConfigDir(dir), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(ConfigDir(dir), DefaultConfigFile), []byte(content), 0644))
}
