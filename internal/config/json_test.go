package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"database_path":    "/data/portal.db",
		"default_language": "hi",
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "/data/portal.db", cfg.DatabasePath)
		assert.Equal(t, "hi", cfg.DefaultLanguage)
	})

	t.Run("no config flag means no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{DatabasePath: "keep.db", DefaultLanguage: "en"}
		parseJson(cfg)

		assert.Equal(t, "keep.db", cfg.DatabasePath)
		assert.Equal(t, "en", cfg.DefaultLanguage)
	})

	t.Run("empty JSON fields keep earlier values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"database_path": "/data/only-db.db",
		})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{DatabasePath: "keep.db", DefaultLanguage: "en"}
		parseJson(cfg)

		assert.Equal(t, "/data/only-db.db", cfg.DatabasePath)
		assert.Equal(t, "en", cfg.DefaultLanguage)
	})

	t.Run("unreadable file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "missing.json")}

		cfg := &Config{}
		assert.Panics(t, func() { parseJson(cfg) })
	})
}

func Test_parseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("overrides provided fields", func(t *testing.T) {
		os.Args = []string{"testbin", "-d", "custom.db"}

		cfg := &Config{DatabasePath: "default.db", DefaultLanguage: "en"}
		parseFlags(cfg)

		assert.Equal(t, "custom.db", cfg.DatabasePath)
		assert.Equal(t, "en", cfg.DefaultLanguage, "untouched flags keep earlier values")
	})

	t.Run("ignores foreign flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-x", "1", "-l", "hi"}

		cfg := &Config{DatabasePath: "default.db", DefaultLanguage: "en"}
		parseFlags(cfg)

		assert.Equal(t, "default.db", cfg.DatabasePath)
		assert.Equal(t, "hi", cfg.DefaultLanguage)
	})
}
