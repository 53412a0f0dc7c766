package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DEBUG", "")
	t.Setenv("DATASET_SOURCE", "")

	cfg := Load()

	assert.Equal(t, 8060, cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "dark", cfg.DefaultTheme)
	assert.Equal(t, SourceCSV, cfg.DatasetSource)
	assert.Equal(t, ":8060", cfg.Addr())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DEBUG", "true")
	t.Setenv("DATASET_SOURCE", "Postgres")
	t.Setenv("POSTGRES_DB", "sales")

	cfg := Load()

	assert.Equal(t, 9000, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, SourcePostgres, cfg.DatasetSource)
	assert.Contains(t, cfg.DSN(), "dbname=sales")
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("DEBUG", "maybe")

	cfg := Load()

	assert.Equal(t, 8060, cfg.Port)
	assert.False(t, cfg.Debug)
}
