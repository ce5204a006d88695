package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFilesMergesSources(t *testing.T) {
	_ = Load()
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "app.json")
	envPath := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"store_driver":"redis","cart_gate":"all"}`), 0o644))
	require.NoError(t, os.WriteFile(envPath, []byte("# comment\nSTORE_DRIVER=sql\nDB_DRIVER=\"postgres\"\n"), 0o644))

	require.NoError(t, loadFromFiles(jsonPath, envPath))
	t.Cleanup(func() { _ = loadFromFiles(filepath.Join(dir, "missing.json"), filepath.Join(dir, "missing.env")) })

	assert.Equal(t, "sql", StoreDriver(), ".env overrides app.json")
	assert.Equal(t, "all", CartGate())
	assert.Equal(t, "postgres", DatabaseDriver())
	assert.Contains(t, DatabaseDSN(), "dbname=logimart")
}

func TestLoadFromFilesMissingFilesUseDefaults(t *testing.T) {
	_ = Load()
	dir := t.TempDir()
	require.NoError(t, loadFromFiles(filepath.Join(dir, "nope.json"), filepath.Join(dir, "nope.env")))

	assert.Equal(t, "disk", StoreDriver())
	assert.Equal(t, "add-only", CartGate())
	assert.Equal(t, "password123", SeedPassword())
}

func TestUnknownValuesFallBack(t *testing.T) {
	_ = Load()
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("STORE_DRIVER=etcd\nCART_GATE=sometimes\n"), 0o644))

	require.NoError(t, loadFromFiles(filepath.Join(dir, "nope.json"), envPath))
	t.Cleanup(func() { _ = loadFromFiles(filepath.Join(dir, "nope.json"), filepath.Join(dir, "nope.env")) })

	assert.Equal(t, "disk", StoreDriver())
	assert.Equal(t, "add-only", CartGate())
}
