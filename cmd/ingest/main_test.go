package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ecomdata/internal/config"
	"ecomdata/internal/export"
	"ecomdata/internal/generate"
	"ecomdata/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, dataDir string) config.AppConfig {
	t.Helper()
	return config.AppConfig{
		DataDir:  dataDir,
		DBDriver: "sqlite",
		DBDSN:    filepath.Join(t.TempDir(), "ecom.db"),
	}
}

func TestRunMissingDataDirCreatesNoStore(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "absent"))
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 1, run(context.Background(), cfg, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "missing input")
	assert.Empty(t, stdout.String())

	_, err := os.Stat(cfg.DBDSN)
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = store.OpenExisting(store.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	assert.ErrorIs(t, err, store.ErrStoreNotFound)
}

func TestRunMalformedInputCreatesNoStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, export.Users.CSVName()), []byte("id,name\n"), 0o644))
	cfg := testConfig(t, dir)
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 1, run(context.Background(), cfg, &stdout, &stderr))
	_, err := store.OpenExisting(store.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	assert.ErrorIs(t, err, store.ErrStoreNotFound)
}

func TestRunLoadsAndPrintsCounts(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	ds, err := generate.New(generate.NewSource(7), now).Generate(generate.Counts{Users: 3, Products: 2, Orders: 4})
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, export.WriteCSV(dir, ds))

	cfg := testConfig(t, dir)
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run(context.Background(), cfg, &stdout, &stderr), stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "Rows inserted:\n")
	assert.Contains(t, out, "  users: 3\n")
	assert.Contains(t, out, "  products: 2\n")
	assert.Contains(t, out, "  orders: 4\n")
	assert.Contains(t, out, "  payments: 4\n")

	db, err := store.OpenExisting(store.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	require.NoError(t, err)
	defer store.Close(db)
	counts, err := store.CountRows(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, int64(len(ds.OrderItems)), counts[3].Rows)
}
