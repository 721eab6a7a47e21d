package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"ecomdata/internal/config"
	"ecomdata/internal/generate"
	"ecomdata/internal/model"
	"ecomdata/internal/report"
	"ecomdata/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seed 建库并写入 ds，返回指向该库的配置。
func seed(t *testing.T, ds model.Dataset) config.AppConfig {
	t.Helper()
	cfg := config.AppConfig{DBDriver: "sqlite", DBDSN: filepath.Join(t.TempDir(), "ecom.db")}
	db, err := store.Open(store.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	require.NoError(t, err)
	defer store.Close(db)
	require.NoError(t, store.Migrate(context.Background(), db))
	require.NoError(t, store.Reload(context.Background(), db, ds))
	return cfg
}

func TestRunMissingStore(t *testing.T) {
	cfg := config.AppConfig{DBDriver: "sqlite", DBDSN: filepath.Join(t.TempDir(), "ecom.db")}
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 1, run(context.Background(), cfg, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "database not found")
	assert.Empty(t, stdout.String())
}

func TestRunEmptyStorePrintsNoDataMessage(t *testing.T) {
	cfg := seed(t, model.Dataset{})
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 0, run(context.Background(), cfg, &stdout, &stderr))
	assert.Equal(t, report.NoDataMessage+"\n", stdout.String())
	assert.NotContains(t, stdout.String(), "user_id")
	assert.Empty(t, stderr.String())
}

func TestRunPrintsTable(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	ds, err := generate.New(generate.NewSource(3), now).Generate(generate.Counts{Users: 2, Products: 3, Orders: 3})
	require.NoError(t, err)
	cfg := seed(t, ds)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run(context.Background(), cfg, &stdout, &stderr), stderr.String())

	db, err := store.OpenExisting(store.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	require.NoError(t, err)
	defer store.Close(db)
	rows, err := report.Fetch(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, report.Render(rows)+"\n", stdout.String())
	assert.Len(t, rows, len(ds.OrderItems))
}
