package di_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"stock_dashboard/internal/app/config"
	"stock_dashboard/internal/app/di"
	"stock_dashboard/internal/platform/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time { return time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC) }

func TestNewApp_Static(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	app, err := di.NewApp(context.Background(), cfg, fixedNow)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Equal(t, 8, app.Catalog.Len())
	assert.NotNil(t, app.CatalogH)
	assert.NotNil(t, app.SearchH)
	assert.NotNil(t, app.ChartH)
	assert.NotNil(t, app.MarketData)
}

func TestNewApp_DatabaseCatalog(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Catalog.Source = config.CatalogDatabase
	cfg.Database = db.Config{
		Driver:      db.DriverSQLite,
		Name:        filepath.Join(t.TempDir(), "catalog.db"),
		AutoMigrate: true,
	}

	app, err := di.NewApp(context.Background(), cfg, fixedNow)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	// マイグレーション直後のテーブルは空
	assert.Equal(t, 0, app.Catalog.Len())
}

func TestNewApp_DatabaseUnavailable(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Catalog.Source = config.CatalogDatabase
	cfg.Database.Driver = "oracle"

	_, err := di.NewApp(context.Background(), cfg, fixedNow)
	assert.ErrorContains(t, err, "open catalog database")
}
