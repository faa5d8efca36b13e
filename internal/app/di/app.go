// Package di は設定からアプリケーションの構成要素を組み立てます。
package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stock_dashboard/internal/app/config"
	catalogadapters "stock_dashboard/internal/feature/catalog/adapters"
	cataloghandler "stock_dashboard/internal/feature/catalog/transport/handler"
	catalogusecase "stock_dashboard/internal/feature/catalog/usecase"
	charthandler "stock_dashboard/internal/feature/chart/transport/handler"
	chartusecase "stock_dashboard/internal/feature/chart/usecase"
	"stock_dashboard/internal/feature/marketdata/adapters/tradingview"
	"stock_dashboard/internal/feature/marketdata/domain/entity"
	marketdatahandler "stock_dashboard/internal/feature/marketdata/transport/handler"
	marketdatausecase "stock_dashboard/internal/feature/marketdata/usecase"
	"stock_dashboard/internal/feature/search/adapters/bleveindex"
	searchhandler "stock_dashboard/internal/feature/search/transport/handler"
	searchusecase "stock_dashboard/internal/feature/search/usecase"
	"stock_dashboard/internal/platform/cache"
	"stock_dashboard/internal/platform/db"
	infrahttp "stock_dashboard/internal/platform/http"
	"stock_dashboard/internal/shared/ratelimiter"

	"gorm.io/gorm"
)

// App は組み立て済みのハンドラー群です。
type App struct {
	Catalog    *catalogusecase.Snapshot
	CatalogH   *cataloghandler.CatalogHandler
	SearchH    *searchhandler.SearchHandler
	ChartH     *charthandler.ChartHandler
	MarketData *marketdatahandler.MarketDataHandler

	index *searchusecase.Index
}

// Close は検索インデックスなどが保持するリソースを解放します。
func (a *App) Close() error {
	if a.index == nil {
		return nil
	}
	return a.index.Close()
}

// NewApp は設定に従ってカタログを読み込み、各フィーチャーを組み立てます。
// now はカタログのニュース時刻とチャートの乱数シードの基準です。
func NewApp(ctx context.Context, cfg *config.Config, now func() time.Time) (*App, error) {
	static := catalogadapters.NewStaticCatalog(now())

	snap, err := LoadCatalog(ctx, cfg, static)
	if err != nil {
		return nil, err
	}
	slog.Info("catalog loaded", "source", cfg.Catalog.Source, "instruments", snap.Len())

	index, err := searchusecase.NewIndex(snap.All(), bleveindex.Build)
	if err != nil {
		return nil, fmt.Errorf("build search index: %w", err)
	}

	return &App{
		Catalog:    snap,
		CatalogH:   cataloghandler.NewCatalogHandler(catalogusecase.NewCatalogUsecase(snap, static)),
		SearchH:    searchhandler.NewSearchHandler(index),
		ChartH:     charthandler.NewChartHandler(chartusecase.NewChartUsecase(snap, now)),
		MarketData: marketdatahandler.NewMarketDataHandler(NewMarketDataUsecase(cfg.TradingView)),
		index:      index,
	}, nil
}

// LoadCatalog は設定された読み込み元からカタログを1度だけ読み込みます。
// database の場合はDBに接続して instruments テーブルを読み、読み込み後に接続を閉じます。
func LoadCatalog(ctx context.Context, cfg *config.Config, static *catalogadapters.StaticCatalog) (*catalogusecase.Snapshot, error) {
	if cfg.Catalog.Source != config.CatalogDatabase {
		return catalogusecase.LoadSnapshot(ctx, static)
	}

	conn, err := db.Open(cfg.Database, &catalogadapters.InstrumentModel{})
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	return loadAndClose(ctx, conn)
}

// loadAndClose は conn からカタログを読み込み、結果にかかわらず接続を閉じます。
func loadAndClose(ctx context.Context, conn *gorm.DB) (*catalogusecase.Snapshot, error) {
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Warn("failed to close catalog database", "error", err)
		}
	}()

	return catalogusecase.LoadSnapshot(ctx, catalogadapters.NewInstrumentRepository(conn))
}

// NewMarketDataUsecase はTradingViewクライアントと直近結果の保持先を組み合わせます。
func NewMarketDataUsecase(cfg tradingview.Config) *marketdatausecase.MarketDataUsecase {
	if cfg.APIKey == "" {
		slog.Warn("TRADINGVIEW_API_KEY is not set; remote lookups will fail")
	}
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	client := tradingview.NewClient(cfg, httpClient, limiter)
	return marketdatausecase.NewMarketDataUsecase(client, cache.NewLatest[*entity.StockDetails]())
}
