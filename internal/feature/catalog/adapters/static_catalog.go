package adapters

import (
	"context"
	"slices"
	"time"

	"stock_dashboard/internal/feature/catalog/domain/entity"
	"stock_dashboard/internal/feature/catalog/usecase"
)

// sampleInstruments is the built-in dashboard catalog.
var sampleInstruments = []entity.Instrument{
	{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology", Price: 182.52, Change: 2.34, ChangePercent: 1.30, MarketCap: "2.85T", Volume: "45.2M", Logo: "🍎"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Sector: "Technology", Price: 138.21, Change: -1.45, ChangePercent: -1.04, MarketCap: "1.75T", Volume: "28.7M", Logo: "🔍"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Sector: "Technology", Price: 378.85, Change: 4.12, ChangePercent: 1.10, MarketCap: "2.81T", Volume: "22.1M", Logo: "🪟"},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", Sector: "Consumer Discretionary", Price: 151.94, Change: -2.18, ChangePercent: -1.41, MarketCap: "1.58T", Volume: "35.8M", Logo: "📦"},
	{Symbol: "TSLA", Name: "Tesla Inc.", Sector: "Consumer Discretionary", Price: 248.42, Change: 8.73, ChangePercent: 3.64, MarketCap: "789.2B", Volume: "89.4M", Logo: "⚡"},
	{Symbol: "NVDA", Name: "NVIDIA Corporation", Sector: "Technology", Price: 875.28, Change: 15.67, ChangePercent: 1.82, MarketCap: "2.16T", Volume: "41.3M", Logo: "🎮"},
	{Symbol: "META", Name: "Meta Platforms Inc.", Sector: "Communication Services", Price: 484.20, Change: -3.45, ChangePercent: -0.71, MarketCap: "1.23T", Volume: "18.9M", Logo: "📘"},
	{Symbol: "NFLX", Name: "Netflix Inc.", Sector: "Communication Services", Price: 487.83, Change: 12.45, ChangePercent: 2.62, MarketCap: "216.8B", Volume: "3.2M", Logo: "🎬"},
}

var sampleIndices = []entity.MarketIndex{
	{Name: "S&P 500", Symbol: "SPX", Value: 4783.35, Change: 23.87, ChangePercent: 0.50},
	{Name: "Dow Jones", Symbol: "DJI", Value: 37863.80, Change: -158.84, ChangePercent: -0.42},
	{Name: "NASDAQ", Symbol: "IXIC", Value: 14968.78, Change: 92.34, ChangePercent: 0.62},
}

// StaticCatalog serves the built-in sample catalog, indices and news.
// News timestamps are relative to the time the catalog was created.
type StaticCatalog struct {
	loadedAt time.Time
}

var (
	_ usecase.InstrumentRepository = (*StaticCatalog)(nil)
	_ usecase.MarketFeedRepository = (*StaticCatalog)(nil)
)

// NewStaticCatalog creates a StaticCatalog anchored at loadedAt.
func NewStaticCatalog(loadedAt time.Time) *StaticCatalog {
	return &StaticCatalog{loadedAt: loadedAt}
}

// ListActive returns the sample instruments in catalog order.
func (s *StaticCatalog) ListActive(ctx context.Context) ([]entity.Instrument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(sampleInstruments), nil
}

// ListIndices returns the sample market indices.
func (s *StaticCatalog) ListIndices(ctx context.Context) ([]entity.MarketIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(sampleIndices), nil
}

// ListNews returns the sample headlines, two, four and six hours old.
func (s *StaticCatalog) ListNews(ctx context.Context) ([]entity.NewsItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []entity.NewsItem{
		{
			ID:        1,
			Title:     "Apple Reports Strong Q4 Earnings, iPhone Sales Exceed Expectations",
			Summary:   "Apple Inc. reported quarterly earnings that beat analyst expectations, driven by strong iPhone 15 sales and services revenue growth.",
			Timestamp: s.loadedAt.Add(-2 * time.Hour),
			Source:    "MarketWatch",
			Symbol:    "AAPL",
		},
		{
			ID:        2,
			Title:     "Tesla Announces New Gigafactory in Mexico",
			Summary:   "Tesla revealed plans for a new manufacturing facility in Mexico, expected to produce next-generation vehicles starting in 2025.",
			Timestamp: s.loadedAt.Add(-4 * time.Hour),
			Source:    "Reuters",
			Symbol:    "TSLA",
		},
		{
			ID:        3,
			Title:     "NVIDIA's AI Chip Demand Continues to Surge",
			Summary:   "Strong demand for AI processors drives NVIDIA's revenue growth, with data center sales reaching record highs.",
			Timestamp: s.loadedAt.Add(-6 * time.Hour),
			Source:    "TechCrunch",
			Symbol:    "NVDA",
		},
	}, nil
}
