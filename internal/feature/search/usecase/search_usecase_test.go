package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	catalogadapters "stock_dashboard/internal/feature/catalog/adapters"
	catalog "stock_dashboard/internal/feature/catalog/domain/entity"
	"stock_dashboard/internal/feature/search/adapters/bleveindex"
	"stock_dashboard/internal/feature/search/domain/entity"
	"stock_dashboard/internal/feature/search/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockMatcher はMatcherインターフェースのモック実装です。
type mockMatcher struct {
	mu      sync.Mutex
	symbols []string
	err     error
	queries []string
}

func (m *mockMatcher) Match(ctx context.Context, query string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	return m.symbols, m.err
}

func factoryFor(m usecase.Matcher) usecase.MatcherFactory {
	return func(entries []entity.EnrichedInstrument) (usecase.Matcher, error) {
		return m, nil
	}
}

// sampleCatalog は組み込みのサンプルカタログを返します。
func sampleCatalog(t *testing.T) []catalog.Instrument {
	t.Helper()
	items, err := catalogadapters.NewStaticCatalog(time.Now()).ListActive(context.Background())
	require.NoError(t, err)
	return items
}

func newIndex(t *testing.T, m usecase.Matcher) *usecase.Index {
	t.Helper()
	idx, err := usecase.NewIndex(sampleCatalog(t), factoryFor(m))
	require.NoError(t, err)
	return idx
}

func symbolsOf(items []entity.EnrichedInstrument) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Symbol)
	}
	return out
}

func TestNewIndex(t *testing.T) {
	t.Parallel()

	t.Run("success: enriches every entry", func(t *testing.T) {
		t.Parallel()
		var got []entity.EnrichedInstrument
		idx, err := usecase.NewIndex(sampleCatalog(t), func(entries []entity.EnrichedInstrument) (usecase.Matcher, error) {
			got = entries
			return &mockMatcher{}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 8, idx.Len())
		require.Len(t, got, 8)
		assert.Contains(t, got[0].Keywords, "incorporated")
	})

	t.Run("failure: duplicate symbol", func(t *testing.T) {
		t.Parallel()
		_, err := usecase.NewIndex([]catalog.Instrument{{Symbol: "AAPL"}, {Symbol: "AAPL"}}, factoryFor(&mockMatcher{}))
		assert.ErrorContains(t, err, `duplicate symbol "AAPL"`)
	})

	t.Run("failure: matcher build error is wrapped", func(t *testing.T) {
		t.Parallel()
		buildErr := errors.New("index unavailable")
		_, err := usecase.NewIndex(sampleCatalog(t), func(entries []entity.EnrichedInstrument) (usecase.Matcher, error) {
			return nil, buildErr
		})
		assert.ErrorIs(t, err, buildErr)
		assert.ErrorContains(t, err, "build matcher")
	})
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    string
		limit    int
		fuzzy    []string
		fuzzyErr error
		expected []string
	}{
		{
			name:     "blank query returns popular stocks",
			query:    "   ",
			limit:    3,
			expected: []string{"AAPL", "GOOGL", "MSFT"},
		},
		{
			name:     "exact symbol match is not duplicated by fuzzy hit",
			query:    "AAPL",
			limit:    10,
			fuzzy:    []string{"AAPL"},
			expected: []string{"AAPL"},
		},
		{
			name:     "exact matches precede fuzzy matches",
			query:    "inc",
			limit:    10,
			fuzzy:    []string{"NVDA", "AAPL", "MSFT"},
			expected: []string{"AAPL", "GOOGL", "AMZN", "TSLA", "META", "NFLX", "NVDA", "MSFT"},
		},
		{
			name:     "truncated to limit",
			query:    "inc",
			limit:    2,
			fuzzy:    []string{"NVDA"},
			expected: []string{"AAPL", "GOOGL"},
		},
		{
			name:     "fuzzy order is preserved",
			query:    "tech",
			limit:    10,
			fuzzy:    []string{"NVDA", "MSFT", "AAPL", "GOOGL"},
			expected: []string{"NVDA", "MSFT", "AAPL", "GOOGL"},
		},
		{
			name:     "unknown fuzzy symbols are ignored",
			query:    "tech",
			limit:    10,
			fuzzy:    []string{"IBM", "MSFT"},
			expected: []string{"MSFT"},
		},
		{
			name:     "matcher failure falls back to exact matches",
			query:    "tesla",
			limit:    10,
			fuzzyErr: errors.New("boom"),
			expected: []string{"TSLA"},
		},
		{
			name:     "zero limit",
			query:    "AAPL",
			limit:    0,
			expected: []string{},
		},
		{
			name:     "negative limit",
			query:    "AAPL",
			limit:    -1,
			expected: []string{},
		},
		{
			name:     "no match",
			query:    "zzzz",
			limit:    10,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			idx := newIndex(t, &mockMatcher{symbols: tt.fuzzy, err: tt.fuzzyErr})
			got := idx.Search(context.Background(), tt.query, tt.limit)
			assert.Equal(t, tt.expected, symbolsOf(got))
		})
	}
}

func TestIndex_Search_NormalizesQuery(t *testing.T) {
	t.Parallel()

	m := &mockMatcher{}
	idx := newIndex(t, m)

	got := idx.Search(context.Background(), "  MicroSoft ", 10)

	assert.Equal(t, []string{"MSFT"}, symbolsOf(got))
	assert.Equal(t, []string{"microsoft"}, m.queries)
}

func TestIndex_PopularStocks(t *testing.T) {
	t.Parallel()

	idx := newIndex(t, &mockMatcher{})

	tests := []struct {
		limit    int
		expected []string
	}{
		{limit: usecase.DefaultPopularLimit, expected: []string{"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA"}},
		{limit: 10, expected: []string{"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA", "NVDA", "META"}},
		{limit: 1, expected: []string{"AAPL"}},
		{limit: 0, expected: []string{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, symbolsOf(idx.PopularStocks(tt.limit)), "limit=%d", tt.limit)
	}
}

func TestIndex_PopularStocks_IntersectsCatalog(t *testing.T) {
	t.Parallel()

	idx, err := usecase.NewIndex([]catalog.Instrument{
		{Symbol: "NFLX", Name: "Netflix Inc."},
		{Symbol: "TSLA", Name: "Tesla Inc."},
		{Symbol: "IBM", Name: "IBM"},
		{Symbol: "AAPL", Name: "Apple Inc."},
	}, factoryFor(&mockMatcher{}))
	require.NoError(t, err)

	assert.Equal(t, []string{"TSLA", "AAPL"}, symbolsOf(idx.PopularStocks(5)))
}

func TestIndex_SearchWithFilters(t *testing.T) {
	t.Parallel()

	idx := newIndex(t, &mockMatcher{})

	tests := []struct {
		name     string
		query    string
		filters  entity.Filters
		expected []string
	}{
		{
			name:     "no filters",
			filters:  entity.Filters{},
			expected: []string{"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA", "NVDA", "META"},
		},
		{
			name:     "sector substring is case-insensitive",
			filters:  entity.Filters{Sector: "TECH"},
			expected: []string{"AAPL", "GOOGL", "MSFT", "NVDA"},
		},
		{
			name:     "min price",
			filters:  entity.Filters{MinPrice: 200},
			expected: []string{"MSFT", "TSLA", "NVDA", "META"},
		},
		{
			name:     "max price",
			filters:  entity.Filters{MaxPrice: 200},
			expected: []string{"AAPL", "GOOGL", "AMZN"},
		},
		{
			name:     "all filters combined",
			filters:  entity.Filters{Sector: "technology", MinPrice: 150, MaxPrice: 400},
			expected: []string{"AAPL", "MSFT"},
		},
		{
			name:     "filters apply to the already limited candidate set",
			filters:  entity.Filters{Sector: "communication"},
			expected: []string{"META"},
		},
		{
			name:     "query and filter",
			query:    "inc",
			filters:  entity.Filters{Sector: "consumer"},
			expected: []string{"AMZN", "TSLA"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := idx.SearchWithFilters(context.Background(), tt.query, tt.filters)
			assert.Equal(t, tt.expected, symbolsOf(got))
		})
	}
}

func TestIndex_Suggestions(t *testing.T) {
	t.Parallel()

	idx := newIndex(t, &mockMatcher{})

	assert.Empty(t, idx.Suggestions(context.Background(), ""))
	assert.Empty(t, idx.Suggestions(context.Background(), "a"))

	got := idx.Suggestions(context.Background(), "apple")
	require.Len(t, got, 1)
	assert.Equal(t, entity.Suggestion{
		Symbol:        "AAPL",
		Name:          "Apple Inc.",
		Sector:        "Technology",
		Price:         182.52,
		Change:        2.34,
		ChangePercent: 1.30,
		Logo:          "🍎",
	}, got[0])

	assert.Len(t, idx.Suggestions(context.Background(), "inc"), 5)
}

func TestIndex_Recommendations(t *testing.T) {
	t.Parallel()

	idx := newIndex(t, &mockMatcher{})

	tests := []struct {
		name     string
		recent   []string
		expected []string
	}{
		{name: "no history falls back to popular", recent: nil, expected: []string{"AAPL", "GOOGL", "MSFT"}},
		{name: "sector-mates exclude the symbol itself", recent: []string{"AAPL"}, expected: []string{"GOOGL", "MSFT", "NVDA"}},
		{name: "multiple sectors", recent: []string{"AAPL", "TSLA"}, expected: []string{"GOOGL", "MSFT", "NVDA", "AMZN"}},
		{name: "dedup across recent symbols", recent: []string{"AAPL", "GOOGL"}, expected: []string{"GOOGL", "MSFT", "NVDA", "AAPL"}},
		{name: "capped at five", recent: []string{"AAPL", "META", "TSLA", "NFLX"}, expected: []string{"GOOGL", "MSFT", "NVDA", "NFLX", "AMZN"}},
		{name: "unknown symbols are skipped", recent: []string{"IBM"}, expected: []string{}},
		{name: "lookup is case-sensitive", recent: []string{"aapl"}, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, symbolsOf(idx.Recommendations(tt.recent)))
		})
	}
}

func TestIndex_TrendingSearches(t *testing.T) {
	t.Parallel()

	idx := newIndex(t, &mockMatcher{})
	got := idx.TrendingSearches()

	assert.Equal(t, []entity.Trending{
		{Symbol: "NVDA", Name: "NVIDIA Corporation", Reason: "AI Boom"},
		{Symbol: "TSLA", Name: "Tesla Inc.", Reason: "EV Growth"},
		{Symbol: "AAPL", Name: "Apple Inc.", Reason: "iPhone 15 Launch"},
	}, got)

	got[0].Symbol = "CHANGED"
	assert.Equal(t, "NVDA", idx.TrendingSearches()[0].Symbol)
}

// 実際のbleveマッチャーを使ったシナリオテスト
func TestIndex_Search_WithBleve(t *testing.T) {
	t.Parallel()

	idx, err := usecase.NewIndex(sampleCatalog(t), bleveindex.Build)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("exact symbol", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"AAPL"}, symbolsOf(idx.Search(ctx, "AAPL", 10)))
	})

	t.Run("sector fragment", func(t *testing.T) {
		t.Parallel()
		got := symbolsOf(idx.Search(ctx, "tech", 10))
		assert.ElementsMatch(t, []string{"AAPL", "GOOGL", "MSFT", "NVDA"}, got)
	})

	t.Run("full company name", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"AAPL"}, symbolsOf(idx.Search(ctx, "apple inc", 10)))
	})

	t.Run("typo", func(t *testing.T) {
		t.Parallel()
		got := symbolsOf(idx.Search(ctx, "microsft", 10))
		require.NotEmpty(t, got)
		assert.Equal(t, "MSFT", got[0])
	})

	t.Run("invariants", func(t *testing.T) {
		t.Parallel()
		queries := []string{"a", "AAPL", "tsla", "inc", "tech", "corp", "meta", "nflx", "services", "xyz", "amazon.com"}
		for _, q := range queries {
			for _, limit := range []int{0, 1, 3, 10} {
				got := symbolsOf(idx.Search(ctx, q, limit))
				assert.LessOrEqual(t, len(got), limit, "query=%q limit=%d", q, limit)

				seen := map[string]bool{}
				for _, s := range got {
					assert.False(t, seen[s], "duplicate %s for query=%q", s, q)
					seen[s] = true
				}
			}
		}
	})

	t.Run("exact symbol comes first", func(t *testing.T) {
		t.Parallel()
		for _, s := range []string{"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA", "NVDA", "META", "NFLX"} {
			got := symbolsOf(idx.Search(ctx, s, 10))
			require.NotEmpty(t, got)
			assert.Equal(t, s, got[0])
		}
	})
}
