// Package usecase implements ranked stock search over an immutable catalog index.
package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	catalog "stock_dashboard/internal/feature/catalog/domain/entity"
	"stock_dashboard/internal/feature/search/domain/entity"
)

const (
	// DefaultLimit is the result size used when the caller does not pass one.
	DefaultLimit = 10
	// DefaultPopularLimit is the size of the popular list when none is given.
	DefaultPopularLimit = 5

	suggestionLimit      = 5
	minSuggestionLength  = 2
	filterCandidateLimit = 10
	recommendationLimit  = 5
	fallbackRecommended  = 3
)

// popularSymbols is the allow-list used for blank queries.
var popularSymbols = []string{"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA", "NVDA", "META"}

var trendingSearches = []entity.Trending{
	{Symbol: "NVDA", Name: "NVIDIA Corporation", Reason: "AI Boom"},
	{Symbol: "TSLA", Name: "Tesla Inc.", Reason: "EV Growth"},
	{Symbol: "AAPL", Name: "Apple Inc.", Reason: "iPhone 15 Launch"},
}

// Matcher scores a normalized query against the indexed catalog and returns
// matching symbols, most relevant first.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type Matcher interface {
	Match(ctx context.Context, query string) ([]string, error)
}

// MatcherFactory builds a Matcher over the enriched catalog.
type MatcherFactory func(entries []entity.EnrichedInstrument) (Matcher, error)

// Index is the search index built once from a catalog.
// It holds no shared mutable state; several indexes may coexist.
type Index struct {
	entries  []entity.EnrichedInstrument
	bySymbol map[string]int
	matcher  Matcher
}

// NewIndex enriches every instrument and builds the fuzzy matcher over them.
func NewIndex(instruments []catalog.Instrument, newMatcher MatcherFactory) (*Index, error) {
	entries := make([]entity.EnrichedInstrument, 0, len(instruments))
	bySymbol := make(map[string]int, len(instruments))
	for _, in := range instruments {
		if _, dup := bySymbol[in.Symbol]; dup {
			return nil, fmt.Errorf("duplicate symbol %q", in.Symbol)
		}
		bySymbol[in.Symbol] = len(entries)
		entries = append(entries, entity.Enrich(in))
	}

	m, err := newMatcher(slices.Clone(entries))
	if err != nil {
		return nil, fmt.Errorf("build matcher: %w", err)
	}

	return &Index{entries: entries, bySymbol: bySymbol, matcher: m}, nil
}

// Close releases the matcher when it holds resources.
func (x *Index) Close() error {
	if c, ok := x.matcher.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Len returns the number of indexed instruments.
func (x *Index) Len() int {
	return len(x.entries)
}

// Search returns up to limit instruments matching query.
// Exact matches (symbol equality or name containment, case-insensitive) come
// first in catalog order, followed by fuzzy matches by relevance. Each symbol
// appears at most once. A blank query returns the popular list.
func (x *Index) Search(ctx context.Context, query string, limit int) []entity.EnrichedInstrument {
	if strings.TrimSpace(query) == "" {
		return x.PopularStocks(limit)
	}
	if limit <= 0 {
		return []entity.EnrichedInstrument{}
	}

	term := strings.ToLower(strings.TrimSpace(query))

	var candidates []int
	for i, e := range x.entries {
		if strings.ToLower(e.Symbol) == term || strings.Contains(strings.ToLower(e.Name), term) {
			candidates = append(candidates, i)
		}
	}

	symbols, err := x.matcher.Match(ctx, term)
	if err != nil {
		slog.Warn("fuzzy match failed, using exact matches only", "query", term, "error", err)
	}
	for _, s := range symbols {
		if i, ok := x.bySymbol[s]; ok {
			candidates = append(candidates, i)
		}
	}

	return x.collect(candidates, limit)
}

// PopularStocks returns up to limit entries of the popular allow-list, in catalog order.
func (x *Index) PopularStocks(limit int) []entity.EnrichedInstrument {
	out := []entity.EnrichedInstrument{}
	if limit <= 0 {
		return out
	}
	for _, e := range x.entries {
		if slices.Contains(popularSymbols, e.Symbol) {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// SearchWithFilters ranks with a fixed candidate limit, then applies the
// sector, minimum price and maximum price filters in that order.
// Zero values mean the filter is not set.
func (x *Index) SearchWithFilters(ctx context.Context, query string, f entity.Filters) []entity.EnrichedInstrument {
	results := x.Search(ctx, query, filterCandidateLimit)

	if f.Sector != "" {
		sector := strings.ToLower(f.Sector)
		results = slices.DeleteFunc(results, func(e entity.EnrichedInstrument) bool {
			return !strings.Contains(strings.ToLower(e.Sector), sector)
		})
	}
	if f.MinPrice != 0 {
		results = slices.DeleteFunc(results, func(e entity.EnrichedInstrument) bool {
			return e.Price < f.MinPrice
		})
	}
	if f.MaxPrice != 0 {
		results = slices.DeleteFunc(results, func(e entity.EnrichedInstrument) bool {
			return e.Price > f.MaxPrice
		})
	}
	return results
}

// Suggestions returns a short projected result list for type-ahead input.
// Queries shorter than two characters yield nothing.
func (x *Index) Suggestions(ctx context.Context, query string) []entity.Suggestion {
	out := []entity.Suggestion{}
	if utf8.RuneCountInString(query) < minSuggestionLength {
		return out
	}
	for _, e := range x.Search(ctx, query, suggestionLimit) {
		out = append(out, entity.Suggestion{
			Symbol:        e.Symbol,
			Name:          e.Name,
			Sector:        e.Sector,
			Price:         e.Price,
			Change:        e.Change,
			ChangePercent: e.ChangePercent,
			Logo:          e.Logo,
		})
	}
	return out
}

// Recommendations returns up to five sector-mates of the recently viewed
// symbols. Unknown symbols are skipped. With no recent symbols the top three
// popular stocks are returned.
func (x *Index) Recommendations(recent []string) []entity.EnrichedInstrument {
	if len(recent) == 0 {
		return x.PopularStocks(fallbackRecommended)
	}

	var candidates []int
	for _, symbol := range recent {
		i, ok := x.bySymbol[symbol]
		if !ok {
			continue
		}
		sector := x.entries[i].Sector
		for j, e := range x.entries {
			if e.Sector == sector && e.Symbol != symbol {
				candidates = append(candidates, j)
			}
		}
	}
	return x.collect(candidates, recommendationLimit)
}

// TrendingSearches returns the fixed list of trending symbols.
func (x *Index) TrendingSearches() []entity.Trending {
	return slices.Clone(trendingSearches)
}

// collect dedups positions keeping the first occurrence and truncates to limit.
func (x *Index) collect(positions []int, limit int) []entity.EnrichedInstrument {
	out := []entity.EnrichedInstrument{}
	seen := make(map[int]struct{}, len(positions))
	for _, i := range positions {
		if len(out) == limit {
			break
		}
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, x.entries[i])
	}
	return out
}
