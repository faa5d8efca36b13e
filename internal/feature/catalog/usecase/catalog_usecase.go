// Package usecase implements the business logic for the instrument catalog,
// the market overview and the news feed.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"stock_dashboard/internal/feature/catalog/domain/entity"
)

// InstrumentRepository abstracts the source the catalog is loaded from.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type InstrumentRepository interface {
	ListActive(ctx context.Context) ([]entity.Instrument, error)
}

// MarketFeedRepository provides the market overview indices and the news feed.
type MarketFeedRepository interface {
	ListIndices(ctx context.Context) ([]entity.MarketIndex, error)
	ListNews(ctx context.Context) ([]entity.NewsItem, error)
}

// Snapshot is the catalog as loaded at startup. It is never mutated after
// construction, so it can be shared freely between goroutines.
type Snapshot struct {
	items    []entity.Instrument
	bySymbol map[string]int
}

// NewSnapshot validates the instruments and freezes them in their given order.
// Symbols must be non-empty and unique.
func NewSnapshot(instruments []entity.Instrument) (*Snapshot, error) {
	s := &Snapshot{
		items:    slices.Clone(instruments),
		bySymbol: make(map[string]int, len(instruments)),
	}
	for i, in := range s.items {
		if strings.TrimSpace(in.Symbol) == "" {
			return nil, fmt.Errorf("catalog entry %d: empty symbol", i)
		}
		if _, dup := s.bySymbol[in.Symbol]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate symbol %q", i, in.Symbol)
		}
		s.bySymbol[in.Symbol] = i
	}
	return s, nil
}

// LoadSnapshot reads every active instrument from the repository and freezes them.
func LoadSnapshot(ctx context.Context, repo InstrumentRepository) (*Snapshot, error) {
	instruments, err := repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return NewSnapshot(instruments)
}

// All returns a copy of the catalog in load order.
func (s *Snapshot) All() []entity.Instrument {
	return slices.Clone(s.items)
}

// Find looks up an instrument by its exact symbol.
func (s *Snapshot) Find(symbol string) (entity.Instrument, bool) {
	i, ok := s.bySymbol[symbol]
	if !ok {
		return entity.Instrument{}, false
	}
	return s.items[i], true
}

// Len returns the number of instruments.
func (s *Snapshot) Len() int {
	return len(s.items)
}

// CatalogUsecase provides read access to the catalog and its companion feeds.
type CatalogUsecase struct {
	snap *Snapshot
	feed MarketFeedRepository
}

// NewCatalogUsecase creates a new CatalogUsecase.
func NewCatalogUsecase(snap *Snapshot, feed MarketFeedRepository) *CatalogUsecase {
	return &CatalogUsecase{snap: snap, feed: feed}
}

// ListInstruments returns the whole catalog in load order.
func (u *CatalogUsecase) ListInstruments() []entity.Instrument {
	return u.snap.All()
}

// GetInstrument returns the instrument for symbol, or entity.ErrInstrumentNotFound.
func (u *CatalogUsecase) GetInstrument(symbol string) (entity.Instrument, error) {
	in, ok := u.snap.Find(symbol)
	if !ok {
		return entity.Instrument{}, fmt.Errorf("%w: %s", entity.ErrInstrumentNotFound, symbol)
	}
	return in, nil
}

// ListIndices returns the market overview indices.
func (u *CatalogUsecase) ListIndices(ctx context.Context) ([]entity.MarketIndex, error) {
	return u.feed.ListIndices(ctx)
}

// ListNews returns the news feed newest first. When symbol is non-empty only
// that symbol's items are returned (case-insensitive).
func (u *CatalogUsecase) ListNews(ctx context.Context, symbol string) ([]entity.NewsItem, error) {
	items, err := u.feed.ListNews(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.NewsItem, 0, len(items))
	for _, it := range items {
		if symbol == "" || strings.EqualFold(it.Symbol, symbol) {
			out = append(out, it)
		}
	}
	slices.SortStableFunc(out, func(a, b entity.NewsItem) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out, nil
}

// IsNotFound reports whether err means the symbol is not in the catalog.
func IsNotFound(err error) bool {
	return errors.Is(err, entity.ErrInstrumentNotFound)
}
