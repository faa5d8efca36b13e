// Package entity defines the domain models for the search feature.
package entity

import (
	"strings"

	catalog "stock_dashboard/internal/feature/catalog/domain/entity"
)

// EnrichedInstrument is a catalog instrument plus the lower-cased keywords
// it can be found by. Keywords hold no duplicates and keep first-insertion order.
type EnrichedInstrument struct {
	catalog.Instrument
	Keywords []string
}

// Enrich derives the searchable keywords of an instrument.
// It is a pure function: the same input always yields the same keywords.
func Enrich(in catalog.Instrument) EnrichedInstrument {
	name := strings.ToLower(in.Name)
	symbol := strings.ToLower(in.Symbol)

	ks := newKeywordSet()
	ks.add(name)
	ks.add(symbol)
	ks.add(strings.ToLower(in.Sector))
	for _, tok := range strings.Fields(name) {
		ks.add(tok)
	}

	// 法人格の略称は単純な部分一致で判定する（"Incyte" も "Inc" に一致する）
	if strings.Contains(in.Name, "Inc") {
		ks.add("incorporated")
	}
	if strings.Contains(in.Name, "Corp") {
		ks.add("corporation")
	}
	if strings.Contains(in.Name, "Ltd") {
		ks.add("limited")
	}

	if len(in.Symbol) > 1 {
		ks.add(symbol)
		ks.add(symbol[:2])
	}

	return EnrichedInstrument{Instrument: in, Keywords: ks.items}
}

type keywordSet struct {
	seen  map[string]struct{}
	items []string
}

func newKeywordSet() *keywordSet {
	return &keywordSet{seen: make(map[string]struct{})}
}

func (s *keywordSet) add(k string) {
	if k == "" {
		return
	}
	if _, ok := s.seen[k]; ok {
		return
	}
	s.seen[k] = struct{}{}
	s.items = append(s.items, k)
}
