// Package entity defines the domain models for the marketdata feature.
package entity

import (
	"errors"
	"time"
)

var (
	// ErrSymbolRequired is returned when details are requested without a symbol.
	ErrSymbolRequired = errors.New("symbol is required")
	// ErrQueryRequired is returned when a symbol search has an empty query.
	ErrQueryRequired = errors.New("query is required")
)

// LookupResult is the outcome of one remote lookup. Lookups never fail with
// a Go error; a failure is reported through Success and Error instead.
type LookupResult struct {
	Success bool
	Data    any    // decoded JSON payload, nil on failure
	Error   string // failure message, empty on success
}

// Payload returns the decoded payload, or nil for a nil or failed result.
func (r *LookupResult) Payload() any {
	if r == nil || !r.Success {
		return nil
	}
	return r.Data
}

// AggregatedRecord merges the quote, profile and financials lookups for one
// symbol. Each slot is nil when its lookup did not produce a value.
// A record is built fresh per request and never updated in place.
type AggregatedRecord struct {
	Symbol     string
	Quote      *LookupResult
	Profile    *LookupResult
	Financials *LookupResult
	Timestamp  time.Time
	Error      string // set only when assembling the record failed
}

// SymbolMatch is one normalized entry of a remote symbol search.
type SymbolMatch struct {
	Symbol   string
	Name     string
	Exchange string
	Type     string
	Currency string
	FullData any // the raw entry as received
}

// SymbolSearch is the formatted outcome of a remote symbol search.
// Matches is empty, not nil, when the lookup failed.
type SymbolSearch struct {
	Success bool
	Error   string
	Matches []SymbolMatch
}
