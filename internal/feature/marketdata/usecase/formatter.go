package usecase

import (
	"encoding/json"
	"math"
	"strings"

	"stock_dashboard/internal/feature/marketdata/domain/entity"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// DetailsLogo is the presentation token used for remotely fetched details.
const DetailsLogo = "📈"

// DefaultCurrency is assumed when a payload carries no currency code.
const DefaultCurrency = "USD"

// source is one link of a fallback chain: a JSONPath evaluated against a payload.
type source struct {
	doc  any
	path string
}

// first returns the first value along the chain that is set and not
// zero-like: nil, false, 0 and "" fall through to the next link.
func first(chain ...source) any {
	for _, s := range chain {
		if s.doc == nil {
			continue
		}
		v, err := jsonpath.Get(s.path, s.doc)
		if err != nil {
			continue
		}
		if present(v) {
			return v
		}
	}
	return nil
}

func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		return x != ""
	default:
		return true
	}
}

// text renders a payload value for display, or nil when it is absent.
func text(v any) *string {
	if !present(v) {
		return nil
	}
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case float64:
		s = decimal.NewFromFloat(x).String()
	case bool:
		s = "true"
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return nil
		}
		s = string(b)
	}
	return &s
}

// number reads a numeric payload value. Numbers sent as strings are parsed;
// anything else counts as 0.
func number(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return 0
		}
		return d.InexactFloat64()
	default:
		return 0
	}
}

// FormatComprehensive flattens an aggregated record into a display record.
// A nil record yields nil. Fields with no value anywhere in their fallback
// chain are left nil (text) or 0 (numbers).
func FormatComprehensive(rec *entity.AggregatedRecord) *entity.StockDetails {
	if rec == nil {
		return nil
	}

	quote := rec.Quote.Payload()
	profile := rec.Profile.Payload()
	financials := rec.Financials.Payload()

	name := rec.Symbol
	if n := text(first(source{profile, "$.name"}, source{quote, "$.name"})); n != nil {
		name = *n
	}
	currency := DefaultCurrency
	if c := text(first(source{quote, "$.currency_code"}, source{quote, "$.currency"})); c != nil {
		currency = strings.ToUpper(*c)
	}

	return &entity.StockDetails{
		Symbol:        rec.Symbol,
		Name:          name,
		Price:         number(first(source{quote, "$.price"}, source{quote, "$.last"})),
		Change:        number(first(source{quote, "$.change"})),
		ChangePercent: number(first(source{quote, "$.changePercent"}, source{quote, "$.change_percent"})),
		Currency:      currency,
		Volume:        text(first(source{quote, "$.volume"})),
		MarketCap:     text(first(source{quote, "$.market_cap"}, source{profile, "$.market_cap"})),
		Sector:        text(first(source{profile, "$.sector"})),
		Industry:      text(first(source{profile, "$.industry"})),
		Description:   text(first(source{profile, "$.description"})),
		Website:       text(first(source{profile, "$.website"})),
		Employees:     text(first(source{profile, "$.employees"})),
		Headquarters:  text(first(source{profile, "$.headquarters"})),
		Founded:       text(first(source{profile, "$.founded"})),
		Logo:          DetailsLogo,
		RawData: entity.RawData{
			Quote:      quote,
			Profile:    profile,
			Financials: financials,
		},
		FetchedAt: rec.Timestamp,
	}
}

// FormatSearchResults normalizes a raw auto-complete payload. A payload
// without a "symbols" list yields an empty slice.
func FormatSearchResults(raw any) []entity.SymbolMatch {
	out := []entity.SymbolMatch{}
	if raw == nil {
		return out
	}
	v, err := jsonpath.Get("$.symbols", raw)
	if err != nil {
		return out
	}
	entries, ok := v.([]any)
	if !ok {
		return out
	}

	for _, e := range entries {
		out = append(out, entity.SymbolMatch{
			Symbol:   orDefault(text(first(source{e, "$.symbol"})), "N/A"),
			Name:     orDefault(text(first(source{e, "$.description"}, source{e, "$.symbol"})), "Unknown"),
			Exchange: orDefault(text(first(source{e, "$.exchange"})), "N/A"),
			Type:     orDefault(text(first(source{e, "$.type"})), "stock"),
			Currency: orDefault(text(first(source{e, "$.currency_code"})), DefaultCurrency),
			FullData: e,
		})
	}
	return out
}

func orDefault(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
