package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stock_dashboard/internal/feature/catalog/domain/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// mockCatalogUsecase はCatalogUsecaseインターフェースのモック実装です。
type mockCatalogUsecase struct {
	instruments []entity.Instrument
	indices     []entity.MarketIndex
	news        []entity.NewsItem
	err         error
	gotSymbol   string
}

func (m *mockCatalogUsecase) ListInstruments() []entity.Instrument { return m.instruments }

func (m *mockCatalogUsecase) GetInstrument(symbol string) (entity.Instrument, error) {
	if m.err != nil {
		return entity.Instrument{}, m.err
	}
	for _, in := range m.instruments {
		if in.Symbol == symbol {
			return in, nil
		}
	}
	return entity.Instrument{}, fmt.Errorf("%w: %s", entity.ErrInstrumentNotFound, symbol)
}

func (m *mockCatalogUsecase) ListIndices(ctx context.Context) ([]entity.MarketIndex, error) {
	return m.indices, m.err
}

func (m *mockCatalogUsecase) ListNews(ctx context.Context, symbol string) ([]entity.NewsItem, error) {
	m.gotSymbol = symbol
	return m.news, m.err
}

func serve(t *testing.T, h *CatalogHandler, path string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/stocks", h.List)
	router.GET("/stocks/:symbol", h.Get)
	router.GET("/market/indices", h.Indices)
	router.GET("/news", h.News)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestCatalogHandler_List(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		instruments  []entity.Instrument
		expectedBody string
	}{
		{
			name: "success: returns catalog",
			instruments: []entity.Instrument{
				{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology", Price: 182.52, Change: 2.34, ChangePercent: 1.3, MarketCap: "2.85T", Volume: "45.2M", Logo: "🍎"},
			},
			expectedBody: `[{"symbol":"AAPL","name":"Apple Inc.","sector":"Technology","price":182.52,"change":2.34,"changePercent":1.3,"marketCap":"2.85T","volume":"45.2M","logo":"🍎"}]`,
		},
		{
			name:         "success: nil catalog renders empty array",
			instruments:  nil,
			expectedBody: `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := serve(t, NewCatalogHandler(&mockCatalogUsecase{instruments: tt.instruments}), "/stocks")
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestCatalogHandler_Get(t *testing.T) {
	t.Parallel()

	instruments := []entity.Instrument{
		{Symbol: "TSLA", Name: "Tesla Inc.", Sector: "Consumer Discretionary", Price: 248.42, Change: 8.73, ChangePercent: 3.64, MarketCap: "789.2B", Volume: "89.4M", Logo: "⚡"},
	}

	tests := []struct {
		name         string
		path         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "success: known symbol",
			path:         "/stocks/TSLA",
			expectedCode: http.StatusOK,
			expectedBody: `{"symbol":"TSLA","name":"Tesla Inc.","sector":"Consumer Discretionary","price":248.42,"change":8.73,"changePercent":3.64,"marketCap":"789.2B","volume":"89.4M","logo":"⚡"}`,
		},
		{
			name:         "failure: unknown symbol",
			path:         "/stocks/IBM",
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"instrument not found: IBM"}`,
		},
		{
			name:         "failure: unexpected error",
			path:         "/stocks/TSLA",
			err:          errors.New("catalog unavailable"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"catalog unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := serve(t, NewCatalogHandler(&mockCatalogUsecase{instruments: instruments, err: tt.err}), tt.path)
			assert.Equal(t, tt.expectedCode, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestCatalogHandler_Indices(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		uc := &mockCatalogUsecase{indices: []entity.MarketIndex{
			{Name: "NASDAQ", Symbol: "IXIC", Value: 14968.78, Change: 92.34, ChangePercent: 0.62},
		}}
		w := serve(t, NewCatalogHandler(uc), "/market/indices")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"name":"NASDAQ","symbol":"IXIC","value":14968.78,"change":92.34,"changePercent":0.62}]`, w.Body.String())
	})

	t.Run("failure: usecase error", func(t *testing.T) {
		t.Parallel()
		uc := &mockCatalogUsecase{err: errors.New("feed unavailable")}
		w := serve(t, NewCatalogHandler(uc), "/market/indices")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"feed unavailable"}`, w.Body.String())
	})
}

func TestCatalogHandler_News(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	uc := &mockCatalogUsecase{news: []entity.NewsItem{
		{ID: 2, Title: "Tesla Announces New Gigafactory in Mexico", Summary: "s", Timestamp: ts, Source: "Reuters", Symbol: "TSLA"},
	}}
	w := serve(t, NewCatalogHandler(uc), "/news?symbol=TSLA")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "TSLA", uc.gotSymbol)
	assert.JSONEq(t, `[{"id":2,"title":"Tesla Announces New Gigafactory in Mexico","summary":"s","timestamp":"2025-01-15T10:00:00Z","source":"Reuters","symbol":"TSLA"}]`, w.Body.String())
}
