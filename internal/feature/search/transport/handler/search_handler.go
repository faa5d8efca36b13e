// Package handler はsearchフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"stock_dashboard/internal/feature/search/domain/entity"
	"stock_dashboard/internal/feature/search/transport/http/dto"
	"stock_dashboard/internal/feature/search/usecase"

	"github.com/gin-gonic/gin"
)

// SearchUsecase は銘柄検索のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SearchUsecase interface {
	Search(ctx context.Context, query string, limit int) []entity.EnrichedInstrument
	PopularStocks(limit int) []entity.EnrichedInstrument
	SearchWithFilters(ctx context.Context, query string, f entity.Filters) []entity.EnrichedInstrument
	Suggestions(ctx context.Context, query string) []entity.Suggestion
	Recommendations(recent []string) []entity.EnrichedInstrument
	TrendingSearches() []entity.Trending
}

// SearchHandler は銘柄検索のHTTPリクエストを処理します。
type SearchHandler struct {
	uc SearchUsecase
}

// NewSearchHandler は新しい SearchHandler を作成します。
func NewSearchHandler(uc SearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Search はクエリに一致する銘柄を関連度順に返します。
//
// GET /search?q=apple&limit=10
func (h *SearchHandler) Search(c *gin.Context) {
	limit, err := intQuery(c, "limit", usecase.DefaultLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, toResultItems(h.uc.Search(c.Request.Context(), c.Query("q"), limit)))
}

// Popular は人気銘柄を返します。
//
// GET /stocks/popular?limit=5
func (h *SearchHandler) Popular(c *gin.Context) {
	limit, err := intQuery(c, "limit", usecase.DefaultPopularLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, toResultItems(h.uc.PopularStocks(limit)))
}

// Filter は検索結果をセクターと価格帯で絞り込みます。
//
// GET /search/filter?q=inc&sector=tech&minPrice=100&maxPrice=500
func (h *SearchHandler) Filter(c *gin.Context) {
	minPrice, err := floatQuery(c, "minPrice")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	maxPrice, err := floatQuery(c, "maxPrice")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	f := entity.Filters{
		Sector:   c.Query("sector"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	}
	c.JSON(http.StatusOK, toResultItems(h.uc.SearchWithFilters(c.Request.Context(), c.Query("q"), f)))
}

// Suggestions は入力補完候補を返します。
//
// GET /search/suggestions?q=ap
func (h *SearchHandler) Suggestions(c *gin.Context) {
	items := h.uc.Suggestions(c.Request.Context(), c.Query("q"))
	out := make([]dto.SuggestionItem, 0, len(items))
	for _, s := range items {
		out = append(out, dto.SuggestionItem{
			Symbol:        s.Symbol,
			Name:          s.Name,
			Sector:        s.Sector,
			Price:         s.Price,
			Change:        s.Change,
			ChangePercent: s.ChangePercent,
			Logo:          s.Logo,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Recommendations は最近閲覧した銘柄と同じセクターの銘柄を返します。
//
// GET /search/recommendations?recent=AAPL,TSLA
func (h *SearchHandler) Recommendations(c *gin.Context) {
	var recent []string
	for _, s := range strings.Split(c.Query("recent"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			recent = append(recent, s)
		}
	}
	c.JSON(http.StatusOK, toResultItems(h.uc.Recommendations(recent)))
}

// Trending は注目銘柄の一覧を返します。
//
// GET /search/trending
func (h *SearchHandler) Trending(c *gin.Context) {
	items := h.uc.TrendingSearches()
	out := make([]dto.TrendingItem, 0, len(items))
	for _, t := range items {
		out = append(out, dto.TrendingItem{Symbol: t.Symbol, Name: t.Name, Reason: t.Reason})
	}
	c.JSON(http.StatusOK, out)
}

func toResultItems(items []entity.EnrichedInstrument) []dto.SearchResultItem {
	out := make([]dto.SearchResultItem, 0, len(items))
	for _, e := range items {
		kw := e.Keywords
		if kw == nil {
			kw = []string{}
		}
		out = append(out, dto.SearchResultItem{
			Symbol:        e.Symbol,
			Name:          e.Name,
			Sector:        e.Sector,
			Price:         e.Price,
			Change:        e.Change,
			ChangePercent: e.ChangePercent,
			MarketCap:     e.MarketCap,
			Volume:        e.Volume,
			Logo:          e.Logo,
			Keywords:      kw,
		})
	}
	return out
}

// intQuery は整数のクエリパラメータを読み取ります。未指定なら def を返します。
func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return n, nil
}

// floatQuery は数値のクエリパラメータを読み取ります。未指定は 0（フィルタなし）です。
func floatQuery(c *gin.Context, key string) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return f, nil
}
