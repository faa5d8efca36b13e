// Package handler はcatalogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"stock_dashboard/internal/feature/catalog/domain/entity"
	"stock_dashboard/internal/feature/catalog/transport/http/dto"
	"stock_dashboard/internal/feature/catalog/usecase"

	"github.com/gin-gonic/gin"
)

// CatalogUsecase はカタログ関連のユースケースインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type CatalogUsecase interface {
	ListInstruments() []entity.Instrument
	GetInstrument(symbol string) (entity.Instrument, error)
	ListIndices(ctx context.Context) ([]entity.MarketIndex, error)
	ListNews(ctx context.Context, symbol string) ([]entity.NewsItem, error)
}

// CatalogHandler はカタログ、マーケット概況、ニュースのHTTPリクエストを処理します。
type CatalogHandler struct {
	uc CatalogUsecase
}

var _ CatalogUsecase = (*usecase.CatalogUsecase)(nil)

// NewCatalogHandler は新しい CatalogHandler を作成します。
func NewCatalogHandler(uc CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ToInstrumentItem はドメインの銘柄をレスポンスDTOに変換します。
func ToInstrumentItem(in entity.Instrument) dto.InstrumentItem {
	return dto.InstrumentItem{
		Symbol:        in.Symbol,
		Name:          in.Name,
		Sector:        in.Sector,
		Price:         in.Price,
		Change:        in.Change,
		ChangePercent: in.ChangePercent,
		MarketCap:     in.MarketCap,
		Volume:        in.Volume,
		Logo:          in.Logo,
	}
}

// List は銘柄一覧をカタログ順で返します。
//
// GET /stocks
func (h *CatalogHandler) List(c *gin.Context) {
	instruments := h.uc.ListInstruments()
	out := make([]dto.InstrumentItem, 0, len(instruments))
	for _, in := range instruments {
		out = append(out, ToInstrumentItem(in))
	}
	c.JSON(http.StatusOK, out)
}

// Get は指定された銘柄を1件返します。カタログにない場合は404です。
//
// GET /stocks/:symbol
func (h *CatalogHandler) Get(c *gin.Context) {
	in, err := h.uc.GetInstrument(c.Param("symbol"))
	if err != nil {
		if usecase.IsNotFound(err) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, ToInstrumentItem(in))
}

// Indices はマーケット概況の指数一覧を返します。
//
// GET /market/indices
func (h *CatalogHandler) Indices(c *gin.Context) {
	indices, err := h.uc.ListIndices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	out := make([]dto.MarketIndexItem, 0, len(indices))
	for _, x := range indices {
		out = append(out, dto.MarketIndexItem{
			Name:          x.Name,
			Symbol:        x.Symbol,
			Value:         x.Value,
			Change:        x.Change,
			ChangePercent: x.ChangePercent,
		})
	}
	c.JSON(http.StatusOK, out)
}

// News はニュースフィードを新しい順に返します。symbol を指定するとその銘柄のみに絞り込みます。
//
// GET /news?symbol=AAPL
func (h *CatalogHandler) News(c *gin.Context) {
	items, err := h.uc.ListNews(c.Request.Context(), c.Query("symbol"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	out := make([]dto.NewsItem, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewsItem{
			ID:        it.ID,
			Title:     it.Title,
			Summary:   it.Summary,
			Timestamp: it.Timestamp.UTC(),
			Source:    it.Source,
			Symbol:    it.Symbol,
		})
	}
	c.JSON(http.StatusOK, out)
}
