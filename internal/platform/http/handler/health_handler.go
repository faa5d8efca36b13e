// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CatalogSizer は読み込み済みカタログの件数を返します。
type CatalogSizer interface {
	Len() int
}

// HealthResponse は /healthz のレスポンスボディです。
type HealthResponse struct {
	Status      string `json:"status"`
	Instruments int    `json:"instruments"`
}

// Health は /healthz エンドポイントのハンドラーを返します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func Health(catalog CatalogSizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
		default:
			c.JSON(http.StatusOK, HealthResponse{Status: "ok", Instruments: catalog.Len()})
		}
	}
}
