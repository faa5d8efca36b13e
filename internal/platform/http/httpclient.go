// Package http は外部API呼び出し用のHTTPクライアントを提供します。
package http

import (
	"log/slog"
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は外部API呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout: TCP接続タイムアウト（デフォルトより短い）
//   - MaxIdleConns: 最大アイドル接続数
//   - TLSHandshakeTimeout: HTTPSハンドシェイクの最大時間
//   - Client.Timeout: リクエスト全体のタイムアウト（呼び出し元から渡される）
//
// 注意:
//   - http.DefaultClientにはタイムアウトがないため、常にカスタムクライアントを使用すること
//   - 1銘柄の詳細取得で同一ホストへ3本同時に接続するため、ホスト単位のアイドル接続を多めに確保する
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: &loggingTransport{next: t}}
}

// loggingTransport はリクエストごとの所要時間とステータスをDebugレベルで記録します。
type loggingTransport struct {
	next http.RoundTripper
}

func (l *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	res, err := l.next.RoundTrip(req)
	elapsed := time.Since(start)
	if err != nil {
		slog.Debug("outbound request failed", "method", req.Method, "host", req.URL.Host, "path", req.URL.Path, "elapsed", elapsed, "error", err)
		return nil, err
	}
	slog.Debug("outbound request", "method", req.Method, "host", req.URL.Host, "path", req.URL.Path, "status", res.StatusCode, "elapsed", elapsed)
	return res, nil
}
