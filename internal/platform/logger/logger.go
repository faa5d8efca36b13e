// Package logger はアプリケーション全体で使う構造化ロガーを生成します。
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel はログレベル名を slog.Level に変換します。
// 未知の値は info として扱います。
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New は w に書き出すロガーを生成します。format が "text" の場合はテキスト形式、
// それ以外はJSON形式です。
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
