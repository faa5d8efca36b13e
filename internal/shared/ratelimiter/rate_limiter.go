package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	Wait(ctx context.Context) error
}

// RateLimiterは、API呼び出しなどの操作の頻度を制限します。
// 複数のgoroutineから同時に使用できます。
type RateLimiter struct {
	limiter  *rate.Limiter
	limit    int           // interval あたりの上限
	interval time.Duration // どの単位でリセットするか
}

// NewRateLimiterは interval あたり limit 回までの呼び出しを許可するRateLimiterを生成します。
// limit が0以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	// 上限までのバーストを許可し、interval をかけて均等に補充する
	every := rate.Every(interval / time.Duration(limit))
	return &RateLimiter{
		limiter:  rate.NewLimiter(every, limit),
		limit:    limit,
		interval: interval,
	}
}

// Waitはレートリミットの上限に達している場合、トークンが補充されるか ctx が終了するまで待機します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	r := rl.limiter.Reserve()
	if !r.OK() {
		return rl.limiter.Wait(ctx)
	}
	delay := r.Delay()
	if delay == 0 {
		return nil
	}

	slog.Debug("rate limit reached, waiting", "limit", rl.limit, "interval", rl.interval, "delay", delay)
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	}
}
