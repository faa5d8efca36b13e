package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock_dashboard/internal/app/config"
	"stock_dashboard/internal/app/di"
	"stock_dashboard/internal/app/router"
	"stock_dashboard/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

var configPath = flag.String("config", "config.yaml", "config file path")

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, *configPath)
	stop()
	if err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// run はサーバーを起動し、ctx が終了するとグレースフルシャットダウンします。
func run(ctx context.Context, path string) error {
	// 設定
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// ロガー
	slog.SetDefault(logger.New(os.Stdout, cfg.Logging.Level, cfg.Logging.Format))

	// 依存関係の組み立て
	app, err := di.NewApp(ctx, cfg, time.Now)
	if err != nil {
		return fmt.Errorf("build application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Warn("failed to close search index", "error", err)
		}
	}()

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router.NewRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// シグナル受信またはサーバー停止でグレースフルシャットダウン
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
