// Package config はアプリケーション設定をYAMLファイルと環境変数から読み込みます。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"stock_dashboard/internal/feature/marketdata/adapters/tradingview"
	"stock_dashboard/internal/platform/db"

	"gopkg.in/yaml.v3"
)

const (
	// CatalogStatic は組み込みのカタログを使います。
	CatalogStatic = "static"
	// CatalogDatabase はデータベースの instruments テーブルからカタログを読み込みます。
	CatalogDatabase = "database"
)

// Config はアプリケーション全体の設定です。
type Config struct {
	Server      Server             `yaml:"server"`
	Logging     Logging            `yaml:"logging"`
	Catalog     Catalog            `yaml:"catalog"`
	Database    db.Config          `yaml:"database"`
	TradingView tradingview.Config `yaml:"tradingview"`
}

// Server はHTTPリスナーの設定です。
type Server struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Logging はロガーの設定です。
type Logging struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // json | text
}

// Catalog はカタログの読み込み元の設定です。
type Catalog struct {
	Source string `yaml:"source"` // static | database
}

// Default は設定ファイルがない場合の設定を返します。
func Default() *Config {
	return &Config{
		Server:  Server{Addr: ":8080", ShutdownTimeout: 10 * time.Second},
		Logging: Logging{Level: "info", Format: "json"},
		Catalog: Catalog{Source: CatalogStatic},
		Database: db.Config{
			Driver:         db.DriverPostgres,
			Host:           "localhost",
			Port:           "5432",
			ConnectTimeout: 60 * time.Second,
		},
		TradingView: tradingview.DefaultConfig(),
	}
}

// Load は path のYAMLを既定値の上に読み込み、環境変数で上書きします。
// path が空、またはファイルが存在しない場合は既定値と環境変数のみを使います。
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides は既知の環境変数が設定されていれば対応する項目を上書きします。
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("CATALOG_SOURCE"); v != "" {
		cfg.Catalog.Source = v
	}

	cfg.Database = db.LoadConfigFromEnv(cfg.Database)

	if v := os.Getenv("TRADINGVIEW_API_KEY"); v != "" {
		cfg.TradingView.APIKey = v
	}
	if v := os.Getenv("TRADINGVIEW_API_HOST"); v != "" {
		cfg.TradingView.APIHost = v
	}
	if v := os.Getenv("TRADINGVIEW_BASE_URL"); v != "" {
		cfg.TradingView.BaseURL = v
	}
	if v := os.Getenv("TRADINGVIEW_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TRADINGVIEW_TIMEOUT: %w", err)
		}
		cfg.TradingView.Timeout = d
	}
	if v := os.Getenv("TRADINGVIEW_RATE_LIMIT_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TRADINGVIEW_RATE_LIMIT_PER_MINUTE: %w", err)
		}
		cfg.TradingView.RateLimitPerMinute = n
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Catalog.Source {
	case CatalogStatic, CatalogDatabase:
	default:
		return fmt.Errorf("catalog.source must be %q or %q, got %q", CatalogStatic, CatalogDatabase, c.Catalog.Source)
	}
	if c.TradingView.Timeout <= 0 {
		c.TradingView.Timeout = tradingview.DefaultTimeout
	}
	return nil
}
