// Package db はカタログを読み込むデータベース接続を提供します。
package db

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	// DriverPostgres は本番用のPostgreSQLドライバー名です。
	DriverPostgres = "postgres"
	// DriverSQLite はローカル実行用のSQLiteドライバー名です。
	DriverSQLite = "sqlite"

	retryInterval = 3 * time.Second
)

// Config はデータベース接続設定です。
type Config struct {
	Driver         string        `yaml:"driver"` // "postgres" または "sqlite"
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	Name           string        `yaml:"name"` // sqlite の場合はファイルパス
	Host           string        `yaml:"host"`
	Port           string        `yaml:"port"`
	SSLMode        string        `yaml:"sslmode"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"` // リトライを諦めるまでの時間
	AutoMigrate    bool          `yaml:"auto_migrate"`
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
// 未設定の項目は cfg の値をそのまま残します。
func LoadConfigFromEnv(cfg Config) Config {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.Driver, "DB_DRIVER")
	set(&cfg.User, "DB_USER")
	set(&cfg.Password, "DB_PASSWORD")
	set(&cfg.Name, "DB_NAME")
	set(&cfg.Host, "DB_HOST")
	set(&cfg.Port, "DB_PORT")
	set(&cfg.SSLMode, "DB_SSLMODE")
	if os.Getenv("RUN_MIGRATIONS") == "true" {
		cfg.AutoMigrate = true
	}
	return cfg
}

// BuildDSN はPostgreSQL用のDSN文字列を生成します。
func BuildDSN(cfg Config) string {
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslmode)
}

// Opener はDSNからDB接続を開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry は timeout に達するまで一定間隔で接続を再試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open はドライバーに応じてDB接続を開き、必要ならマイグレーションを実行します。
// models には AutoMigrate 対象のモデルを渡します。
func Open(cfg Config, models ...any) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case DriverSQLite:
		db, err = gorm.Open(sqlite.Open(cfg.Name), &gorm.Config{})
	case DriverPostgres, "":
		db, err = ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		})
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate && len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return db, nil
}
