// Package db opens the gorm connection used by the repositories.
package db

import (
	"fmt"
	"log/slog"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const retryInterval = 3 * time.Second

// Config describes the database connection.
type Config struct {
	Driver       string `yaml:"driver"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name"`
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	InstanceName string `yaml:"instance" envconfig:"INSTANCE"` // Cloud SQL connection name; takes precedence over Host/Port
	Path         string `yaml:"path"`                          // SQLite file
}

// Opener opens a connection for a DSN. It is swapped in tests.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN returns the MySQL DSN for cfg, over the Cloud SQL unix socket when
// InstanceName is set and over TCP otherwise.
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

// BuildPostgresDSN returns the key/value DSN understood by pgx.
func BuildPostgresDSN(cfg Config) string {
	host := cfg.Host
	if cfg.InstanceName != "" {
		host = "/cloudsql/" + cfg.InstanceName
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		host, cfg.User, cfg.Password, cfg.Name)
	if cfg.Port != "" && cfg.InstanceName == "" {
		dsn += " port=" + cfg.Port
	}
	return dsn
}

// ConnectWithRetry calls open every few seconds until it succeeds or timeout elapses.
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
		slog.Warn("db connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open connects to the database described by cfg. Network drivers are retried
// until timeout; SQLite is opened once.
func Open(cfg Config, timeout time.Duration) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	switch cfg.Driver {
	case DriverMySQL, "":
		return ConnectWithRetry(BuildDSN(cfg), timeout, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(gmysql.Open(dsn), gcfg)
		})
	case DriverPostgres:
		return ConnectWithRetry(BuildPostgresDSN(cfg), timeout, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gcfg)
		})
	case DriverSQLite:
		path := cfg.Path
		if path == "" {
			path = "stock_analytics.db"
		}
		return gorm.Open(sqlite.Open(path), gcfg)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
}

// Migrate creates or updates the tables of models.
func Migrate(db *gorm.DB, models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
