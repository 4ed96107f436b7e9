package db

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/product-organizer/internal/config"
	"github.com/diewo77/product-organizer/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the database drivers for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate creates the products, clients and templates tables. With cfg.Migrations
// it runs the embedded SQL migrations; otherwise it falls back to gorm AutoMigrate.
func Migrate(conn *gorm.DB, cfg config.DatabaseConfig) error {
	if cfg.Migrations {
		if err := runSQLMigrations(cfg); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range models.All() {
			if err := conn.AutoMigrate(m); err != nil {
				return fmt.Errorf("automigrate %T: %w", m, err)
			}
		}
	}
	for _, table := range []string{"products", "clients", "templates"} {
		if !conn.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

func runSQLMigrations(cfg config.DatabaseConfig) error {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverSQLite
	}
	src, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, migrateURL(driver, NormalizeDSN(cfg.DSN)))
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// migrateURL turns a gorm DSN into the URL golang-migrate expects.
func migrateURL(driver, dsn string) string {
	switch driver {
	case DriverPostgres:
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			return dsn
		}
		return toURLDSN(dsn)
	default:
		return "sqlite3://" + strings.TrimPrefix(dsn, "file:")
	}
}

// toURLDSN builds a postgres:// URL from a key=value list.
func toURLDSN(kv string) string {
	m := map[string]string{}
	for _, part := range strings.Fields(kv) {
		if k, v, ok := strings.Cut(part, "="); ok {
			m[strings.ToLower(k)] = v
		}
	}
	host, dbname := m["host"], m["dbname"]
	if host == "" || dbname == "" {
		return kv
	}
	if p := m["port"]; p != "" {
		host += ":" + p
	}
	userinfo := m["user"]
	if pass := m["password"]; pass != "" {
		userinfo += ":" + pass
	}
	if userinfo != "" {
		userinfo += "@"
	}
	u := "postgres://" + userinfo + host + "/" + dbname
	if ssl := m["sslmode"]; ssl != "" {
		u += "?sslmode=" + ssl
	}
	return u
}
