package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"

	"climate-api/internal/config"
)

// DriverName is the sqlx bind-type name for handles returned by Open.
const DriverName = "sqlite3"

// Connector opens a fresh handle on the climate database. Callers own the
// handle and must Close it; the data layer calls a Connector once per request.
type Connector func(ctx context.Context) (*sqlx.DB, error)

// NewConnector resolves the DSN from cfg once and returns a Connector bound to
// it. The returned function captures only immutable values.
func NewConnector(cfg config.Config, logger *slog.Logger) Connector {
	dsn := buildDSN(cfg)
	return func(ctx context.Context) (*sqlx.DB, error) {
		return Open(ctx, cfg, dsn, logger)
	}
}

// Open returns a pinged handle on dsn with every statement logged at debug.
func Open(ctx context.Context, cfg config.Config, dsn string, logger *slog.Logger) (*sqlx.DB, error) {
	sqlDB := sql.OpenDB(NewLoggingConnector(dsn, logger))

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return sqlx.NewDb(sqlDB, DriverName), nil
}

func Close(db *sqlx.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}

func buildDSN(cfg config.Config) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}

	// mode=ro is handed to SQLite as a URI parameter, so a missing file fails
	// at ping instead of being created empty.
	params := []string{
		"mode=ro",
		"_busy_timeout=5000",
	}

	path := cfg.Path
	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + strings.Join(params, "&")
	}

	// Escape the path so ?, # and % in a file name are not read as URI syntax.
	return fmt.Sprintf("file:%s?%s", (&url.URL{Path: path}).EscapedPath(), strings.Join(params, "&"))
}
