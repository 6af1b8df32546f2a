// Package dbtest builds throwaway climate databases for tests.
package dbtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"climate-api/internal/config"
	"climate-api/internal/db/schema"
)

type Station struct {
	Code      string
	Name      string
	Latitude  float64
	Longitude float64
	Elevation float64
}

type Measurement struct {
	Station string
	Date    string
	Prcp    *float64
	Tobs    *float64
}

// Float returns a pointer to v, for the nullable prcp and tobs columns.
func Float(v float64) *float64 {
	return &v
}

// NewDatabase writes a schema-complete SQLite file under t.TempDir, inserts
// the given rows and returns its path. The file is closed before returning so
// the code under test opens it exactly like a production file.
func NewDatabase(t testing.TB, stations []Station, measurements []Measurement) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hawaii.sqlite")
	conn, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on")
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			t.Fatalf("close fixture db: %v", err)
		}
	}()

	ctx := context.Background()
	if err := schema.Apply(ctx, conn); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	for _, s := range stations {
		_, err := conn.ExecContext(ctx,
			`INSERT INTO station (station, name, latitude, longitude, elevation) VALUES (?, ?, ?, ?, ?)`,
			s.Code, s.Name, s.Latitude, s.Longitude, s.Elevation,
		)
		if err != nil {
			t.Fatalf("insert station %s: %v", s.Code, err)
		}
	}
	for _, m := range measurements {
		_, err := conn.ExecContext(ctx,
			`INSERT INTO measurement (station, date, prcp, tobs) VALUES (?, ?, ?, ?)`,
			m.Station, m.Date, nullable(m.Prcp), nullable(m.Tobs),
		)
		if err != nil {
			t.Fatalf("insert measurement %s/%s: %v", m.Station, m.Date, err)
		}
	}

	return path
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// Config returns a config pointing at path with production defaults.
func Config(path string) config.Config {
	return config.Config{
		AppEnv:         "dev",
		HTTPAddr:       ":0",
		Path:           path,
		MaxOpenConns:   1,
		RateLimitBurst: 10,
	}
}
