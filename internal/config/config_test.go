package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

// clearEnv resets every variable LoadFromEnv reads so tests start from defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "LOG_LEVEL", "HTTP_ADDR", "HTTP_READ_HEADER_TIMEOUT", "SHUTDOWN_TIMEOUT",
		"SQLITE_PATH", "SQLITE_DSN", "DB_MAX_OPEN_CONNS", "DB_CONN_MAX_LIFETIME",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "OTEL_EXPORTER_OTLP_ENDPOINT",
	} {
		t.Setenv(k, "")
	}
	// No .env in the package directory; run from a clean one anyway.
	t.Chdir(t.TempDir())
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	got, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v, want nil", err)
	}

	if got.AppEnv != "dev" {
		t.Errorf("AppEnv = %q, want %q", got.AppEnv, "dev")
	}
	if got.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want %v", got.LogLevel, slog.LevelInfo)
	}
	if got.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", got.HTTPAddr, ":8080")
	}
	if got.Path != "Resources/hawaii.sqlite" {
		t.Errorf("Path = %q, want %q", got.Path, "Resources/hawaii.sqlite")
	}
	if got.MaxOpenConns != 1 {
		t.Errorf("MaxOpenConns = %d, want 1", got.MaxOpenConns)
	}
	if got.ReadHeaderTimeout != 5*time.Second {
		t.Errorf("ReadHeaderTimeout = %v, want 5s", got.ReadHeaderTimeout)
	}
	if got.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", got.ShutdownTimeout)
	}
	if got.RateLimitRPS != 0 || got.RateLimitBurst != 10 {
		t.Errorf("rate limit = (%v, %d), want (0, 10)", got.RateLimitRPS, got.RateLimitBurst)
	}
}

func TestLoadFromEnv_AppEnv(t *testing.T) {
	tests := []struct {
		name    string
		appEnv  string
		want    string
		wantErr bool
	}{
		{name: "dev", appEnv: "dev", want: "dev"},
		{name: "prod with whitespace", appEnv: "\nprod\t", want: "prod"},
		{name: "staging", appEnv: "staging", wantErr: true},
		{name: "uppercase is not folded", appEnv: "DEV", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("APP_ENV", tt.appEnv)

			got, err := LoadFromEnv()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("LoadFromEnv() error = nil, want non-nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFromEnv() error = %v, want nil", err)
			}
			if got.AppEnv != tt.want {
				t.Errorf("AppEnv = %q, want %q", got.AppEnv, tt.want)
			}
		})
	}
}

func TestLoadFromEnv_Database(t *testing.T) {
	clearEnv(t)
	t.Setenv("SQLITE_PATH", "  /data/hawaii.sqlite ")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("DB_CONN_MAX_LIFETIME", "1m")

	got, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v, want nil", err)
	}
	if got.Path != "/data/hawaii.sqlite" {
		t.Errorf("Path = %q", got.Path)
	}
	if got.MaxOpenConns != 4 {
		t.Errorf("MaxOpenConns = %d, want 4", got.MaxOpenConns)
	}
	if got.ConnMaxLifetime != time.Minute {
		t.Errorf("ConnMaxLifetime = %v, want 1m", got.ConnMaxLifetime)
	}
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "log level", key: "LOG_LEVEL", val: "loud"},
		{name: "max open conns not a number", key: "DB_MAX_OPEN_CONNS", val: "many"},
		{name: "negative max open conns", key: "DB_MAX_OPEN_CONNS", val: "-1"},
		{name: "lifetime", key: "DB_CONN_MAX_LIFETIME", val: "forever"},
		{name: "zero shutdown timeout", key: "SHUTDOWN_TIMEOUT", val: "0s"},
		{name: "rate not a number", key: "RATE_LIMIT_RPS", val: "fast"},
		{name: "negative rate", key: "RATE_LIMIT_RPS", val: "-2"},
		{name: "zero burst", key: "RATE_LIMIT_BURST", val: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			if _, err := LoadFromEnv(); err == nil {
				t.Fatalf("LoadFromEnv() with %s=%q error = nil, want non-nil", tt.key, tt.val)
			}
		})
	}
}

func TestLoadFromEnv_DotEnvFile(t *testing.T) {
	clearEnv(t)
	if err := os.WriteFile(".env", []byte("HTTP_ADDR=:9191\nLOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("LOG_LEVEL", "warn")

	got, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v, want nil", err)
	}
	if got.HTTPAddr != ":9191" {
		t.Errorf("HTTPAddr = %q, want %q from .env", got.HTTPAddr, ":9191")
	}
	if got.LogLevel != slog.LevelWarn {
		t.Errorf("LogLevel = %v, want %v", got.LogLevel, slog.LevelWarn)
	}
}

func TestLoadFromEnv_DotEnvFillsEmptyAndUnsetVars(t *testing.T) {
	clearEnv(t)
	if err := os.WriteFile(".env", []byte("HTTP_ADDR=:9292\nSQLITE_PATH=/from/dotenv.sqlite\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// Exported but empty, the way `HTTP_ADDR=` in a shell leaves it.
	t.Setenv("HTTP_ADDR", "")
	// Not exported at all; t.Setenv in clearEnv restores it on cleanup.
	if err := os.Unsetenv("SQLITE_PATH"); err != nil {
		t.Fatalf("unsetenv: %v", err)
	}

	got, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v, want nil", err)
	}
	if got.HTTPAddr != ":9292" {
		t.Errorf("HTTPAddr = %q, want %q from .env", got.HTTPAddr, ":9292")
	}
	if got.Path != "/from/dotenv.sqlite" {
		t.Errorf("Path = %q, want %q from .env", got.Path, "/from/dotenv.sqlite")
	}
}

func TestLoadFromEnv_OTLPEndpoint(t *testing.T) {
	clearEnv(t)
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", " http://collector:4318 ")

	got, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v, want nil", err)
	}
	if got.OTLPEndpoint != "http://collector:4318" {
		t.Errorf("OTLPEndpoint = %q", got.OTLPEndpoint)
	}

	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "not a url")
	if _, err := LoadFromEnv(); err == nil {
		t.Error("LoadFromEnv() with malformed endpoint error = nil, want non-nil")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: "  ERROR \n", want: slog.LevelError},
		{in: "", want: slog.LevelInfo, wantErr: true},
		{in: "warns", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
