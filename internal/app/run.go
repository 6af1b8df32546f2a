package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"climate-api/internal/config"
	"climate-api/internal/db"
	"climate-api/internal/httpapi"
	"climate-api/internal/modules/climate"
	"climate-api/internal/modules/climate/views"
	"climate-api/internal/telemetry"
)

const appName = "climate-api"

func Run(ctx context.Context, cfg config.Config, version string) error {
	return run(ctx, cfg, version, nil)
}

// run serves on ln when it is non-nil, so tests can bind port 0 and learn the
// address before the server starts.
func run(ctx context.Context, cfg config.Config, version string, ln net.Listener) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"sqlitePath", cfg.Path,
		"sqliteDSNOverride", cfg.DSN != "",
		"sqliteMaxOpenConns", cfg.MaxOpenConns,
		"sqliteConnMaxLifetime", cfg.ConnMaxLifetime,
		"rateLimitRPS", cfg.RateLimitRPS,
		"rateLimitBurst", cfg.RateLimitBurst,
		"otlpEndpoint", cfg.OTLPEndpoint,
	)

	tp, err := telemetry.Init(ctx, cfg, appName, version)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		slog.Info("tracer provider shutting down")
		if err := tp.Shutdown(shutdownCtx); err != nil {
			slog.Error("tracer provider shutdown", "error", err)
		}
	}()

	connect := db.NewConnector(cfg, slog.Default())
	if err := probe(ctx, connect); err != nil {
		return err
	}
	slog.Info("database connection successful")

	tmpl, err := views.Load()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	mux := httpapi.NewMux(connect)
	climate.RegisterFeature(mux, connect, tmpl)

	srv := httpapi.NewServer(cfg, mux)

	errCh := make(chan error, 1)
	go func() {
		if ln != nil {
			slog.Info("http listening", "addr", ln.Addr().String())
			errCh <- srv.Serve(ln)
			return
		}
		slog.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}

// probe opens the database once and runs SELECT 1 so a bad path fails startup
// instead of the first request.
func probe(ctx context.Context, connect db.Connector) error {
	conn, err := connect(ctx)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(conn); err != nil {
			slog.Error("db close", "error", err)
		}
	}()

	var ok int
	if err := conn.QueryRowContext(ctx, `SELECT 1`).Scan(&ok); err != nil {
		return fmt.Errorf("probe database: %w", err)
	}
	if ok != 1 {
		return errors.New("database connection failed")
	}
	return nil
}
