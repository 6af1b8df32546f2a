package repository

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"climate-api/internal/db"
	"climate-api/internal/modules/climate/types"
)

const (
	// PrecipitationCutoff is the first day of the last year in the dataset.
	PrecipitationCutoff = "2016-08-24"
	// ObservationCutoff bounds the temperature-observation listing.
	ObservationCutoff = "2016-08-23"
	// ReferenceStation is the most active station in the dataset.
	ReferenceStation = "USC00519281"
)

//go:embed sql/get-precipitation.sql
var getPrecipitationSQL string

//go:embed sql/get-station-codes.sql
var getStationCodesSQL string

//go:embed sql/get-observations.sql
var getObservationsSQL string

//go:embed sql/get-trip-stats.sql
var getTripStatsSQL string

//go:embed sql/get-trip-stats-range.sql
var getTripStatsRangeSQL string

const tracerName = "climate-api/repository"

type ClimateRepository interface {
	GetPrecipitation(ctx context.Context) ([]types.Precipitation, error)
	GetStationCodes(ctx context.Context) ([]string, error)
	GetObservations(ctx context.Context) ([]types.Observation, error)
	GetTripStats(ctx context.Context, start string) (types.TripStats, error)
	GetTripStatsRange(ctx context.Context, start string, end string) (types.TripStats, error)
}

type repositoryImpl struct {
	connect db.Connector
	tracer  trace.Tracer
}

// NewRepository returns a repository that opens a handle through connect for
// every call and closes it before returning. Spans go to the global tracer
// provider as it is when NewRepository is called.
func NewRepository(connect db.Connector) ClimateRepository {
	return &repositoryImpl{connect: connect, tracer: otel.Tracer(tracerName)}
}

func (r *repositoryImpl) GetPrecipitation(ctx context.Context) ([]types.Precipitation, error) {
	out := []types.Precipitation{}
	err := r.withConn(ctx, "get_precipitation", func(ctx context.Context, conn *sqlx.DB) error {
		return conn.SelectContext(ctx, &out, getPrecipitationSQL, PrecipitationCutoff)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repositoryImpl) GetStationCodes(ctx context.Context) ([]string, error) {
	out := []string{}
	err := r.withConn(ctx, "get_station_codes", func(ctx context.Context, conn *sqlx.DB) error {
		return conn.SelectContext(ctx, &out, getStationCodesSQL)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repositoryImpl) GetObservations(ctx context.Context) ([]types.Observation, error) {
	out := []types.Observation{}
	err := r.withConn(ctx, "get_observations", func(ctx context.Context, conn *sqlx.DB) error {
		return conn.SelectContext(ctx, &out, getObservationsSQL, ObservationCutoff, ReferenceStation)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetTripStats aggregates every row dated on or after start. start is compared
// as a string, so any value is accepted.
func (r *repositoryImpl) GetTripStats(ctx context.Context, start string) (types.TripStats, error) {
	var out types.TripStats
	err := r.withConn(ctx, "get_trip_stats", func(ctx context.Context, conn *sqlx.DB) error {
		return conn.GetContext(ctx, &out, getTripStatsSQL, start)
	})
	return out, err
}

func (r *repositoryImpl) GetTripStatsRange(ctx context.Context, start string, end string) (types.TripStats, error) {
	var out types.TripStats
	err := r.withConn(ctx, "get_trip_stats_range", func(ctx context.Context, conn *sqlx.DB) error {
		return conn.GetContext(ctx, &out, getTripStatsRangeSQL, start, end)
	})
	return out, err
}

func (r *repositoryImpl) withConn(ctx context.Context, query string, fn func(context.Context, *sqlx.DB) error) error {
	ctx, span := r.tracer.Start(ctx, query,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "sqlite"),
			attribute.String("db.operation.name", query),
		),
	)
	defer span.End()

	conn, err := r.connect(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "connect")
		return fmt.Errorf("%s: connect: %w", query, err)
	}
	defer func() {
		if err := db.Close(conn); err != nil {
			slog.Error("close db handle", "query", query, "error", err)
		}
	}()

	if err := fn(ctx, conn); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query")
		return fmt.Errorf("%s: %w", query, err)
	}
	return nil
}
