package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	"climate-api/internal/modules/climate/types"
)

//go:embed sql/get-precipitation.sql
var getPrecipitationSQL string

//go:embed sql/get-station-ids.sql
var getStationIDsSQL string

//go:embed sql/get-temperature-observations.sql
var getTemperatureObservationsSQL string

//go:embed sql/get-temperature-stats-from.sql
var getTemperatureStatsFromSQL string

//go:embed sql/get-temperature-stats-between.sql
var getTemperatureStatsBetweenSQL string

// ClimateRepository is read-only access to the measurement and station tables.
type ClimateRepository interface {
	GetPrecipitation(ctx context.Context, from string) ([]types.PrecipitationReading, error)
	GetStationIDs(ctx context.Context) ([]string, error)
	GetTemperatureObservations(ctx context.Context, stationID string, from string) ([]types.TemperatureObservation, error)
	// GetTemperatureStats computes min, avg and max in one statement so all
	// three describe the same rows. Count is zero when nothing matched.
	GetTemperatureStats(ctx context.Context, r types.DateRange) (types.TemperatureStats, error)
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) ClimateRepository {
	return &repositoryImpl{db: db}
}

// withConn checks a connection out of the pool for the duration of fn and
// returns it on every path.
func (r *repositoryImpl) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Error("release connection", "error", err)
		}
	}()
	return fn(conn)
}

func (r *repositoryImpl) GetPrecipitation(ctx context.Context, from string) ([]types.PrecipitationReading, error) {
	var out []types.PrecipitationReading
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, getPrecipitationSQL, from)
		if err != nil {
			return err
		}
		defer func() {
			if err := rows.Close(); err != nil {
				slog.Error("close precipitation rows", "error", err)
			}
		}()
		for rows.Next() {
			var rec types.PrecipitationReading
			var prcp sql.NullFloat64
			if err := rows.Scan(&rec.StationID, &rec.Date, &prcp); err != nil {
				return err
			}
			if prcp.Valid {
				v := prcp.Float64
				rec.Precipitation = &v
			}
			out = append(out, rec)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("get precipitation: %w", err)
	}
	return out, nil
}

func (r *repositoryImpl) GetStationIDs(ctx context.Context) ([]string, error) {
	var out []string
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, getStationIDsSQL)
		if err != nil {
			return err
		}
		defer func() {
			if err := rows.Close(); err != nil {
				slog.Error("close station rows", "error", err)
			}
		}()
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return err
			}
			out = append(out, id)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("get station ids: %w", err)
	}
	return out, nil
}

func (r *repositoryImpl) GetTemperatureObservations(ctx context.Context, stationID string, from string) ([]types.TemperatureObservation, error) {
	var out []types.TemperatureObservation
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, getTemperatureObservationsSQL, stationID, from)
		if err != nil {
			return err
		}
		defer func() {
			if err := rows.Close(); err != nil {
				slog.Error("close observation rows", "error", err)
			}
		}()
		for rows.Next() {
			var rec types.TemperatureObservation
			if err := rows.Scan(&rec.Date, &rec.Tobs); err != nil {
				return err
			}
			out = append(out, rec)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("get temperature observations for %s: %w", stationID, err)
	}
	return out, nil
}

func (r *repositoryImpl) GetTemperatureStats(ctx context.Context, dr types.DateRange) (types.TemperatureStats, error) {
	query, args := getTemperatureStatsFromSQL, []any{dr.Start}
	if dr.Closed() {
		query, args = getTemperatureStatsBetweenSQL, []any{dr.Start, dr.End}
	}

	var stats types.TemperatureStats
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		var minT, avgT, maxT sql.NullFloat64
		if err := conn.QueryRowContext(ctx, query, args...).Scan(&stats.Count, &minT, &avgT, &maxT); err != nil {
			return err
		}
		stats.Min, stats.Avg, stats.Max = minT.Float64, avgT.Float64, maxT.Float64
		return nil
	})
	if err != nil {
		return types.TemperatureStats{}, fmt.Errorf("get temperature stats: %w", err)
	}
	return stats, nil
}
