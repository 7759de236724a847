package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"climate-api/internal/modules/climate/repository"
	"climate-api/internal/modules/climate/types"
)

const (
	// PrecipitationStart is the first day of the last twelve months of the dataset.
	PrecipitationStart = "2017-08-23"
	ObservationStation = "USC00519281"
	ObservationStart   = "2017-08-23"
	DefaultStart       = "2016-08-24"
	DefaultEnd         = "2017-08-23"

	dateLayout = "2006-01-02"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError reports a filter that matched no rows where an answer needs one.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

type Service struct {
	repository repository.ClimateRepository
	logger     *slog.Logger
}

func NewService(repository repository.ClimateRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repository: repository, logger: logger}
}

// Precipitation maps each date since PrecipitationStart to a precipitation
// value. Rows arrive ordered by date, so when several stations report the
// same day the last one read is kept.
func (s *Service) Precipitation(ctx context.Context) (map[string]*float64, error) {
	readings, err := s.repository.GetPrecipitation(ctx, PrecipitationStart)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*float64, len(readings))
	for _, r := range readings {
		out[r.Date] = r.Precipitation
	}
	s.logger.Debug("precipitation", "rows", len(readings), "dates", len(out))
	return out, nil
}

// PrecipitationByStation is Precipitation without the collapsing:
// date -> station -> value.
func (s *Service) PrecipitationByStation(ctx context.Context) (map[string]map[string]*float64, error) {
	readings, err := s.repository.GetPrecipitation(ctx, PrecipitationStart)
	if err != nil {
		return nil, err
	}
	out := make(map[string]map[string]*float64)
	for _, r := range readings {
		byStation, ok := out[r.Date]
		if !ok {
			byStation = make(map[string]*float64)
			out[r.Date] = byStation
		}
		byStation[r.StationID] = r.Precipitation
	}
	return out, nil
}

func (s *Service) Stations(ctx context.Context) ([]string, error) {
	ids, err := s.repository.GetStationIDs(ctx)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *Service) TemperatureObservations(ctx context.Context) ([]types.TemperatureObservation, error) {
	obs, err := s.repository.GetTemperatureObservations(ctx, ObservationStation, ObservationStart)
	if err != nil {
		return nil, err
	}
	if len(obs) == 0 {
		return nil, &NotFoundError{Message: fmt.Sprintf("No temperature data found for station %s", ObservationStation)}
	}
	return obs, nil
}

// StatsFrom aggregates every observation on or after start. An empty start
// means DefaultStart.
func (s *Service) StatsFrom(ctx context.Context, start string) (types.TemperatureStats, error) {
	if start == "" {
		start = DefaultStart
	}
	if err := validateDate(start); err != nil {
		return types.TemperatureStats{}, err
	}

	stats, err := s.repository.GetTemperatureStats(ctx, types.DateRange{Start: start})
	if err != nil {
		return types.TemperatureStats{}, err
	}
	if stats.Count == 0 {
		return types.TemperatureStats{}, &NotFoundError{Message: fmt.Sprintf("No temperature data found for the date %s", start)}
	}
	return stats, nil
}

// StatsBetween aggregates observations in [start, end]. Empty bounds fall
// back to DefaultStart and DefaultEnd.
func (s *Service) StatsBetween(ctx context.Context, start, end string) (types.TemperatureStats, error) {
	if start == "" {
		start = DefaultStart
	}
	if end == "" {
		end = DefaultEnd
	}
	if err := validateDate(start); err != nil {
		return types.TemperatureStats{}, err
	}
	if err := validateDate(end); err != nil {
		return types.TemperatureStats{}, err
	}
	if start > end {
		return types.TemperatureStats{}, &InvalidInputError{Message: fmt.Sprintf("start date %s is after end date %s", start, end)}
	}

	stats, err := s.repository.GetTemperatureStats(ctx, types.DateRange{Start: start, End: end})
	if err != nil {
		return types.TemperatureStats{}, err
	}
	if stats.Count == 0 {
		return types.TemperatureStats{}, &NotFoundError{Message: fmt.Sprintf("No temperature data found for the date range %s to %s", start, end)}
	}
	return stats, nil
}

// validateDate accepts only YYYY-MM-DD so that string comparison in SQL
// orders the same way the calendar does.
func validateDate(s string) error {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return &InvalidInputError{Message: fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", s)}
	}
	return nil
}
