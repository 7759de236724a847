package controller

import (
	"context"
	"net/http"

	"climate-api/internal/modules/climate/types"
	"climate-api/internal/modules/climate/views"
)

// QueryService is the subset of service.Service the handlers call.
type QueryService interface {
	Precipitation(ctx context.Context) (map[string]*float64, error)
	PrecipitationByStation(ctx context.Context) (map[string]map[string]*float64, error)
	Stations(ctx context.Context) ([]string, error)
	TemperatureObservations(ctx context.Context) ([]types.TemperatureObservation, error)
	StatsFrom(ctx context.Context, start string) (types.TemperatureStats, error)
	StatsBetween(ctx context.Context, start, end string) (types.TemperatureStats, error)
}

type ClimateController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type climateControllerImpl struct {
	service QueryService
}

func NewClimateController(service QueryService) ClimateController {
	return &climateControllerImpl{service: service}
}

type route struct {
	pattern string
	doc     views.RouteDoc
	handler http.HandlerFunc
}

// routes is the full HTTP surface of the climate module. Entries with an
// empty doc path are served but left out of the index.
func (c *climateControllerImpl) routes() []route {
	return []route{
		{pattern: "GET /{$}", handler: c.handleIndex},
		{
			pattern: "GET /api/v1.0/precipitation",
			doc:     views.RouteDoc{Path: "/api/v1.0/precipitation"},
			handler: c.handlePrecipitation,
		},
		{
			pattern: "GET /api/v1.0/precipitation/stations",
			doc:     views.RouteDoc{Path: "/api/v1.0/precipitation/stations", Description: "precipitation per station"},
			handler: c.handlePrecipitationByStation,
		},
		{
			pattern: "GET /api/v1.0/stations",
			doc:     views.RouteDoc{Path: "/api/v1.0/stations"},
			handler: c.handleStations,
		},
		{
			pattern: "GET /api/v1.0/tobs",
			doc:     views.RouteDoc{Path: "/api/v1.0/tobs"},
			handler: c.handleTobs,
		},
		{pattern: "GET /api/v1.0/{$}", handler: c.handleStatsFrom},
		{
			pattern: "GET /api/v1.0/{start}",
			doc:     views.RouteDoc{Path: "/api/v1.0/<start>"},
			handler: c.handleStatsFrom,
		},
		{
			pattern: "GET /api/v1.0/{start}/{end}",
			doc:     views.RouteDoc{Path: "/api/v1.0/<start>/<end>"},
			handler: c.handleStatsBetween,
		},
	}
}

func (c *climateControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	for _, rt := range c.routes() {
		mux.HandleFunc(rt.pattern, rt.handler)
	}
}

func (c *climateControllerImpl) indexData() *views.IndexData {
	data := &views.IndexData{Title: "Welcome to the Climate API!"}
	for _, rt := range c.routes() {
		if rt.doc.Path != "" {
			data.Routes = append(data.Routes, rt.doc)
		}
	}
	return data
}
