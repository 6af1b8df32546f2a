package controller

import (
	"net/http"

	"climate-api/internal/modules/climate/repository"
	"climate-api/internal/modules/climate/views"
)

type ClimateController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type climateControllerImpl struct {
	repository repository.ClimateRepository
	views      *views.Templates
}

func NewClimateController(repository repository.ClimateRepository, tmpl *views.Templates) ClimateController {
	return &climateControllerImpl{repository: repository, views: tmpl}
}

func (c *climateControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", c.handleIndex)
	mux.HandleFunc("GET /api/v1.0/precipitation", c.handlePrecipitation)
	mux.HandleFunc("GET /api/v1.0/stations", c.handleStations)
	mux.HandleFunc("GET /api/v1.0/tobs", c.handleTobs)
	mux.HandleFunc("GET /api/v1.0/trip/{start_date}", c.handleTripFrom)
	mux.HandleFunc("GET /api/v1.0/trip/{start_date}/{end_date}", c.handleTripRange)
}
