package climate

import (
	"net/http"

	"climate-api/internal/db"
	"climate-api/internal/modules/climate/controller"
	"climate-api/internal/modules/climate/repository"
	"climate-api/internal/modules/climate/views"
)

func RegisterFeature(mux *http.ServeMux, connect db.Connector, tmpl *views.Templates) {
	climateRepository := repository.NewRepository(connect)
	climateController := controller.NewClimateController(climateRepository, tmpl)
	climateController.RegisterRoutes(mux)
}
