package controller

import (
	"io"
	"log/slog"
	"net/http"

	"climate-api/internal/modules/climate/types"
	"climate-api/internal/modules/climate/views"
	"climate-api/internal/utils"
)

func (c *climateControllerImpl) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := views.IndexData{Routes: views.DefaultRoutes()}
	utils.WriteHTML(w, http.StatusOK, func(out io.Writer) error {
		return c.views.RenderIndex(out, data)
	})
}

func (c *climateControllerImpl) handlePrecipitation(w http.ResponseWriter, r *http.Request) {
	rows, err := c.repository.GetPrecipitation(r.Context())
	if err != nil {
		slog.Error("precipitation: query failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load precipitation")
		return
	}
	utils.WriteJSON(w, http.StatusOK, rows)
}

func (c *climateControllerImpl) handleStations(w http.ResponseWriter, r *http.Request) {
	codes, err := c.repository.GetStationCodes(r.Context())
	if err != nil {
		slog.Error("stations: query failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load stations")
		return
	}
	utils.WriteJSON(w, http.StatusOK, codes)
}

func (c *climateControllerImpl) handleTobs(w http.ResponseWriter, r *http.Request) {
	rows, err := c.repository.GetObservations(r.Context())
	if err != nil {
		slog.Error("tobs: query failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load temperature observations")
		return
	}
	out := make([]types.TobsEntry, 0, len(rows))
	for _, o := range rows {
		out = append(out, types.NewTobsEntry(o))
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

// Trip dates are passed to the query as-is; a malformed date just narrows or
// widens the lexicographic window.
func (c *climateControllerImpl) handleTripFrom(w http.ResponseWriter, r *http.Request) {
	start := r.PathValue("start_date")
	stats, err := c.repository.GetTripStats(r.Context(), start)
	if err != nil {
		slog.Error("trip: query failed", "start_date", start, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load trip temperatures")
		return
	}
	utils.WriteJSON(w, http.StatusOK, []types.TripStats{stats})
}

func (c *climateControllerImpl) handleTripRange(w http.ResponseWriter, r *http.Request) {
	start := r.PathValue("start_date")
	end := r.PathValue("end_date")
	stats, err := c.repository.GetTripStatsRange(r.Context(), start, end)
	if err != nil {
		slog.Error("trip range: query failed", "start_date", start, "end_date", end, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load trip temperatures")
		return
	}
	utils.WriteJSON(w, http.StatusOK, []types.TripStats{stats})
}
