package httpapi

import (
	"log/slog"
	"net/http"

	"climate-api/internal/db"
	"climate-api/internal/utils"
)

type healthchecker interface {
	handleHealthz(w http.ResponseWriter, r *http.Request)
}

type healthcheckerImpl struct {
	connect db.Connector
}

func NewHealthchecker(connect db.Connector) healthchecker {
	return &healthcheckerImpl{connect: connect}
}

func (h *healthcheckerImpl) handleHealthz(w http.ResponseWriter, r *http.Request) {
	conn, err := h.connect(r.Context())
	if err != nil {
		slog.Error("healthz: open database failed", "error", err)
		utils.WriteError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	defer func() {
		if err := db.Close(conn); err != nil {
			slog.Error("healthz: close database failed", "error", err)
		}
	}()

	var ok int
	if err := conn.QueryRowContext(r.Context(), `SELECT 1`).Scan(&ok); err != nil {
		slog.Error("failed to check database connectivity", "error", err)
		utils.WriteError(w, http.StatusServiceUnavailable, "failed to check database connectivity")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func registerHealthcheck(mux *http.ServeMux, connect db.Connector) {
	healthchecker := NewHealthchecker(connect)
	mux.HandleFunc("GET /healthz", healthchecker.handleHealthz)
}
