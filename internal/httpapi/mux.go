package httpapi

import (
	"net/http"

	"climate-api/internal/db"
)

func NewMux(connect db.Connector) *http.ServeMux {
	mux := http.NewServeMux()
	registerHealthcheck(mux, connect)
	return mux
}
