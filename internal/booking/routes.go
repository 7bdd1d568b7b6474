package booking

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the booking API. Every route requires a bearer
// token; the uuid pattern on {id} keeps /me and /company out of its way.
func RegisterRoutes(r *mux.Router, h *Handler, authMW mux.MiddlewareFunc) {
	sub := r.PathPrefix("/bookings").Subrouter()
	sub.Use(authMW)
	sub.HandleFunc("", h.Create).Methods(http.MethodPost)
	sub.HandleFunc("/me", h.Mine).Methods(http.MethodGet)
	sub.HandleFunc("/company", h.Company).Methods(http.MethodGet)
	sub.HandleFunc("/{id:[a-fA-F0-9\\-]{36}}", h.ByID).Methods(http.MethodGet)
	sub.HandleFunc("/{id:[a-fA-F0-9\\-]{36}}", h.Extend).Methods(http.MethodPatch)
	sub.HandleFunc("/{id:[a-fA-F0-9\\-]{36}}", h.Cancel).Methods(http.MethodDelete)
}
