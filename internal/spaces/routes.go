package spaces

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the space API. Reads are public; mutations sit
// behind the bearer middleware with the admin check in the handlers.
// /available registers before the uuid-patterned {id} routes.
func RegisterRoutes(r *mux.Router, h *Handler, authMW mux.MiddlewareFunc) {
	r.HandleFunc("/spaces/available", h.Available).Methods(http.MethodGet)
	r.HandleFunc("/spaces/{id:[a-fA-F0-9\\-]{36}}/bookings", h.Agenda).Methods(http.MethodGet)
	r.HandleFunc("/spaces/{id:[a-fA-F0-9\\-]{36}}", h.GetByID).Methods(http.MethodGet)
	r.HandleFunc("/spaces", h.List).Methods(http.MethodGet)

	admin := r.PathPrefix("/spaces").Subrouter()
	admin.Use(authMW)
	admin.HandleFunc("", h.Create).Methods(http.MethodPost)
	admin.HandleFunc("/{id:[a-fA-F0-9\\-]{36}}", h.Update).Methods(http.MethodPatch)
	admin.HandleFunc("/{id:[a-fA-F0-9\\-]{36}}", h.Delete).Methods(http.MethodDelete)
}
