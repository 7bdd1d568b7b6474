package directory

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts logins (public) and the directory CRUD (bearer
// required, role checks in the handlers).
func RegisterRoutes(r *mux.Router, h *Handler, authMW mux.MiddlewareFunc) {
	r.HandleFunc("/auth/admin/login", h.AdminLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/login/employee", h.EmployeeLogin).Methods(http.MethodPost)

	companies := r.PathPrefix("/companies").Subrouter()
	companies.Use(authMW)
	companies.HandleFunc("", h.CreateCompany).Methods(http.MethodPost)
	companies.HandleFunc("", h.ListCompanies).Methods(http.MethodGet)
	companies.HandleFunc("/{id:[a-fA-F0-9\\-]{36}}", h.GetCompany).Methods(http.MethodGet)
	companies.HandleFunc("/{id:[a-fA-F0-9\\-]{36}}", h.UpdateCompany).Methods(http.MethodPatch)
	companies.HandleFunc("/{id:[a-fA-F0-9\\-]{36}}", h.DeleteCompany).Methods(http.MethodDelete)

	employees := r.PathPrefix("/employees").Subrouter()
	employees.Use(authMW)
	employees.HandleFunc("", h.InviteEmployee).Methods(http.MethodPost)
	employees.HandleFunc("", h.ListEmployees).Methods(http.MethodGet)
	employees.HandleFunc("/{id:[a-fA-F0-9\\-]{36}}/verify", h.Activate).Methods(http.MethodPatch)
	employees.HandleFunc("/{id:[a-fA-F0-9\\-]{36}}", h.GetEmployee).Methods(http.MethodGet)
	employees.HandleFunc("/{id:[a-fA-F0-9\\-]{36}}", h.UpdateEmployee).Methods(http.MethodPatch)
	employees.HandleFunc("/{id:[a-fA-F0-9\\-]{36}}", h.DeleteEmployee).Methods(http.MethodDelete)

	me := r.PathPrefix("/me").Subrouter()
	me.Use(authMW)
	me.HandleFunc("/company", h.MyCompany).Methods(http.MethodGet)
}
