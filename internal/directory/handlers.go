package directory

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"huddle/internal/apperr"
	"huddle/internal/auth"
	"huddle/internal/logs"
	"huddle/internal/middleware"
	"huddle/internal/models"
	"huddle/internal/repo"
)

const bcryptCost = 12

// Handler serves logins, account activation and the company/employee
// directory. Role checks live here; the stores only see resolved scopes.
type Handler struct {
	store *repo.DirectoryStore
	codec *auth.Codec
	guard *auth.Guard
}

func NewHandler(store *repo.DirectoryStore, codec *auth.Codec, guard *auth.Guard) *Handler {
	return &Handler{store: store, codec: codec, guard: guard}
}

func fail(w http.ResponseWriter, r *http.Request, err error) {
	if e := apperr.From(err); e.Kind == apperr.KindUnexpected {
		logs.Logger.Errorf("reqid=%s %s %s: %v", middleware.GetRequestID(r), r.Method, r.RequestURI, e)
	}
	models.WriteError(w, err)
}

func claimsOrFail(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := auth.ClaimsFrom(r)
	if !ok {
		models.WriteError(w, apperr.Unauthorized("missing or invalid Authorization header"))
		return nil, false
	}
	return claims, true
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid id")
	}
	return id, nil
}

// -------- auth --------

// AdminLogin verifies the administrator's password and issues a token.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, apperr.Validation("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		models.WriteError(w, apperr.Validation("email and password are required"))
		return
	}

	adm, err := h.store.GetAdminByEmail(r.Context(), req.Email)
	if err != nil {
		fail(w, r, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(adm.PasswordHash), []byte(req.Password)) != nil {
		models.WriteError(w, apperr.Unauthorized("invalid credentials"))
		return
	}

	token, err := h.codec.Issue(auth.Identity{ID: adm.AdminID, Email: adm.Email, Role: models.RoleAdmin})
	if err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// EmployeeLogin verifies an activated employee's password and issues a
// token carrying the role from the employee row.
func (h *Handler) EmployeeLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, apperr.Validation("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		models.WriteError(w, apperr.Validation("email and password are required"))
		return
	}

	emp, err := h.store.GetEmployeeByEmail(r.Context(), req.Email)
	if err != nil {
		// don't reveal whether the account exists
		models.WriteError(w, apperr.Unauthorized("invalid credentials"))
		return
	}
	if emp.PasswordHash == nil {
		// invited but never activated
		models.WriteError(w, apperr.Unauthorized("invalid credentials"))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(*emp.PasswordHash), []byte(req.Password)) != nil {
		models.WriteError(w, apperr.Unauthorized("invalid credentials"))
		return
	}

	token, err := h.codec.Issue(auth.Identity{ID: emp.EmpID, Email: emp.Email, Role: emp.Role})
	if err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// Activate sets the initial password on an invited account, identified by
// the invite token's subject. Works only while the password is unset.
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}
	var req ActivateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, apperr.Validation("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		models.WriteError(w, apperr.Validation("password is required"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		fail(w, r, apperr.Unexpected(err))
		return
	}
	if err := h.store.SetPasswordIfUnset(r.Context(), claims.ID, string(hashed)); err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusAccepted, map[string]string{"message": "account activated"})
}

// -------- companies --------

func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}
	if err := claims.RequireRole(models.RoleAdmin); err != nil {
		models.WriteError(w, err)
		return
	}
	var req CreateCompanyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, apperr.Validation("invalid request body"))
		return
	}
	if strings.TrimSpace(req.CompanyName) == "" {
		models.WriteError(w, apperr.Validation("company_name is required"))
		return
	}
	if strings.TrimSpace(req.Manager.Email) == "" || strings.TrimSpace(req.Manager.Name) == "" {
		models.WriteError(w, apperr.Validation("manager name and email are required"))
		return
	}

	comp, mgr, err := h.store.CreateCompanyWithManager(r.Context(), repo.CreateCompanyInput{
		CompanyName:     req.CompanyName,
		About:           req.About,
		ManagerName:     req.Manager.Name,
		ManagerEmail:    req.Manager.Email,
		ManagerPosition: req.Manager.Position,
	})
	if err != nil {
		fail(w, r, err)
		return
	}

	token, err := h.codec.Issue(auth.Identity{ID: mgr.EmpID, Email: mgr.Email, Role: models.RoleManager})
	if err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, CreateCompanyResponse{CompID: comp.CompID, ActivationToken: token})
}

func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}
	if err := claims.RequireRole(models.RoleAdmin); err != nil {
		models.WriteError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	comp, err := h.store.GetCompany(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, comp)
}

func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}
	if err := claims.RequireRole(models.RoleAdmin); err != nil {
		models.WriteError(w, err)
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	f := repo.CompanyFilter{Page: page, Limit: limit, Name: q.Get("company_name")}

	list, total, err := h.store.ListCompanies(r.Context(), f)
	if err != nil {
		fail(w, r, err)
		return
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	models.WriteJSON(w, http.StatusOK, ListResponse{Page: f.Page, Limit: f.Limit, Total: total, Data: list})
}

func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}
	if err := claims.RequireRole(models.RoleAdmin); err != nil {
		models.WriteError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	var req UpdateCompanyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, apperr.Validation("invalid request body"))
		return
	}
	comp, err := h.store.UpdateCompany(r.Context(), id, repo.UpdateCompanyInput{
		CompanyName: req.CompanyName,
		About:       req.About,
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, comp)
}

func (h *Handler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}
	if err := claims.RequireRole(models.RoleAdmin); err != nil {
		models.WriteError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	if err := h.store.DeleteCompany(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]string{"message": "company deleted"})
}

// MyCompany shows an employee or manager their own company.
func (h *Handler) MyCompany(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}
	compID, err := h.guard.CompanyOf(r.Context(), claims)
	if err != nil {
		fail(w, r, err)
		return
	}
	comp, err := h.store.GetCompany(r.Context(), compID)
	if err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, comp)
}

// -------- employees --------

// managerScope resolves the caller as a manager and returns their company.
// Authorization always precedes store access on the target.
func (h *Handler) managerScope(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return uuid.Nil, false
	}
	if err := claims.RequireRole(models.RoleManager); err != nil {
		models.WriteError(w, err)
		return uuid.Nil, false
	}
	compID, err := h.guard.CompanyOf(r.Context(), claims)
	if err != nil {
		fail(w, r, err)
		return uuid.Nil, false
	}
	return compID, true
}

func (h *Handler) InviteEmployee(w http.ResponseWriter, r *http.Request) {
	compID, ok := h.managerScope(w, r)
	if !ok {
		return
	}
	var req EmployeeInvite
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, apperr.Validation("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		models.WriteError(w, apperr.Validation("name and email are required"))
		return
	}

	emp, err := h.store.InviteEmployee(r.Context(), repo.InviteEmployeeInput{
		Name:     req.Name,
		Position: req.Position,
		Email:    req.Email,
		CompID:   compID,
	})
	if err != nil {
		fail(w, r, err)
		return
	}

	token, err := h.codec.Issue(auth.Identity{ID: emp.EmpID, Email: emp.Email, Role: models.RoleEmployee})
	if err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, InviteEmployeeResponse{EmpID: emp.EmpID, ActivationToken: token})
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	compID, ok := h.managerScope(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	emp, err := h.store.GetEmployee(r.Context(), id, compID)
	if err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	compID, ok := h.managerScope(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	f := repo.EmployeeFilter{Page: page, Limit: limit, Name: q.Get("name"), Position: q.Get("position")}

	list, total, err := h.store.ListEmployees(r.Context(), compID, f)
	if err != nil {
		fail(w, r, err)
		return
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	models.WriteJSON(w, http.StatusOK, ListResponse{Page: f.Page, Limit: f.Limit, Total: total, Data: list})
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	compID, ok := h.managerScope(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	var req UpdateEmployeeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, apperr.Validation("invalid request body"))
		return
	}
	emp, err := h.store.UpdateEmployee(r.Context(), id, compID, repo.UpdateEmployeeInput{
		Name:     req.Name,
		Position: req.Position,
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	compID, ok := h.managerScope(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	if err := h.store.DeleteEmployee(r.Context(), id, compID); err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]string{"message": "employee deleted"})
}
