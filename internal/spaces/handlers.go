package spaces

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"huddle/internal/apperr"
	"huddle/internal/auth"
	"huddle/internal/booking"
	"huddle/internal/logs"
	"huddle/internal/middleware"
	"huddle/internal/models"
	"huddle/internal/repo"
)

// Handler serves space administration (admin only) and the two public
// availability reads, which it delegates to the conflict engine.
type Handler struct {
	store  *repo.SpaceStore
	engine *booking.Engine
}

func NewHandler(store *repo.SpaceStore, engine *booking.Engine) *Handler {
	return &Handler{store: store, engine: engine}
}

func fail(w http.ResponseWriter, r *http.Request, err error) {
	if e := apperr.From(err); e.Kind == apperr.KindUnexpected {
		logs.Logger.Errorf("reqid=%s %s %s: %v", middleware.GetRequestID(r), r.Method, r.RequestURI, e)
	}
	models.WriteError(w, err)
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := auth.ClaimsFrom(r)
	if !ok {
		models.WriteError(w, apperr.Unauthorized("missing or invalid Authorization header"))
		return false
	}
	if err := claims.RequireRole(models.RoleAdmin); err != nil {
		models.WriteError(w, err)
		return false
	}
	return true
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid id")
	}
	return id, nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	var req CreateSpaceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, apperr.Validation("invalid request body"))
		return
	}
	if req.Name == "" {
		models.WriteError(w, apperr.Validation("name is required"))
		return
	}
	if req.Size <= 0 {
		models.WriteError(w, apperr.Validation("size must be positive"))
		return
	}
	sp, err := h.store.Create(r.Context(), repo.CreateSpaceInput{
		Name:        req.Name,
		Size:        req.Size,
		Description: req.Description,
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, map[string]uuid.UUID{"space_id": sp.SpaceID})
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	sp, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, sp)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	size, _ := strconv.Atoi(q.Get("size"))

	f := repo.SpaceFilter{Page: page, Limit: limit, Name: q.Get("name"), Size: size}
	list, total, err := h.store.List(r.Context(), f)
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

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	var req UpdateSpaceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, apperr.Validation("invalid request body"))
		return
	}
	if req.Size != nil && *req.Size <= 0 {
		models.WriteError(w, apperr.Validation("size must be positive"))
		return
	}
	sp, err := h.store.Update(r.Context(), id, repo.UpdateSpaceInput{
		Name:        req.Name,
		Size:        req.Size,
		Description: req.Description,
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, sp)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]string{"message": "space deleted"})
}

// Available answers "which spaces are free for [start, end)". Public.
func (h *Handler) Available(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err := time.Parse(time.RFC3339, q.Get("start_time"))
	if err != nil {
		models.WriteError(w, apperr.Validation("start_time must be RFC3339"))
		return
	}
	end, err := time.Parse(time.RFC3339, q.Get("end_time"))
	if err != nil {
		models.WriteError(w, apperr.Validation("end_time must be RFC3339"))
		return
	}
	list, err := h.engine.AvailableSpaces(r.Context(), start, end)
	if err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, list)
}

// Agenda lists today's booked windows for one space. Public.
func (h *Handler) Agenda(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	windows, err := h.engine.SpaceAgenda(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, windows)
}
