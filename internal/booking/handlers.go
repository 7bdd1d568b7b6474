package booking

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"huddle/internal/apperr"
	"huddle/internal/auth"
	"huddle/internal/logs"
	"huddle/internal/middleware"
	"huddle/internal/models"
)

func NewHandler(engine *Engine) *Handler { return &Handler{engine: engine} }

type Handler struct {
	engine *Engine
}

// fail writes the envelope and logs full detail for unexpected errors,
// keyed by request id.
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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, apperr.Validation("invalid request body"))
		return
	}
	id, err := h.engine.Create(r.Context(), claims, req)
	if err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, CreateResponse{BookingID: id})
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	if err := h.engine.Cancel(r.Context(), claims, id); err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]string{"message": "booking cancelled successfully"})
}

func (h *Handler) Extend(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	var req ExtendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, apperr.Validation("invalid request body"))
		return
	}
	bookingID, err := h.engine.Extend(r.Context(), claims, id, time.Duration(req.ExtraMinutes)*time.Minute)
	if err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, CreateResponse{BookingID: bookingID})
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}
	bookings, err := h.engine.Mine(r.Context(), claims)
	if err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, bookings)
}

func (h *Handler) ByID(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	b, err := h.engine.ByID(r.Context(), claims, id)
	if err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) Company(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}
	bookings, err := h.engine.CompanyBookings(r.Context(), claims)
	if err != nil {
		fail(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, bookings)
}
