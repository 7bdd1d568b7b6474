package booking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"huddle/internal/auth"
	"huddle/internal/logs"
	"huddle/internal/models"
)

func newTestRouter(t *testing.T) (*mux.Router, *auth.Codec) {
	t.Helper()
	logs.Init(logs.Options{Level: "error"})

	codec, err := auth.NewCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	store := NewMemStore()
	engine := NewEngine(store, auth.NewGuard(store), time.UTC)
	engine.now = func() time.Time { return testNow }

	r := mux.NewRouter().StrictSlash(true)
	RegisterRoutes(r, NewHandler(engine), auth.RequireAuth(codec))
	return r, codec
}

func bearerFor(t *testing.T, codec *auth.Codec, role models.Role) (string, uuid.UUID) {
	t.Helper()
	id := uuid.New()
	token, err := codec.Issue(auth.Identity{ID: id, Email: "u@example.com", Role: role})
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + token, id
}

func doJSON(r *mux.Router, method, path, bearer string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) models.Envelope {
	t.Helper()
	var env models.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad envelope: %v: %s", err, w.Body.String())
	}
	return env
}

func TestBookingsRequireBearer(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, header := range []string{"", "Basic abc", "Bearer not-a-token"} {
		w := doJSON(r, http.MethodGet, "/bookings/me", header, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want 401", header, w.Code)
		}
		env := decodeEnvelope(t, w)
		if env.Success || env.Error == nil || env.Error.Kind != "unauthorized" {
			t.Fatalf("header %q: unexpected envelope %s", header, w.Body.String())
		}
	}
}

func TestCreateBookingHTTP(t *testing.T) {
	r, codec := newTestRouter(t)
	bearer, _ := bearerFor(t, codec, models.RoleEmployee)
	space := uuid.New()

	w := doJSON(r, http.MethodPost, "/bookings", bearer, CreateRequest{
		SpaceID: space, StartTime: at(14, 0), EndTime: at(15, 0),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if !env.Success {
		t.Fatalf("success = false: %s", w.Body.String())
	}

	// the same slot again: conflict
	w = doJSON(r, http.MethodPost, "/bookings", bearer, CreateRequest{
		SpaceID: space, StartTime: at(14, 30), EndTime: at(15, 30),
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", w.Code, w.Body.String())
	}
	env = decodeEnvelope(t, w)
	if env.Error == nil || env.Error.Kind != "conflict" {
		t.Fatalf("unexpected envelope: %s", w.Body.String())
	}

	// bad window: validation
	w = doJSON(r, http.MethodPost, "/bookings", bearer, CreateRequest{
		SpaceID: space, StartTime: at(17, 0), EndTime: at(16, 0),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}

	// administrators are barred from booking
	adminBearer, _ := bearerFor(t, codec, models.RoleAdmin)
	w = doJSON(r, http.MethodPost, "/bookings", adminBearer, CreateRequest{
		SpaceID: uuid.New(), StartTime: at(16, 0), EndTime: at(17, 0),
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403: %s", w.Code, w.Body.String())
	}
}

func TestBookingLifecycleHTTP(t *testing.T) {
	r, codec := newTestRouter(t)
	bearer, _ := bearerFor(t, codec, models.RoleEmployee)
	otherBearer, _ := bearerFor(t, codec, models.RoleEmployee)

	w := doJSON(r, http.MethodPost, "/bookings", bearer, CreateRequest{
		SpaceID: uuid.New(), StartTime: at(14, 0), EndTime: at(15, 0),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var created struct {
		Data CreateResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	path := fmt.Sprintf("/bookings/%s", created.Data.BookingID)

	// visible to its holder
	if w := doJSON(r, http.MethodGet, path, bearer, nil); w.Code != http.StatusOK {
		t.Fatalf("get: %d %s", w.Code, w.Body.String())
	}
	// invisible to anyone else
	if w := doJSON(r, http.MethodGet, path, otherBearer, nil); w.Code != http.StatusNotFound {
		t.Fatalf("foreign get: %d, want 404", w.Code)
	}

	// extend within the cap
	if w := doJSON(r, http.MethodPatch, path, bearer, ExtendRequest{ExtraMinutes: 30}); w.Code != http.StatusOK {
		t.Fatalf("extend: %d %s", w.Code, w.Body.String())
	}
	// past the cap
	if w := doJSON(r, http.MethodPatch, path, bearer, ExtendRequest{ExtraMinutes: 45}); w.Code != http.StatusBadRequest {
		t.Fatalf("extend past cap: %d, want 400", w.Code)
	}

	// cancel, then cancel again
	if w := doJSON(r, http.MethodDelete, path, bearer, nil); w.Code != http.StatusOK {
		t.Fatalf("cancel: %d %s", w.Code, w.Body.String())
	}
	if w := doJSON(r, http.MethodDelete, path, bearer, nil); w.Code != http.StatusNotFound {
		t.Fatalf("second cancel: %d, want 404", w.Code)
	}
}
