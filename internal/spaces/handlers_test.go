package spaces

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"huddle/internal/auth"
	"huddle/internal/booking"
	"huddle/internal/logs"
	"huddle/internal/models"
)

var testNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func newAvailabilityRouter(t *testing.T) (*mux.Router, *booking.MemStore) {
	t.Helper()
	logs.Init(logs.Options{Level: "error"})

	codec, err := auth.NewCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	store := booking.NewMemStore()
	engine := booking.NewEngine(store, auth.NewGuard(store), time.UTC)

	r := mux.NewRouter().StrictSlash(true)
	RegisterRoutes(r, NewHandler(nil, engine), auth.RequireAuth(codec))
	return r, store
}

func seedBooking(t *testing.T, store *booking.MemStore, spaceID uuid.UUID, start, end time.Time) {
	t.Helper()
	err := store.CreateIfFree(context.Background(), &models.Booking{
		BookingID: uuid.New(),
		SpaceID:   spaceID,
		BookedBy:  uuid.New(),
		StartTime: start,
		EndTime:   end,
		CreatedAt: testNow,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestAvailableSpacesHTTP(t *testing.T) {
	r, store := newAvailabilityRouter(t)

	x := models.Space{SpaceID: uuid.New(), Name: "X", Size: 4}
	y := models.Space{SpaceID: uuid.New(), Name: "Y", Size: 8}
	store.AddSpace(x)
	store.AddSpace(y)
	seedBooking(t, store, x.SpaceID,
		time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 14, 11, 0, 0, 0, time.UTC))

	// no auth header needed: availability is public
	url := fmt.Sprintf("/spaces/available?start_time=%s&end_time=%s",
		"2025-03-14T10:30:00Z", "2025-03-14T10:45:00Z")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var env struct {
		Success bool           `json:"success"`
		Data    []models.Space `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if len(env.Data) != 1 || env.Data[0].SpaceID != y.SpaceID {
		t.Fatalf("expected only Y free, got %s", w.Body.String())
	}
}

func TestAvailableSpacesBadWindow(t *testing.T) {
	r, _ := newAvailabilityRouter(t)

	cases := []string{
		"/spaces/available",
		"/spaces/available?start_time=not-a-time&end_time=2025-03-14T10:45:00Z",
		"/spaces/available?start_time=2025-03-14T12:00:00Z&end_time=2025-03-14T11:00:00Z",
	}
	for _, url := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", url, w.Code)
		}
	}
}

func TestSpaceAgendaHTTP(t *testing.T) {
	r, store := newAvailabilityRouter(t)

	space := uuid.New()
	store.AddSpace(models.Space{SpaceID: space, Name: "X", Size: 4})
	seedBooking(t, store, space,
		time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 14, 11, 0, 0, 0, time.UTC))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/spaces/"+space.String()+"/bookings", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
}

func TestSpaceMutationsRequireAuth(t *testing.T) {
	r, _ := newAvailabilityRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/spaces", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
