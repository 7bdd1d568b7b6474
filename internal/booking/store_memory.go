package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"huddle/internal/apperr"
	"huddle/internal/models"
)

type memEmployee struct {
	Name   string
	Email  string
	CompID uuid.UUID
}

// MemStore is an in-memory Store: the test double and the backing of the
// no-database mode. Same conflict semantics as the SQL store, with the
// mutex standing in for the transaction.
type MemStore struct {
	mu        sync.RWMutex
	bookings  map[uuid.UUID]*models.Booking
	spaces    map[uuid.UUID]*models.Space
	employees map[uuid.UUID]memEmployee
}

func NewMemStore() *MemStore {
	return &MemStore{
		bookings:  make(map[uuid.UUID]*models.Booking),
		spaces:    make(map[uuid.UUID]*models.Space),
		employees: make(map[uuid.UUID]memEmployee),
	}
}

// AddSpace registers a bookable space.
func (m *MemStore) AddSpace(s models.Space) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spaces[s.SpaceID] = &s
}

// AddEmployee registers an employee for company-scope queries.
func (m *MemStore) AddEmployee(id uuid.UUID, name, email string, compID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[id] = memEmployee{Name: name, Email: email, CompID: compID}
}

// CompanyOf implements auth.Directory.
func (m *MemStore) CompanyOf(_ context.Context, empID uuid.UUID) (uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.employees[empID]
	if !ok {
		return uuid.Nil, apperr.NotFound("employee not found")
	}
	return e.CompID, nil
}

func (m *MemStore) conflictsLocked(spaceID uuid.UUID, start, end time.Time, exclude uuid.UUID) bool {
	for _, b := range m.bookings {
		if b.SpaceID != spaceID || b.BookingID == exclude {
			continue
		}
		if Overlaps(b.StartTime, b.EndTime, start, end) {
			return true
		}
	}
	return false
}

func (m *MemStore) CreateIfFree(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conflictsLocked(b.SpaceID, b.StartTime, b.EndTime, uuid.Nil) {
		return apperr.Conflict("slot is already filled")
	}
	cp := *b
	m.bookings[b.BookingID] = &cp
	return nil
}

func (m *MemStore) GetForHolder(_ context.Context, id, holder uuid.UUID) (*models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bookings[id]
	if !ok || b.BookedBy != holder {
		return nil, apperr.NotFound("booking not found")
	}
	cp := *b
	return &cp, nil
}

func (m *MemStore) ExtendIfFree(_ context.Context, b *models.Booking, newEnd time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.bookings[b.BookingID]
	if !ok || cur.BookedBy != b.BookedBy {
		return apperr.NotFound("booking not found")
	}
	if m.conflictsLocked(cur.SpaceID, cur.StartTime, newEnd, cur.BookingID) {
		return apperr.Conflict("slot is already filled")
	}
	cur.EndTime = newEnd
	b.EndTime = newEnd
	return nil
}

func (m *MemStore) DeleteForHolder(_ context.Context, id, holder uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.BookedBy != holder {
		return apperr.NotFound("booking not found")
	}
	delete(m.bookings, id)
	return nil
}

func (m *MemStore) ListByHolder(_ context.Context, holder uuid.UUID) ([]models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Booking{}
	for _, b := range m.bookings {
		if b.BookedBy == holder {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (m *MemStore) ListByCompany(_ context.Context, compID uuid.UUID) ([]CompanyBooking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []CompanyBooking{}
	for _, b := range m.bookings {
		e, ok := m.employees[b.BookedBy]
		if !ok || e.CompID != compID {
			continue
		}
		out = append(out, CompanyBooking{
			BookingID:    b.BookingID,
			SpaceID:      b.SpaceID,
			EmpID:        b.BookedBy,
			EmployeeName: e.Name,
			Email:        e.Email,
			StartTime:    b.StartTime,
			EndTime:      b.EndTime,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (m *MemStore) AvailableSpaces(_ context.Context, start, end time.Time) ([]models.Space, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Space{}
	for id, s := range m.spaces {
		if !m.conflictsLocked(id, start, end, uuid.Nil) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemStore) BookedWindows(_ context.Context, spaceID uuid.UUID, from, to time.Time) ([]Window, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Window{}
	for _, b := range m.bookings {
		if b.SpaceID != spaceID {
			continue
		}
		if !b.StartTime.Before(from) && b.StartTime.Before(to) {
			out = append(out, Window{StartTime: b.StartTime, EndTime: b.EndTime})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}
