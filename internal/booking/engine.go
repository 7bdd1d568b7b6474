package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"huddle/internal/apperr"
	"huddle/internal/auth"
	"huddle/internal/models"
)

// MaxDuration caps any single booking, extensions included.
const MaxDuration = 2 * time.Hour

// Overlaps is the half-open interval predicate: [aStart, aEnd) and
// [bStart, bEnd) collide iff aStart < bEnd && bStart < aEnd. Create and
// extend share it so the two paths cannot drift apart.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Store is the transactional surface the engine writes through. The conflict
// check and the write happen inside one transaction in the implementation;
// a store-level exclusion constraint backs the check against races.
type Store interface {
	// CreateIfFree persists b unless another booking on the same space
	// overlaps it; then it returns a conflict error.
	CreateIfFree(ctx context.Context, b *models.Booking) error
	// GetForHolder fetches a booking scoped to its holder. Absent and
	// not-yours are the same not-found.
	GetForHolder(ctx context.Context, id, holder uuid.UUID) (*models.Booking, error)
	// ExtendIfFree moves b's end to newEnd unless the widened window
	// overlaps another booking on the same space (b itself excluded).
	ExtendIfFree(ctx context.Context, b *models.Booking, newEnd time.Time) error
	// DeleteForHolder removes a booking scoped to its holder; zero rows
	// affected is not-found.
	DeleteForHolder(ctx context.Context, id, holder uuid.UUID) error
	ListByHolder(ctx context.Context, holder uuid.UUID) ([]models.Booking, error)
	ListByCompany(ctx context.Context, compID uuid.UUID) ([]CompanyBooking, error)
	// AvailableSpaces returns exactly the spaces with no booking
	// overlapping [start, end).
	AvailableSpaces(ctx context.Context, start, end time.Time) ([]models.Space, error)
	BookedWindows(ctx context.Context, spaceID uuid.UUID, from, to time.Time) ([]Window, error)
}

// Engine owns the reservation lifecycle: validation, conflict detection and
// the role checks gating every operation. It keeps no mutable state of its
// own; the store is the only synchronization point.
type Engine struct {
	store Store
	guard *auth.Guard
	loc   *time.Location
	now   func() time.Time
}

func NewEngine(store Store, guard *auth.Guard, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{store: store, guard: guard, loc: loc, now: time.Now}
}

// requireBooker bars administrators from holding bookings. Managers book
// like any other employee; both resolve to employee rows in the directory.
func requireBooker(claims *auth.Claims) error {
	if claims.Role == models.RoleAdmin {
		return apperr.Forbidden("only employees have access")
	}
	return nil
}

// Create validates the proposed window and commits it unless it conflicts.
// Each rule has its own stable rejection reason; the first failure wins.
func (e *Engine) Create(ctx context.Context, claims *auth.Claims, req CreateRequest) (uuid.UUID, error) {
	if err := requireBooker(claims); err != nil {
		return uuid.Nil, err
	}
	if req.SpaceID == uuid.Nil {
		return uuid.Nil, apperr.Validation("space_id is required")
	}

	now := e.now()
	if !req.StartTime.Before(req.EndTime) || req.EndTime.Sub(req.StartTime) > MaxDuration {
		return uuid.Nil, apperr.Validation("invalid timings")
	}
	ny, nm, nd := now.In(e.loc).Date()
	sy, sm, sd := req.StartTime.In(e.loc).Date()
	if ny != sy || nm != sm || nd != sd {
		return uuid.Nil, apperr.Validation("you can only book for todays date")
	}
	if !req.StartTime.After(now) {
		return uuid.Nil, apperr.Validation("booking time must be in the future")
	}

	b := &models.Booking{
		BookingID: uuid.New(),
		SpaceID:   req.SpaceID,
		BookedBy:  claims.ID,
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
		CreatedAt: now.UTC(),
	}
	if err := e.store.CreateIfFree(ctx, b); err != nil {
		return uuid.Nil, apperr.From(err)
	}
	return b.BookingID, nil
}

// Extend widens the caller's own booking by extra, keeping the 2-hour cap
// from the original start and re-running the overlap check against every
// other booking on the space.
func (e *Engine) Extend(ctx context.Context, claims *auth.Claims, id uuid.UUID, extra time.Duration) (uuid.UUID, error) {
	if err := requireBooker(claims); err != nil {
		return uuid.Nil, err
	}
	if extra <= 0 {
		return uuid.Nil, apperr.Validation("extension must be positive")
	}

	b, err := e.store.GetForHolder(ctx, id, claims.ID)
	if err != nil {
		return uuid.Nil, apperr.From(err)
	}

	newEnd := b.EndTime.Add(extra)
	if newEnd.Before(b.EndTime) {
		// time overflow
		return uuid.Nil, apperr.Validation("invalid time calculation")
	}
	if newEnd.Sub(b.StartTime) > MaxDuration {
		return uuid.Nil, apperr.Validation("you can only book for max 2 hours")
	}

	if err := e.store.ExtendIfFree(ctx, b, newEnd); err != nil {
		return uuid.Nil, apperr.From(err)
	}
	return b.BookingID, nil
}

// Cancel removes the caller's own booking. A repeat cancel sees the same
// not-found as a booking that never existed.
func (e *Engine) Cancel(ctx context.Context, claims *auth.Claims, id uuid.UUID) error {
	if err := requireBooker(claims); err != nil {
		return err
	}
	if err := e.store.DeleteForHolder(ctx, id, claims.ID); err != nil {
		return apperr.From(err)
	}
	return nil
}

// Mine lists the caller's bookings.
func (e *Engine) Mine(ctx context.Context, claims *auth.Claims) ([]models.Booking, error) {
	if err := requireBooker(claims); err != nil {
		return nil, err
	}
	out, err := e.store.ListByHolder(ctx, claims.ID)
	if err != nil {
		return nil, apperr.From(err)
	}
	return out, nil
}

// ByID fetches one booking, holder-scoped: someone else's booking is
// indistinguishable from a missing one.
func (e *Engine) ByID(ctx context.Context, claims *auth.Claims, id uuid.UUID) (*models.Booking, error) {
	if err := requireBooker(claims); err != nil {
		return nil, err
	}
	b, err := e.store.GetForHolder(ctx, id, claims.ID)
	if err != nil {
		return nil, apperr.From(err)
	}
	return b, nil
}

// CompanyBookings is the manager view: every booking held by an employee
// of the manager's own company.
func (e *Engine) CompanyBookings(ctx context.Context, claims *auth.Claims) ([]CompanyBooking, error) {
	if err := claims.RequireRole(models.RoleManager); err != nil {
		return nil, err
	}
	compID, err := e.guard.CompanyOf(ctx, claims)
	if err != nil {
		return nil, apperr.From(err)
	}
	out, err := e.store.ListByCompany(ctx, compID)
	if err != nil {
		return nil, apperr.From(err)
	}
	return out, nil
}

// AvailableSpaces returns the spaces free for the whole [start, end) window.
func (e *Engine) AvailableSpaces(ctx context.Context, start, end time.Time) ([]models.Space, error) {
	if !start.Before(end) {
		return nil, apperr.Validation("invalid timings")
	}
	out, err := e.store.AvailableSpaces(ctx, start, end)
	if err != nil {
		return nil, apperr.From(err)
	}
	return out, nil
}

// SpaceAgenda lists today's booked windows for one space, in the reference
// timezone's calendar day.
func (e *Engine) SpaceAgenda(ctx context.Context, spaceID uuid.UUID) ([]Window, error) {
	now := e.now().In(e.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, e.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	out, err := e.store.BookedWindows(ctx, spaceID, dayStart, dayEnd)
	if err != nil {
		return nil, apperr.From(err)
	}
	return out, nil
}
