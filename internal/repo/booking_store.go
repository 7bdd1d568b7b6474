package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"huddle/internal/apperr"
	"huddle/internal/booking"
	"huddle/internal/models"
)

// BookingStore is the transactional reservation adapter over Postgres.
// The overlap pre-check and the write run in one transaction, and the
// bookings_no_overlap exclusion constraint backs them: a concurrent writer
// that slips past the pre-check fails the insert with SQLSTATE 23P01.
type BookingStore struct{ db *gorm.DB }

func NewBookingStore(db *gorm.DB) *BookingStore { return &BookingStore{db: db} }

// exclusion_violation
const pgExclusionViolation = "23P01"

func asConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
		return apperr.Conflict("slot is already filled")
	}
	return err
}

func (s *BookingStore) CreateIfFree(ctx context.Context, b *models.Booking) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Booking{}).
			Where("space_id = ? AND start_time < ? AND ? < end_time", b.SpaceID, b.EndTime, b.StartTime).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict("slot is already filled")
		}
		if err := tx.Create(b).Error; err != nil {
			return asConflict(err)
		}
		return nil
	})
}

func (s *BookingStore) GetForHolder(ctx context.Context, id, holder uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	err := s.db.WithContext(ctx).
		Where("booking_id = ? AND booked_by = ?", id, holder).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("booking not found")
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BookingStore) ExtendIfFree(ctx context.Context, b *models.Booking, newEnd time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Booking{}).
			Where("space_id = ? AND booking_id <> ? AND start_time < ? AND ? < end_time",
				b.SpaceID, b.BookingID, newEnd, b.StartTime).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict("slot is already filled")
		}
		res := tx.Model(&models.Booking{}).
			Where("booking_id = ? AND booked_by = ?", b.BookingID, b.BookedBy).
			Update("end_time", newEnd)
		if res.Error != nil {
			return asConflict(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("booking not found")
		}
		b.EndTime = newEnd
		return nil
	})
}

func (s *BookingStore) DeleteForHolder(ctx context.Context, id, holder uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("booking_id = ? AND booked_by = ?", id, holder).
		Delete(&models.Booking{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("booking not found")
	}
	return nil
}

func (s *BookingStore) ListByHolder(ctx context.Context, holder uuid.UUID) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := s.db.WithContext(ctx).
		Where("booked_by = ?", holder).
		Order("start_time asc").
		Find(&bookings).Error
	return bookings, err
}

func (s *BookingStore) ListByCompany(ctx context.Context, compID uuid.UUID) ([]booking.CompanyBooking, error) {
	rows := []booking.CompanyBooking{}
	err := s.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.booking_id, bookings.space_id, bookings.booked_by AS emp_id,
			employees.name AS employee_name, employees.email,
			bookings.start_time, bookings.end_time`).
		Joins("INNER JOIN employees ON employees.emp_id = bookings.booked_by").
		Where("employees.comp_id = ?", compID).
		Order("bookings.start_time asc").
		Scan(&rows).Error
	return rows, err
}

func (s *BookingStore) AvailableSpaces(ctx context.Context, start, end time.Time) ([]models.Space, error) {
	spaces := []models.Space{}
	err := s.db.WithContext(ctx).
		Where(`NOT EXISTS (
			SELECT 1 FROM bookings
			WHERE bookings.space_id = spaces.space_id
			  AND bookings.start_time < ? AND ? < bookings.end_time)`, end, start).
		Order("name asc").
		Find(&spaces).Error
	return spaces, err
}

func (s *BookingStore) BookedWindows(ctx context.Context, spaceID uuid.UUID, from, to time.Time) ([]booking.Window, error) {
	windows := []booking.Window{}
	err := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("start_time, end_time").
		Where("space_id = ? AND start_time >= ? AND start_time < ?", spaceID, from, to).
		Order("start_time asc").
		Scan(&windows).Error
	return windows, err
}
