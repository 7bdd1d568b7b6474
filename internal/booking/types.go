package booking

import (
	"time"

	"github.com/google/uuid"
)

type CreateRequest struct {
	SpaceID   uuid.UUID `json:"space_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type ExtendRequest struct {
	ExtraMinutes int `json:"extra_minutes"`
}

type CreateResponse struct {
	BookingID uuid.UUID `json:"booking_id"`
}

// Window is one booked [start, end) slot, as shown on a space's agenda.
type Window struct {
	StartTime time.Time `json:"start_time" gorm:"column:start_time"`
	EndTime   time.Time `json:"end_time" gorm:"column:end_time"`
}

// CompanyBooking is a manager's view row: a booking joined with the
// employee who holds it.
type CompanyBooking struct {
	BookingID    uuid.UUID `json:"booking_id" gorm:"column:booking_id"`
	SpaceID      uuid.UUID `json:"space_id" gorm:"column:space_id"`
	EmpID        uuid.UUID `json:"emp_id" gorm:"column:emp_id"`
	EmployeeName string    `json:"employee_name" gorm:"column:employee_name"`
	Email        string    `json:"email" gorm:"column:email"`
	StartTime    time.Time `json:"start_time" gorm:"column:start_time"`
	EndTime      time.Time `json:"end_time" gorm:"column:end_time"`
}
