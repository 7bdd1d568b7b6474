package models

import (
	"time"

	"github.com/google/uuid"
)

// Role tags an account. The three roles are disjoint: an administrator is
// never implicitly a manager or employee and vice versa.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Company groups employees; spaces belong to the platform, not to companies.
type Company struct {
	CompID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"comp_id"`
	CompanyName string    `gorm:"size:255;not null" json:"company_name"`
	About       *string   `gorm:"size:1024" json:"about,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Employee belongs to exactly one company. Managers are employees with the
// manager role. PasswordHash is nil until the account is activated.
type Employee struct {
	EmpID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"emp_id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Position     string    `gorm:"size:255" json:"position"`
	CompID       uuid.UUID `gorm:"type:uuid;index;not null" json:"comp_id"`
	Company      Company   `gorm:"foreignKey:CompID;references:CompID;constraint:OnDelete:CASCADE" json:"-"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash *string   `gorm:"size:255" json:"-"`
	Role         Role      `gorm:"size:32;not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Admin is the platform administrator account. Admins belong to no company.
type Admin struct {
	AdminID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"admin_id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Space is a bookable physical resource (room, desk), platform-owned.
type Space struct {
	SpaceID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"space_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Size        int       `gorm:"not null" json:"size"`
	Description *string   `gorm:"size:1024" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Booking is a half-open [StartTime, EndTime) claim on a space. SpaceID and
// BookedBy never change after creation; EndTime moves only through the
// extend operation.
type Booking struct {
	BookingID uuid.UUID `gorm:"type:uuid;primaryKey" json:"booking_id"`
	SpaceID   uuid.UUID `gorm:"type:uuid;index;not null" json:"space_id"`
	Space     Space     `gorm:"foreignKey:SpaceID;references:SpaceID;constraint:OnDelete:CASCADE" json:"-"`
	BookedBy  uuid.UUID `gorm:"type:uuid;index;not null" json:"booked_by"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}
