package domain

import "time"

// Business represents a tenant account. Buffer defaults apply to
// service-based bookings; event types carry their own buffers.
type Business struct {
	ID                  int64
	Name                string
	Timezone            string // stored as-is, slots are business-local
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Staff represents a bookable staff member of a business
type Staff struct {
	ID         int64
	BusinessID int64
	Name       string
	Email      string
}

// Service represents a bookable offering with a fixed duration.
// Buffers for service bookings come from the owning business defaults.
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	DurationMinutes int
	Price           float64
}

// EventType represents a configurable bookable offering (meeting template):
// own duration, buffers, minimum notice and confirmation policy.
type EventType struct {
	ID                   int64
	BusinessID           int64
	StaffID              *int64
	Title                string
	Slug                 string
	Description          *string
	DurationMinutes      int
	BufferBeforeMinutes  int
	BufferAfterMinutes   int
	MinimumNoticeMinutes int
	RequiresConfirmation bool
	IsActive             bool
	Color                string
	Location             *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// InitialStatus returns the status a new appointment for this event type
// is created with
func (e *EventType) InitialStatus() AppointmentStatus {
	if e.RequiresConfirmation {
		return StatusPending
	}
	return StatusConfirmed
}

// Customer represents a booker, unique per (business, email).
// Upserted by email on every booking: created if absent, name/phone
// refreshed otherwise.
type Customer struct {
	ID         int64
	BusinessID int64
	Name       string
	Email      string
	Phone      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BookingParams is the resolved duration/buffer/notice set for a booking
// request. Exactly one duration source (service or event type) produces it.
type BookingParams struct {
	DurationMinutes      int
	BufferBeforeMinutes  int
	BufferAfterMinutes   int
	MinimumNoticeMinutes int
	InitialStatus        AppointmentStatus
}
