package reservations

import (
	"time"

	"seatreserve/internal/spaces"
)

// SpaceSnapshot is the denormalised view of the booked space kept for display
type SpaceSnapshot struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Type     spaces.SpaceType `json:"type"`
	Floor    string           `json:"floor"`
	Building string           `json:"building"`
}

type Reservation struct {
	ID            string         `json:"id"`
	SpaceID       string         `json:"spaceId"`
	UserID        string         `json:"userId"`
	StartTime     time.Time      `json:"startTime"`
	EndTime       time.Time      `json:"endTime"`
	Status        Status         `json:"status"`
	CheckInStatus CheckInStatus  `json:"checkInStatus"`
	Notes         string         `json:"notes,omitempty"`
	CheckInTime   *time.Time     `json:"checkInTime,omitempty"`
	CheckOutTime  *time.Time     `json:"checkOutTime,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	Space         *SpaceSnapshot `json:"space,omitempty"`
}

// IsPast reports whether the reservation belongs to the past partition at now.
// Cancelled and completed reservations are history regardless of their window.
func (r Reservation) IsPast(now time.Time) bool {
	return r.Status.IsTerminal() || r.EndTime.Before(now)
}

// EffectiveStatus derives completion at read time: an active reservation whose
// window has ended is reported as completed.
func (r Reservation) EffectiveStatus(now time.Time) Status {
	if r.Status == StatusActive && r.EndTime.Before(now) {
		return StatusCompleted
	}
	return r.Status
}

func (r Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && start.Before(r.EndTime)
}

// HoldsSpace reports whether the reservation still blocks its window. Checking
// out releases the space for the rest of the booking.
func (r Reservation) HoldsSpace() bool {
	return r.Status == StatusActive && r.CheckInStatus != CheckInCheckedOut
}

// Partitions is a user's reservations split into upcoming and past
type Partitions struct {
	Upcoming []Reservation `json:"upcomingReservations"`
	Past     []Reservation `json:"pastReservations"`
}

// CheckInUpdate is the acknowledgement of a check-in or check-out
type CheckInUpdate struct {
	ID            string        `json:"id"`
	CheckInStatus CheckInStatus `json:"checkInStatus"`
	CheckInTime   *time.Time    `json:"checkInTime,omitempty"`
	CheckOutTime  *time.Time    `json:"checkOutTime,omitempty"`
}

// NewReservation is the input of a create. UserID is filled from the caller's token.
type NewReservation struct {
	SpaceID   string    `json:"spaceId" validate:"required"`
	UserID    string    `json:"-"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required"`
	Notes     string    `json:"notes,omitempty" validate:"max=500"`
}

// Clone returns a deep copy
func (r *Reservation) Clone() Reservation {
	c := *r
	if r.Space != nil {
		s := *r.Space
		c.Space = &s
	}
	if r.CheckInTime != nil {
		t := *r.CheckInTime
		c.CheckInTime = &t
	}
	if r.CheckOutTime != nil {
		t := *r.CheckOutTime
		c.CheckOutTime = &t
	}
	return c
}
