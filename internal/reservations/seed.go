package reservations

import (
	"time"

	"seatreserve/internal/spaces"
)

// SeedReservations returns the demo user's bookings: two upcoming, two completed.
// Dates are relative to now, hours are wall clock in loc.
func SeedReservations(now time.Time, loc *time.Location, userID string, inventory []spaces.Space) []Reservation {
	local := now.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	at := func(days int, hour int) time.Time {
		return day.AddDate(0, 0, days).Add(time.Duration(hour) * time.Hour).UTC()
	}

	snapshots := make(map[string]*SpaceSnapshot, len(inventory))
	for _, s := range inventory {
		snapshots[s.ID] = SnapshotOf(s)
	}

	checkedIn := func(t time.Time) *time.Time { return &t }

	return []Reservation{
		{
			ID: "1", SpaceID: "space456", UserID: userID,
			StartTime: at(1, 9), EndTime: at(1, 17),
			Status: StatusActive, CheckInStatus: CheckInPending,
			Notes:     "Client meeting in the morning",
			CreatedAt: at(-2, 8), Space: snapshots["space456"],
		},
		{
			ID: "2", SpaceID: "space789", UserID: userID,
			StartTime: at(2, 10), EndTime: at(2, 16),
			Status: StatusActive, CheckInStatus: CheckInPending,
			CreatedAt: at(-1, 8), Space: snapshots["space789"],
		},
		{
			ID: "3", SpaceID: "space456", UserID: userID,
			StartTime: at(-5, 9), EndTime: at(-5, 17),
			Status: StatusCompleted, CheckInStatus: CheckInCheckedOut,
			CheckInTime: checkedIn(at(-5, 9)), CheckOutTime: checkedIn(at(-5, 17)),
			CreatedAt: at(-7, 8), Space: snapshots["space456"],
		},
		{
			ID: "4", SpaceID: "space101", UserID: userID,
			StartTime: at(-10, 13), EndTime: at(-10, 15),
			Status: StatusCompleted, CheckInStatus: CheckInCheckedOut,
			CheckInTime: checkedIn(at(-10, 13)), CheckOutTime: checkedIn(at(-10, 15)),
			CreatedAt: at(-12, 8), Space: snapshots["space101"],
		},
	}
}

// SnapshotOf denormalises a space for display on a reservation
func SnapshotOf(s spaces.Space) *SpaceSnapshot {
	return &SpaceSnapshot{
		ID:       s.ID,
		Name:     s.Name,
		Type:     s.Type,
		Floor:    s.Floor,
		Building: s.Building,
	}
}
