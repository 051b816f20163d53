package reservations

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the reservation status is known
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanBeCancelled checks if a reservation with this status can be cancelled
func (s Status) CanBeCancelled() bool {
	return s == StatusActive
}

type CheckInStatus string

const (
	CheckInPending    CheckInStatus = "pending"
	CheckInCheckedIn  CheckInStatus = "checked-in"
	CheckInCheckedOut CheckInStatus = "checked-out"
)

func (c CheckInStatus) IsValid() bool {
	switch c {
	case CheckInPending, CheckInCheckedIn, CheckInCheckedOut:
		return true
	}
	return false
}

func (c CheckInStatus) String() string {
	return string(c)
}

func (c CheckInStatus) rank() int {
	switch c {
	case CheckInCheckedIn:
		return 1
	case CheckInCheckedOut:
		return 2
	default:
		return 0
	}
}

// Next returns the only status c may move to, or false when c is final
func (c CheckInStatus) Next() (CheckInStatus, bool) {
	switch c {
	case CheckInPending:
		return CheckInCheckedIn, true
	case CheckInCheckedIn:
		return CheckInCheckedOut, true
	}
	return c, false
}

// Precedes reports whether moving from c to next goes forward
func (c CheckInStatus) Precedes(next CheckInStatus) bool {
	return next.rank() > c.rank()
}

// CanTransition checks a check-in status move for a reservation in the given status.
// Only active reservations move, and only one step forward.
func CanTransition(status Status, from, to CheckInStatus) bool {
	if status != StatusActive {
		return false
	}
	next, ok := from.Next()
	return ok && next == to
}
