package store

import (
	"context"

	"seatreserve/internal/reservations"
	"seatreserve/internal/shared/apperrors"
)

// LoadReservations replaces both partitions with the backend's split.
// An id reported in both partitions is placed by comparing its end time with
// the store clock, and reservations this store cancelled never return to upcoming.
func (s *Store) LoadReservations(ctx context.Context) (*reservations.Partitions, error) {
	return run(ctx, s, DomainReservations, "loadReservations", resourceReservations,
		s.backend.ListReservations,
		func(p *reservations.Partitions) {
			s.reservations.Upcoming, s.reservations.Past = s.partition(p)
		})
}

// partition is called with the lock held
func (s *Store) partition(p *reservations.Partitions) (upcoming, past []reservations.Reservation) {
	upcoming = []reservations.Reservation{}
	past = []reservations.Reservation{}
	if p == nil {
		return upcoming, past
	}

	now := s.now()
	inPast := make(map[string]bool, len(p.Past))
	for _, r := range p.Past {
		inPast[r.ID] = true
	}

	seen := make(map[string]bool, len(p.Upcoming)+len(p.Past))
	movedUp := make(map[string]bool)
	for _, r := range p.Upcoming {
		if seen[r.ID] {
			continue
		}
		if _, gone := s.cancelled[r.ID]; gone {
			continue
		}
		if inPast[r.ID] {
			if r.EndTime.Before(now) {
				continue
			}
			movedUp[r.ID] = true
		}
		seen[r.ID] = true
		upcoming = append(upcoming, r.Clone())
	}
	for _, r := range p.Past {
		if seen[r.ID] || movedUp[r.ID] {
			continue
		}
		seen[r.ID] = true
		past = append(past, r.Clone())
	}
	return upcoming, past
}

// SelectReservation selects from upcoming, then past; unknown ids clear the selection
func (s *Store) SelectReservation(id string) {
	s.mutate(DomainReservations, "selectReservation", func() {
		s.supersede(resourceReservationDetails)
		s.reservations.Selected = nil
		if i := indexOf(s.reservations.Upcoming, id); i >= 0 {
			c := s.reservations.Upcoming[i].Clone()
			s.reservations.Selected = &c
		} else if i := indexOf(s.reservations.Past, id); i >= 0 {
			c := s.reservations.Past[i].Clone()
			s.reservations.Selected = &c
		}
	})
}

func (s *Store) ClearSelectedReservation() {
	s.mutate(DomainReservations, "clearSelectedReservation", func() {
		s.supersede(resourceReservationDetails)
		s.reservations.Selected = nil
	})
}

// LoadReservationDetails fetches one reservation and selects it
func (s *Store) LoadReservationDetails(ctx context.Context, id string) (*reservations.Reservation, error) {
	return run(ctx, s, DomainReservations, "loadReservationDetails", resourceReservationDetails,
		func(ctx context.Context) (*reservations.Reservation, error) {
			return s.backend.GetReservation(ctx, id)
		},
		func(r *reservations.Reservation) {
			s.reservations.Selected = clonePtr(r, cloneReservation)
		})
}

// CreateReservation books a space and appends the confirmed reservation to upcoming.
// Overlaps are the backend's to detect. Like every mutation it supersedes reservation
// and details loads issued before it.
func (s *Store) CreateReservation(ctx context.Context, in reservations.NewReservation) (*reservations.Reservation, error) {
	const op = "createReservation"
	return run(ctx, s, DomainReservations, op, resourceNone,
		func(ctx context.Context) (*reservations.Reservation, error) {
			if err := s.validate.Struct(in); err != nil {
				return nil, validationError(op, err)
			}
			return s.backend.CreateReservation(ctx, in)
		},
		func(r *reservations.Reservation) {
			if r == nil || indexOf(s.reservations.Upcoming, r.ID) >= 0 {
				return
			}
			s.reservations.Upcoming = append(s.reservations.Upcoming, r.Clone())
			s.supersede(resourceReservations)
			s.supersede(resourceReservationDetails)
		})
}

// CancelReservation removes the reservation from upcoming and clears a matching
// selection. The backend reports unknown or already cancelled ids as NotFound.
func (s *Store) CancelReservation(ctx context.Context, id string) error {
	_, err := run(ctx, s, DomainReservations, "cancelReservation", resourceNone,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.backend.CancelReservation(ctx, id)
		},
		func(struct{}) {
			s.cancelled[id] = struct{}{}
			if i := indexOf(s.reservations.Upcoming, id); i >= 0 {
				s.reservations.Upcoming = append(s.reservations.Upcoming[:i:i], s.reservations.Upcoming[i+1:]...)
			}
			if s.reservations.Selected != nil && s.reservations.Selected.ID == id {
				s.reservations.Selected = nil
			}
			s.supersede(resourceReservations)
			s.supersede(resourceReservationDetails)
		})
	return err
}

// CheckIn moves a reservation from pending to checked-in
func (s *Store) CheckIn(ctx context.Context, id string) (*reservations.CheckInUpdate, error) {
	return s.advance(ctx, "checkIn", id, reservations.CheckInCheckedIn, s.backend.CheckIn)
}

// CheckOut moves a reservation from checked-in to checked-out
func (s *Store) CheckOut(ctx context.Context, id string) (*reservations.CheckInUpdate, error) {
	return s.advance(ctx, "checkOut", id, reservations.CheckInCheckedOut, s.backend.CheckOut)
}

type checkInCall func(ctx context.Context, id string) (*reservations.CheckInUpdate, error)

func (s *Store) advance(ctx context.Context, op, id string, to reservations.CheckInStatus, call checkInCall) (*reservations.CheckInUpdate, error) {
	return run(ctx, s, DomainReservations, op, resourceNone,
		func(ctx context.Context) (*reservations.CheckInUpdate, error) {
			if err := s.precheck(op, id, to); err != nil {
				return nil, err
			}
			return call(ctx, id)
		},
		func(u *reservations.CheckInUpdate) {
			if u == nil {
				return
			}
			if i := indexOf(s.reservations.Upcoming, id); i >= 0 {
				applyCheckIn(&s.reservations.Upcoming[i], u)
			}
			if s.reservations.Selected != nil && s.reservations.Selected.ID == id {
				applyCheckIn(s.reservations.Selected, u)
			}
			s.supersede(resourceReservations)
			s.supersede(resourceReservationDetails)
		})
}

// precheck rejects transitions the cached state already shows to be illegal
func (s *Store) precheck(op, id string, to reservations.CheckInStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := indexOf(s.reservations.Upcoming, id); i >= 0 {
		r := s.reservations.Upcoming[i]
		if !reservations.CanTransition(r.Status, r.CheckInStatus, to) {
			return apperrors.Validation(op, "reservation %s is %s and cannot move to %s", id, r.CheckInStatus, to)
		}
		return nil
	}
	if indexOf(s.reservations.Past, id) >= 0 {
		return apperrors.Validation(op, "reservation %s is in the past", id)
	}
	return nil
}

// applyCheckIn only moves forward, so a late or duplicate ack cannot regress the status
func applyCheckIn(r *reservations.Reservation, u *reservations.CheckInUpdate) {
	if !r.CheckInStatus.Precedes(u.CheckInStatus) {
		return
	}
	r.CheckInStatus = u.CheckInStatus
	if u.CheckInTime != nil {
		t := *u.CheckInTime
		r.CheckInTime = &t
	}
	if u.CheckOutTime != nil {
		t := *u.CheckOutTime
		r.CheckOutTime = &t
	}
}

func (s *Store) ClearReservationError() {
	s.mutate(DomainReservations, "clearError", func() {
		s.reservations.Error = ""
	})
}

func indexOf(in []reservations.Reservation, id string) int {
	for i := range in {
		if in[i].ID == id {
			return i
		}
	}
	return -1
}
