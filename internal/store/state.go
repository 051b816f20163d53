package store

import (
	"seatreserve/internal/auth"
	"seatreserve/internal/reservations"
	"seatreserve/internal/spaces"
)

type Domain string

const (
	DomainSpaces       Domain = "spaces"
	DomainReservations Domain = "reservations"
	DomainAuth         Domain = "auth"
)

type Phase string

const (
	PhasePending   Phase = "pending"
	PhaseFulfilled Phase = "fulfilled"
	PhaseRejected  Phase = "rejected"
)

// Change is delivered to subscribers after every state transition
type Change struct {
	Domain Domain
	Op     string
	Phase  Phase
	Err    error
}

// SpaceState is the browse and search side of the store
type SpaceState struct {
	Buildings       []spaces.Building
	Floors          []spaces.Floor
	Spaces          []spaces.Space
	AvailableSpaces []spaces.Space

	SelectedBuilding *spaces.Building
	SelectedFloor    *spaces.Floor
	SelectedSpace    *spaces.Space

	Loading bool
	Error   string
}

type ReservationState struct {
	Upcoming []reservations.Reservation
	Past     []reservations.Reservation
	Selected *reservations.Reservation

	Loading bool
	Error   string
}

type AuthState struct {
	Authenticated bool
	Token         string
	User          *auth.User

	Loading bool
	Error   string
}

func (s SpaceState) clone() SpaceState {
	out := s
	out.Buildings = cloneAll(s.Buildings, spaces.Building.Clone)
	out.Floors = cloneAll(s.Floors, spaces.Floor.Clone)
	out.Spaces = cloneAll(s.Spaces, spaces.Space.Clone)
	out.AvailableSpaces = cloneAll(s.AvailableSpaces, spaces.Space.Clone)
	out.SelectedBuilding = clonePtr(s.SelectedBuilding, spaces.Building.Clone)
	out.SelectedFloor = clonePtr(s.SelectedFloor, spaces.Floor.Clone)
	out.SelectedSpace = clonePtr(s.SelectedSpace, spaces.Space.Clone)
	return out
}

func (s ReservationState) clone() ReservationState {
	out := s
	out.Upcoming = cloneAll(s.Upcoming, cloneReservation)
	out.Past = cloneAll(s.Past, cloneReservation)
	out.Selected = clonePtr(s.Selected, cloneReservation)
	return out
}

func (s AuthState) clone() AuthState {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}

func cloneReservation(r reservations.Reservation) reservations.Reservation {
	return r.Clone()
}

func cloneAll[T any](in []T, clone func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}

func clonePtr[T any](in *T, clone func(T) T) *T {
	if in == nil {
		return nil
	}
	v := clone(*in)
	return &v
}
