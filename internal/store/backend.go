package store

import (
	"context"

	"seatreserve/internal/auth"
	"seatreserve/internal/reservations"
	"seatreserve/internal/spaces"
)

// Backend is the reservation API as seen by the store. Implementations live in
// internal/apiclient.
type Backend interface {
	ListBuildings(ctx context.Context) ([]spaces.Building, error)
	ListFloors(ctx context.Context, buildingID string) ([]spaces.Floor, error)
	ListSpaces(ctx context.Context, floorID string) ([]spaces.Space, error)
	SearchAvailableSpaces(ctx context.Context, q spaces.SearchQuery) ([]spaces.Space, error)
	GetSpace(ctx context.Context, id string) (*spaces.Space, error)

	ListReservations(ctx context.Context) (*reservations.Partitions, error)
	GetReservation(ctx context.Context, id string) (*reservations.Reservation, error)
	CreateReservation(ctx context.Context, in reservations.NewReservation) (*reservations.Reservation, error)
	CancelReservation(ctx context.Context, id string) error
	CheckIn(ctx context.Context, id string) (*reservations.CheckInUpdate, error)
	CheckOut(ctx context.Context, id string) (*reservations.CheckInUpdate, error)

	Login(ctx context.Context, email, password string) (*auth.Session, error)
	Logout(ctx context.Context) error
	// UseToken sets the bearer token sent with later calls; empty clears it.
	UseToken(token string)
}
