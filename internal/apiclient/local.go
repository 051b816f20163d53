package apiclient

import (
	"context"
	"errors"
	"sync"

	"seatreserve/internal/auth"
	"seatreserve/internal/reservations"
	"seatreserve/internal/shared/apperrors"
	"seatreserve/internal/spaces"
)

var errNotSignedIn = errors.New("not signed in")

// Local serves the store straight from the mock services, skipping HTTP. The
// bearer token is validated the same way the JWT middleware does it.
type Local struct {
	spaces       spaces.Service
	reservations reservations.Service
	auth         auth.Service

	mu    sync.RWMutex
	token string
}

func NewLocal(spaceService spaces.Service, reservationService reservations.Service, authService auth.Service) *Local {
	return &Local{
		spaces:       spaceService,
		reservations: reservationService,
		auth:         authService,
	}
}

func (l *Local) UseToken(token string) {
	l.mu.Lock()
	l.token = token
	l.mu.Unlock()
}

func (l *Local) currentToken() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.token
}

// caller resolves the signed-in user from the current token on every call
func (l *Local) caller(op string) (string, error) {
	token := l.currentToken()
	if token == "" {
		return "", apperrors.Backend(op, errNotSignedIn)
	}
	claims, err := l.auth.ValidateToken(token)
	if err != nil {
		return "", apperrors.Backend(op, err)
	}
	return claims.UserID, nil
}

func (l *Local) ListBuildings(ctx context.Context) ([]spaces.Building, error) {
	return l.spaces.ListBuildings(ctx)
}

func (l *Local) ListFloors(ctx context.Context, buildingID string) ([]spaces.Floor, error) {
	return l.spaces.ListFloors(ctx, buildingID)
}

func (l *Local) ListSpaces(ctx context.Context, floorID string) ([]spaces.Space, error) {
	return l.spaces.ListSpaces(ctx, floorID)
}

func (l *Local) SearchAvailableSpaces(ctx context.Context, q spaces.SearchQuery) ([]spaces.Space, error) {
	return l.spaces.SearchAvailable(ctx, q)
}

func (l *Local) GetSpace(ctx context.Context, id string) (*spaces.Space, error) {
	return l.spaces.GetSpaceDetails(ctx, id)
}

func (l *Local) ListReservations(ctx context.Context) (*reservations.Partitions, error) {
	userID, err := l.caller("list reservations")
	if err != nil {
		return nil, err
	}
	return l.reservations.ListMine(ctx, userID)
}

func (l *Local) GetReservation(ctx context.Context, id string) (*reservations.Reservation, error) {
	userID, err := l.caller("get reservation")
	if err != nil {
		return nil, err
	}
	return l.reservations.Get(ctx, userID, id)
}

func (l *Local) CreateReservation(ctx context.Context, in reservations.NewReservation) (*reservations.Reservation, error) {
	userID, err := l.caller("create reservation")
	if err != nil {
		return nil, err
	}
	in.UserID = userID
	return l.reservations.Create(ctx, in)
}

func (l *Local) CancelReservation(ctx context.Context, id string) error {
	userID, err := l.caller("cancel reservation")
	if err != nil {
		return err
	}
	return l.reservations.Cancel(ctx, userID, id)
}

func (l *Local) CheckIn(ctx context.Context, id string) (*reservations.CheckInUpdate, error) {
	userID, err := l.caller("check in")
	if err != nil {
		return nil, err
	}
	return l.reservations.CheckIn(ctx, userID, id)
}

func (l *Local) CheckOut(ctx context.Context, id string) (*reservations.CheckInUpdate, error) {
	userID, err := l.caller("check out")
	if err != nil {
		return nil, err
	}
	return l.reservations.CheckOut(ctx, userID, id)
}

func (l *Local) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	return l.auth.Login(ctx, &auth.LoginRequest{Email: email, Password: password})
}

func (l *Local) Logout(ctx context.Context) error {
	return l.auth.Logout(ctx, l.currentToken())
}
