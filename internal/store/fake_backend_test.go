package store

import (
	"context"
	"strconv"
	"sync"
	"time"

	"seatreserve/internal/auth"
	"seatreserve/internal/reservations"
	"seatreserve/internal/shared/apperrors"
	"seatreserve/internal/spaces"
)

var storeNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

// gate lets a test hold a backend call open and release it later
type gate struct {
	entered chan struct{}
	release chan struct{}
}

type fakeBackend struct {
	mu sync.Mutex

	buildings []spaces.Building
	floors    map[string][]spaces.Floor
	spaces    map[string][]spaces.Space
	available []spaces.Space

	upcoming []reservations.Reservation
	past     []reservations.Reservation

	errs  map[string]error
	gates map[string]*gate
	calls map[string]int
	token string
	seq   int
}

func newFakeBackend() *fakeBackend {
	at := func(days, hour int) time.Time {
		return storeNow.Truncate(24*time.Hour).AddDate(0, 0, days).Add(time.Duration(hour) * time.Hour)
	}
	res := func(id, spaceID string, start, end time.Time, status reservations.Status, checkIn reservations.CheckInStatus) reservations.Reservation {
		return reservations.Reservation{
			ID: id, SpaceID: spaceID, UserID: "user123",
			StartTime: start, EndTime: end,
			Status: status, CheckInStatus: checkIn,
			Space: &reservations.SpaceSnapshot{ID: spaceID, Name: "Desk A-123", Type: spaces.SpaceTypeDesk},
		}
	}

	return &fakeBackend{
		buildings: []spaces.Building{
			{ID: "building123", Name: "Headquarters", Amenities: []string{"gym"}},
			{ID: "building456", Name: "Downtown Office"},
			{ID: "building789", Name: "Tech Campus"},
		},
		floors: map[string][]spaces.Floor{
			"building123": {
				{ID: "floor123", BuildingID: "building123", Level: 3},
				{ID: "floor124", BuildingID: "building123", Level: 4},
				{ID: "floor125", BuildingID: "building123", Level: 5},
			},
			"building456": {
				{ID: "floor201", BuildingID: "building456", Level: 1},
			},
			"building789": {},
		},
		spaces: map[string][]spaces.Space{
			"floor124": {
				{ID: "space456", FloorID: "floor124", Name: "Desk A-123", Type: spaces.SpaceTypeDesk, Amenities: []string{"monitor"}},
				{ID: "space789", FloorID: "floor124", Name: "Meeting Room B-101", Type: spaces.SpaceTypeMeetingRoom},
			},
			"floor201": {
				{ID: "space201", FloorID: "floor201", Name: "Desk D-001", Type: spaces.SpaceTypeDesk},
			},
		},
		available: []spaces.Space{
			{ID: "space101", FloorID: "floor125", Name: "Phone Booth C-105", Type: spaces.SpaceTypePhoneBooth},
		},
		upcoming: []reservations.Reservation{
			res("1", "space456", at(1, 9), at(1, 17), reservations.StatusActive, reservations.CheckInPending),
			res("2", "space789", at(2, 10), at(2, 16), reservations.StatusActive, reservations.CheckInPending),
		},
		past: []reservations.Reservation{
			res("3", "space456", at(-5, 9), at(-5, 17), reservations.StatusCompleted, reservations.CheckInCheckedOut),
			res("4", "space101", at(-10, 13), at(-10, 15), reservations.StatusCompleted, reservations.CheckInCheckedOut),
		},
		errs:  make(map[string]error),
		gates: make(map[string]*gate),
		calls: make(map[string]int),
	}
}

func (f *fakeBackend) hold(key string) *gate {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := &gate{entered: make(chan struct{}, 1), release: make(chan struct{})}
	f.gates[key] = g
	return g
}

func (f *fakeBackend) failWith(key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[key] = err
}

func (f *fakeBackend) callCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

// enter records the call, blocks on a held gate and returns any injected error
func (f *fakeBackend) enter(ctx context.Context, key string) error {
	f.mu.Lock()
	f.calls[key]++
	g := f.gates[key]
	delete(f.gates, key)
	err := f.errs[key]
	f.mu.Unlock()

	if g != nil {
		g.entered <- struct{}{}
		select {
		case <-g.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (f *fakeBackend) ListBuildings(ctx context.Context) ([]spaces.Building, error) {
	if err := f.enter(ctx, "buildings"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]spaces.Building(nil), f.buildings...), nil
}

func (f *fakeBackend) ListFloors(ctx context.Context, buildingID string) ([]spaces.Floor, error) {
	if err := f.enter(ctx, "floors:"+buildingID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	floors, ok := f.floors[buildingID]
	if !ok {
		return nil, apperrors.NotFound("list floors", "building %s not found", buildingID)
	}
	return append([]spaces.Floor(nil), floors...), nil
}

func (f *fakeBackend) ListSpaces(ctx context.Context, floorID string) ([]spaces.Space, error) {
	if err := f.enter(ctx, "spaces:"+floorID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]spaces.Space(nil), f.spaces[floorID]...), nil
}

func (f *fakeBackend) SearchAvailableSpaces(ctx context.Context, q spaces.SearchQuery) ([]spaces.Space, error) {
	if err := f.enter(ctx, "available"); err != nil {
		return nil, err
	}
	if !q.StartTime.Before(q.EndTime) {
		return nil, apperrors.Validation("search available spaces", "startTime must be before endTime")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]spaces.Space(nil), f.available...), nil
}

func (f *fakeBackend) GetSpace(ctx context.Context, id string) (*spaces.Space, error) {
	if err := f.enter(ctx, "space:"+id); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, list := range f.spaces {
		for _, s := range list {
			if s.ID == id {
				s.Availability = &spaces.Availability{
					Today:         []spaces.TimeSlot{{StartTime: "09:00", EndTime: "17:00", Status: spaces.SpaceStatusAvailable}},
					NextSevenDays: &spaces.WeekAvailability{AvailableDays: 5, AvailablePercentage: 71},
				}
				return &s, nil
			}
		}
	}
	return nil, apperrors.NotFound("get space", "space %s not found", id)
}

func (f *fakeBackend) ListReservations(ctx context.Context) (*reservations.Partitions, error) {
	f.mu.Lock()
	p := &reservations.Partitions{
		Upcoming: cloneAll(f.upcoming, cloneReservation),
		Past:     cloneAll(f.past, cloneReservation),
	}
	f.mu.Unlock()

	// the snapshot is taken on entry, like a server answering before a later write
	if err := f.enter(ctx, "reservations"); err != nil {
		return nil, err
	}
	return p, nil
}

func (f *fakeBackend) GetReservation(ctx context.Context, id string) (*reservations.Reservation, error) {
	var found *reservations.Reservation
	f.mu.Lock()
	for _, list := range [][]reservations.Reservation{f.upcoming, f.past} {
		if i := indexOf(list, id); i >= 0 {
			r := list[i].Clone()
			found = &r
			break
		}
	}
	f.mu.Unlock()

	// snapshot on entry, same as ListReservations
	if err := f.enter(ctx, "reservation:"+id); err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperrors.NotFound("get reservation", "reservation %s not found", id)
	}
	return found, nil
}

func (f *fakeBackend) CreateReservation(ctx context.Context, in reservations.NewReservation) (*reservations.Reservation, error) {
	if err := f.enter(ctx, "create"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	r := reservations.Reservation{
		ID:            "new-" + strconv.Itoa(f.seq),
		SpaceID:       in.SpaceID,
		UserID:        "user123",
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		Status:        reservations.StatusActive,
		CheckInStatus: reservations.CheckInPending,
		Notes:         in.Notes,
	}
	f.upcoming = append(f.upcoming, r)
	return &r, nil
}

func (f *fakeBackend) CancelReservation(ctx context.Context, id string) error {
	if err := f.enter(ctx, "cancel:"+id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := indexOf(f.upcoming, id)
	if i < 0 || f.upcoming[i].Status != reservations.StatusActive {
		return apperrors.NotFound("cancel reservation", "reservation %s not found", id)
	}
	r := f.upcoming[i]
	r.Status = reservations.StatusCancelled
	f.upcoming = append(f.upcoming[:i:i], f.upcoming[i+1:]...)
	f.past = append(f.past, r)
	return nil
}

func (f *fakeBackend) CheckIn(ctx context.Context, id string) (*reservations.CheckInUpdate, error) {
	return f.advance(ctx, "checkin:"+id, id, reservations.CheckInCheckedIn)
}

func (f *fakeBackend) CheckOut(ctx context.Context, id string) (*reservations.CheckInUpdate, error) {
	return f.advance(ctx, "checkout:"+id, id, reservations.CheckInCheckedOut)
}

func (f *fakeBackend) advance(ctx context.Context, key, id string, to reservations.CheckInStatus) (*reservations.CheckInUpdate, error) {
	if err := f.enter(ctx, key); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := indexOf(f.upcoming, id)
	if i < 0 {
		return nil, apperrors.NotFound("check in", "reservation %s not found", id)
	}
	r := &f.upcoming[i]
	if !reservations.CanTransition(r.Status, r.CheckInStatus, to) {
		return nil, apperrors.Conflict("check in", "cannot move to %s", to)
	}
	r.CheckInStatus = to
	at := storeNow
	u := &reservations.CheckInUpdate{ID: id, CheckInStatus: to}
	if to == reservations.CheckInCheckedIn {
		u.CheckInTime = &at
	} else {
		u.CheckOutTime = &at
	}
	return u, nil
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	if err := f.enter(ctx, "login"); err != nil {
		return nil, err
	}
	return &auth.Session{
		Token: "token-" + email,
		User:  auth.User{ID: "user123", Name: "John Doe", Email: email, Role: auth.RoleEmployee},
	}, nil
}

func (f *fakeBackend) Logout(ctx context.Context) error {
	return f.enter(ctx, "logout")
}

func (f *fakeBackend) UseToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeBackend) currentToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}
