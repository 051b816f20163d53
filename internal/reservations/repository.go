package reservations

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"seatreserve/internal/spaces"
)

var errReservationMissing = errors.New("reservation not found")

type Repository interface {
	// CreateIfFree stores r unless another reservation holds its space for an
	// overlapping window, in which case that reservation is returned and nothing
	// is stored. The check and the insert happen under one lock.
	CreateIfFree(ctx context.Context, r *Reservation) (*Reservation, error)
	GetByID(ctx context.Context, id string) (*Reservation, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Reservation, error)
	ListActiveBySpace(ctx context.Context, spaceID string) ([]Reservation, error)
	// Update applies mutate to the stored reservation under the repository lock.
	// mutate returning an error leaves the reservation untouched.
	Update(ctx context.Context, id string, mutate func(r *Reservation) error) (*Reservation, error)
}

type memoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]*Reservation
	order []string
}

func NewMemoryRepository(seed []Reservation) *memoryRepository {
	repo := &memoryRepository{byID: make(map[string]*Reservation, len(seed))}
	for i := range seed {
		r := seed[i].Clone()
		repo.byID[r.ID] = &r
		repo.order = append(repo.order, r.ID)
	}
	return repo
}

func (r *memoryRepository) CreateIfFree(ctx context.Context, res *Reservation) (*Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		existing := r.byID[id]
		if existing.SpaceID == res.SpaceID && existing.HoldsSpace() && existing.Overlaps(res.StartTime, res.EndTime) {
			c := existing.Clone()
			return &c, nil
		}
	}

	stored := res.Clone()
	r.byID[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	return nil, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Reservation, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.byID[id]
	if !ok {
		return nil, false, nil
	}
	c := res.Clone()
	return &c, true, nil
}

func (r *memoryRepository) ListByUser(ctx context.Context, userID string) ([]Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Reservation
	for _, id := range r.order {
		if res := r.byID[id]; res.UserID == userID {
			out = append(out, res.Clone())
		}
	}
	return out, nil
}

func (r *memoryRepository) ListActiveBySpace(ctx context.Context, spaceID string) ([]Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Reservation
	for _, id := range r.order {
		if res := r.byID[id]; res.SpaceID == spaceID && res.Status == StatusActive {
			out = append(out, res.Clone())
		}
	}
	return out, nil
}

func (r *memoryRepository) Update(ctx context.Context, id string, mutate func(res *Reservation) error) (*Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.byID[id]
	if !ok {
		return nil, errReservationMissing
	}

	working := res.Clone()
	if err := mutate(&working); err != nil {
		return nil, err
	}
	*res = working

	c := res.Clone()
	return &c, nil
}

// BookedIntervals implements spaces.BookingLookup over reservations that hold their space
func (r *memoryRepository) BookedIntervals(ctx context.Context, spaceID string, from, to time.Time) ([]spaces.Interval, error) {
	active, err := r.ListActiveBySpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	var out []spaces.Interval
	for _, res := range active {
		if res.HoldsSpace() && res.Overlaps(from, to) {
			out = append(out, spaces.Interval{Start: res.StartTime, End: res.EndTime})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}
