package spaces

import (
	"context"
	"math"
	"sort"
	"time"

	"seatreserve/internal/shared/apperrors"
	"seatreserve/pkg/cache"
	"seatreserve/pkg/logger"
)

const (
	businessDayStart = 9 * time.Hour
	businessDayEnd   = 17 * time.Hour
	slotLayout       = "15:04"
)

// BookingLookup reports the active booked intervals of a space. The reservations
// domain implements it.
type BookingLookup interface {
	BookedIntervals(ctx context.Context, spaceID string, from, to time.Time) ([]Interval, error)
}

// SearchQuery filters the available-spaces search
type SearchQuery struct {
	StartTime  time.Time
	EndTime    time.Time
	BuildingID string
	FloorID    string
	SpaceType  SpaceType
	Amenities  []string
}

type Service interface {
	ListBuildings(ctx context.Context) ([]Building, error)
	GetBuilding(ctx context.Context, id string) (*Building, error)
	ListFloors(ctx context.Context, buildingID string) ([]Floor, error)
	ListSpaces(ctx context.Context, floorID string) ([]Space, error)
	GetSpace(ctx context.Context, id string) (*Space, error)
	GetSpaceDetails(ctx context.Context, id string) (*Space, error)
	SearchAvailable(ctx context.Context, q SearchQuery) ([]Space, error)
	SpaceTypes() []SpaceType
}

type service struct {
	repo         Repository
	bookings     BookingLookup
	cacheService cache.Service
	cacheTTL     time.Duration
	now          func() time.Time
}

type Option func(*service)

// WithCache enables cache-aside for the inventory listings
func WithCache(cacheService cache.Service, ttl time.Duration) Option {
	return func(s *service) {
		s.cacheService = cacheService
		s.cacheTTL = ttl
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// NewService builds the inventory service. bookings may be nil, in which case every
// space is reported free.
func NewService(repo Repository, bookings BookingLookup, opts ...Option) Service {
	s := &service{
		repo:     repo,
		bookings: bookings,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) ListBuildings(ctx context.Context) ([]Building, error) {
	if s.cacheService == nil {
		return s.listBuildings(ctx)
	}

	var buildings []Building
	err := s.cacheService.GetOrSet(ctx, cache.BuildingsKey(), s.cacheTTL, &buildings, func() (interface{}, error) {
		return s.listBuildings(ctx)
	})
	if err != nil {
		return nil, err
	}
	return buildings, nil
}

func (s *service) listBuildings(ctx context.Context) ([]Building, error) {
	buildings, err := s.repo.ListBuildings(ctx)
	if err != nil {
		return nil, apperrors.Backend("list buildings", err)
	}
	return buildings, nil
}

func (s *service) GetBuilding(ctx context.Context, id string) (*Building, error) {
	building, ok, err := s.repo.GetBuilding(ctx, id)
	if err != nil {
		return nil, apperrors.Backend("get building", err)
	}
	if !ok {
		return nil, apperrors.NotFound("get building", "building %s not found", id)
	}
	return building, nil
}

func (s *service) ListFloors(ctx context.Context, buildingID string) ([]Floor, error) {
	if _, err := s.GetBuilding(ctx, buildingID); err != nil {
		return nil, err
	}

	if s.cacheService == nil {
		return s.listFloors(ctx, buildingID)
	}

	var floors []Floor
	err := s.cacheService.GetOrSet(ctx, cache.FloorsKey(buildingID), s.cacheTTL, &floors, func() (interface{}, error) {
		return s.listFloors(ctx, buildingID)
	})
	if err != nil {
		return nil, err
	}
	return floors, nil
}

func (s *service) listFloors(ctx context.Context, buildingID string) ([]Floor, error) {
	floors, err := s.repo.ListFloors(ctx, buildingID)
	if err != nil {
		return nil, apperrors.Backend("list floors", err)
	}
	return floors, nil
}

func (s *service) ListSpaces(ctx context.Context, floorID string) ([]Space, error) {
	_, ok, err := s.repo.GetFloor(ctx, floorID)
	if err != nil {
		return nil, apperrors.Backend("list spaces", err)
	}
	if !ok {
		return nil, apperrors.NotFound("list spaces", "floor %s not found", floorID)
	}

	if s.cacheService == nil {
		return s.listSpaces(ctx, floorID)
	}

	var spaces []Space
	err = s.cacheService.GetOrSet(ctx, cache.SpacesKey(floorID), s.cacheTTL, &spaces, func() (interface{}, error) {
		return s.listSpaces(ctx, floorID)
	})
	if err != nil {
		return nil, err
	}
	return spaces, nil
}

func (s *service) listSpaces(ctx context.Context, floorID string) ([]Space, error) {
	spaces, err := s.repo.ListSpaces(ctx, floorID)
	if err != nil {
		return nil, apperrors.Backend("list spaces", err)
	}
	return spaces, nil
}

func (s *service) GetSpace(ctx context.Context, id string) (*Space, error) {
	space, ok, err := s.repo.GetSpace(ctx, id)
	if err != nil {
		return nil, apperrors.Backend("get space", err)
	}
	if !ok {
		return nil, apperrors.NotFound("get space", "space %s not found", id)
	}
	return space, nil
}

// GetSpaceDetails returns the space with today's slots and a seven-day summary
func (s *service) GetSpaceDetails(ctx context.Context, id string) (*Space, error) {
	space, err := s.GetSpace(ctx, id)
	if err != nil {
		return nil, err
	}

	loc := s.locationOf(ctx, space.BuildingID)
	today := startOfDay(s.now().In(loc))

	var booked []Interval
	if s.bookings != nil {
		booked, err = s.bookings.BookedIntervals(ctx, id, today, today.AddDate(0, 0, 7))
		if err != nil {
			return nil, apperrors.Backend("get space details", err)
		}
	}

	availableDays := 0
	for d := 0; d < 7; d++ {
		if len(daySlots(today.AddDate(0, 0, d), booked, SpaceStatusAvailable)) > 0 {
			availableDays++
		}
	}

	space.Availability = &Availability{
		Today: daySlots(today, booked, ""),
		NextSevenDays: &WeekAvailability{
			AvailableDays:       availableDays,
			AvailablePercentage: int(math.Round(float64(availableDays) * 100 / 7)),
		},
	}
	return space, nil
}

func (s *service) SearchAvailable(ctx context.Context, q SearchQuery) ([]Space, error) {
	if q.StartTime.IsZero() || q.EndTime.IsZero() {
		return nil, apperrors.Validation("search available spaces", "startTime and endTime are required")
	}
	if !q.StartTime.Before(q.EndTime) {
		return nil, apperrors.Validation("search available spaces", "startTime must be before endTime")
	}
	if q.SpaceType != "" && !q.SpaceType.IsValid() {
		return nil, apperrors.Validation("search available spaces", "unknown space type %q", q.SpaceType)
	}

	all, err := s.repo.ListAllSpaces(ctx)
	if err != nil {
		return nil, apperrors.Backend("search available spaces", err)
	}

	start, end := q.StartTime.UTC(), q.EndTime.UTC()
	result := []Space{}
	for _, space := range all {
		if q.BuildingID != "" && space.BuildingID != q.BuildingID {
			continue
		}
		if q.FloorID != "" && space.FloorID != q.FloorID {
			continue
		}
		if q.SpaceType != "" && space.Type != q.SpaceType {
			continue
		}
		if space.Status == SpaceStatusOccupied || !space.HasAmenities(q.Amenities) {
			continue
		}

		if s.bookings != nil {
			booked, err := s.bookings.BookedIntervals(ctx, space.ID, start, end)
			if err != nil {
				return nil, apperrors.Backend("search available spaces", err)
			}
			if len(booked) > 0 {
				continue
			}
		}

		space.Status = SpaceStatusAvailable
		space.Availability = &Availability{StartTime: &start, EndTime: &end}
		result = append(result, space)
	}

	logger.GetDefault().Debug("available space search",
		"start", start.Format(time.RFC3339),
		"end", end.Format(time.RFC3339),
		"matches", len(result),
	)
	return result, nil
}

func (s *service) SpaceTypes() []SpaceType {
	return append([]SpaceType(nil), SpaceTypes...)
}

func (s *service) locationOf(ctx context.Context, buildingID string) *time.Location {
	building, ok, err := s.repo.GetBuilding(ctx, buildingID)
	if err != nil || !ok || building.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(building.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daySlots splits the business day into alternating reserved/available slots.
// When only is set, slots of other statuses are dropped.
func daySlots(day time.Time, booked []Interval, only SpaceStatus) []TimeSlot {
	open := day.Add(businessDayStart)
	closeAt := day.Add(businessDayEnd)

	var clipped []Interval
	for _, b := range booked {
		if !b.Overlaps(open, closeAt) {
			continue
		}
		start, end := b.Start.In(day.Location()), b.End.In(day.Location())
		if start.Before(open) {
			start = open
		}
		if end.After(closeAt) {
			end = closeAt
		}
		clipped = append(clipped, Interval{Start: start, End: end})
	}
	sort.Slice(clipped, func(i, j int) bool { return clipped[i].Start.Before(clipped[j].Start) })

	slots := []TimeSlot{}
	add := func(from, to time.Time, status SpaceStatus) {
		if !from.Before(to) || (only != "" && status != only) {
			return
		}
		slots = append(slots, TimeSlot{StartTime: from.Format(slotLayout), EndTime: to.Format(slotLayout), Status: status})
	}

	cursor := open
	for i := 0; i < len(clipped); {
		// merge overlapping bookings into one reserved slot
		start, end := clipped[i].Start, clipped[i].End
		j := i + 1
		for j < len(clipped) && !clipped[j].Start.After(end) {
			if clipped[j].End.After(end) {
				end = clipped[j].End
			}
			j++
		}
		if start.Before(cursor) {
			start = cursor
		}
		add(cursor, start, SpaceStatusAvailable)
		add(start, end, SpaceStatusReserved)
		cursor = end
		i = j
	}
	add(cursor, closeAt, SpaceStatusAvailable)

	return slots
}
