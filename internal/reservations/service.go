package reservations

import (
	"context"
	"errors"
	"sort"
	"time"

	"seatreserve/internal/notifications"
	"seatreserve/internal/shared/apperrors"
	"seatreserve/internal/spaces"
	"seatreserve/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	ListMine(ctx context.Context, userID string) (*Partitions, error)
	Get(ctx context.Context, userID, id string) (*Reservation, error)
	Create(ctx context.Context, in NewReservation) (*Reservation, error)
	Cancel(ctx context.Context, userID, id string) error
	CheckIn(ctx context.Context, userID, id string) (*CheckInUpdate, error)
	CheckOut(ctx context.Context, userID, id string) (*CheckInUpdate, error)
}

type service struct {
	repo      Repository
	spaces    spaces.Service
	publisher notifications.Publisher
	log       *logger.Logger
	now       func() time.Time
}

type Option func(*service)

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(s *service) {
		s.log = log
	}
}

func NewService(repo Repository, spaceService spaces.Service, publisher notifications.Publisher, opts ...Option) Service {
	s := &service{
		repo:      repo,
		spaces:    spaceService,
		publisher: publisher,
		log:       logger.GetDefault(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListMine partitions the user's reservations against the server clock.
// Upcoming is ordered by start time, past most recent first.
func (s *service) ListMine(ctx context.Context, userID string) (*Partitions, error) {
	all, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Backend("list reservations", err)
	}

	now := s.now()
	out := &Partitions{Upcoming: []Reservation{}, Past: []Reservation{}}
	for _, r := range all {
		r.Status = r.EffectiveStatus(now)
		if r.IsPast(now) {
			out.Past = append(out.Past, r)
		} else {
			out.Upcoming = append(out.Upcoming, r)
		}
	}

	sort.SliceStable(out.Upcoming, func(i, j int) bool {
		return out.Upcoming[i].StartTime.Before(out.Upcoming[j].StartTime)
	})
	sort.SliceStable(out.Past, func(i, j int) bool {
		return out.Past[i].StartTime.After(out.Past[j].StartTime)
	})
	return out, nil
}

func (s *service) Get(ctx context.Context, userID, id string) (*Reservation, error) {
	r, err := s.owned(ctx, "get reservation", userID, id)
	if err != nil {
		return nil, err
	}
	r.Status = r.EffectiveStatus(s.now())
	return r, nil
}

func (s *service) Create(ctx context.Context, in NewReservation) (*Reservation, error) {
	const op = "create reservation"

	if in.SpaceID == "" {
		return nil, apperrors.Validation(op, "spaceId is required")
	}
	if in.UserID == "" {
		return nil, apperrors.Validation(op, "userId is required")
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return nil, apperrors.Validation(op, "startTime and endTime are required")
	}
	if !in.StartTime.Before(in.EndTime) {
		return nil, apperrors.Validation(op, "startTime must be before endTime")
	}

	space, err := s.spaces.GetSpace(ctx, in.SpaceID)
	if err != nil {
		return nil, err
	}

	r := &Reservation{
		ID:            uuid.NewString(),
		SpaceID:       in.SpaceID,
		UserID:        in.UserID,
		StartTime:     in.StartTime.UTC(),
		EndTime:       in.EndTime.UTC(),
		Status:        StatusActive,
		CheckInStatus: CheckInPending,
		Notes:         in.Notes,
		CreatedAt:     s.now().UTC(),
		Space:         SnapshotOf(*space),
	}
	existing, err := s.repo.CreateIfFree(ctx, r)
	if err != nil {
		return nil, apperrors.Backend(op, err)
	}
	if existing != nil {
		return nil, apperrors.Conflict(op, "%s is already reserved between %s and %s",
			space.Name, existing.StartTime.Format(time.RFC3339), existing.EndTime.Format(time.RFC3339))
	}

	s.log.LogReservationCreated(ctx, r.ID, r.SpaceID, r.UserID)
	s.publish(ctx, notifications.EventReservationCreated, r)
	return r, nil
}

func (s *service) Cancel(ctx context.Context, userID, id string) error {
	const op = "cancel reservation"

	if _, err := s.owned(ctx, op, userID, id); err != nil {
		return err
	}

	r, err := s.repo.Update(ctx, id, func(r *Reservation) error {
		if !r.Status.CanBeCancelled() {
			return apperrors.NotFound(op, "reservation %s is not active", id)
		}
		r.Status = StatusCancelled
		return nil
	})
	if err != nil {
		return s.mapUpdateErr(op, id, err)
	}

	s.log.LogReservationCancelled(ctx, id, userID)
	s.publish(ctx, notifications.EventReservationCancelled, r)
	return nil
}

func (s *service) CheckIn(ctx context.Context, userID, id string) (*CheckInUpdate, error) {
	return s.advance(ctx, "check in", userID, id, CheckInCheckedIn, notifications.EventReservationCheckedIn)
}

func (s *service) CheckOut(ctx context.Context, userID, id string) (*CheckInUpdate, error) {
	return s.advance(ctx, "check out", userID, id, CheckInCheckedOut, notifications.EventReservationCheckedOut)
}

func (s *service) advance(ctx context.Context, op, userID, id string, to CheckInStatus, event notifications.EventType) (*CheckInUpdate, error) {
	if _, err := s.owned(ctx, op, userID, id); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	var from CheckInStatus
	r, err := s.repo.Update(ctx, id, func(r *Reservation) error {
		status := r.EffectiveStatus(now)
		if !CanTransition(status, r.CheckInStatus, to) {
			return apperrors.Conflict(op, "cannot move a %s reservation from %s to %s", status, r.CheckInStatus, to)
		}
		from = r.CheckInStatus
		r.CheckInStatus = to
		switch to {
		case CheckInCheckedIn:
			r.CheckInTime = &now
		case CheckInCheckedOut:
			r.CheckOutTime = &now
		}
		return nil
	})
	if err != nil {
		return nil, s.mapUpdateErr(op, id, err)
	}

	s.log.LogCheckInStatusChanged(ctx, id, from.String(), to.String())
	s.publish(ctx, event, r)

	return &CheckInUpdate{
		ID:            r.ID,
		CheckInStatus: r.CheckInStatus,
		CheckInTime:   r.CheckInTime,
		CheckOutTime:  r.CheckOutTime,
	}, nil
}

// owned loads a reservation and hides other users' reservations behind NotFound
func (s *service) owned(ctx context.Context, op, userID, id string) (*Reservation, error) {
	r, ok, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Backend(op, err)
	}
	if !ok || r.UserID != userID {
		return nil, apperrors.NotFound(op, "reservation %s not found", id)
	}
	return r, nil
}

func (s *service) mapUpdateErr(op, id string, err error) error {
	if errors.Is(err, errReservationMissing) {
		return apperrors.NotFound(op, "reservation %s not found", id)
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Backend(op, err)
}

// publish is best effort: the mutation has already been committed
func (s *service) publish(ctx context.Context, eventType notifications.EventType, r *Reservation) {
	if s.publisher == nil {
		return
	}
	event := notifications.NewReservationEvent(eventType, r.ID, r.UserID, r.SpaceID, r.StartTime, r.EndTime)
	event.CheckInStatus = r.CheckInStatus.String()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.WithError(err).WarnContext(ctx, "failed to publish reservation event",
			"event_type", string(eventType),
			"reservation_id", r.ID,
		)
	}
}
