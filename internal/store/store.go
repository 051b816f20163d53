// Package store is the client-side reservation and space state container. It
// caches what the backend returned, keeps the selection pointers consistent and
// reconciles user mutations into the cached collections.
package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"seatreserve/internal/session"
	"seatreserve/internal/shared/apperrors"
	"seatreserve/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// ErrStaleResponse is returned when a newer request for the same resource was
// issued while this one was in flight. Its response is discarded.
var ErrStaleResponse = errors.New("store: response superseded by a newer request")

// resource identifies a replaceable collection for request sequencing
type resource string

const (
	resourceNone               resource = ""
	resourceBuildings          resource = "buildings"
	resourceFloors             resource = "floors"
	resourceSpaces             resource = "spaces"
	resourceAvailableSpaces    resource = "availableSpaces"
	resourceSpaceDetails       resource = "spaceDetails"
	resourceReservations       resource = "reservations"
	resourceReservationDetails resource = "reservationDetails"
)

// Store holds the space, reservation and auth state for one signed-in client
type Store struct {
	backend  Backend
	sessions session.Storage
	log      *logger.Logger
	now      func() time.Time
	validate *validator.Validate

	mu           sync.Mutex
	spaces       SpaceState
	reservations ReservationState
	auth         AuthState

	inflight  map[Domain]int
	seq       map[resource]uint64
	cancelled map[string]struct{}

	listeners  []listener
	listenerID int
}

type listener struct {
	id int
	fn func(Change)
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for state transitions
func WithLogger(log *logger.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// WithSessionStorage sets where the auth session is persisted. Defaults to memory.
func WithSessionStorage(storage session.Storage) Option {
	return func(s *Store) {
		s.sessions = storage
	}
}

// WithClock sets the clock used to break upcoming/past ties
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a store that talks to backend
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		sessions:  session.NewMemoryStorage(),
		log:       logger.GetDefault(),
		now:       time.Now,
		validate:  newValidator(),
		inflight:  make(map[Domain]int),
		seq:       make(map[resource]uint64),
		cancelled: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("store")
	return s
}

// Spaces returns a deep copy of the space state
func (s *Store) Spaces() SpaceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spaces.clone()
}

func (s *Store) Reservations() ReservationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reservations.clone()
}

func (s *Store) Auth() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth.clone()
}

// Subscribe registers fn for every change. Listeners run on the goroutine that
// made the change, after the store lock is released, in registration order.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listenerID++
	id := s.listenerID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, l := range s.listeners {
				if l.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// mutate applies a synchronous state change and notifies subscribers
func (s *Store) mutate(d Domain, op string, fn func()) {
	s.mu.Lock()
	fn()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, Change{Domain: d, Op: op, Phase: PhaseFulfilled})
}

func (s *Store) listenersLocked() []listener {
	return append([]listener(nil), s.listeners...)
}

func notify(listeners []listener, c Change) {
	for _, l := range listeners {
		l.fn(c)
	}
}

// setLoading is called with the lock held
func (s *Store) setLoading(d Domain) {
	loading := s.inflight[d] > 0
	switch d {
	case DomainSpaces:
		s.spaces.Loading = loading
	case DomainReservations:
		s.reservations.Loading = loading
	case DomainAuth:
		s.auth.Loading = loading
	}
}

// setError is called with the lock held
func (s *Store) setError(d Domain, msg string) {
	switch d {
	case DomainSpaces:
		s.spaces.Error = msg
	case DomainReservations:
		s.reservations.Error = msg
	case DomainAuth:
		s.auth.Error = msg
	}
}

// begin moves an operation to pending and returns its sequence token
func (s *Store) begin(ctx context.Context, d Domain, op string, res resource) uint64 {
	s.mu.Lock()
	s.inflight[d]++
	s.setLoading(d)
	s.setError(d, "")
	var token uint64
	if res != resourceNone {
		s.seq[res]++
		token = s.seq[res]
	}
	listeners := s.listenersLocked()
	s.mu.Unlock()

	s.log.LogStoreTransition(ctx, string(d), op, string(PhasePending), nil)
	notify(listeners, Change{Domain: d, Op: op, Phase: PhasePending})
	return token
}

// settle finishes an operation. A stale response is discarded without recording
// an error; a failure records its message and leaves collections untouched;
// otherwise apply runs under the lock.
func (s *Store) settle(ctx context.Context, d Domain, op string, res resource, token uint64, err error, apply func()) error {
	s.mu.Lock()
	s.inflight[d]--
	s.setLoading(d)

	phase := PhaseFulfilled
	switch {
	case res != resourceNone && s.seq[res] != token:
		s.log.LogStaleResponse(ctx, string(res), token, s.seq[res])
		err = ErrStaleResponse
		phase = PhaseRejected
	case err != nil:
		s.setError(d, apperrors.Message(err))
		phase = PhaseRejected
	default:
		if apply != nil {
			apply()
		}
	}
	listeners := s.listenersLocked()
	s.mu.Unlock()

	s.log.LogStoreTransition(ctx, string(d), op, string(phase), err)
	notify(listeners, Change{Domain: d, Op: op, Phase: phase, Err: err})
	return err
}

// supersede invalidates in-flight requests for res, called with the lock held
func (s *Store) supersede(res resource) {
	s.seq[res]++
}

// run drives one backend call through pending and fulfilled or rejected.
func run[T any](ctx context.Context, s *Store, d Domain, op string, res resource, call func(context.Context) (T, error), apply func(T)) (T, error) {
	token := s.begin(ctx, d, op, res)

	v, err := call(ctx)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		err = tag(op, err)
	}

	err = s.settle(ctx, d, op, res, token, err, func() {
		if apply != nil {
			apply(v)
		}
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// tag makes sure every failure carries a kind
func tag(op string, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Backend(op, err)
}

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError turns validator output into a single readable Validation error
func validationError(op string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Validation(op, "%s", err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if field != "" {
			field = strings.ToLower(field[:1]) + field[1:]
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return apperrors.Validation(op, "%s", strings.Join(msgs, ", "))
}
