package store

import (
	"context"
	"errors"
	"strings"

	"seatreserve/internal/auth"
	"seatreserve/internal/session"
	"seatreserve/internal/shared/apperrors"
)

// Login signs in and persists the session. Blank credentials fail locally. The
// backend token is only armed once the login is accepted, and a login rejected
// after its session was saved leaves nothing persisted.
func (s *Store) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	const op = "login"
	saved := false
	sess, err := run(ctx, s, DomainAuth, op, resourceNone,
		func(ctx context.Context) (*auth.Session, error) {
			if strings.TrimSpace(email) == "" || password == "" {
				return nil, apperrors.Validation(op, auth.MissingCredentialsMessage)
			}
			sess, err := s.backend.Login(ctx, strings.TrimSpace(email), password)
			if err != nil {
				return nil, err
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := s.sessions.Save(ctx, *sess); err != nil {
				return nil, apperrors.Backend(op, err)
			}
			saved = true
			return sess, nil
		},
		func(sess *auth.Session) {
			s.signIn(sess)
		})
	if err != nil && saved {
		if cerr := s.sessions.Clear(context.WithoutCancel(ctx)); cerr != nil {
			s.log.WithError(cerr).WarnContext(ctx, "failed to drop session of rejected login")
		}
	}
	return sess, err
}

// Logout drops the session locally even if the backend cannot be reached or ctx
// ends mid-call. The signed-in user's reservations are cleared with it.
func (s *Store) Logout(ctx context.Context) error {
	const op = "logout"
	_, err := run(context.WithoutCancel(ctx), s, DomainAuth, op, resourceNone,
		func(local context.Context) (struct{}, error) {
			if err := s.backend.Logout(ctx); err != nil {
				s.log.WithError(err).WarnContext(ctx, "backend logout failed, clearing local session anyway")
			}
			if err := s.sessions.Clear(local); err != nil {
				return struct{}{}, apperrors.Backend(op, err)
			}
			return struct{}{}, nil
		},
		func(struct{}) {
			s.backend.UseToken("")
			s.auth.Authenticated = false
			s.auth.Token = ""
			s.auth.User = nil
			s.reservations.Upcoming = nil
			s.reservations.Past = nil
			s.reservations.Selected = nil
			s.supersede(resourceReservations)
			s.supersede(resourceReservationDetails)
		})
	return err
}

// CheckAuth restores a saved session. Finding none is not an error.
func (s *Store) CheckAuth(ctx context.Context) (bool, error) {
	const op = "checkAuth"
	sess, err := run(ctx, s, DomainAuth, op, resourceNone,
		func(ctx context.Context) (*auth.Session, error) {
			sess, err := s.sessions.Load(ctx)
			if errors.Is(err, session.ErrNoSession) {
				return nil, nil
			}
			if err != nil {
				return nil, apperrors.Backend(op, err)
			}
			return sess, nil
		},
		func(sess *auth.Session) {
			if sess == nil {
				s.auth.Authenticated = false
				s.auth.Token = ""
				s.auth.User = nil
				return
			}
			s.signIn(sess)
		})
	return sess != nil, err
}

func (s *Store) ClearAuthError() {
	s.mutate(DomainAuth, "clearError", func() {
		s.auth.Error = ""
	})
}

// signIn is called with the lock held and arms the backend with the session token
func (s *Store) signIn(sess *auth.Session) {
	s.backend.UseToken(sess.Token)
	user := sess.User
	s.auth.Authenticated = true
	s.auth.Token = sess.Token
	s.auth.User = &user
}

