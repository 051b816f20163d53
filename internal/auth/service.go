package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"seatreserve/internal/shared/apperrors"
	"seatreserve/internal/shared/config"
	"seatreserve/internal/shared/middleware"
	"seatreserve/pkg/logger"
)

// MissingCredentialsMessage is shown when either login field is blank
const MissingCredentialsMessage = "Please enter both email and password"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token revoked")
)

type Service interface {
	Login(ctx context.Context, req *LoginRequest) (*Session, error)
	Logout(ctx context.Context, tokenString string) error
	ValidateToken(tokenString string) (*JWTClaims, error)
	ValidateAccessToken(tokenString string) (*middleware.Principal, error)
}

type service struct {
	config *config.Config
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> expiry
}

func NewService(cfg *config.Config) Service {
	return &service{
		config:  cfg,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

// Login accepts any non-empty credentials and signs an access token for the demo user
func (s *service) Login(ctx context.Context, req *LoginRequest) (*Session, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		logger.GetDefault().LogAuthFailure(ctx, "missing credentials", "")
		return nil, apperrors.Validation("login", MissingCredentialsMessage)
	}

	user := DemoUser
	user.Email = email

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, apperrors.Backend("login", err)
	}

	logger.GetDefault().LogAuthSuccess(ctx, user.ID, "password")
	return &Session{Token: token, User: user}, nil
}

// Logout revokes the token until it would have expired anyway
func (s *service) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, exp := range s.revoked {
		if exp.Before(now) {
			delete(s.revoked, id)
		}
	}
	s.revoked[claims.ID] = claims.ExpiresAt.Time
	return nil
}

func (s *service) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWT.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid || claims.Type != tokenTypeAccess {
		return nil, ErrInvalidToken
	}

	s.mu.Lock()
	_, revoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

func (s *service) ValidateAccessToken(tokenString string) (*middleware.Principal, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   claims.Role,
	}, nil
}

func (s *service) generateAccessToken(user User) (string, error) {
	now := s.now()

	claims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
		Type:   tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWT.JWTExpiresIn)),
			Issuer:    s.config.JWT.Issuer,
			Subject:   user.ID,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWT.Secret))
}
