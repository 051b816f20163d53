package ratelimit

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCategoryFor(t *testing.T) {
	cases := []struct {
		method, path string
		want         Category
	}{
		{http.MethodGet, "/health", CategoryHealth},
		{http.MethodPost, "/api/v1/auth/login", CategoryAuth},
		{http.MethodGet, "/api/v1/reservations/available", CategorySearch},
		{http.MethodPost, "/api/v1/reservations", CategoryReservation},
		{http.MethodPost, "/api/v1/reservations/:id/checkin", CategoryReservation},
		{http.MethodGet, "/api/v1/reservations", CategoryDefault},
		{http.MethodGet, "/api/v1/buildings", CategoryDefault},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CategoryFor(tc.method, tc.path), "%s %s", tc.method, tc.path)
	}
}

func TestLimiterDisabledAllowsWithoutRedis(t *testing.T) {
	limiter := NewRateLimiter(nil, &Config{Enabled: false, WindowDuration: time.Minute, DefaultRequests: 5})

	result, err := limiter.IsAllowed(t.Context(), "10.0.0.1", CategoryDefault)

	assert.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 5, result.Remaining)
}

func TestLimiterWhitelistSkipsRedis(t *testing.T) {
	limiter := NewRateLimiter(nil, &Config{
		Enabled:        true,
		WindowDuration: time.Minute,
		AuthRequests:   1,
		WhitelistedIPs: []string{"127.0.0.1"},
	})

	result, err := limiter.IsAllowed(t.Context(), "127.0.0.1", CategoryAuth)

	assert.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 1, result.Limit)
}
