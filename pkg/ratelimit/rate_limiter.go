package ratelimit

import (
	"context"
	"fmt"
	"time"

	"seatreserve/pkg/cache"

	"github.com/redis/go-redis/v9"
)

type Category string

const (
	CategoryDefault     Category = "default"
	CategoryAuth        Category = "auth"
	CategoryReservation Category = "reservation"
	CategorySearch      Category = "search"
	CategoryHealth      Category = "health"
)

type Config struct {
	Enabled             bool
	WindowDuration      time.Duration
	DefaultRequests     int
	AuthRequests        int
	ReservationRequests int
	SearchRequests      int
	WhitelistedIPs      []string
}

// Result represents a rate limit decision
type Result struct {
	Allowed   bool  `json:"allowed"`
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"reset_time"`
}

// RateLimiter counts requests per client and category in fixed Redis windows
type RateLimiter struct {
	client *redis.Client
	config *Config
	now    func() time.Time
}

func NewRateLimiter(client *redis.Client, config *Config) *RateLimiter {
	return &RateLimiter{
		client: client,
		config: config,
		now:    time.Now,
	}
}

func (r *RateLimiter) IsAllowed(ctx context.Context, clientIP string, category Category) (*Result, error) {
	limit := r.limitFor(category)
	now := r.now()
	windowStart := now.Truncate(r.config.WindowDuration)
	reset := windowStart.Add(r.config.WindowDuration).Unix()

	// Health checks are never limited
	if !r.config.Enabled || category == CategoryHealth || r.isWhitelisted(clientIP) {
		return &Result{Allowed: true, Limit: limit, Remaining: limit, ResetTime: reset}, nil
	}

	key := fmt.Sprintf("%s:%d", cache.RateLimitKey(clientIP, string(category)), windowStart.Unix())

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, r.config.WindowDuration)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("rate limit counter failed: %w", err)
	}

	count := int(incr.Val())
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetTime: reset,
	}, nil
}

func (r *RateLimiter) limitFor(category Category) int {
	switch category {
	case CategoryAuth:
		return r.config.AuthRequests
	case CategoryReservation:
		return r.config.ReservationRequests
	case CategorySearch:
		return r.config.SearchRequests
	default:
		return r.config.DefaultRequests
	}
}

func (r *RateLimiter) isWhitelisted(ip string) bool {
	for _, allowed := range r.config.WhitelistedIPs {
		if ip == allowed {
			return true
		}
	}
	return false
}
