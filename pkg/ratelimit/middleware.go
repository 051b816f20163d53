package ratelimit

import (
	"fmt"
	"net/http"
	"strings"

	"seatreserve/internal/shared/utils/response"
	"seatreserve/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Middleware applies the limiter to every request, categorised by route
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		category := CategoryFor(c.Request.Method, c.FullPath())

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, category)
		if err != nil {
			// Fail open: a Redis outage must not take the API down
			logger.GetDefault().Warn("rate limit check failed", "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime))

		if !result.Allowed {
			logger.GetDefault().LogRateLimitExceeded(c.Request.Context(), clientIP, c.FullPath())
			response.RespondJSON(c, "error", http.StatusTooManyRequests,
				"Rate limit exceeded", nil, map[string]interface{}{
					"limit":      result.Limit,
					"reset_time": result.ResetTime,
				})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CategoryFor maps a route template to its limit category
func CategoryFor(method, path string) Category {
	switch {
	case path == "/health" || path == "/ping":
		return CategoryHealth
	case strings.Contains(path, "/auth/"):
		return CategoryAuth
	case strings.HasSuffix(path, "/reservations/available"):
		return CategorySearch
	case strings.Contains(path, "/reservations") && method != http.MethodGet:
		return CategoryReservation
	default:
		return CategoryDefault
	}
}
