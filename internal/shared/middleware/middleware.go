package middleware

import (
	"net/http"
	"strings"
	"time"

	"seatreserve/internal/shared/utils/response"
	"seatreserve/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserName  = "user_name"
	ContextUserRole  = "user_role"
	ContextToken     = "token"
)

// Principal is the authenticated caller extracted from an access token
type Principal struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

// TokenValidator checks an access token and returns its principal
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*Principal, error)
}

// JWTAuth creates a JWT authentication middleware
func JWTAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Authorization header is required", nil, nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil, nil)
			c.Abort()
			return
		}

		principal, err := validator.ValidateAccessToken(parts[1])
		if err != nil {
			logger.GetDefault().LogAuthFailure(c.Request.Context(), err.Error(), c.ClientIP())
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid or expired token", nil, nil)
			c.Abort()
			return
		}

		c.Set(ContextUserID, principal.UserID)
		c.Set(ContextUserEmail, principal.Email)
		c.Set(ContextUserName, principal.Name)
		c.Set(ContextUserRole, principal.Role)
		c.Set(ContextToken, parts[1])

		c.Next()
	}
}

// UserID returns the authenticated user's id, if JWTAuth ran
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextUserID)
	return id, id != ""
}

// CurrentPrincipal rebuilds the principal JWTAuth stored on the context
func CurrentPrincipal(c *gin.Context) (*Principal, bool) {
	id, ok := UserID(c)
	if !ok {
		return nil, false
	}
	return &Principal{
		UserID: id,
		Email:  c.GetString(ContextUserEmail),
		Name:   c.GetString(ContextUserName),
		Role:   c.GetString(ContextUserRole),
	}, true
}

// RequestLogger logs every served request, and failures at error level
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.LogHTTPRequest(c, time.Since(start))
		if len(c.Errors) > 0 {
			log.LogHTTPError(c, c.Errors.Last(), c.Writer.Status())
		}
	}
}
