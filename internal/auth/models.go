package auth

import (
	"github.com/golang-jwt/jwt/v4"
)

// User is the signed-in employee
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is what a successful login hands the client
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

const (
	RoleEmployee = "employee"

	tokenTypeAccess = "access"
)

// DemoUser is the account every mock login resolves to
var DemoUser = User{
	ID:   "user123",
	Name: "John Doe",
	Role: RoleEmployee,
}

// JWTClaims represents JWT token claims
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}
