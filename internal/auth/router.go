package auth

import (
	"seatreserve/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles auth-related routes
type Router struct {
	controller *Controller
	service    Service
}

func NewRouter(controller *Controller, service Service) *Router {
	return &Router{
		controller: controller,
		service:    service,
	}
}

// SetupRoutes registers all auth routes
func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", authRouter.controller.Login)   // POST /api/v1/auth/login
		auth.POST("/logout", authRouter.controller.Logout) // POST /api/v1/auth/logout
	}

	users := rg.Group("/users")
	users.Use(middleware.JWTAuth(authRouter.service))
	{
		users.GET("/me", authRouter.controller.GetMe) // GET /api/v1/users/me
	}
}
