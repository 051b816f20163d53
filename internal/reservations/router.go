package reservations

import (
	"seatreserve/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupReservationRoutes registers the caller's reservation routes. The public
// availability search under /reservations/available is registered by the spaces router.
func SetupReservationRoutes(rg *gin.RouterGroup, controller *Controller, tokens middleware.TokenValidator) {
	reservations := rg.Group("/reservations")
	reservations.Use(middleware.JWTAuth(tokens))
	{
		reservations.GET("", controller.ListMine)               // GET /api/v1/reservations
		reservations.POST("", controller.Create)                // POST /api/v1/reservations
		reservations.GET("/:id", controller.Get)                // GET /api/v1/reservations/:id
		reservations.DELETE("/:id", controller.Cancel)          // DELETE /api/v1/reservations/:id
		reservations.POST("/:id/checkin", controller.CheckIn)   // POST /api/v1/reservations/:id/checkin
		reservations.POST("/:id/checkout", controller.CheckOut) // POST /api/v1/reservations/:id/checkout
	}
}
