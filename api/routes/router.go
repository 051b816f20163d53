// api/routes/router.go
package routes

import (
	"context"
	"net/http"
	"time"

	"seatreserve/internal/auth"
	"seatreserve/internal/notifications"
	"seatreserve/internal/reservations"
	"seatreserve/internal/shared/config"
	"seatreserve/internal/spaces"
	"seatreserve/pkg/cache"
	"seatreserve/pkg/logger"

	"github.com/gin-gonic/gin"
)

// seedTimezone is the wall clock the demo bookings are laid out in
const seedTimezone = "America/Los_Angeles"

// Services is the seeded mock backend shared by the HTTP routes and in-process clients
type Services struct {
	Spaces       spaces.Service
	Reservations reservations.Service
	Auth         auth.Service
}

// Deps are the optional collaborators of the mock backend
type Deps struct {
	Cache     cache.Service           // nil disables the listing cache
	Publisher notifications.Publisher // nil means log-only
	Logger    *logger.Logger
	Now       func() time.Time
}

// NewServices builds the in-memory inventory and the demo user's reservations
func NewServices(cfg *config.Config, deps Deps) *Services {
	if deps.Logger == nil {
		deps.Logger = logger.GetDefault()
	}
	if deps.Publisher == nil {
		deps.Publisher = notifications.NewLogPublisher(deps.Logger)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	loc, err := time.LoadLocation(seedTimezone)
	if err != nil {
		deps.Logger.Warn("timezone unavailable, seeding in UTC", "timezone", seedTimezone, "error", err)
		loc = time.UTC
	}

	buildings, floors, inventory := spaces.SeedInventory()
	spaceRepo := spaces.NewMemoryRepository(buildings, floors, inventory)
	reservationRepo := reservations.NewMemoryRepository(
		reservations.SeedReservations(deps.Now(), loc, auth.DemoUser.ID, inventory),
	)

	spaceOpts := []spaces.Option{spaces.WithClock(deps.Now)}
	if deps.Cache != nil {
		spaceOpts = append(spaceOpts, spaces.WithCache(deps.Cache, cfg.Redis.ListingCacheTTL))
	}
	spaceService := spaces.NewService(spaceRepo, reservationRepo, spaceOpts...)

	reservationService := reservations.NewService(reservationRepo, spaceService, deps.Publisher,
		reservations.WithClock(deps.Now),
		reservations.WithLogger(deps.Logger),
	)

	return &Services{
		Spaces:       spaceService,
		Reservations: reservationService,
		Auth:         auth.NewService(cfg),
	}
}

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	services *Services
	cache    cache.Service
}

// NewRouter creates a new router instance. cacheService may be nil.
func NewRouter(cfg *config.Config, services *Services, cacheService cache.Service) *Router {
	return &Router{
		config:   cfg,
		services: services,
		cache:    cacheService,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupSpaceRoutes(api)
		r.setupReservationRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.healthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "seatreserve-api",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "seatreserve-api",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"cache":       r.cache != nil,
			"timestamp":   time.Now(),
		})
	})
}

// healthCheck probes the listing cache; the inventory itself lives in memory
func (r *Router) healthCheck(ctx context.Context) error {
	if r.cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.cache.Ping(ctx)
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authController := auth.NewController(r.services.Auth)
	authRouter := auth.NewRouter(authController, r.services.Auth)
	authRouter.SetupRoutes(rg)
}

func (r *Router) setupSpaceRoutes(rg *gin.RouterGroup) {
	spaceController := spaces.NewController(r.services.Spaces)
	spaces.SetupSpaceRoutes(rg, spaceController)
}

func (r *Router) setupReservationRoutes(rg *gin.RouterGroup) {
	reservationController := reservations.NewController(r.services.Reservations)
	reservations.SetupReservationRoutes(rg, reservationController, r.services.Auth)
}
