package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"seatreserve/api/routes"
	"seatreserve/internal/apiclient"
	"seatreserve/internal/reservations"
	"seatreserve/internal/session"
	"seatreserve/internal/shared/config"
	"seatreserve/internal/store"
	"seatreserve/pkg/cache"
	"seatreserve/pkg/logger"

	"github.com/joho/godotenv"
)

type options struct {
	Local    bool
	Profile  string
	Building string
	Floor    string
	Space    string
	Book     bool
	CheckIn  bool
	Logout   bool
}

func main() {
	var opts options
	flag.BoolVar(&opts.Local, "local", false, "Serve the store from in-process mock services instead of the HTTP API")
	flag.StringVar(&opts.Profile, "profile", "default", "Session profile name used for the Redis session key")
	flag.StringVar(&opts.Building, "building", "building123", "Building to browse")
	flag.StringVar(&opts.Floor, "floor", "floor124", "Floor to browse")
	flag.StringVar(&opts.Space, "space", "space456", "Space to show details for")
	flag.BoolVar(&opts.Book, "book", false, "Book the first free space on the floor tomorrow 10:00-11:00 UTC")
	flag.BoolVar(&opts.CheckIn, "checkin", false, "Check in to the next upcoming reservation")
	flag.BoolVar(&opts.Logout, "logout", false, "Sign out and forget the stored session when done")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logger.GetDefault().Debug("No .env file found, using system environment variables")
	}
	cfg := config.Load()
	appLogger := logger.NewWithWriter(os.Stderr, cfg.LogLevel).WithComponent("client")
	logger.SetDefault(appLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	backend, err := newBackend(cfg, opts, appLogger)
	if err != nil {
		appLogger.Error("Failed to create API client", slog.Any("error", err))
		os.Exit(1)
	}

	st := store.New(backend,
		store.WithLogger(appLogger),
		store.WithSessionStorage(newSessionStorage(ctx, cfg, opts.Profile, appLogger)),
	)
	unsubscribe := st.Subscribe(func(c store.Change) {
		attrs := []any{
			slog.String("domain", string(c.Domain)),
			slog.String("op", c.Op),
			slog.String("phase", string(c.Phase)),
		}
		if c.Err != nil {
			attrs = append(attrs, slog.String("error", c.Err.Error()))
		}
		appLogger.Debug("state changed", attrs...)
	})
	defer unsubscribe()

	if err := run(ctx, st, cfg, opts, appLogger); err != nil {
		appLogger.Error("Client run failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func newBackend(cfg *config.Config, opts options, appLogger *logger.Logger) (store.Backend, error) {
	if opts.Local {
		services := routes.NewServices(cfg, routes.Deps{
			Cache:  cache.NewMemoryService(cfg.Redis.ListingCacheTTL),
			Logger: appLogger,
		})
		return apiclient.NewLocal(services.Spaces, services.Reservations, services.Auth), nil
	}
	return apiclient.NewHTTPClient(cfg.Client.BaseURL, cfg.Client.RequestTimeout)
}

// newSessionStorage keeps the session in Redis when configured so later runs stay signed in
func newSessionStorage(ctx context.Context, cfg *config.Config, profile string, appLogger *logger.Logger) session.Storage {
	if !cfg.RedisEnabled() {
		return session.NewMemoryStorage()
	}
	client, err := cache.NewClient(ctx, cache.Config{
		Address:  cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Redis unavailable, session will not persist", slog.Any("error", err))
		return session.NewMemoryStorage()
	}
	return session.NewRedisStorage(cache.NewService(client), profile, cfg.Redis.SessionTTL)
}

func run(ctx context.Context, st *store.Store, cfg *config.Config, opts options, appLogger *logger.Logger) error {
	restored, err := st.CheckAuth(ctx)
	if err != nil {
		appLogger.Warn("Could not restore session", slog.Any("error", err))
	}
	if !restored {
		if _, err := st.Login(ctx, cfg.Client.Email, cfg.Client.Password); err != nil {
			return err
		}
	}
	user := st.Auth().User
	appLogger.Info("Signed in", slog.String("user", user.Name), slog.Bool("restored", restored))

	buildings, err := st.LoadBuildings(ctx)
	if err != nil {
		return err
	}
	appLogger.Info("Buildings", slog.Int("count", len(buildings)))

	st.SelectBuilding(opts.Building)
	floors, err := st.LoadFloors(ctx, opts.Building)
	if err != nil {
		return err
	}
	appLogger.Info("Floors", slog.String("building", opts.Building), slog.Int("count", len(floors)))

	st.SelectFloor(opts.Floor)
	floorSpaces, err := st.LoadSpaces(ctx, opts.Floor)
	if err != nil {
		return err
	}
	for _, s := range floorSpaces {
		appLogger.Info("Space", slog.String("id", s.ID), slog.String("name", s.Name), slog.String("status", string(s.Status)))
	}

	if details, err := st.LoadSpaceDetails(ctx, opts.Space); err != nil {
		appLogger.Warn("Space details unavailable", slog.String("space", opts.Space), slog.Any("error", err))
	} else if details.Availability != nil && details.Availability.NextSevenDays != nil {
		appLogger.Info("Space availability",
			slog.String("space", details.Name),
			slog.Int("slots_today", len(details.Availability.Today)),
			slog.Int("available_pct_week", details.Availability.NextSevenDays.AvailablePercentage),
		)
	}

	if opts.Book {
		if err := bookTomorrow(ctx, st, opts.Floor, appLogger); err != nil {
			return err
		}
	}

	if _, err := st.LoadReservations(ctx); err != nil {
		return err
	}
	state := st.Reservations()
	for _, r := range state.Upcoming {
		appLogger.Info("Upcoming reservation",
			slog.String("id", r.ID),
			slog.String("space", r.SpaceID),
			slog.Time("start", r.StartTime),
			slog.String("check_in", string(r.CheckInStatus)),
		)
	}
	appLogger.Info("Past reservations", slog.Int("count", len(state.Past)))

	if opts.CheckIn && len(state.Upcoming) > 0 {
		next := state.Upcoming[0]
		update, err := st.CheckIn(ctx, next.ID)
		if err != nil {
			return err
		}
		appLogger.Info("Checked in", slog.String("id", update.ID), slog.String("status", string(update.CheckInStatus)))
	}

	if opts.Logout {
		return st.Logout(ctx)
	}
	return nil
}

func bookTomorrow(ctx context.Context, st *store.Store, floorID string, appLogger *logger.Logger) error {
	day := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, 1)
	start, end := day.Add(10*time.Hour), day.Add(11*time.Hour)

	free, err := st.LoadAvailableSpaces(ctx, store.SpaceSearch{StartTime: start, EndTime: end, FloorID: floorID})
	if err != nil {
		return err
	}
	if len(free) == 0 {
		appLogger.Info("Nothing free to book", slog.String("floor", floorID))
		return nil
	}

	created, err := st.CreateReservation(ctx, reservations.NewReservation{
		SpaceID:   free[0].ID,
		StartTime: start,
		EndTime:   end,
		Notes:     "Booked from the command line",
	})
	if err != nil {
		return err
	}
	appLogger.Info("Reservation created", slog.String("id", created.ID), slog.String("space", created.SpaceID))
	return nil
}
