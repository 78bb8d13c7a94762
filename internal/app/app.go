package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/odeonlabs/theater-reservation-system/internal/domain"
	"github.com/odeonlabs/theater-reservation-system/internal/repository"
	"github.com/odeonlabs/theater-reservation-system/internal/service"
	appvalidator "github.com/odeonlabs/theater-reservation-system/internal/validator"
	"github.com/odeonlabs/theater-reservation-system/internal/vcs"
	"github.com/redis/go-redis/v9"
)

var (
	version = vcs.Version()
)

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate

	catalog   *service.Catalog
	scheduler *service.Scheduler
	ledger    *service.Ledger
	queries   *service.QueryService
}

type Config struct {
	Port int
	Env  string
	DB   DBConfig

	// Redis is optional; an empty URL disables the schedule cache.
	Redis RedisConfig

	Booking BookingConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL         string
	MaxConns    int
	MaxIdleTime time.Duration
}

type BookingConfig struct {
	MaxSeatsPerReservation int
	RequireRegisteredHall  bool
	DefaultHallCapacity    int
	DuplicatePolicy        string
	ScheduleCacheTTL       time.Duration
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", os.Getenv("THEATER_DB_DSN"), "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", os.Getenv("THEATER_REDIS_URL"), "Redis URL (empty disables the schedule cache)")
	flag.IntVar(&cfg.Redis.MaxConns, "redis-max-conns", 25, "Redis max connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.IntVar(&cfg.Booking.MaxSeatsPerReservation, "max-seats-per-reservation", 10, "Maximum seats in a single reservation")
	flag.BoolVar(&cfg.Booking.RequireRegisteredHall, "require-registered-hall", true, "Reject screenings in halls that are not registered")
	flag.IntVar(&cfg.Booking.DefaultHallCapacity, "default-hall-capacity", 100, "Capacity for halls auto-registered in free-text label mode")
	flag.StringVar(&cfg.Booking.DuplicatePolicy, "duplicate-policy", "reject", "Repeat reservation policy (reject|merge)")
	flag.DurationVar(&cfg.Booking.ScheduleCacheTTL, "schedule-cache-ttl", 30*time.Second, "Daily schedule cache TTL")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	app, err := New(cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.serve()
}

// New wires the store, the cache and the core services into a ready
// Application. Close releases the connections.
func New(cfg Config, logger *slog.Logger) (*Application, error) {
	duplicatePolicy, err := domain.ParseDuplicatePolicy(cfg.Booking.DuplicatePolicy)
	if err != nil {
		return nil, err
	}

	policy := domain.Policy{
		RequireRegisteredHall:  cfg.Booking.RequireRegisteredHall,
		DefaultHallCapacity:    cfg.Booking.DefaultHallCapacity,
		DuplicatePolicy:        duplicatePolicy,
		MaxSeatsPerReservation: cfg.Booking.MaxSeatsPerReservation,
	}

	db, err := newDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	var redisClient redis.UniversalClient
	if cfg.Redis.URL != "" {
		redisClient, err = newRedisClient(cfg)
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	movieRepo := repository.NewPostgresMovieRepository(db)
	hallRepo := repository.NewPostgresHallRepository(db)
	screeningRepo := repository.NewPostgresScreeningRepository(db)
	reservationRepo := repository.NewPostgresReservationRepository(db)
	scheduleRepo := repository.NewPostgresScheduleRepository(db)

	catalog := service.NewCatalog(movieRepo, hallRepo)
	scheduler := service.NewScheduler(screeningRepo, catalog, policy)
	ledger := service.NewLedger(reservationRepo, policy)
	queries := service.NewQueryService(scheduleRepo, ledger, redisClient, cfg.Booking.ScheduleCacheTTL, logger)

	app := &Application{
		config:    cfg,
		logger:    logger,
		db:        db,
		redis:     redisClient,
		validator: appvalidator.NewValidator(),
		catalog:   catalog,
		scheduler: scheduler,
		ledger:    ledger,
		queries:   queries,
	}

	return app, nil
}

func (app *Application) Close() {
	if app.redis != nil {
		app.redis.Close()
	}
	app.db.Close()
}

func newRedisClient(cfg Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}

	opts.MaxActiveConns = cfg.Redis.MaxConns
	opts.ConnMaxIdleTime = cfg.Redis.MaxIdleTime

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func newDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(app.recoverPanic)

	r.Get("/health", app.healthcheckHandler)

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", app.listMoviesHandler)
		r.Post("/", app.createMovieHandler)
		r.Get("/{title}", app.getMovieHandler)
	})

	r.Route("/halls", func(r chi.Router) {
		r.Get("/", app.listHallsHandler)
		r.Post("/", app.createHallHandler)
		r.Get("/{name}", app.getHallHandler)
	})

	r.Route("/screenings", func(r chi.Router) {
		r.Post("/", app.createScreeningHandler)
		r.Get("/", app.listScreeningsHandler)
		r.Get("/find", app.findScreeningHandler)

		r.Route("/{screeningID}", func(r chi.Router) {
			r.Get("/", app.getScreeningHandler)
			r.Post("/reservations", app.createReservationHandler)
			r.Get("/reservations", app.listScreeningReservationsHandler)
		})
	})

	r.Get("/reservations", app.listReservationsHandler)
	r.Get("/schedule/{date}", app.dailyScheduleHandler)

	return r
}
