package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/odeonlabs/theater-reservation-system/internal/app"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type BaseSuite struct {
	suite.Suite

	// booking overrides the default booking policy when set before
	// SetupSuite runs.
	booking *app.BookingConfig

	ctx            context.Context
	dbContainer    *PostgresContainer
	cacheContainer *RedisContainer
	pool           *pgxpool.Pool
	cache          *redis.Client
	app            *app.Application
	server         *httptest.Server
}

func (s *BaseSuite) SetupSuite() {
	if testing.Short() {
		s.T().Skip("skipping integration tests in short mode")
	}

	s.ctx = context.Background()

	dbContainer, err := getDbContainer(s.ctx)
	s.Require().NoError(err)
	s.dbContainer = dbContainer

	cacheContainer, err := getCacheContainer(s.ctx)
	s.Require().NoError(err)
	s.cacheContainer = cacheContainer

	s.pool, err = pgxpool.New(s.ctx, dbContainer.ConnectionString)
	s.Require().NoError(err)

	cacheOpts, err := redis.ParseURL(cacheContainer.ConnectionString)
	s.Require().NoError(err)
	s.cache = redis.NewClient(cacheOpts)

	booking := app.BookingConfig{
		MaxSeatsPerReservation: 10,
		RequireRegisteredHall:  true,
		DefaultHallCapacity:    100,
		DuplicatePolicy:        "reject",
		ScheduleCacheTTL:       30 * time.Second,
	}
	if s.booking != nil {
		booking = *s.booking
	}

	cfg := app.Config{
		Env: "test",
		DB: app.DBConfig{
			DSN:          dbContainer.ConnectionString,
			MaxOpenConns: 25,
			MaxIdleTime:  15 * time.Minute,
		},
		Redis: app.RedisConfig{
			URL:         cacheContainer.ConnectionString,
			MaxConns:    10,
			MaxIdleTime: time.Minute,
		},
		Booking: booking,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.app, err = app.New(cfg, logger)
	s.Require().NoError(err)

	s.server = httptest.NewServer(s.app.Routes())
}

func (s *BaseSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.app != nil {
		s.app.Close()
	}
	if s.cache != nil {
		s.cache.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
	if s.cacheContainer != nil {
		s.Require().NoError(s.cacheContainer.Container.Terminate(s.ctx))
	}
	if s.dbContainer != nil {
		s.Require().NoError(s.dbContainer.Container.Terminate(s.ctx))
	}
}

// SetupTest resets the store so every test starts from an empty theater.
// The hall seed rows from the migrations go too; tests register the halls
// they need through the API.
func (s *BaseSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx,
		"TRUNCATE reservations, screenings, movies, halls RESTART IDENTITY CASCADE")
	s.Require().NoError(err)

	s.Require().NoError(s.cache.FlushAll(s.ctx).Err())
}

func (s *BaseSuite) postJSON(path string, body any) *http.Response {
	s.T().Helper()

	payload, err := json.Marshal(body)
	s.Require().NoError(err)

	resp, err := http.Post(s.server.URL+path, "application/json", bytes.NewReader(payload))
	s.Require().NoError(err)

	return resp
}

func (s *BaseSuite) getJSON(path string) *http.Response {
	s.T().Helper()

	resp, err := http.Get(s.server.URL + path)
	s.Require().NoError(err)

	return resp
}

func decodeBody[T any](s *BaseSuite, resp *http.Response) T {
	s.T().Helper()
	defer resp.Body.Close()

	var out T
	err := json.NewDecoder(resp.Body).Decode(&out)
	s.Require().NoError(err)

	return out
}

func (s *BaseSuite) createMovie(title string, duration int) {
	s.T().Helper()

	resp := s.postJSON("/movies", map[string]any{"title": title, "duration": duration})
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
}

func (s *BaseSuite) createHall(name string, capacity int) {
	s.T().Helper()

	resp := s.postJSON("/halls", map[string]any{"name": name, "capacity": capacity})
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
}

func (s *BaseSuite) createScreening(movieTitle, hallName, date, start string) app.ScreeningResponse {
	s.T().Helper()

	resp := s.postJSON("/screenings", app.CreateScreeningRequest{
		MovieTitle: movieTitle,
		HallName:   hallName,
		Date:       date,
		Time:       start,
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	return decodeBody[app.ScreeningResponse](s, resp)
}

func (s *BaseSuite) reservationsURL(screeningID string) string {
	return fmt.Sprintf("/screenings/%s/reservations", screeningID)
}
