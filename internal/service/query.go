package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/odeonlabs/theater-reservation-system/internal/domain"
	"github.com/redis/go-redis/v9"
)

// QueryService serves read-only projections over catalog, scheduler and
// ledger state. The daily schedule goes through a short-lived redis cache
// when a client is configured; slightly stale seat counts are fine for
// display, the write path never reads from here.
type QueryService struct {
	schedule domain.ScheduleRepository
	ledger   *Ledger
	cache    redis.UniversalClient
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewQueryService(
	schedule domain.ScheduleRepository,
	ledger *Ledger,
	cache redis.UniversalClient,
	cacheTTL time.Duration,
	logger *slog.Logger) *QueryService {

	return &QueryService{
		schedule: schedule,
		ledger:   ledger,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// DailySchedule returns the day's screenings sorted by start time, empty when
// none are scheduled. Cache failures degrade to a direct read, never to an
// error.
func (q *QueryService) DailySchedule(ctx context.Context, date time.Time) ([]domain.ScheduleEntry, error) {
	date = truncateToDate(date)
	key := scheduleCacheKey(date)

	if q.cache != nil {
		payload, err := q.cache.Get(ctx, key).Result()
		if err == nil {
			var entries []domain.ScheduleEntry
			if jsonErr := json.Unmarshal([]byte(payload), &entries); jsonErr == nil {
				return entries, nil
			}
		} else if err != redis.Nil {
			q.logger.Warn("schedule cache read failed", "key", key, "error", err)
		}
	}

	entries, err := q.schedule.DailySchedule(ctx, date)
	if err != nil {
		return nil, err
	}

	if q.cache != nil {
		payload, err := json.Marshal(entries)
		if err == nil {
			if err := q.cache.Set(ctx, key, payload, q.cacheTTL).Err(); err != nil {
				q.logger.Warn("schedule cache write failed", "key", key, "error", err)
			}
		}
	}

	return entries, nil
}

// ReservationRoster composes the ledger's full listing for display.
func (q *QueryService) ReservationRoster(ctx context.Context) ([]domain.RosterEntry, error) {
	return q.ledger.ListReservations(ctx)
}

func scheduleCacheKey(date time.Time) string {
	return "schedule:" + date.Format("2006-01-02")
}
