package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const HolidayKeyPrefix = "calendar:holidays:"

func HolidayKey(year int, month time.Month) string {
	return fmt.Sprintf("%s%04d-%02d", HolidayKeyPrefix, year, int(month))
}

// Provider builds a month's WorkWeek from the holidays table. Holidays are
// cached in redis when a client is configured.
type Provider struct {
	repo    Repository
	rdb     *redis.Client
	ttl     time.Duration
	weekend []time.Weekday
	loc     *time.Location
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewProvider(repo Repository, rdb *redis.Client, ttl time.Duration, weekend []time.Weekday, loc *time.Location, logger *zap.Logger) *Provider {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		repo:    repo,
		rdb:     rdb,
		ttl:     ttl,
		weekend: weekend,
		loc:     loc,
		sf:      &singleflight.Group{},
		logger:  logger.Named("calendar.provider"),
	}
}

func (p *Provider) MonthCalendar(ctx context.Context, year int, month time.Month) (Calendar, error) {
	holidays, err := p.holidays(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return NewWorkWeek(p.weekend, holidays), nil
}

func (p *Provider) holidays(ctx context.Context, year int, month time.Month) ([]Holiday, error) {
	cacheKey := HolidayKey(year, month)

	if p.rdb != nil {
		cached, err := p.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var rows []Holiday
			if err := json.Unmarshal([]byte(cached), &rows); err == nil {
				return rows, nil
			}
		} else if err != redis.Nil {
			p.logger.Warn("read holiday cache failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	v, err, _ := p.sf.Do(cacheKey, func() (interface{}, error) {
		start, end := MonthBounds(year, month, p.loc)
		rows, err := p.repo.FindBetween(ctx, start, end)
		if err != nil {
			return nil, err
		}

		if p.rdb != nil {
			if payload, err := json.Marshal(rows); err == nil {
				if err := p.rdb.Set(ctx, cacheKey, payload, p.ttl).Err(); err != nil {
					p.logger.Warn("write holiday cache failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]Holiday), nil
}
