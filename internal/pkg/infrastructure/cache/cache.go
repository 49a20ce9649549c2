package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/domain"
	"github.com/redis/go-redis/v9"
)

//ObservationCache keeps recently fetched observation series. Failures are logged
//and reported as misses so that callers always fall back to the upstream.
type ObservationCache interface {
	Get(ctx context.Context, datastreamID string) (domain.ObservationSeries, bool)
	Set(ctx context.Context, series domain.ObservationSeries)
}

func NewNoopCache() ObservationCache {
	return noop{}
}

type noop struct{}

func (noop) Get(context.Context, string) (domain.ObservationSeries, bool) {
	return domain.ObservationSeries{}, false
}

func (noop) Set(context.Context, domain.ObservationSeries) {}

func NewRedisCache(client *redis.Client, ttl time.Duration) ObservationCache {
	return &redisCache{redis: client, ttl: ttl}
}

//NewRedisCacheFromURL connects using a redis:// url and verifies that the server responds
func NewRedisCacheFromURL(ctx context.Context, redisURL string, ttl time.Duration) (ObservationCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisCache(client, ttl), nil
}

type redisCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func Key(datastreamID string) string {
	return fmt.Sprintf("sensordata:observations:%s", datastreamID)
}

func (c *redisCache) Get(ctx context.Context, datastreamID string) (domain.ObservationSeries, bool) {
	logger := logging.GetFromContext(ctx)

	data, err := c.redis.Get(ctx, Key(datastreamID)).Bytes()
	if err == redis.Nil {
		return domain.ObservationSeries{}, false
	}
	if err != nil {
		logger.Warn().Err(err).Str("datastream", datastreamID).Msg("failed to read cached observations")
		return domain.ObservationSeries{}, false
	}

	var series domain.ObservationSeries
	if err := json.Unmarshal(data, &series); err != nil {
		logger.Warn().Err(err).Str("datastream", datastreamID).Msg("failed to unmarshal cached observations")
		return domain.ObservationSeries{}, false
	}

	return series, true
}

func (c *redisCache) Set(ctx context.Context, series domain.ObservationSeries) {
	logger := logging.GetFromContext(ctx)

	data, err := json.Marshal(series)
	if err != nil {
		logger.Warn().Err(err).Str("datastream", series.ID).Msg("failed to marshal observations")
		return
	}

	if err := c.redis.Set(ctx, Key(series.ID), data, c.ttl).Err(); err != nil {
		logger.Warn().Err(err).Str("datastream", series.ID).Msg("failed to cache observations")
	}
}
