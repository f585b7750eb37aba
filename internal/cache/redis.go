package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"civilregistry/internal/models"

	"github.com/redis/go-redis/v9"
)

const statsKeyPrefix = "stats:snapshot:"

// StatsCache keeps computed dashboard snapshots in Redis, one key per hour
// so date-relative counts never lag the clock by more than an hour.
// Every write to users or records must call Invalidate.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

func StatsKey(asOf time.Time) string {
	return statsKeyPrefix + asOf.UTC().Format("2006-01-02T15")
}

// Get returns the cached snapshot for asOf's hour. A miss is (nil, false, nil).
func (c *StatsCache) Get(ctx context.Context, asOf time.Time) (*models.StatsSnapshot, bool, error) {
	data, err := c.client.Get(ctx, StatsKey(asOf)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get stats from Redis: %w", err)
	}

	var snapshot models.StatsSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal stats: %w", err)
	}
	return &snapshot, true, nil
}

func (c *StatsCache) Set(ctx context.Context, snapshot *models.StatsSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	if err := c.client.Set(ctx, StatsKey(snapshot.AsOf), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store stats in Redis: %w", err)
	}
	return nil
}

// Invalidate drops every cached snapshot.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, statsKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan stats keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Status reports pool statistics for the debug endpoint.
func (c *StatsCache) Status(ctx context.Context) (map[string]interface{}, error) {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	stats := c.client.PoolStats()
	return map[string]interface{}{
		"connected":    true,
		"hits":         stats.Hits,
		"misses":       stats.Misses,
		"active_conns": stats.TotalConns,
	}, nil
}

func (c *StatsCache) Close() error {
	return c.client.Close()
}
