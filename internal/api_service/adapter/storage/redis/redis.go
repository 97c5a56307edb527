package redis

import (
	"context"
	"encoding/json"
	"github.com/langowen/fxtrend/internal/entities"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"log/slog"
	"time"
)

// Storage keeps assembled rate tables in Redis so replicas share fetches.
// Every call is best effort.
type Storage struct {
	rdb    *redis.Client
	prefix string
}

type payload struct {
	CreatedAt time.Time           `json:"created_at"`
	Table     *entities.RateTable `json:"table"`
}

func NewStorage(client *redis.Client, prefix string) *Storage {
	if prefix == "" {
		prefix = "rates"
	}
	return &Storage{
		rdb:    client,
		prefix: prefix,
	}
}

func InitStorage(ctx context.Context, options *redis.Options, prefix string) (*Storage, error) {
	const op = "storage.redis.InitStorage"

	redisClient := redis.NewClient(options)

	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		_ = redisClient.Close()
		return nil, errors.Wrap(err, op)
	}

	return NewStorage(redisClient, prefix), nil
}

func (s *Storage) Get(ctx context.Context, key string) (*entities.RateTable, time.Time, bool) {
	const op = "storage.redis.Get"

	k := s.key(key)

	b, err := s.rdb.Get(ctx, k).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("redis get failed", "op", op, "key", k, "error", err)
		}
		return nil, time.Time{}, false
	}

	var p payload
	if err := json.Unmarshal(b, &p); err != nil || p.Table == nil {
		slog.Warn("corrupted cache entry removed", "op", op, "key", k, "error", err)
		_ = s.rdb.Del(ctx, k).Err()
		return nil, time.Time{}, false
	}

	return p.Table, p.CreatedAt, true
}

func (s *Storage) Set(ctx context.Context, key string, table *entities.RateTable, createdAt time.Time, ttl time.Duration) {
	const op = "storage.redis.Set"

	k := s.key(key)

	b, err := json.Marshal(payload{CreatedAt: createdAt, Table: table})
	if err != nil {
		slog.Warn("cache entry not encoded", "op", op, "key", k, "error", err)
		return
	}

	if err := s.rdb.Set(ctx, k, b, ttl).Err(); err != nil {
		slog.Warn("redis set failed", "op", op, "key", k, "error", err)
	}
}

func (s *Storage) Close() error {
	return s.rdb.Close()
}

func (s *Storage) key(key string) string {
	return s.prefix + ":" + key
}
