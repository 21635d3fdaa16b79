package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wadjakorntonsri/committee-site/pkg/ports"
)

// ErrEmptyURL is returned when no Redis URL is configured.
var ErrEmptyURL = errors.New("redis url is required")

const connectionTimeout = 5 * time.Second

// NewRedisClient connects to the Redis instance at url and verifies it answers.
func NewRedisClient(url string) (*redis.Client, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// RedisStore keeps each guard as a Redis set whose expiry is pushed back on
// every write.
type RedisStore struct {
	client     *redis.Client
	prefix     string
	sessionTTL time.Duration
	deviceTTL  time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, sessionTTL, deviceTTL time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, sessionTTL: sessionTTL, deviceTTL: deviceTTL}
}

func (s *RedisStore) Session(sessionID string) ports.Guard {
	return &redisGuard{client: s.client, key: s.prefix + sessionKey(sessionID), ttl: s.sessionTTL}
}

func (s *RedisStore) Device(deviceID string) ports.Guard {
	return &redisGuard{client: s.client, key: s.prefix + deviceKey(deviceID), ttl: s.deviceTTL}
}

type redisGuard struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func (g *redisGuard) Has(ctx context.Context, id string) (bool, error) {
	ok, err := g.client.SIsMember(ctx, g.key, id).Result()
	if err != nil {
		return false, fmt.Errorf("guard %s: %w", g.key, err)
	}
	return ok, nil
}

func (g *redisGuard) Add(ctx context.Context, id string) error {
	_, err := g.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, g.key, id)
		if g.ttl > 0 {
			pipe.Expire(ctx, g.key, g.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("guard %s: %w", g.key, err)
	}
	return nil
}

func (g *redisGuard) Remove(ctx context.Context, id string) error {
	if err := g.client.SRem(ctx, g.key, id).Err(); err != nil {
		return fmt.Errorf("guard %s: %w", g.key, err)
	}
	return nil
}
