package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey names the redis set used when no key is configured.
const DefaultRedisKey = "sso:active"

type redisRegistry struct {
	client *redis.Client
	key    string
}

// NewRedis returns a Registry stored as a redis set under key, so that several
// identity provider processes can share logins and logouts.
func NewRedis(client *redis.Client, key string) Registry {
	if key == "" {
		key = DefaultRedisKey
	}

	return &redisRegistry{client: client, key: key}
}

// Connect creates a redis client and checks the server can be reached.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	return client, nil
}

func (r *redisRegistry) Activate(ctx context.Context, user string) error {
	return r.client.SAdd(ctx, r.key, user).Err()
}

func (r *redisRegistry) Deactivate(ctx context.Context, user string) error {
	return r.client.SRem(ctx, r.key, user).Err()
}

func (r *redisRegistry) IsActive(ctx context.Context, user string) (bool, error) {
	return r.client.SIsMember(ctx, r.key, user).Result()
}
