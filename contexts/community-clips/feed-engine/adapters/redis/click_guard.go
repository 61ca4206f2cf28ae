package redisadapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const releaseTimeout = time.Second

// releaseGuardScript deletes the key only while it still holds the caller's token.
// KEYS[1] = guard key
// ARGV[1] = token written by Acquire
var releaseGuardScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

// ClickGuard implements ports.ClickGuard across API replicas with SET NX PX.
type ClickGuard struct {
	client redis.UniversalClient
	prefix string
}

func NewClickGuard(client redis.UniversalClient, prefix string) *ClickGuard {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "ripclips:guard"
	}
	return &ClickGuard{client: client, prefix: prefix}
}

func (g *ClickGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	fullKey := fmt.Sprintf("%s:%s", g.prefix, strings.TrimSpace(key))
	token := uuid.NewString()

	acquired, err := g.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis click guard acquire: %w", err)
	}
	if !acquired {
		return nil, false, nil
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		_ = releaseGuardScript.Run(releaseCtx, g.client, []string{fullKey}, token).Err()
	}, true, nil
}
