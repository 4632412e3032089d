package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const inFlightKeyPrefix = "sos:inflight:"

// Снимаем флаг, только если он все еще наш
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisInFlightGuard - флаг "SOS уже отправляется" для пользователя,
// общий для всех экземпляров сервиса. TTL снимает флаг, если процесс упал.
type RedisInFlightGuard struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedisInFlightGuard(client *redis.Client, ttl time.Duration) *RedisInFlightGuard {
	return &RedisInFlightGuard{
		redisClient: client,
		ttl:         ttl,
	}
}

// Acquire выставляет флаг через SET NX. release снимает его после отправки.
func (g *RedisInFlightGuard) Acquire(ctx context.Context, userID string) (func(), bool, error) {
	key := inFlightKeyPrefix + userID
	token := uuid.NewString()

	ok, err := g.redisClient.SetNX(ctx, key, token, g.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire in-flight flag: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, g.redisClient, []string{key}, token).Err()
	}
	return release, true, nil
}
