package locker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLockTTL       = 10 * time.Second
	defaultRetryInterval = 50 * time.Millisecond
	releaseTimeout       = 2 * time.Second
)

// releaseScript удаляет ключ, только если он все еще принадлежит владельцу токена
var releaseScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	end
	return 0
`)

// RedisClient подмножество команд Redis, нужное блокировке
type RedisClient interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// RedisLocker распределенная блокировка для нескольких экземпляров сервиса (SET NX PX)
type RedisLocker struct {
	client        RedisClient
	prefix        string
	ttl           time.Duration
	retryInterval time.Duration
	log           Logger
}

// NewRedisLocker создает распределенную блокировку
// Нулевые ttl и retryInterval заменяются значениями по умолчанию
func NewRedisLocker(client RedisClient, prefix string, ttl, retryInterval time.Duration, log Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if retryInterval <= 0 {
		retryInterval = defaultRetryInterval
	}
	return &RedisLocker{
		client:        client,
		prefix:        prefix,
		ttl:           ttl,
		retryInterval: retryInterval,
		log:           log,
	}
}

// Lock повторяет SET NX до успеха или отмены контекста
// Ключ живет не дольше ttl, поэтому упавший владелец не блокирует помещение навсегда
func (l *RedisLocker) Lock(ctx context.Context, facilityID int64) (func(), error) {
	key := l.key(facilityID)
	token := uuid.NewString()

	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: facility=%d: %v", ErrLockTimeout, facilityID, ctx.Err())
			}
			return nil, fmt.Errorf("%w: SetNX facility=%d: %v", ErrLockBackend, facilityID, err)
		}
		if ok {
			return l.releaser(key, token, facilityID), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: facility=%d: %v", ErrLockTimeout, facilityID, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) releaser(key, token string, facilityID int64) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			// Контекст запроса к этому моменту может быть уже отменен
			ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
			defer cancel()

			if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && err != redis.Nil {
				l.log.Warn("RedisLocker: failed to release lock facility=%d: %v", facilityID, err)
			}
		})
	}
}

func (l *RedisLocker) key(facilityID int64) string {
	return fmt.Sprintf("%s:facility:%d:lock", l.prefix, facilityID)
}
