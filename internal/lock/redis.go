package lock

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const lockReleaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

const keyPrefix = "estimator:lock:"

type RedisOptions struct {
	Addr     string
	Password string
	DB       int

	// TTL bounds how long a crashed holder can block others.
	TTL       time.Duration
	Wait      time.Duration
	RetryWait time.Duration
}

// RedisLocker is a SETNX lock with token-checked release, usable across
// replicas sharing one database.
type RedisLocker struct {
	client *redis.Client
	script *redis.Script
	log    *zap.Logger

	ttl       time.Duration
	wait      time.Duration
	retryWait time.Duration
}

func NewRedisLocker(opts RedisOptions, log *zap.Logger) (*RedisLocker, error) {
	if strings.TrimSpace(opts.Addr) == "" {
		return nil, errors.New("redis addr is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     strings.TrimSpace(opts.Addr),
		Password: strings.TrimSpace(opts.Password),
		DB:       opts.DB,
	})
	return newRedisLocker(client, opts, log), nil
}

func newRedisLocker(client *redis.Client, opts RedisOptions, log *zap.Logger) *RedisLocker {
	if log == nil {
		log = zap.NewNop()
	}
	l := &RedisLocker{
		client:    client,
		script:    redis.NewScript(lockReleaseScript),
		log:       log.Named("lock.redis"),
		ttl:       opts.TTL,
		wait:      opts.Wait,
		retryWait: opts.RetryWait,
	}
	if l.ttl <= 0 {
		l.ttl = defaultTTL
	}
	if l.wait <= 0 {
		l.wait = defaultWait
	}
	if l.retryWait <= 0 {
		l.retryWait = defaultRetryWait
	}
	return l
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrEmptyKey
	}
	redisKey := keyPrefix + key

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	for {
		token, ok, err := l.tryLock(waitCtx, redisKey)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				return nil, ErrLockTimeout
			}
			return nil, err
		}
		if ok {
			return func() {
				// Release on a fresh context so a cancelled request still frees the key.
				releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				if err := l.release(releaseCtx, redisKey, token); err != nil {
					l.log.Warn("failed to release lock", zap.String("key", key), zap.Error(err))
				}
			}, nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, ErrLockTimeout
		case <-time.After(l.retryWait):
		}
	}
}

func (l *RedisLocker) tryLock(ctx context.Context, key string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

func (l *RedisLocker) release(ctx context.Context, key, token string) error {
	if key == "" || token == "" {
		return nil
	}
	return l.script.Run(ctx, l.client, []string{key}, token).Err()
}

func (l *RedisLocker) Close() error {
	if l == nil || l.client == nil {
		return nil
	}
	return l.client.Close()
}

var _ Locker = (*RedisLocker)(nil)
