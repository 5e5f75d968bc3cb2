package lock

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/smallbiznis/estimator/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	ErrLockTimeout = errors.New("lock_timeout")
	ErrEmptyKey    = errors.New("lock_key_empty")
)

const (
	defaultTTL       = 10 * time.Second
	defaultWait      = 5 * time.Second
	defaultRetryWait = 25 * time.Millisecond
)

// Locker serialises work on a key. Release must be called exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

var Module = fx.Module("lock",
	fx.Provide(New),
)

type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config config.Config
	Log    *zap.Logger
}

// New returns a Redis-backed locker when REDIS_ADDR is set, otherwise an
// in-process keyed mutex.
func New(p Params) (Locker, error) {
	addr := strings.TrimSpace(p.Config.RedisAddr)
	if addr == "" {
		p.Log.Named("lock").Info("using in-process keyed mutex")
		return NewKeyedMutex(), nil
	}

	locker, err := NewRedisLocker(RedisOptions{
		Addr:     addr,
		Password: p.Config.RedisPassword,
		DB:       p.Config.RedisDB,
	}, p.Log)
	if err != nil {
		return nil, err
	}
	p.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return locker.Close()
		},
	})
	return locker, nil
}
