package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKeyedMutexSerialisesSameKey(t *testing.T) {
	m := NewKeyedMutex()
	var active, maxActive int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := m.Acquire(context.Background(), "employer_demo")
			if err != nil {
				t.Error(err)
				return
			}
			n := atomic.AddInt32(&active, 1)
			for {
				cur := atomic.LoadInt32(&maxActive)
				if n <= cur || atomic.CompareAndSwapInt32(&maxActive, cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive)
	assert.Equal(t, 0, m.size())
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	m := NewKeyedMutex()
	releaseA, err := m.Acquire(context.Background(), "employer_a")
	require.NoError(t, err)
	defer releaseA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	releaseB, err := m.Acquire(ctx, "employer_b")
	require.NoError(t, err)
	releaseB()
}

func TestKeyedMutexHonoursContext(t *testing.T) {
	m := NewKeyedMutex()
	release, err := m.Acquire(context.Background(), "employer_demo")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = m.Acquire(ctx, "employer_demo")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	release()
	assert.Equal(t, 0, m.size())
}

func TestKeyedMutexRejectsEmptyKey(t *testing.T) {
	_, err := NewKeyedMutex().Acquire(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestNewRedisLockerRequiresAddr(t *testing.T) {
	_, err := NewRedisLocker(RedisOptions{}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewRedisLockerAppliesDefaults(t *testing.T) {
	l, err := NewRedisLocker(RedisOptions{Addr: "localhost:6379"}, nil)
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, defaultTTL, l.ttl)
	assert.Equal(t, defaultWait, l.wait)
	assert.Equal(t, defaultRetryWait, l.retryWait)
}
