package lock

import (
	"context"
	"strings"
	"sync"
)

// KeyedMutex is a Locker for a single process. Entries are dropped once no
// caller holds or waits on them.
type KeyedMutex struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{slots: make(map[string]*slot)}
}

func (m *KeyedMutex) Acquire(ctx context.Context, key string) (func(), error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrEmptyKey
	}

	m.mu.Lock()
	s, ok := m.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		m.slots[key] = s
	}
	s.refs++
	m.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		m.unref(key, s)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			m.unref(key, s)
		})
	}, nil
}

func (m *KeyedMutex) unref(key string, s *slot) {
	m.mu.Lock()
	s.refs--
	if s.refs == 0 {
		delete(m.slots, key)
	}
	m.mu.Unlock()
}

func (m *KeyedMutex) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}

var _ Locker = (*KeyedMutex)(nil)
