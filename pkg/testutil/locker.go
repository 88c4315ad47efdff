package testutil

import (
	"context"
	"sync"
)

// InProcessLocker gives tests the per-key mutual exclusion the redis locker
// provides in production.
type InProcessLocker struct {
	mutex sync.Mutex
	locks map[string]*sync.Mutex
}

func NewInProcessLocker() *InProcessLocker {
	return &InProcessLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *InProcessLocker) WithLock(ctx context.Context, key string, f func(context.Context) error) error {
	l.mutex.Lock()
	lock, ok := l.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[key] = lock
	}
	l.mutex.Unlock()

	lock.Lock()
	defer lock.Unlock()

	return f(ctx)
}
