package lock

import (
	"context"
	"sync"
	"time"
)

// MemoryLocker блокировка внутри одного процесса, используется без Redis
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
	wait time.Duration
}

// NewMemoryLocker создает блокировку в памяти с временем ожидания wait
func NewMemoryLocker(wait time.Duration) *MemoryLocker {
	return &MemoryLocker{held: make(map[string]struct{}), wait: wait}
}

// Acquire берет блокировку по ключу
func (l *MemoryLocker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	err := waitLoop(ctx, key, l.wait, func() (bool, error) {
		l.mu.Lock()
		defer l.mu.Unlock()
		if _, busy := l.held[key]; busy {
			return false, nil
		}
		l.held[key] = struct{}{}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
		return nil
	}, nil
}
