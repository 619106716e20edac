// Package lock резервирует слот салона на время проверки и вставки записи.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrLockTimeout возвращается, если блокировку не удалось взять за время ожидания
	ErrLockTimeout = errors.New("lock: timeout waiting for lock")

	// ErrLockBackend возвращается при ошибке хранилища блокировок
	ErrLockBackend = errors.New("lock: backend error")
)

const retryInterval = 25 * time.Millisecond

// ReleaseFunc освобождает взятую блокировку
type ReleaseFunc func(ctx context.Context) error

// Locker берет эксклюзивную блокировку по ключу
type Locker interface {
	Acquire(ctx context.Context, key string) (ReleaseFunc, error)
}

// SlotKey ключ блокировки для салона и даты
func SlotKey(salonID uuid.UUID, date string) string {
	return fmt.Sprintf("slot_lock:%s:%s", salonID, date)
}

// waitLoop повторяет try, пока он не вернет true, не истечет wait или не отменят контекст
func waitLoop(ctx context.Context, key string, wait time.Duration, try func() (bool, error)) error {
	deadline := time.Now().Add(wait)
	for {
		ok, err := try()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s", ErrLockTimeout, key)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}
