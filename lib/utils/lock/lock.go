package lock

import (
	"context"
	"sync"
	"time"
)

var (
	lockMap sync.Map
)

// WithDelay runs safeCode while holding the in-process lock for key.
// It waits up to wait for the lock, success is false when the lock was not acquired.
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	timeout := time.NewTimer(wait)
	defer timeout.Stop()
	for {
		if _, loaded := lockMap.LoadOrStore(key, true); !loaded {
			break
		}
		select {
		case <-timeout.C:
			return false, nil
		case <-ctx.Done():
			return false, nil
		case <-time.After(20 * time.Millisecond):
		}
	}
	defer lockMap.Delete(key)
	return true, safeCode()
}
