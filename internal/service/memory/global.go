package memory

import (
	"context"
	"sync"
)

var (
	sharedMu sync.Mutex
	shared   *Memory
)

// Shared returns the process-wide Memory, constructing it on first use.
// Construction runs under the lock so concurrent first callers cannot
// initialize twice; later calls just hand back the instance.
func Shared(ctx context.Context, build func(context.Context) (*Memory, error)) (*Memory, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		m, err := build(ctx)
		if err != nil {
			return nil, err
		}
		shared = m
	}
	return shared, nil
}

// ResetShared drops the shared instance. Test isolation hook.
func ResetShared() {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	shared = nil
}
