// Package optimistic runs mutations that update local state before the
// server confirms them, reverting to the captured prior value on failure.
package optimistic

import (
	"context"
	"sync"

	"jobportal-client/internal/common/logger"
)

// Runner tracks a sequence number per mutation key. When mutations on the
// same key overlap, only the newest one may revert; a stale failure
// completing late neither commits nor reverts, so it cannot clobber state a
// later mutation already owns.
type Runner struct {
	logger logger.Logger

	mu  sync.Mutex
	seq map[string]uint64
}

// NewRunner creates an empty runner.
func NewRunner(log logger.Logger) *Runner {
	return &Runner{
		logger: log,
		seq:    map[string]uint64{},
	}
}

// Do applies the local change, then issues the remote call. On failure the
// revert runs only if no later mutation on the same key has started since.
// The caller's revert closure must capture the prior value at call time,
// not re-derive it when invoked.
func (r *Runner) Do(ctx context.Context, key string, apply, revert func(), call func(context.Context) error) error {
	r.mu.Lock()
	r.seq[key]++
	seq := r.seq[key]
	r.mu.Unlock()

	apply()

	err := call(ctx)
	if err == nil {
		return nil
	}

	r.mu.Lock()
	current := r.seq[key]
	r.mu.Unlock()

	if seq != current {
		r.logger.Debug("skipping stale rollback", map[string]interface{}{
			"key": key,
		})
		return err
	}

	revert()
	return err
}
