// Package toast holds the transient notification queue. Every toast
// auto-expires after a fixed interval; callers may also dismiss early.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"jobportal-client/internal/common/config"
	"jobportal-client/internal/common/logger"
	"jobportal-client/internal/common/metrics"
)

const (
	KindSuccess = "success"
	KindError   = "error"
	KindInfo    = "info"
)

// Toast is one entry in the active queue.
type Toast struct {
	ID      string
	Message string
	Kind    string
	Created time.Time
}

// Notifier owns the active toast queue. Safe for concurrent use.
type Notifier struct {
	ttl      time.Duration
	maxQueue int
	logger   logger.Logger

	mu     sync.Mutex
	active []Toast
	timers map[string]*time.Timer
	subs   []func([]Toast)
	closed bool
}

// New creates a notifier with an empty queue.
func New(cfg config.ToastConfig, log logger.Logger) *Notifier {
	return &Notifier{
		ttl:      time.Duration(cfg.TTL) * time.Millisecond,
		maxQueue: cfg.MaxQueue,
		logger:   log.WithFields(map[string]interface{}{"component": "toast"}),
		timers:   map[string]*time.Timer{},
	}
}

// Add enqueues a toast and schedules its expiry. When the queue is full the
// oldest entry is evicted to make room. Returns the toast id, or "" after
// Close.
func (n *Notifier) Add(message, kind string) string {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return ""
	}

	id := uuid.NewString()
	n.active = append(n.active, Toast{
		ID:      id,
		Message: message,
		Kind:    kind,
		Created: time.Now(),
	})

	if n.maxQueue > 0 && len(n.active) > n.maxQueue {
		evicted := n.active[0]
		n.active = n.active[1:]
		if timer, ok := n.timers[evicted.ID]; ok {
			timer.Stop()
			delete(n.timers, evicted.ID)
		}
		metrics.ToastsDropped.Inc()
		n.logger.Debug("toast queue full, evicting oldest", map[string]interface{}{
			"evicted": evicted.ID,
		})
	}

	n.timers[id] = time.AfterFunc(n.ttl, func() {
		n.Remove(id)
	})

	subs, snapshot := n.fanoutLocked()
	n.mu.Unlock()

	metrics.ToastsShown.WithLabelValues(kind).Inc()
	for _, fn := range subs {
		fn(snapshot)
	}
	return id
}

// Success enqueues a success-styled toast.
func (n *Notifier) Success(message string) string { return n.Add(message, KindSuccess) }

// Error enqueues an error-styled toast.
func (n *Notifier) Error(message string) string { return n.Add(message, KindError) }

// Info enqueues an info-styled toast.
func (n *Notifier) Info(message string) string { return n.Add(message, KindInfo) }

// Remove dismisses a toast early. Unknown ids are ignored, so expiry and
// manual dismissal may race without harm.
func (n *Notifier) Remove(id string) {
	n.mu.Lock()
	if timer, ok := n.timers[id]; ok {
		timer.Stop()
		delete(n.timers, id)
	}

	found := false
	for i, t := range n.active {
		if t.ID == id {
			n.active = append(n.active[:i], n.active[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		n.mu.Unlock()
		return
	}

	subs, snapshot := n.fanoutLocked()
	n.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// Active returns a copy of the queue in enqueue order.
func (n *Notifier) Active() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Toast, len(n.active))
	copy(out, n.active)
	return out
}

// Subscribe registers an observer called with the full queue after every
// change.
func (n *Notifier) Subscribe(fn func([]Toast)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

// Close cancels all pending expiries and empties the queue.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	for id, timer := range n.timers {
		timer.Stop()
		delete(n.timers, id)
	}
	n.active = nil
}

func (n *Notifier) fanoutLocked() ([]func([]Toast), []Toast) {
	subs := make([]func([]Toast), len(n.subs))
	copy(subs, n.subs)
	snapshot := make([]Toast, len(n.active))
	copy(snapshot, n.active)
	return subs, snapshot
}
