package keyboard

import (
	"sync"
	"time"
)

// Scheduler runs fn after roughly d has elapsed, on the host's event loop.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Immediate runs deferred work synchronously, ignoring the delay.
type Immediate struct{}

func (Immediate) After(_ time.Duration, fn func()) { fn() }

// Queue collects deferred work until the host drains it. Hosts that answer
// one request at a time drain after each request so the answer reflects the
// re-query.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

func (q *Queue) After(_ time.Duration, fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain runs pending tasks in order, including tasks they schedule, and
// returns how many ran.
func (q *Queue) Drain() int {
	ran := 0
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return ran
		}
		fn := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		fn()
		ran++
	}
}
