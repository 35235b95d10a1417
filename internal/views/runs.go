package views

import (
	"context"
	"sync"
	"time"
)

// runs tracks the in-flight backend call of each (session, view) pair.
// Starting a call cancels the one it replaces, but only if that one
// belongs to an older generation.
type runs struct {
	mu     sync.Mutex
	active map[string]*run
	wg     sync.WaitGroup
}

type run struct {
	generation uint64
	cancel     context.CancelFunc
	done       chan struct{}
}

func newRuns() *runs {
	return &runs{active: make(map[string]*run)}
}

// start registers the call for generation under key and returns its
// context plus the function to call once the call's result has been
// applied. A call that arrives after a newer generation is already
// registered starts cancelled and leaves the newer one alone.
func (r *runs) start(parent context.Context, key string, generation uint64) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	cur := &run{generation: generation, cancel: cancel, done: make(chan struct{})}

	r.mu.Lock()
	if prev, ok := r.active[key]; ok && prev.generation > generation {
		cancel()
	} else {
		if ok {
			prev.cancel()
		}
		r.active[key] = cur
	}
	r.wg.Add(1)
	r.mu.Unlock()

	finish := func() {
		r.mu.Lock()
		if r.active[key] == cur {
			delete(r.active, key)
		}
		r.mu.Unlock()
		cancel()
		close(cur.done)
		r.wg.Done()
	}
	return ctx, finish
}

// wait blocks until the call under key finishes, d elapses or ctx ends.
func (r *runs) wait(ctx context.Context, key string, d time.Duration) {
	r.mu.Lock()
	cur := r.active[key]
	r.mu.Unlock()
	if cur == nil {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-cur.done:
	case <-timer.C:
	case <-ctx.Done():
	}
}

// stop aborts every in-flight call and waits until each has stored its
// outcome; used on shutdown.
func (r *runs) stop() {
	r.mu.Lock()
	for _, cur := range r.active {
		cur.cancel()
	}
	r.mu.Unlock()

	r.wg.Wait()
}
