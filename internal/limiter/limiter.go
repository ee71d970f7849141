// Package limiter implements the server's compute permit: a bounded
// counting semaphore that gates CPU-bound cracking work independently of
// the number of accepted connections.
package limiter

import (
	"context"
	"sync/atomic"
)

// Limiter bounds concurrent compute-bound work to Capacity() permits.
type Limiter struct {
	permits chan struct{}
	inUse   int64
}

// New creates a Limiter with the given number of permits.
func New(capacity int) *Limiter {
	return &Limiter{permits: make(chan struct{}, capacity)}
}

// Acquire blocks until a permit is available or ctx is done.
func (l *Limiter) Acquire(ctx context.Context) error {
	select {
	case l.permits <- struct{}{}:
		atomic.AddInt64(&l.inUse, 1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a permit to the pool.
func (l *Limiter) Release() {
	atomic.AddInt64(&l.inUse, -1)
	<-l.permits
}

// InUse reports the number of permits currently held, for the
// compute-limiter saturation gauge.
func (l *Limiter) InUse() int {
	return int(atomic.LoadInt64(&l.inUse))
}

// Capacity reports the total number of permits.
func (l *Limiter) Capacity() int {
	return cap(l.permits)
}
