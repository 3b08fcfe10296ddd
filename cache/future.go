package cache

import (
	"context"
	"sync"
)

// Future is a one-shot result that can be awaited by any number of
// goroutines. It completes exactly once, either resolved with
// (value, found) or rejected with an error; later completions are ignored.
type Future[V any] struct {
	done chan struct{} // closed when val/found/err are published
	once sync.Once

	val   V
	found bool
	err   error
}

// NewFuture returns a pending future. Complete it with Resolve or Reject.
func NewFuture[V any]() *Future[V] {
	return &Future[V]{done: make(chan struct{})}
}

// Resolved returns a future already resolved with (v, found).
func Resolved[V any](v V, found bool) *Future[V] {
	f := NewFuture[V]()
	f.Resolve(v, found)
	return f
}

// Rejected returns a future already failed with err.
func Rejected[V any](err error) *Future[V] {
	f := NewFuture[V]()
	f.Reject(err)
	return f
}

// Go runs fn on a new goroutine and returns a future for its result.
// fn receives ctx; cancelling ctx is fn's business.
func Go[V any](ctx context.Context, fn func(ctx context.Context) (V, bool, error)) *Future[V] {
	f := NewFuture[V]()
	go func() {
		v, found, err := fn(ctx)
		f.complete(v, found, err)
	}()
	return f
}

// Resolve completes f with (v, found). It reports whether this call won.
func (f *Future[V]) Resolve(v V, found bool) bool {
	return f.complete(v, found, nil)
}

// Reject completes f with err. It reports whether this call won.
func (f *Future[V]) Reject(err error) bool {
	var zero V
	return f.complete(zero, false, err)
}

func (f *Future[V]) complete(v V, found bool, err error) bool {
	won := false
	f.once.Do(func() {
		f.val, f.found, f.err = v, found, err
		close(f.done)
		won = true
	})
	return won
}

// Done returns a channel closed once the future has completed.
func (f *Future[V]) Done() <-chan struct{} { return f.done }

// Await blocks until the future completes or ctx is done.
// A ctx expiry is returned as ctx.Err() and leaves f untouched.
func (f *Future[V]) Await(ctx context.Context) (V, bool, error) {
	select {
	case <-f.done:
		return f.val, f.found, f.err
	case <-ctx.Done():
		var zero V
		return zero, false, ctx.Err()
	}
}

// Result blocks until the future completes.
func (f *Future[V]) Result() (V, bool, error) {
	<-f.done
	return f.val, f.found, f.err
}
