package tensor

import (
	"context"
	"sync"
)

// Reader is a lazy, single-shot handle yielding one value, typically the Data
// of a tensor being materialized on the host.
//
// Obtaining a Reader never blocks; the caller suspends only when it reads.
// A Reader yields its value exactly once: the second read returns
// ErrReaderConsumed. Reading from several goroutines is safe; exactly one of
// them receives the value.
type Reader[T any] struct {
	mu       sync.Mutex
	consumed bool
	resolve  func() (T, error) // lazy mode, nil once started
	done     chan struct{}     // closed when value/err are set
	value    T
	err      error
}

// NewReader returns a Reader that runs fn on the first read.
func NewReader[T any](fn func() (T, error)) *Reader[T] {
	return &Reader[T]{resolve: fn, done: make(chan struct{})}
}

// AsyncReader returns a Reader whose value is computed on a new goroutine
// immediately; reads wait for it to finish.
func AsyncReader[T any](fn func() (T, error)) *Reader[T] {
	r := &Reader[T]{done: make(chan struct{})}
	go r.run(fn)
	return r
}

// ReadyReader returns a Reader that already holds v.
func ReadyReader[T any](v T) *Reader[T] {
	r := &Reader[T]{done: make(chan struct{}), value: v}
	close(r.done)
	return r
}

func (r *Reader[T]) run(fn func() (T, error)) {
	defer close(r.done)
	var err error
	if panicErr := Try(func() { r.value, err = fn() }); panicErr != nil {
		err = panicErr
	}
	r.err = err
}

// Read blocks until the value is available and returns it.
func (r *Reader[T]) Read() (T, error) {
	return r.ReadContext(context.Background())
}

// ReadContext is like Read but gives up when ctx is done.
// A Reader abandoned this way is not consumed and may be read again.
func (r *Reader[T]) ReadContext(ctx context.Context) (T, error) {
	var zero T
	r.mu.Lock()
	if r.consumed {
		r.mu.Unlock()
		return zero, ErrReaderConsumed
	}
	if fn := r.resolve; fn != nil {
		r.resolve = nil
		go r.run(fn)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.consumed {
		return zero, ErrReaderConsumed
	}
	r.consumed = true
	value, err := r.value, r.err
	r.value = zero
	return value, err
}

// Ready reports whether the value is available without blocking.
func (r *Reader[T]) Ready() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}
