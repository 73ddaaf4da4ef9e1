package ability

import "context"

// Future is the pending result of an asynchronous side effect such as an item transfer.
// A Future delivers exactly one value; receiving from it more than once blocks.
type Future[T any] <-chan T

// Resolved returns a Future that is already complete with v.
//
// Postcondition: Await returns v without blocking.
func Resolved[T any](v T) Future[T] {
	ch := make(chan T, 1)
	ch <- v
	return ch
}

// Async runs fn on a new goroutine and returns a Future for its result.
func Async[T any](fn func() T) Future[T] {
	ch := make(chan T, 1)
	go func() { ch <- fn() }()
	return ch
}

// Await blocks until the Future completes or ctx ends.
//
// Postcondition: Returns the delivered value and nil, or the zero value and ctx.Err().
// A nil Future or one closed without a value yields the zero value and nil.
func (f Future[T]) Await(ctx context.Context) (T, error) {
	var zero T
	if f == nil {
		return zero, nil
	}
	select {
	case v, ok := <-f:
		if !ok {
			return zero, nil
		}
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
