// Package fanout runs a function across a slice of items with a bounded
// number of goroutines and returns the outcomes in input order. The health
// aggregator uses it to evaluate status probes concurrently while keeping
// check results in registration order.
package fanout

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Result holds the outcome of processing a single item.
// Either Value is populated (on success) or Err is non-nil (on failure).
type Result[R any] struct {
	Value R
	Err   error
}

// PanicError is recorded as the Result error when fn panics for an item.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Run executes fn for each item using at most maxWorkers concurrent
// goroutines. Results are returned in the same order as the input items,
// regardless of completion order.
//
// Items that have not acquired a worker slot when ctx is done record
// ctx.Err() and fn is not called for them. Once fn has started it runs to
// completion; fn is expected to honor ctx itself.
//
// A panic inside fn is recovered and recorded as a *PanicError for that item
// only. Other items are unaffected.
//
// Run blocks until every item has a result. maxWorkers below 1 is treated
// as 1. An empty items slice yields an empty non-nil result slice.
func Run[T, R any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	if len(items) == 0 {
		return []Result[R]{}
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	results := make([]Result[R], len(items))
	sem := semaphore.NewWeighted(int64(maxWorkers))
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(idx int, it T) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				results[idx] = Result[R]{Err: err}
				return
			}

			if err := sem.Acquire(ctx, 1); err != nil {
				results[idx] = Result[R]{Err: err}
				return
			}
			defer sem.Release(1)

			results[idx] = call(ctx, it, fn)
		}(i, item)
	}

	wg.Wait()
	return results
}

func call[T, R any](ctx context.Context, item T, fn func(context.Context, T) (R, error)) (res Result[R]) {
	defer func() {
		if v := recover(); v != nil {
			res = Result[R]{Err: &PanicError{Value: v, Stack: debug.Stack()}}
		}
	}()

	val, err := fn(ctx, item)
	return Result[R]{Value: val, Err: err}
}
