// Package fanout provides the two fan-out combinators used across the
// service: SettleAll where partial failure is tolerable, All where it is not.
package fanout

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Settled is the outcome of one SettleAll branch.
type Settled[T, R any] struct {
	Input T
	Value R
	Err   error
}

// SettleAll runs fn for every item concurrently and waits for all branches.
// A failing branch never cancels its siblings; successes and failures are
// collected separately.
func SettleAll[T, R any](ctx context.Context, items []T, fn func(context.Context, T) (R, error)) (succeeded []Settled[T, R], failed []Settled[T, R]) {
	results := make([]Settled[T, R], len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			value, err := fn(ctx, item)
			results[i] = Settled[T, R]{Input: item, Value: value, Err: err}
		}(i, item)
	}
	wg.Wait()

	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		} else {
			succeeded = append(succeeded, r)
		}
	}
	return succeeded, failed
}

// All runs every fn concurrently and fails fast: the first error cancels the
// shared context and is returned. Used where partial data is meaningless.
func All(ctx context.Context, fns ...func(context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		g.Go(func() error { return fn(ctx) })
	}
	return g.Wait()
}
