// Package workerpool provides bounded concurrent processing helpers.
package workerpool

import (
	"context"
	"sync"
)

// Process runs process for every item on workerCount goroutines.
// The first error cancels the remaining work, invokes onCancel and is returned.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
	onCancel func(),
) error {
	if workerCount < 1 {
		workerCount = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tasks := make(chan T, workerCount)
	errs := make(chan error, workerCount)
	wg := sync.WaitGroup{}
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case item, ok := <-tasks:
					if !ok {
						return
					}
					if err := process(ctx, item); err != nil {
						select {
						case errs <- err:
						default:
						}
						if onCancel != nil {
							onCancel()
						}
						cancel()
						return
					}
				}
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case tasks <- item:
			}
		}
	}()

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}

	return ctx.Err()
}

// ProcessKeyed runs items sharing a key one after another in their original order,
// while different keys are spread over workerCount goroutines.
func ProcessKeyed[K comparable, T any](
	ctx context.Context,
	workerCount int,
	items []T,
	key func(T) K,
	process func(context.Context, T) error,
) error {
	return Process(ctx, workerCount, Group(items, key), func(ctx context.Context, group []T) error {
		for _, item := range group {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := process(ctx, item); err != nil {
				return err
			}
		}
		return nil
	}, nil)
}

// Group splits items by key. Groups follow the first appearance of their key and keep item order.
func Group[K comparable, T any](items []T, key func(T) K) [][]T {
	index := make(map[K]int)
	var groups [][]T
	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], item)
	}
	return groups
}
