package workerpool

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Pool is a shared, bounded goroutine pool for CPU-light fan-out work such as
// per-team aggregation.
type Pool struct {
	pool *ants.Pool
}

func New(size int) (*Pool, error) {
	if size < 1 {
		size = 1
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	return &Pool{pool: pool}, nil
}

func (p *Pool) Cap() int {
	if p == nil || p.pool == nil {
		return 0
	}
	return p.pool.Cap()
}

func (p *Pool) Release() {
	if p == nil || p.pool == nil {
		return
	}
	p.pool.Release()
}

// Map applies fn to every item on the pool and returns results in input order.
// The first error wins; remaining tasks still run to completion. A nil pool runs inline.
func Map[T, R any](ctx context.Context, p *Pool, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	out := make([]R, len(items))
	if len(items) == 0 {
		return out, nil
	}

	if p == nil || p.pool == nil {
		for i, item := range items {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			value, err := fn(ctx, item)
			if err != nil {
				return nil, err
			}
			out[i] = value
		}
		return out, nil
	}

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	setErr := func(err error) {
		errOnce.Do(func() { firstErr = err })
	}

	for i, item := range items {
		wg.Add(1)
		if err := p.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				setErr(err)
				return
			}
			value, err := fn(ctx, item)
			if err != nil {
				setErr(err)
				return
			}
			out[i] = value
		}); err != nil {
			wg.Done()
			setErr(fmt.Errorf("submit task to worker pool: %w", err))
			break
		}
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
