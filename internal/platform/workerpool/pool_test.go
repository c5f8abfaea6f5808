package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestMap_PreservesOrder(t *testing.T) {
	t.Parallel()

	pool, err := New(4)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer pool.Release()

	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	var calls atomic.Int32
	got, err := Map(t.Context(), pool, items, func(_ context.Context, v int) (int, error) {
		calls.Add(1)
		return v * v, nil
	})
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if calls.Load() != int32(len(items)) {
		t.Fatalf("expected %d calls, got %d", len(items), calls.Load())
	}
	for i, v := range got {
		if v != i*i {
			t.Fatalf("index %d: got %d want %d", i, v, i*i)
		}
	}
}

func TestMap_ReturnsFirstError(t *testing.T) {
	t.Parallel()

	pool, err := New(2)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer pool.Release()

	boom := errors.New("boom")
	_, err = Map(t.Context(), pool, []string{"a", "b", "c"}, func(_ context.Context, v string) (string, error) {
		if v == "b" {
			return "", boom
		}
		return v, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestMap_NilPoolRunsInline(t *testing.T) {
	t.Parallel()

	var pool *Pool
	got, err := Map(t.Context(), pool, []int{1, 2, 3}, func(_ context.Context, v int) (int, error) {
		return v + 1, nil
	})
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if len(got) != 3 || got[0] != 2 || got[2] != 4 {
		t.Fatalf("unexpected result: %v", got)
	}
	if pool.Cap() != 0 {
		t.Fatalf("nil pool cap should be zero")
	}
}

func TestMap_EmptyInput(t *testing.T) {
	t.Parallel()

	got, err := Map(t.Context(), nil, []int(nil), func(_ context.Context, v int) (int, error) {
		t.Fatalf("fn must not be called")
		return 0, nil
	})
	if err != nil || len(got) != 0 {
		t.Fatalf("unexpected result: %v %v", got, err)
	}
}
