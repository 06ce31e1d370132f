package worker

import (
	"context"
	"sort"
)

// Outcome is the result of fetching one id in a batch.
type Outcome[T any] struct {
	ID    string
	Value T
	Err   error

	index int
}

// GetError implements Result.
func (o *Outcome[T]) GetError() error {
	return o.Err
}

type fetchJob[T any] struct {
	index int
	id    string
	fetch func(ctx context.Context, id string) (T, error)
}

func (j *fetchJob[T]) Execute(ctx context.Context) Result {
	v, err := j.fetch(ctx, j.id)
	return &Outcome[T]{ID: j.id, Value: v, Err: err, index: j.index}
}

// FetchAll calls fetch for every id with at most workers calls in flight.
// One outcome is returned per id, in the order of ids; a failing id does not
// stop the others. Ids not started before ctx is done are reported with
// ctx.Err().
func FetchAll[T any](ctx context.Context, workers int, ids []string, fetch func(ctx context.Context, id string) (T, error)) []Outcome[T] {
	if len(ids) == 0 {
		return []Outcome[T]{}
	}

	pool := NewPool(ctx, workers)
	pool.Start()

	go func() {
		for i, id := range ids {
			if !pool.Submit(&fetchJob[T]{index: i, id: id, fetch: fetch}) {
				break
			}
		}
		pool.Close()
	}()

	done := make([]bool, len(ids))
	out := make([]Outcome[T], 0, len(ids))
	for r := range pool.Results() {
		o := r.(*Outcome[T])
		done[o.index] = true
		out = append(out, *o)
	}

	for i, id := range ids {
		if !done[i] {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			out = append(out, Outcome[T]{ID: id, Err: err, index: i})
		}
	}

	sort.Slice(out, func(a, b int) bool { return out[a].index < out[b].index })
	return out
}
