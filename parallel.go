package kdknn

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchOptions controls QueryBatch.
type BatchOptions struct {
	// K is the number of neighbors per query. Must be >= 1.
	K int

	// List selects the candidate list implementation. Default: ListFixed.
	List ListKind

	// Cutoff is the search radius (not squared). Nil means unbounded; a
	// zero radius returns exact matches only.
	Cutoff *float32

	// Workers is the number of goroutines. 0 means runtime.NumCPU().
	Workers int
}

// BatchResult is the outcome of one query in a batch.
type BatchResult struct {
	// Radius2 is the final pruning radius (squared) returned by the traversal.
	Radius2 float32
	// Neighbors are the neighbors found, nearest first.
	Neighbors []Neighbor
}

// applyDefaults fills in zero-valued options with their defaults.
func (o *BatchOptions) applyDefaults() {
	if o.List == "" {
		o.List = ListFixed
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
}

// radius returns the search radius selected by Cutoff.
func (o BatchOptions) radius() float32 {
	if o.Cutoff == nil {
		return DefaultCutoff
	}
	return *o.Cutoff
}

// QueryBatch answers every query independently using d. Queries are split
// into contiguous ranges, one per worker; each worker owns one candidate list
// and resets it between queries, so workers share nothing but the read-only
// tree. Results are in query order. The context is checked between queries.
func QueryBatch[D any, P Point[P], T DataTraits[D, P]](ctx context.Context, d *Dispatcher[D, P, T], tree *Tree[D, P, T], queries []P, opts BatchOptions) ([]BatchResult, error) {
	opts.applyDefaults()
	cutoff := opts.radius()
	if _, err := NewCandidateList(opts.List, opts.K, cutoff); err != nil {
		return nil, err
	}

	results := make([]BatchResult, len(queries))
	if len(queries) == 0 {
		return results, nil
	}

	workers := min(opts.Workers, len(queries))
	perWorker := (len(queries) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(queries); start += perWorker {
		end := min(start+perWorker, len(queries))
		g.Go(func() error {
			list, err := NewCandidateList(opts.List, opts.K, cutoff)
			if err != nil {
				return err
			}
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				list.Reset(cutoff)
				radius := d.KNN(list, tree, queries[i])
				results[i] = BatchResult{Radius2: radius, Neighbors: Neighbors(list)}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
