package kdknn

import "fmt"

// ImplicitTraversal is the call contract for traversals over an implicit
// k-d tree: a flat array of points in tree order with no node records.
// worldBounds covers every point; traversals that cull by splitting plane
// ignore it.
type ImplicitTraversal[P Point[P]] func(result CandidateList, query P, worldBounds Box[P], points []P, obs Observer)

// ImplicitTraversals holds one implementation per strategy. This package does
// not provide them.
type ImplicitTraversals[P Point[P]] struct {
	Default           ImplicitTraversal[P]
	ClosestCorner     ImplicitTraversal[P]
	StackFree         ImplicitTraversal[P]
	StackFreeImproved ImplicitTraversal[P]
}

// ImplicitDispatcher routes queries over an implicit tree to the traversal
// selected by a Config.
type ImplicitDispatcher[P Point[P]] struct {
	strategy Strategy
	obs      Observer
	traverse ImplicitTraversal[P]
}

// NewImplicitDispatcher resolves the implicit traversal selected by cfg. It
// returns ErrStrategyUnavailable when impl lacks that traversal.
func NewImplicitDispatcher[P Point[P]](cfg Config, impl ImplicitTraversals[P], obs Observer) (*ImplicitDispatcher[P], error) {
	d := &ImplicitDispatcher[P]{strategy: cfg.Strategy(), obs: NopObserver{}}
	if cfg.Stats {
		if obs == nil {
			obs = &Counter{}
		}
		d.obs = obs
	}

	switch d.strategy {
	case StrategyDefault:
		d.traverse = impl.Default
	case StrategyClosestCorner:
		d.traverse = impl.ClosestCorner
	case StrategyStackFree:
		d.traverse = impl.StackFree
	case StrategyStackFreeImproved:
		d.traverse = impl.StackFreeImproved
	}
	if d.traverse == nil {
		return nil, fmt.Errorf("%w: implicit %s", ErrStrategyUnavailable, d.strategy)
	}
	return d, nil
}

// Strategy returns the resolved traversal.
func (d *ImplicitDispatcher[P]) Strategy() Strategy { return d.strategy }

// KNN finds the nearest neighbors of query among points and returns the final
// pruning radius (squared).
func (d *ImplicitDispatcher[P]) KNN(result CandidateList, query P, worldBounds Box[P], points []P) float32 {
	d.traverse(result, query, worldBounds, points, d.obs)
	return result.ReturnValue()
}
