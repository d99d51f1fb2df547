package kdknn

import "fmt"

// Strategy identifies a traversal algorithm.
type Strategy int

const (
	// StrategyDefault descends with an explicit stack and culls by the
	// distance to splitting planes.
	StrategyDefault Strategy = iota
	// StrategyClosestCorner descends with an explicit stack and culls by the
	// distance to the closest point of each subtree's bounding region.
	StrategyClosestCorner
	// StrategyStackFree culls by plane distance without a stack.
	StrategyStackFree
	// StrategyStackFreeImproved culls by bounding region without a stack.
	StrategyStackFreeImproved
)

func (s Strategy) String() string {
	switch s {
	case StrategyDefault:
		return "default"
	case StrategyClosestCorner:
		return "closest-corner"
	case StrategyStackFree:
		return "stack-free"
	case StrategyStackFreeImproved:
		return "stack-free-improved"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Config selects the traversal used by a Dispatcher. It is read once when the
// dispatcher is created; queries never branch on it.
type Config struct {
	// ImprovedTraversal culls by bounding region instead of splitting plane.
	ImprovedTraversal bool `envconfig:"IMPROVED_TRAVERSAL" default:"false"`

	// StackFree selects the stack-free traversals. These are not part of this
	// package and must be supplied by the caller.
	StackFree bool `envconfig:"STACK_FREE" default:"false"`

	// Stats reports traversal events to the dispatcher's Observer.
	Stats bool `envconfig:"STATS" default:"false"`
}

// Strategy returns the traversal selected by the configuration.
func (c Config) Strategy() Strategy {
	switch {
	case c.ImprovedTraversal && c.StackFree:
		return StrategyStackFreeImproved
	case c.ImprovedTraversal:
		return StrategyClosestCorner
	case c.StackFree:
		return StrategyStackFree
	default:
		return StrategyDefault
	}
}

// TraversalFunc is the call contract shared by every traversal over the
// explicit node layout. It writes candidates into result and returns
// result.ReturnValue().
type TraversalFunc[D any, P Point[P], T DataTraits[D, P]] func(result CandidateList, tree *Tree[D, P, T], query P, obs Observer) float32

// External supplies the traversals that this package does not implement.
type External[D any, P Point[P], T DataTraits[D, P]] struct {
	StackFree         TraversalFunc[D, P, T]
	StackFreeImproved TraversalFunc[D, P, T]
}

// Dispatcher runs kNN queries with the traversal chosen by a Config. It holds
// no per-query state and is safe for concurrent use.
type Dispatcher[D any, P Point[P], T DataTraits[D, P]] struct {
	strategy Strategy
	obs      Observer
	traverse func(result CandidateList, tree *Tree[D, P, T], query P) float32
}

// NewDispatcher resolves the traversal selected by cfg. obs receives events
// when cfg.Stats is set; a nil obs then defaults to a fresh Counter. It
// returns ErrStrategyUnavailable when cfg selects a stack-free traversal that
// ext does not provide.
func NewDispatcher[D any, P Point[P], T DataTraits[D, P]](cfg Config, ext External[D, P, T], obs Observer) (*Dispatcher[D, P, T], error) {
	d := &Dispatcher[D, P, T]{strategy: cfg.Strategy()}
	if cfg.Stats {
		if obs == nil {
			obs = &Counter{}
		}
		d.obs = obs
	} else {
		d.obs = NopObserver{}
	}

	switch d.strategy {
	case StrategyDefault:
		if cfg.Stats {
			d.traverse = func(r CandidateList, t *Tree[D, P, T], q P) float32 { return TraverseDefault(r, t, q, obs) }
		} else {
			d.traverse = func(r CandidateList, t *Tree[D, P, T], q P) float32 { return TraverseDefault(r, t, q, NopObserver{}) }
		}
	case StrategyClosestCorner:
		if cfg.Stats {
			d.traverse = func(r CandidateList, t *Tree[D, P, T], q P) float32 { return TraverseClosestCorner(r, t, q, obs) }
		} else {
			d.traverse = func(r CandidateList, t *Tree[D, P, T], q P) float32 {
				return TraverseClosestCorner(r, t, q, NopObserver{})
			}
		}
	case StrategyStackFree, StrategyStackFreeImproved:
		fn := ext.StackFree
		if d.strategy == StrategyStackFreeImproved {
			fn = ext.StackFreeImproved
		}
		if fn == nil {
			return nil, fmt.Errorf("%w: %s", ErrStrategyUnavailable, d.strategy)
		}
		o := d.obs
		d.traverse = func(r CandidateList, t *Tree[D, P, T], q P) float32 { return fn(r, t, q, o) }
	}
	return d, nil
}

// Strategy returns the resolved traversal.
func (d *Dispatcher[D, P, T]) Strategy() Strategy { return d.strategy }

// Observer returns the observer receiving traversal events. It is a
// NopObserver unless the dispatcher was created with Stats enabled.
func (d *Dispatcher[D, P, T]) Observer() Observer { return d.obs }

// KNN finds the nearest neighbors of query, writing them into result, and
// returns the final pruning radius (squared).
func (d *Dispatcher[D, P, T]) KNN(result CandidateList, tree *Tree[D, P, T], query P) float32 {
	d.traverse(result, tree, query)
	return result.ReturnValue()
}

// KNN runs a plane-distance query without instrumentation and returns the
// final pruning radius (squared). result is left populated.
func KNN[D any, P Point[P], T DataTraits[D, P], L CandidateList](result L, tree *Tree[D, P, T], query P) float32 {
	TraverseDefault(result, tree, query, NopObserver{})
	return result.ReturnValue()
}

// KNNClosestCorner is KNN using bounding-region culling.
func KNNClosestCorner[D any, P Point[P], T DataTraits[D, P], L CandidateList](result L, tree *Tree[D, P, T], query P) float32 {
	TraverseClosestCorner(result, tree, query, NopObserver{})
	return result.ReturnValue()
}
