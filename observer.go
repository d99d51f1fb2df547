package kdknn

import "sync/atomic"

// Observer receives traversal events for profiling. Implementations shared by
// concurrent queries must be safe for concurrent use; the events carry no
// ordering and may be dropped without affecting results.
type Observer interface {
	// NodeVisited is called once for every tree node a traversal visits.
	NodeVisited()
	// DistanceEvaluated is called once for every primitive whose distance to
	// the query is computed.
	DistanceEvaluated()
}

// NopObserver ignores all events. It is the default observer.
type NopObserver struct{}

func (NopObserver) NodeVisited()       {}
func (NopObserver) DistanceEvaluated() {}

// Counter counts traversal events with atomic adds, so one Counter can be
// shared by any number of workers.
type Counter struct {
	nodes     atomic.Int64
	distances atomic.Int64
}

var _ Observer = (*Counter)(nil)

func (c *Counter) NodeVisited()       { c.nodes.Add(1) }
func (c *Counter) DistanceEvaluated() { c.distances.Add(1) }

// Nodes returns the number of nodes visited.
func (c *Counter) Nodes() int64 { return c.nodes.Load() }

// Distances returns the number of distance evaluations.
func (c *Counter) Distances() int64 { return c.distances.Load() }

// Total returns nodes visited plus distance evaluations, the single figure
// reported by traversal statistics.
func (c *Counter) Total() int64 { return c.Nodes() + c.Distances() }

// Reset sets both counts to zero.
func (c *Counter) Reset() {
	c.nodes.Store(0)
	c.distances.Store(0)
}
