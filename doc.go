// Package kdknn answers k-nearest-neighbor queries against an immutable
// spatial k-d tree.
//
// Each query is resolved independently: it owns a small candidate list and a
// fixed-size traversal stack, reads the shared tree, and touches no other
// shared state. Any number of queries can run concurrently on one tree.
//
// Basic usage:
//
//	tree, err := kdknn.BuildPointTree(points, kdknn.DefaultBuildOptions())
//	list := kdknn.NewFixedCandidateList(8, kdknn.DefaultCutoff)
//	radius2 := kdknn.KNN(list, tree, query)
//	for i := 0; i < list.K(); i++ {
//		// list.PointID(i) is the i-th nearest point (-1 if none),
//		// list.Dist2(i) its squared distance.
//	}
//
// # Candidate lists
//
// FixedCandidateList keeps its k slots sorted and inserts in O(k); it is the
// better choice for small k. HeapCandidateList is a bounded max-heap with
// O(1) rejection and O(log k) insertion; its slots are not in rank order, so
// read it out with Neighbors. Both pack each (squared distance, id) pair into
// one uint64 with Encode, whose unsigned order is distance-major, id-minor.
//
// # Traversals
//
// TraverseDefault culls deferred subtrees by the distance to their splitting
// plane. TraverseClosestCorner tracks the closest point of each subtree's
// bounding region and culls by the distance to it, which never visits more
// nodes. A Dispatcher picks one from a Config; stack-free traversals and
// implicit-layout traversals can be plugged in through External and
// ImplicitTraversals.
//
// # Instrumentation
//
// Traversals report node visits and distance evaluations to an Observer.
// NopObserver (the default) compiles to nothing, Counter counts atomically,
// and the metrics subpackage exports the counts to Prometheus.
package kdknn
