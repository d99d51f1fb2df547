package kdknn

import (
	"cmp"
	"fmt"
	"slices"
)

// CandidateList keeps the best k (distance, id) pairs seen during one query.
//
// Traversals only use InitialCullDist2 and ProcessCandidate; the remaining
// methods are for reading the result once the query is done. A list is owned
// by a single worker and must not be shared between concurrent queries.
type CandidateList interface {
	// InitialCullDist2 returns the pruning radius (squared) before any
	// candidate has been processed.
	InitialCullDist2() float32

	// ProcessCandidate offers a point and returns the updated pruning radius.
	ProcessCandidate(id int32, dist2 float32) float32

	// ReturnValue returns the squared distance of the current k-th candidate.
	ReturnValue() float32

	// K returns the capacity of the list.
	K() int

	// Dist2 returns the squared distance stored in slot i.
	Dist2(i int) float32

	// PointID returns the identifier stored in slot i, or NoPointID when the
	// slot is unfilled.
	PointID(i int) int32
}

// ResettableList is a CandidateList that can be cleared and reused, so one
// worker can answer many queries with a single allocation.
type ResettableList interface {
	CandidateList
	Reset(cutoff float32)
}

// ListKind selects a CandidateList implementation.
type ListKind string

const (
	// ListFixed selects FixedCandidateList, best for small k.
	ListFixed ListKind = "fixed"
	// ListHeap selects HeapCandidateList, best for larger k.
	ListHeap ListKind = "heap"
)

// NewCandidateList returns an empty list of the given kind and capacity.
func NewCandidateList(kind ListKind, k int, cutoff float32) (ResettableList, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidK, k)
	}
	switch kind {
	case ListFixed:
		return NewFixedCandidateList(k, cutoff), nil
	case ListHeap:
		return NewHeapCandidateList(k, cutoff), nil
	default:
		return nil, fmt.Errorf("kdknn: unknown candidate list kind %q", kind)
	}
}

// Neighbor is one entry of a query result.
type Neighbor struct {
	ID    int32
	Dist2 float32
}

// Neighbors returns the filled slots of list in ascending (distance, id)
// order. It works for any CandidateList, including ones whose slots are not
// kept sorted.
func Neighbors(list CandidateList) []Neighbor {
	out := make([]Neighbor, 0, list.K())
	for i := 0; i < list.K(); i++ {
		id := list.PointID(i)
		if id == NoPointID {
			continue
		}
		out = append(out, Neighbor{ID: id, Dist2: list.Dist2(i)})
	}
	slices.SortFunc(out, func(a, b Neighbor) int {
		return cmp.Compare(Encode(a.Dist2, a.ID), Encode(b.Dist2, b.ID))
	})
	return out
}

// initEntries fills entries with the empty-slot key for the given cutoff
// radius (not squared).
func initEntries(entries []uint64, cutoff float32) {
	empty := Encode(cutoff*cutoff, NoPointID)
	for i := range entries {
		entries[i] = empty
	}
}
