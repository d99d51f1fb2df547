package kdknn

// HeapCandidateList stores the k best candidates in a binary max-heap whose
// root is the current k-th candidate. Candidates that do not beat the root
// are rejected with a single comparison; improvements cost O(log k).
//
// Slots are in heap order, not rank order. Use Neighbors for a sorted
// read-out.
type HeapCandidateList struct {
	entries []uint64
}

var _ CandidateList = (*HeapCandidateList)(nil)

// NewHeapCandidateList returns a heap of capacity k whose slots all start at
// distance cutoff² with id NoPointID. k must be positive.
func NewHeapCandidateList(k int, cutoff float32) *HeapCandidateList {
	l := &HeapCandidateList{entries: make([]uint64, k)}
	initEntries(l.entries, cutoff)
	return l
}

// Reset clears the heap for reuse with a new cutoff radius. Every slot holds
// the same key afterwards, which is a valid heap.
func (l *HeapCandidateList) Reset(cutoff float32) {
	initEntries(l.entries, cutoff)
}

// Push replaces the root with the candidate if it is strictly better and
// sifts it down to its place.
func (l *HeapCandidateList) Push(dist2 float32, id int32) {
	e := Encode(dist2, id)
	entries := l.entries
	k := len(entries)
	if e >= entries[0] {
		return
	}

	pos := 0
	for {
		largest := k
		var largestValue uint64
		first := 2*pos + 1
		if first < k {
			largest = first
			largestValue = entries[first]
		}
		if second := first + 1; second < k && entries[second] > largestValue {
			largest = second
			largestValue = entries[second]
		}

		if largest == k || largestValue < e {
			entries[pos] = e
			return
		}
		entries[pos] = largestValue
		pos = largest
	}
}

// MaxRadius2 returns the squared distance stored at the root.
func (l *HeapCandidateList) MaxRadius2() float32 {
	return DecodeDist2(l.entries[0])
}

func (l *HeapCandidateList) InitialCullDist2() float32 { return l.MaxRadius2() }
func (l *HeapCandidateList) ReturnValue() float32      { return l.MaxRadius2() }
func (l *HeapCandidateList) K() int                    { return len(l.entries) }
func (l *HeapCandidateList) Dist2(i int) float32       { return DecodeDist2(l.entries[i]) }
func (l *HeapCandidateList) PointID(i int) int32       { return DecodePointID(l.entries[i]) }

func (l *HeapCandidateList) ProcessCandidate(id int32, dist2 float32) float32 {
	l.Push(dist2, id)
	return l.MaxRadius2()
}
