package kdknn

// FixedCandidateList stores the k best candidates in an array kept sorted in
// ascending key order. Insertion costs O(k) no matter where the new candidate
// lands, which is cheap for small k and free of data-dependent branches.
type FixedCandidateList struct {
	entries []uint64
}

var _ CandidateList = (*FixedCandidateList)(nil)

// NewFixedCandidateList returns a list of capacity k whose slots all start at
// distance cutoff² with id NoPointID. Pass DefaultCutoff for an unbounded
// search. k must be positive.
func NewFixedCandidateList(k int, cutoff float32) *FixedCandidateList {
	l := &FixedCandidateList{entries: make([]uint64, k)}
	initEntries(l.entries, cutoff)
	return l
}

// Reset clears the list for reuse with a new cutoff radius.
func (l *FixedCandidateList) Reset(cutoff float32) {
	initEntries(l.entries, cutoff)
}

// Push inserts a candidate by carrying it through every slot, leaving the
// smaller key in place and moving the larger one on. The largest key falls
// off the end.
func (l *FixedCandidateList) Push(dist2 float32, id int32) {
	v := Encode(dist2, id)
	for i, e := range l.entries {
		l.entries[i] = min(e, v)
		v = max(e, v)
	}
}

// MaxRadius2 returns the squared distance of the k-th (largest) slot.
func (l *FixedCandidateList) MaxRadius2() float32 {
	return DecodeDist2(l.entries[len(l.entries)-1])
}

func (l *FixedCandidateList) InitialCullDist2() float32 { return l.MaxRadius2() }
func (l *FixedCandidateList) ReturnValue() float32      { return l.MaxRadius2() }
func (l *FixedCandidateList) K() int                    { return len(l.entries) }
func (l *FixedCandidateList) Dist2(i int) float32       { return DecodeDist2(l.entries[i]) }
func (l *FixedCandidateList) PointID(i int) int32       { return DecodePointID(l.entries[i]) }

func (l *FixedCandidateList) ProcessCandidate(id int32, dist2 float32) float32 {
	l.Push(dist2, id)
	return l.MaxRadius2()
}
