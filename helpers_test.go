package kdknn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomVec2s(rng *rand.Rand, n int) []Vec2 {
	out := make([]Vec2, n)
	for i := range out {
		out[i] = Vec2{rng.Float32() * 100, rng.Float32() * 100}
	}
	return out
}

func randomVec3s(rng *rand.Rand, n int) []Vec3 {
	out := make([]Vec3, n)
	for i := range out {
		out[i] = Vec3{rng.Float32() * 100, rng.Float32() * 100, rng.Float32() * 100}
	}
	return out
}

// gridVec2s returns points on an integer grid, which produces many equal
// distances and coordinates equal to split positions.
func gridVec2s(side int) []Vec2 {
	out := make([]Vec2, 0, side*side)
	for x := 0; x < side; x++ {
		for y := 0; y < side; y++ {
			out = append(out, Vec2{float32(x), float32(y)})
		}
	}
	return out
}

func mustBuild[P Point[P]](t testing.TB, points []P, leafSize int) *PointTree[P] {
	t.Helper()
	tree, err := BuildPointTree(points, BuildOptions{LeafSize: leafSize})
	require.NoError(t, err)
	return tree
}

// bruteNeighbors returns the exact k nearest neighbors in rank order.
func bruteNeighbors[P Point[P]](points []P, query P, k int, cutoff float32) []Neighbor {
	list := NewFixedCandidateList(k, cutoff)
	BruteForce[P, P](list, points, PointData[P]{}, query)
	return Neighbors(list)
}

type traversal[P Point[P]] struct {
	name string
	run  func(result CandidateList, tree *PointTree[P], query P, obs Observer) float32
}

func traversals[P Point[P]]() []traversal[P] {
	return []traversal[P]{
		{"default", func(r CandidateList, t *PointTree[P], q P, o Observer) float32 { return TraverseDefault(r, t, q, o) }},
		{"closest-corner", func(r CandidateList, t *PointTree[P], q P, o Observer) float32 {
			return TraverseClosestCorner(r, t, q, o)
		}},
	}
}

type listFactory struct {
	kind ListKind
	new  func(k int, cutoff float32) CandidateList
}

var listFactories = []listFactory{
	{ListFixed, func(k int, cutoff float32) CandidateList { return NewFixedCandidateList(k, cutoff) }},
	{ListHeap, func(k int, cutoff float32) CandidateList { return NewHeapCandidateList(k, cutoff) }},
}

// requireSameNeighbors checks got against the brute-force result want. Points
// tied at the final radius may be resolved in traversal order, so ranks are
// compared by distance and every returned id is checked against its point.
func requireSameNeighbors[P Point[P]](t *testing.T, points []P, query P, want, got []Neighbor, msgAndArgs ...any) {
	t.Helper()
	require.Len(t, got, len(want), msgAndArgs...)
	seen := make(map[int32]bool, len(got))
	for i := range want {
		require.Equal(t, want[i].Dist2, got[i].Dist2, msgAndArgs...)
		require.Equal(t, got[i].Dist2, SqrDistance(points[got[i].ID], query), msgAndArgs...)
		require.False(t, seen[got[i].ID], msgAndArgs...)
		seen[got[i].ID] = true
	}
}
