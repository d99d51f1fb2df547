package kdknn

import (
	"math/rand"
	"testing"
)

func benchKNN(b *testing.B, n, k int, list ListKind, strategy Strategy) {
	b.Helper()
	rng := rand.New(rand.NewSource(42))
	tree := mustBuild(b, randomVec3s(rng, n), 8)
	queries := randomVec3s(rng, 1024)

	l, err := NewCandidateList(list, k, DefaultCutoff)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Reset(DefaultCutoff)
		q := queries[i%len(queries)]
		if strategy == StrategyClosestCorner {
			TraverseClosestCorner(l, tree, q, NopObserver{})
		} else {
			TraverseDefault(l, tree, q, NopObserver{})
		}
	}
}

func BenchmarkKNN_Default_Fixed_K8(b *testing.B) {
	benchKNN(b, 100000, 8, ListFixed, StrategyDefault)
}
func BenchmarkKNN_Default_Heap_K8(b *testing.B) {
	benchKNN(b, 100000, 8, ListHeap, StrategyDefault)
}
func BenchmarkKNN_ClosestCorner_Fixed_K8(b *testing.B) {
	benchKNN(b, 100000, 8, ListFixed, StrategyClosestCorner)
}
func BenchmarkKNN_ClosestCorner_Heap_K8(b *testing.B) {
	benchKNN(b, 100000, 8, ListHeap, StrategyClosestCorner)
}
func BenchmarkKNN_Default_Fixed_K64(b *testing.B) {
	benchKNN(b, 100000, 64, ListFixed, StrategyDefault)
}
func BenchmarkKNN_Default_Heap_K64(b *testing.B) {
	benchKNN(b, 100000, 64, ListHeap, StrategyDefault)
}

func benchPush(b *testing.B, l ResettableList) {
	b.Helper()
	rng := rand.New(rand.NewSource(42))
	dists := make([]float32, 4096)
	for i := range dists {
		dists[i] = rng.Float32() * 100
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%len(dists) == 0 {
			l.Reset(DefaultCutoff)
		}
		l.ProcessCandidate(int32(i), dists[i%len(dists)])
	}
}

func BenchmarkFixedCandidateList_Push_K8(b *testing.B) {
	benchPush(b, NewFixedCandidateList(8, DefaultCutoff))
}
func BenchmarkHeapCandidateList_Push_K8(b *testing.B) {
	benchPush(b, NewHeapCandidateList(8, DefaultCutoff))
}
func BenchmarkFixedCandidateList_Push_K64(b *testing.B) {
	benchPush(b, NewFixedCandidateList(64, DefaultCutoff))
}
func BenchmarkHeapCandidateList_Push_K64(b *testing.B) {
	benchPush(b, NewHeapCandidateList(64, DefaultCutoff))
}

func BenchmarkBuildTree_100k(b *testing.B) {
	points := randomVec3s(rand.New(rand.NewSource(42)), 100000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BuildPointTree(points, DefaultBuildOptions()); err != nil {
			b.Fatal(err)
		}
	}
}
