package kdknn

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryBatch_MatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	points := randomVec3s(rng, 2000)
	queries := randomVec3s(rng, 257)
	tree := mustBuild(t, points, 8)

	for _, cfg := range []Config{{}, {ImprovedTraversal: true}} {
		d, err := NewDispatcher(cfg, External[Vec3, Vec3, PointData[Vec3]]{}, nil)
		require.NoError(t, err)

		for _, kind := range []ListKind{ListFixed, ListHeap} {
			for _, workers := range []int{1, 3, 16} {
				results, err := QueryBatch(context.Background(), d, tree, queries, BatchOptions{K: 5, List: kind, Workers: workers})
				require.NoError(t, err)
				require.Len(t, results, len(queries))

				for i, q := range queries {
					list := NewFixedCandidateList(5, DefaultCutoff)
					radius := d.KNN(list, tree, q)
					assert.Equal(t, Neighbors(list), results[i].Neighbors, "%s/%s workers=%d query %d", cfg.Strategy(), kind, workers, i)
					assert.Equal(t, radius, results[i].Radius2)
				}
			}
		}
	}
}

func TestQueryBatch_Cutoff(t *testing.T) {
	tree := mustBuild(t, []Vec2{{0, 0}, {10, 0}}, 1)
	d, err := NewDispatcher(Config{}, External[Vec2, Vec2, PointData[Vec2]]{}, nil)
	require.NoError(t, err)

	cutoff := float32(2)
	results, err := QueryBatch(context.Background(), d, tree, []Vec2{{1, 0}, {50, 50}}, BatchOptions{K: 2, Cutoff: &cutoff})
	require.NoError(t, err)
	assert.Equal(t, []Neighbor{{ID: 0, Dist2: 1}}, results[0].Neighbors)
	assert.Empty(t, results[1].Neighbors)
	assert.Equal(t, float32(4), results[1].Radius2)
}

func TestQueryBatch_ZeroCutoff(t *testing.T) {
	points := []Vec2{{0, 0}, {3, 1}, {7, 2}, {9, 9}}
	tree := mustBuild(t, points, 1)
	queries := []Vec2{{3, 1}, {4, 4}, {9, 9}}

	for _, cfg := range []Config{{}, {ImprovedTraversal: true}} {
		d, err := NewDispatcher(cfg, External[Vec2, Vec2, PointData[Vec2]]{}, nil)
		require.NoError(t, err)

		for _, kind := range []ListKind{ListFixed, ListHeap} {
			var zero float32
			results, err := QueryBatch(context.Background(), d, tree, queries, BatchOptions{K: 3, List: kind, Cutoff: &zero})
			require.NoError(t, err)
			assert.Equal(t, []Neighbor{{ID: 1, Dist2: 0}}, results[0].Neighbors, "%s/%s", cfg.Strategy(), kind)
			assert.Empty(t, results[1].Neighbors, "%s/%s", cfg.Strategy(), kind)
			assert.Equal(t, []Neighbor{{ID: 3, Dist2: 0}}, results[2].Neighbors, "%s/%s", cfg.Strategy(), kind)
			assert.Equal(t, float32(0), results[1].Radius2)
		}
	}
}

func TestQueryBatch_Empty(t *testing.T) {
	tree := mustBuild(t, []Vec2{{0, 0}}, 1)
	d, err := NewDispatcher(Config{}, External[Vec2, Vec2, PointData[Vec2]]{}, nil)
	require.NoError(t, err)

	results, err := QueryBatch(context.Background(), d, tree, nil, BatchOptions{K: 1})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestQueryBatch_InvalidOptions(t *testing.T) {
	tree := mustBuild(t, []Vec2{{0, 0}}, 1)
	d, err := NewDispatcher(Config{}, External[Vec2, Vec2, PointData[Vec2]]{}, nil)
	require.NoError(t, err)

	_, err = QueryBatch(context.Background(), d, tree, []Vec2{{0, 0}}, BatchOptions{K: 0})
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = QueryBatch(context.Background(), d, tree, []Vec2{{0, 0}}, BatchOptions{K: 1, List: "tree"})
	assert.Error(t, err)
}

func TestQueryBatch_Canceled(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tree := mustBuild(t, randomVec2s(rng, 100), 4)
	d, err := NewDispatcher(Config{}, External[Vec2, Vec2, PointData[Vec2]]{}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = QueryBatch(ctx, d, tree, randomVec2s(rng, 50), BatchOptions{K: 3, Workers: 4})
	assert.ErrorIs(t, err, context.Canceled)
}
