package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrevorS/kdknn"
)

func TestPrometheusObserver_CountsTraversal(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := NewPrometheusObserver(reg, nil)
	require.NoError(t, err)

	points := []kdknn.Vec2{{0, 0}, {1, 0}, {0, 1}, {5, 5}}
	tree, err := kdknn.BuildPointTree(points, kdknn.BuildOptions{LeafSize: 4})
	require.NoError(t, err)

	kdknn.TraverseDefault(kdknn.NewFixedCandidateList(2, kdknn.DefaultCutoff), tree, kdknn.Vec2{0, 0}, obs)

	assert.Equal(t, 1.0, testutil.ToFloat64(obs.nodesVisited))
	assert.Equal(t, 4.0, testutil.ToFloat64(obs.distanceEvaluations))
}

func TestPrometheusObserver_WithDispatcher(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := NewPrometheusObserver(reg, prometheus.Labels{"strategy": "closest-corner"})
	require.NoError(t, err)

	points := []kdknn.Vec2{{0, 0}, {1, 0}, {0, 1}, {5, 5}, {2, 2}}
	tree, err := kdknn.BuildPointTree(points, kdknn.BuildOptions{LeafSize: 1})
	require.NoError(t, err)

	d, err := kdknn.NewDispatcher(kdknn.Config{ImprovedTraversal: true, Stats: true}, kdknn.External[kdknn.Vec2, kdknn.Vec2, kdknn.PointData[kdknn.Vec2]]{}, obs)
	require.NoError(t, err)
	d.KNN(kdknn.NewHeapCandidateList(2, kdknn.DefaultCutoff), tree, kdknn.Vec2{5, 5})

	assert.Positive(t, testutil.ToFloat64(obs.nodesVisited))
	assert.Positive(t, testutil.ToFloat64(obs.distanceEvaluations))

	n, err := testutil.GatherAndCount(reg, "kdknn_nodes_visited_total", "kdknn_distance_evaluations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPrometheusObserver_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusObserver(reg, nil)
	require.NoError(t, err)

	_, err = NewPrometheusObserver(reg, nil)
	assert.Error(t, err)
}
