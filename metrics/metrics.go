// Package metrics exports kdknn traversal events as Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/TrevorS/kdknn"
)

// PrometheusObserver is a kdknn.Observer backed by Prometheus counters. It is
// safe for concurrent use by any number of queries.
type PrometheusObserver struct {
	nodesVisited        prometheus.Counter
	distanceEvaluations prometheus.Counter
}

var _ kdknn.Observer = (*PrometheusObserver)(nil)

// NewPrometheusObserver creates the counters and registers them with reg.
// constLabels are attached to both counters, so several observers (one per
// strategy, say) can share a registry.
func NewPrometheusObserver(reg prometheus.Registerer, constLabels prometheus.Labels) (*PrometheusObserver, error) {
	o := &PrometheusObserver{
		nodesVisited: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "kdknn_nodes_visited_total",
			Help:        "Total number of k-d tree nodes visited by kNN traversals",
			ConstLabels: constLabels,
		}),
		distanceEvaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "kdknn_distance_evaluations_total",
			Help:        "Total number of point distance evaluations by kNN traversals",
			ConstLabels: constLabels,
		}),
	}
	for _, c := range []prometheus.Collector{o.nodesVisited, o.distanceEvaluations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *PrometheusObserver) NodeVisited()       { o.nodesVisited.Inc() }
func (o *PrometheusObserver) DistanceEvaluated() { o.distanceEvaluations.Inc() }
