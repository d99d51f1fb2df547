// Command kdknn-bench builds a k-d tree over random points, answers a batch
// of kNN queries with the configured traversal, and reports throughput,
// nodes visited per query and recall against brute force.
//
// Configuration is read from KDKNN_* environment variables, optionally loaded
// from a dotenv file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gonum.org/v1/gonum/stat"

	"github.com/TrevorS/kdknn"
	"github.com/TrevorS/kdknn/metrics"
)

func main() {
	envFile := flag.String("env", ".env", "Dotenv file to load before reading the environment")
	flag.Parse()

	cfg, err := loadConfig(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kdknn-bench: %v\n", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := kdknn.NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if cfg.LogFormat == "json" {
		logger = kdknn.NewJSONLogger(level)
	}
	logger = logger.WithK(cfg.K).WithDimension(cfg.Dims)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var reg *prometheus.Registry
	if cfg.MetricsAddr != "" {
		reg = prometheus.NewRegistry()
		go serveMetrics(cfg.MetricsAddr, reg, logger)
	}

	switch cfg.Dims {
	case 2:
		err = run[kdknn.Vec2](ctx, cfg, reg, logger)
	case 3:
		err = run[kdknn.Vec3](ctx, cfg, reg, logger)
	case 4:
		err = run[kdknn.Vec4](ctx, cfg, reg, logger)
	}
	if err != nil {
		logger.Error("benchmark failed", "error", err)
		os.Exit(1)
	}
}

// run executes one benchmark. When reg is non-nil, traversal events are
// counted on it regardless of KDKNN_STATS.
func run[P kdknn.Point[P]](ctx context.Context, cfg Config, reg *prometheus.Registry, logger *kdknn.Logger) error {
	rng := rand.New(rand.NewSource(cfg.Seed))
	points := randomPoints[P](rng, cfg.Points)
	queries := randomPoints[P](rng, cfg.Queries)

	tree, err := kdknn.BuildPointTree(points, kdknn.BuildOptions{LeafSize: cfg.LeafSize, Logger: logger})
	if err != nil {
		return err
	}
	logger.Info("tree built",
		"points", tree.Len(),
		"nodes", len(tree.Nodes),
		"leaves", tree.NumLeaves(),
		"depth", tree.Depth(),
	)

	var obs kdknn.Observer
	if reg != nil {
		obs, err = metrics.NewPrometheusObserver(reg, prometheus.Labels{"strategy": cfg.Strategy().String()})
		if err != nil {
			return err
		}
		cfg.Stats = true
	}

	disp, err := kdknn.NewDispatcher(cfg.Config, kdknn.External[P, P, kdknn.PointData[P]]{}, obs)
	if err != nil {
		return err
	}

	opts := kdknn.BatchOptions{
		K:       cfg.K,
		List:    kdknn.ListKind(cfg.List),
		Cutoff:  cfg.Cutoff,
		Workers: cfg.Workers,
	}
	start := time.Now()
	results, err := kdknn.QueryBatch(ctx, disp, tree, queries, opts)
	elapsed := time.Since(start)
	logger.LogBatch(ctx, len(queries), elapsed, err)
	if err != nil {
		return err
	}
	if elapsed > 0 {
		logger.Info("throughput",
			"strategy", disp.Strategy().String(),
			"queries_per_second", float64(len(queries))/elapsed.Seconds(),
		)
	}
	if c, ok := disp.Observer().(*kdknn.Counter); ok {
		logger.Info("traversal stats", "nodes", c.Nodes(), "distances", c.Distances())
	}

	sample := min(cfg.Sample, len(queries))
	if sample == 0 {
		return nil
	}
	reportVisits(cfg, tree, queries[:sample], logger)
	return checkRecall(cfg, tree, queries[:sample], results[:sample], logger)
}

func randomPoints[P kdknn.Point[P]](rng *rand.Rand, n int) []P {
	out := make([]P, n)
	for i := range out {
		var p P
		for d := 0; d < p.Dims(); d++ {
			p = p.WithCoord(d, rng.Float32()*100)
		}
		out[i] = p
	}
	return out
}

// reportVisits logs the distribution of nodes visited per query for both
// explicit-stack traversals.
func reportVisits[P kdknn.Point[P]](cfg Config, tree *kdknn.PointTree[P], queries []P, logger *kdknn.Logger) {
	cutoff := cfg.radius()
	for _, strategy := range []kdknn.Strategy{kdknn.StrategyDefault, kdknn.StrategyClosestCorner} {
		visits := make([]float64, len(queries))
		for i, q := range queries {
			var c kdknn.Counter
			list := kdknn.NewFixedCandidateList(cfg.K, cutoff)
			if strategy == kdknn.StrategyClosestCorner {
				kdknn.TraverseClosestCorner(list, tree, q, &c)
			} else {
				kdknn.TraverseDefault(list, tree, q, &c)
			}
			visits[i] = float64(c.Nodes())
		}
		slices.Sort(visits)
		logger.Info("nodes visited per query",
			"strategy", strategy.String(),
			"mean", stat.Mean(visits, nil),
			"stddev", stat.StdDev(visits, nil),
			"p50", stat.Quantile(0.5, stat.Empirical, visits, nil),
			"p99", stat.Quantile(0.99, stat.Empirical, visits, nil),
		)
	}
}

// checkRecall compares the batch results with a brute-force scan.
func checkRecall[P kdknn.Point[P]](cfg Config, tree *kdknn.PointTree[P], queries []P, results []kdknn.BatchResult, logger *kdknn.Logger) error {
	cutoff := cfg.radius()
	var found, expected int
	for i, q := range queries {
		list := kdknn.NewFixedCandidateList(cfg.K, cutoff)
		kdknn.BruteForce(list, tree.Data, tree.Traits, q)
		want := kdknn.Neighbors(list)
		expected += len(want)
		for j, n := range results[i].Neighbors {
			if j < len(want) && n.Dist2 == want[j].Dist2 {
				found++
			}
		}
	}
	recall := 1.0
	if expected > 0 {
		recall = float64(found) / float64(expected)
	}
	logger.Info("recall", "queries", len(queries), "recall", recall)
	if recall < 1 {
		return errors.New("recall below 1.0")
	}
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *kdknn.Logger) {
	logger.Info("starting metrics server", "address", addr)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server failed", "error", err)
	}
}
