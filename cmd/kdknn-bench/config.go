package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/TrevorS/kdknn"
)

// envPrefix is the prefix of every environment variable read by the bench.
const envPrefix = "KDKNN"

// Config holds benchmark configuration.
type Config struct {
	kdknn.Config

	Points      int      `envconfig:"POINTS" default:"100000"`
	Queries     int      `envconfig:"QUERIES" default:"10000"`
	Dims        int      `envconfig:"DIMS" default:"3"`
	K           int      `envconfig:"K" default:"8"`
	List        string   `envconfig:"LIST" default:"fixed"`
	LeafSize    int      `envconfig:"LEAF_SIZE" default:"8"`
	Cutoff      *float32 `envconfig:"CUTOFF"` // unset means unbounded
	Workers     int      `envconfig:"WORKERS" default:"0"`
	Seed        int64    `envconfig:"SEED" default:"42"`
	Sample      int      `envconfig:"SAMPLE" default:"200"` // queries checked against brute force
	MetricsAddr string   `envconfig:"METRICS_ADDR" default:""`
	LogFormat   string   `envconfig:"LOG_FORMAT" default:"text"`
	Debug       bool     `envconfig:"DEBUG" default:"false"`
}

// loadConfig reads an optional dotenv file, then the environment.
func loadConfig(envFile string) (Config, error) {
	var cfg Config
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.validate()
}

// radius returns the search radius, unbounded when CUTOFF is unset.
func (c Config) radius() float32 {
	if c.Cutoff == nil {
		return kdknn.DefaultCutoff
	}
	return *c.Cutoff
}

func (c Config) validate() error {
	if c.Points < 1 {
		return fmt.Errorf("POINTS must be >= 1, got %d", c.Points)
	}
	if c.Queries < 0 {
		return fmt.Errorf("QUERIES must be >= 0, got %d", c.Queries)
	}
	if c.Dims < 2 || c.Dims > 4 {
		return fmt.Errorf("DIMS must be 2, 3 or 4, got %d", c.Dims)
	}
	if c.K < 1 {
		return fmt.Errorf("K must be >= 1, got %d", c.K)
	}
	if c.Cutoff != nil && *c.Cutoff < 0 {
		return fmt.Errorf("CUTOFF must be >= 0, got %v", *c.Cutoff)
	}
	switch kdknn.ListKind(c.List) {
	case kdknn.ListFixed, kdknn.ListHeap:
	default:
		return fmt.Errorf("LIST must be %q or %q, got %q", kdknn.ListFixed, kdknn.ListHeap, c.List)
	}
	return nil
}
