package main

import (
	"flag"
	"os"
	"sort"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
	"github.com/undisputed-seraphim/crdt/config"
	"github.com/undisputed-seraphim/crdt/replica"
)

// Functions

// initLogger initializes a JSON gokit-logger set
// to the according log level supplied via cli flag.
func initLogger(loglevel string) log.Logger {

	logger := log.NewJSONLogger(log.NewSyncWriter(os.Stdout))
	logger = log.With(logger,
		"ts", log.DefaultTimestampUTC,
		"caller", log.DefaultCaller,
	)

	switch strings.ToLower(loglevel) {
	case "info":
		logger = level.NewFilter(logger, level.AllowInfo())
	case "warn":
		logger = level.NewFilter(logger, level.AllowWarn())
	case "error":
		logger = level.NewFilter(logger, level.AllowError())
	default:
		logger = level.NewFilter(logger, level.AllowDebug())
	}

	return logger
}

// runSimulation builds the configured replica group, applies
// each replica's local operations and gossips state around
// the ring until all replicas converged. It returns the
// converged group for inspection.
func runSimulation(conf *config.Config, logger log.Logger, m *replica.Metrics) ([]*replica.Replica, error) {

	size := len(conf.Replicas)

	// Stable order so runs are reproducible.
	names := make([]string, 0, size)
	for name := range conf.Replicas {
		names = append(names, name)
	}
	sort.Strings(names)

	replicas := make([]*replica.Replica, 0, size)
	for _, name := range names {

		r, err := replica.New(name, conf.Replicas[name].Index, size, logger, m)
		if err != nil {
			return nil, err
		}

		replicas = append(replicas, r)
	}

	// Apply the configured local operations on every
	// replica in isolation.
	for i, name := range names {

		rc := conf.Replicas[name]

		for n := 0; n < rc.Increments; n++ {
			if err := replicas[i].Increment(); err != nil {
				return nil, err
			}
		}

		for n := 0; n < rc.Decrements; n++ {
			if err := replicas[i].Decrement(); err != nil {
				return nil, err
			}
		}

		for _, item := range rc.AddItems {
			replicas[i].AddItem(item)
		}
	}

	// Gossip pairwise around the ring. One full round
	// already converges a ring because Sync merges in both
	// directions; further rounds exercise idempotence.
	for round := 1; round <= conf.Rounds; round++ {

		for i := range replicas {
			if err := replicas[i].Sync(replicas[(i+1)%size]); err != nil {
				return nil, err
			}
		}

		level.Info(logger).Log(
			"msg", "finished synchronization round",
			"round", round,
			"counter", replicas[0].CounterValue(),
		)
	}

	for i := 1; i < size; i++ {
		if !replicas[0].Converged(replicas[i]) {
			return nil, errors.Errorf("replicas %s and %s failed to converge", replicas[0].Name(), replicas[i].Name())
		}
	}

	return replicas, nil
}

func main() {

	// Parse command-line flag that defines a config path.
	configFlag := flag.String("config", "config.toml", "Provide path to configuration file in TOML syntax.")
	loglevelFlag := flag.String("loglevel", "debug", "This flag sets the default logging level.")
	flag.Parse()

	logger := initLogger(*loglevelFlag)

	// Read configuration from file.
	conf, err := config.LoadConfig(*configFlag)
	if err != nil {
		level.Error(logger).Log(
			"msg", "failed to load the config", "err", err,
		)
		os.Exit(1)
	}

	metrics := NewSimMetrics(conf.PrometheusAddr)
	go runPromHTTP(logger, conf.PrometheusAddr)

	replicas, err := runSimulation(conf, logger, metrics.Replica)
	if err != nil {
		level.Error(logger).Log(
			"msg", "failed to converge the replica group",
			"err", err,
		)
		os.Exit(2)
	}

	level.Info(logger).Log(
		"msg", "replica group converged",
		"replicas", len(replicas),
		"counter", replicas[0].CounterValue(),
		"items", strings.Join(replicas[0].Items(), ","),
	)
}
