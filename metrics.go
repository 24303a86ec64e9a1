package main

import (
	"net/http"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/undisputed-seraphim/crdt/replica"
)

type SimMetrics struct {
	Replica *replica.Metrics
}

func NewSimMetrics(prometheusAddr string) *SimMetrics {

	m := &SimMetrics{}

	if prometheusAddr == "" {
		m.Replica = replica.NopMetrics()
	} else {
		m.Replica = &replica.Metrics{
			Operations: prometheus.NewCounterFrom(prom.CounterOpts{
				Namespace: "crdt",
				Subsystem: "replica",
				Name:      "operations_total",
				Help:      "Number of local mutating operations",
			}, nil),
			Merges: prometheus.NewCounterFrom(prom.CounterOpts{
				Namespace: "crdt",
				Subsystem: "replica",
				Name:      "merges_total",
				Help:      "Number of state merges",
			}, nil),
		}
	}

	return m
}

func runPromHTTP(logger log.Logger, addr string) {

	if addr == "" {
		level.Debug(logger).Log("msg", "prometheus addr is empty, not exposing prometheus metrics")
		return
	}

	http.Handle("/metrics", promhttp.Handler())

	level.Info(logger).Log("msg", "prometheus handler listening", "addr", addr)

	err := http.ListenAndServe(addr, nil)
	level.Error(logger).Log("msg", "failed to serve prometheus metrics", "err", err)
}
