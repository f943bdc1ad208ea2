package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/libs/log"
)

// serveMetrics exposes the prometheus metrics at /metrics in the
// background. It does nothing when addr is empty.
func serveMetrics(addr string, logger log.Logger) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		logger.Info("Serving metrics", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("Metrics server stopped", "err", err)
		}
	}()
}
