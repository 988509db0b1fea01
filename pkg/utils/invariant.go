// Package utils hosts the cross-cutting helpers of clocklab: invariant
// reporting, logging setup and flag helpers for tests.
//
// Invariants are conditions that must hold unless there is a bug in the
// replacement engines themselves. Think of what you'd `panic()` on, but
// without crashing a long simulation run just because one policy misbehaved.
// A violated invariant records a structured error log and bumps a monitoring
// counter; under test mode it panics so a buggy engine fails its tests
// immediately. It remains up to the caller to handle the erroneous case, for
// example by skipping the rest of the computation.
//
// Do not raise invariants for conditions driven by external input; a
// malformed trace file is an error, not an invariant violation. A descriptor
// found in two lists at once is.

package utils

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	promclient "github.com/prometheus/client_model/go"
)

var invariantsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "clocklab_invariants_total",
	Help: "The total number of invariant violations",
}, []string{
	"module", // The module in which this invariant occurred.
	"type",   // The type of the invariant that occurred.
})

// RaiseInvariant reports a violated invariant. The violation is logged and
// counted; in test mode it also panics so the offending engine fails loudly.
func RaiseInvariant(module, invariantType, msg string, args ...any) {
	invariantsMetric.WithLabelValues(module, invariantType).Inc()
	slog.With("invariant", invariantType, "module", module).Error(msg, args...)
	if IsTestMode {
		panic("invariant violated: " + invariantType)
	}
}

// GetMetricValue returns the current value of the invariant metric with labels `module` and `invariantType`.
func GetMetricValue(module, invariantType string) int {
	var metric = &promclient.Metric{}
	if err := invariantsMetric.WithLabelValues(module, invariantType).Write(metric); err != nil {
		slog.Error(err.Error())
		return 0
	}
	return int(metric.Counter.GetValue())
}
