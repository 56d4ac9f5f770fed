// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

// Package metrics provides internal metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the Prometheus instruments for spec parsing and tool
// invocation.
type Collector struct {
	specsLoaded       *prometheus.CounterVec
	operationsParsed  prometheus.Counter
	operationsSkipped prometheus.Counter

	invocationsTotal   *prometheus.CounterVec
	invocationDuration *prometheus.HistogramVec
	retriesTotal       *prometheus.CounterVec
}

// NewCollector creates a collector and registers its instruments with reg.
// Pass prometheus.DefaultRegisterer for process-wide metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		specsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "openapi2callables_specs_loaded_total",
			Help: "Number of OpenAPI specs loaded, by source format.",
		}, []string{"format"}),
		operationsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "openapi2callables_operations_parsed_total",
			Help: "Number of operations successfully parsed into descriptors.",
		}),
		operationsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "openapi2callables_operations_skipped_total",
			Help: "Number of operations skipped due to per-operation parse errors.",
		}),
		invocationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "openapi2callables_tool_invocations_total",
			Help: "Number of tool invocations, by operation and outcome.",
		}, []string{"operation_id", "outcome"}),
		invocationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "openapi2callables_tool_invocation_duration_seconds",
			Help:    "Wall-clock duration of tool invocations including retries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation_id"}),
		retriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "openapi2callables_tool_retries_total",
			Help: "Number of retry attempts performed, by operation.",
		}, []string{"operation_id"}),
	}
	if reg != nil {
		reg.MustRegister(
			c.specsLoaded,
			c.operationsParsed,
			c.operationsSkipped,
			c.invocationsTotal,
			c.invocationDuration,
			c.retriesTotal,
		)
	}
	return c
}

// SpecLoaded records one loaded spec.
func (c *Collector) SpecLoaded(format string) {
	if c == nil {
		return
	}
	c.specsLoaded.WithLabelValues(format).Inc()
}

// OperationParsed records one parsed operation.
func (c *Collector) OperationParsed() {
	if c == nil {
		return
	}
	c.operationsParsed.Inc()
}

// OperationSkipped records one skipped operation.
func (c *Collector) OperationSkipped() {
	if c == nil {
		return
	}
	c.operationsSkipped.Inc()
}

// Invocation records one completed tool invocation.
func (c *Collector) Invocation(operationID, outcome string, duration time.Duration) {
	if c == nil {
		return
	}
	c.invocationsTotal.WithLabelValues(operationID, outcome).Inc()
	c.invocationDuration.WithLabelValues(operationID).Observe(duration.Seconds())
}

// Retry records one retry attempt.
func (c *Collector) Retry(operationID string) {
	if c == nil {
		return
	}
	c.retriesTotal.WithLabelValues(operationID).Inc()
}
