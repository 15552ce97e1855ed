package tinystore

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordCreate is called after each create operation.
	RecordCreate(duration time.Duration, err error)

	// RecordDestroy is called after each destroy operation.
	RecordDestroy(duration time.Duration, err error)

	// RecordUpdate is called after each update operation.
	RecordUpdate(duration time.Duration, err error)

	// RecordFind is called after each find operation.
	RecordFind(duration time.Duration, err error)

	// RecordQuery is called after each query operation.
	// matches is the number of elements returned.
	RecordQuery(matches int, duration time.Duration, err error)

	// RecordSnapshot is called after each dump operation.
	RecordSnapshot(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCreate(time.Duration, error)     {}
func (NoopMetricsCollector) RecordDestroy(time.Duration, error)    {}
func (NoopMetricsCollector) RecordUpdate(time.Duration, error)     {}
func (NoopMetricsCollector) RecordFind(time.Duration, error)       {}
func (NoopMetricsCollector) RecordQuery(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSnapshot(time.Duration, error)   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CreateCount        atomic.Int64
	CreateErrors       atomic.Int64
	DestroyCount       atomic.Int64
	DestroyErrors      atomic.Int64
	UpdateCount        atomic.Int64
	UpdateErrors       atomic.Int64
	FindCount          atomic.Int64
	FindErrors         atomic.Int64
	QueryCount         atomic.Int64
	QueryErrors        atomic.Int64
	QueryMatches       atomic.Int64
	SnapshotCount      atomic.Int64
	SnapshotErrors     atomic.Int64
	SnapshotTotalNanos atomic.Int64
}

// RecordCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCreate(duration time.Duration, err error) {
	b.CreateCount.Add(1)
	if err != nil {
		b.CreateErrors.Add(1)
	}
}

// RecordDestroy implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDestroy(duration time.Duration, err error) {
	b.DestroyCount.Add(1)
	if err != nil {
		b.DestroyErrors.Add(1)
	}
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(duration time.Duration, err error) {
	b.UpdateCount.Add(1)
	if err != nil {
		b.UpdateErrors.Add(1)
	}
}

// RecordFind implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFind(duration time.Duration, err error) {
	b.FindCount.Add(1)
	if err != nil {
		b.FindErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(matches int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryMatches.Add(int64(matches))
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(duration time.Duration, err error) {
	b.SnapshotCount.Add(1)
	b.SnapshotTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SnapshotErrors.Add(1)
	}
}
