package tagspace

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordTag is called after each tagging operation. objects is the
	// number of objects tagged, duration the total time taken, err is nil
	// on success.
	RecordTag(objects int, duration time.Duration, err error)

	// RecordFind is called after each query. dimensions is the number of
	// (name, selector) pairs, results the number of objects returned.
	RecordFind(dimensions, results int, duration time.Duration, err error)

	// RecordRemove is called after each removal operation.
	RecordRemove(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTag(int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordFind(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRemove(time.Duration, error)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	TagCount        atomic.Int64
	TagErrors       atomic.Int64
	TagObjects      atomic.Int64
	TagTotalNanos   atomic.Int64
	FindCount       atomic.Int64
	FindErrors      atomic.Int64
	FindResults     atomic.Int64
	FindTotalNanos  atomic.Int64
	RemoveCount     atomic.Int64
	RemoveErrors    atomic.Int64
	RemoveTotalNano atomic.Int64
}

// RecordTag implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTag(objects int, duration time.Duration, err error) {
	b.TagCount.Add(1)
	b.TagObjects.Add(int64(objects))
	b.TagTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.TagErrors.Add(1)
	}
}

// RecordFind implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFind(dimensions, results int, duration time.Duration, err error) {
	b.FindCount.Add(1)
	b.FindResults.Add(int64(results))
	b.FindTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FindErrors.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(duration time.Duration, err error) {
	b.RemoveCount.Add(1)
	b.RemoveTotalNano.Add(duration.Nanoseconds())
	if err != nil {
		b.RemoveErrors.Add(1)
	}
}
