// Package telemetry declares provider contracts for metric, trace and log
// sinks. Providers are expected to be safe for sequential use from a single
// goroutine; nothing here implies internal locking.
package telemetry

import "context"

// Level is a log severity level.
type Level int

// Log severity levels, lowest to highest.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Labels are immutable key-value annotations on a measurement or record.
type Labels map[string]string

// MetricSink receives counter and gauge measurements.
type MetricSink interface {
	// Count adds delta to the named counter.
	Count(ctx context.Context, name string, delta int64, labels Labels) error

	// Gauge records the current value of the named gauge.
	Gauge(ctx context.Context, name string, value int64, labels Labels) error
}

// LogSink receives structured log records.
type LogSink interface {
	// Write records a single log entry.
	Write(ctx context.Context, level Level, message string, labels Labels) error
}

// SpanSink receives completed trace spans.
type SpanSink interface {
	// End records a finished span. Seq values are logical clocks assigned
	// by the caller; providers must not reorder by wall time.
	End(ctx context.Context, name string, startSeq, endSeq int64, labels Labels) error
}

// Flusher is implemented by sinks that buffer internally.
type Flusher interface {
	// Flush forces buffered data out. Flush on an empty buffer is a no-op.
	Flush(ctx context.Context) error
}
