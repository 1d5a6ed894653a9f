package metrics

import "time"

// ResultLabel enumerates locale outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for publication runs. Implementations
// may forward to Prometheus, OpenTelemetry, etc. The NoopRecorder allows
// optional injection.
type Recorder interface {
	ObservePublishDuration(d time.Duration)
	ObserveStageDuration(stage string, d time.Duration)
	IncLocaleOutcome(locale string, result ResultLabel)
	AddFilesCopied(n int)
	AddRecordsWritten(n int)
	SetLocales(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePublishDuration(time.Duration)       {}
func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncLocaleOutcome(string, ResultLabel)       {}
func (NoopRecorder) AddFilesCopied(int)                         {}
func (NoopRecorder) AddRecordsWritten(int)                      {}
func (NoopRecorder) SetLocales(int)                             {}
