package history

import (
	"context"

	"git.home.luguber.info/inful/docpub/internal/publish"
)

// Sink adapts a Store to the publisher's Recorder hook.
type Sink struct {
	store Store
}

// NewSink wraps a Store for injection into the publisher.
func NewSink(store Store) *Sink {
	return &Sink{store: store}
}

// RecordLocale appends one per-locale outcome row.
func (s *Sink) RecordLocale(ctx context.Context, runID string, res publish.LocaleResult, failedStage string, runErr error) error {
	run := Run{
		RunID:    runID,
		Locale:   res.Locale,
		Target:   res.Target,
		Files:    res.Files,
		Records:  res.Records,
		Duration: res.Duration,
		Outcome:  "success",
	}
	if runErr != nil {
		run.Outcome = "failed"
		run.Stage = failedStage
		run.Error = runErr.Error()
	}
	return s.store.Append(ctx, run)
}
