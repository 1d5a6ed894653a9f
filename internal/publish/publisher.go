// Package publish orchestrates a publication run: for each locale, the prior
// destination copy is removed, the source tree is replicated, and navigation
// records are synthesized. Locales are processed sequentially and fail-fast:
// the first failure aborts the run and remaining locales are not attempted.
package publish

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	derrors "git.home.luguber.info/inful/docpub/internal/errors"
	"git.home.luguber.info/inful/docpub/internal/fsutil"
	"git.home.luguber.info/inful/docpub/internal/logfields"
	"git.home.luguber.info/inful/docpub/internal/metrics"
	"git.home.luguber.info/inful/docpub/internal/nav"
	"git.home.luguber.info/inful/docpub/internal/replicate"
)

// Stage names reported in logs, metrics, and history rows.
const (
	StageClear      = "clear"
	StageReplicate  = "replicate"
	StageSynthesize = "synthesize"
)

// Options configures a Publisher. All paths are used as given; callers resolve
// relative paths beforehand if they need stability across working directories.
type Options struct {
	Source     string
	TargetBase string
	Locales    []string
	DirName    string
	IndexFile  string
	MetaFile   string
}

// LocaleResult summarizes one locale's publication.
type LocaleResult struct {
	Locale   string
	Target   string
	Files    int
	Records  int
	Duration time.Duration
}

// Result summarizes a whole run.
type Result struct {
	RunID   string
	Locales []LocaleResult
	Started time.Time
}

// Recorder is the subset of run observers the publisher drives. The history
// store satisfies it; a nil sink disables recording.
type Recorder interface {
	RecordLocale(ctx context.Context, runID string, res LocaleResult, failedStage string, runErr error) error
}

// Publisher executes publication runs. Not safe for concurrent runs against
// the same targets; callers serialize (watch mode holds a mutex).
type Publisher struct {
	opts    Options
	metrics metrics.Recorder
	history Recorder
}

// NewPublisher builds a Publisher. A nil metrics recorder falls back to the
// no-op implementation.
func NewPublisher(opts Options, rec metrics.Recorder, history Recorder) *Publisher {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Publisher{opts: opts, metrics: rec, history: history}
}

// Publish runs the full per-locale pipeline. The returned Result covers the
// locales completed before any failure.
func (p *Publisher) Publish(ctx context.Context) (*Result, error) {
	result := &Result{RunID: uuid.NewString(), Started: time.Now()}
	p.metrics.SetLocales(len(p.opts.Locales))

	slog.Info("Starting publication run",
		logfields.RunID(result.RunID),
		logfields.Source(p.opts.Source),
		logfields.Target(p.opts.TargetBase),
		slog.Int("locales", len(p.opts.Locales)))

	for _, locale := range p.opts.Locales {
		res, stage, err := p.publishLocale(ctx, locale)
		p.record(ctx, result.RunID, res, stage, err)
		if err != nil {
			p.metrics.IncLocaleOutcome(locale, metrics.ResultFailed)
			p.metrics.ObservePublishDuration(time.Since(result.Started))
			slog.Error("Locale publication failed",
				logfields.RunID(result.RunID),
				logfields.Locale(locale),
				logfields.Stage(stage),
				logfields.Error(err))
			return result, withRunContext(err, locale, stage)
		}
		result.Locales = append(result.Locales, res)
		p.metrics.IncLocaleOutcome(locale, metrics.ResultSuccess)
		slog.Info("Locale published",
			logfields.RunID(result.RunID),
			logfields.Locale(locale),
			logfields.Target(res.Target),
			logfields.Files(res.Files),
			logfields.Records(res.Records),
			logfields.DurationMS(float64(res.Duration.Milliseconds())))
	}

	total := time.Since(result.Started)
	p.metrics.ObservePublishDuration(total)
	slog.Info("Publication run completed",
		logfields.RunID(result.RunID),
		slog.Int("locales", len(result.Locales)),
		logfields.DurationMS(float64(total.Milliseconds())))
	return result, nil
}

// publishLocale runs clear, replicate, synthesize for one locale and returns
// the failing stage name alongside any error.
func (p *Publisher) publishLocale(ctx context.Context, locale string) (LocaleResult, string, error) {
	res := LocaleResult{
		Locale: locale,
		Target: filepath.Join(p.opts.TargetBase, locale, p.opts.DirName),
	}
	start := time.Now()

	// Destroy any prior copy so stale entries cannot survive a run.
	stageStart := time.Now()
	exists, err := fsutil.Exists(res.Target)
	if err != nil {
		return res, StageClear, derrors.DestinationWriteFailure(res.Target, err)
	}
	if exists {
		if err := os.RemoveAll(res.Target); err != nil {
			return res, StageClear, derrors.DestinationWriteFailure(res.Target, err)
		}
		slog.Debug("Removed previous destination copy", logfields.Locale(locale), logfields.Target(res.Target))
	}
	p.metrics.ObserveStageDuration(StageClear, time.Since(stageStart))

	stageStart = time.Now()
	stats, err := replicate.Replicate(ctx, p.opts.Source, res.Target)
	if err != nil {
		return res, StageReplicate, err
	}
	res.Files = stats.Files
	p.metrics.AddFilesCopied(stats.Files)
	p.metrics.ObserveStageDuration(StageReplicate, time.Since(stageStart))

	stageStart = time.Now()
	synth := nav.NewSynthesizer(p.opts.IndexFile, p.opts.MetaFile)
	records, err := synth.Synthesize(res.Target)
	if err != nil {
		return res, StageSynthesize, err
	}
	res.Records = records
	p.metrics.AddRecordsWritten(records)
	p.metrics.ObserveStageDuration(StageSynthesize, time.Since(stageStart))

	res.Duration = time.Since(start)
	return res, "", nil
}

// withRunContext annotates an error with the failing locale and stage, keeping
// the original category (SourceUnavailable stays a source error; anything
// uncategorized from mid-traversal becomes a PartialTreeFailure).
func withRunContext(err error, locale, stage string) error {
	if pe, ok := err.(*derrors.PublishError); ok {
		return pe.WithContext("locale", locale).WithContext("stage", stage)
	}
	return derrors.PartialTreeFailure(locale, stage, err)
}

// record appends the locale outcome to history. History failures are reported
// but never change the publish result.
func (p *Publisher) record(ctx context.Context, runID string, res LocaleResult, stage string, runErr error) {
	if p.history == nil {
		return
	}
	if err := p.history.RecordLocale(ctx, runID, res, stage, runErr); err != nil {
		slog.Warn("Failed to record run history", logfields.RunID(runID), logfields.Error(err))
	}
}
