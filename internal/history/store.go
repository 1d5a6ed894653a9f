// Package history persists publication run outcomes to SQLite so operators can
// audit what was published where and when. The store is observational only:
// publish semantics never depend on it.
package history

import (
	"context"
	"time"
)

// Run is one per-locale publication row.
type Run struct {
	ID        int64
	RunID     string
	Locale    string
	Target    string
	Files     int
	Records   int
	Duration  time.Duration
	Outcome   string // success | failed
	Stage     string // failing stage, empty on success
	Error     string // error text, empty on success
	Timestamp time.Time
}

// Store defines the interface for persisting and retrieving run history.
type Store interface {
	// Append adds one per-locale run row.
	Append(ctx context.Context, run Run) error

	// Recent retrieves the most recent rows, newest first.
	Recent(ctx context.Context, limit int) ([]Run, error)

	// Close closes the store and releases resources.
	Close() error
}
