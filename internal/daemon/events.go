package daemon

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/docpub/internal/publish"
)

// EventEmitter publishes run-completed events over NATS so downstream systems
// (site deploy hooks, cache invalidation) can react without polling.
type EventEmitter struct {
	conn    *nats.Conn
	subject string
}

// CompletedEvent is the wire form of a publish-completed notification.
type CompletedEvent struct {
	RunID     string   `json:"run_id"`
	Locales   []string `json:"locales"`
	Files     int      `json:"files"`
	Records   int      `json:"records"`
	Succeeded bool     `json:"succeeded"`
	Error     string   `json:"error,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// NewEventEmitter connects to NATS.
func NewEventEmitter(url, subject string) (*EventEmitter, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	slog.Info("Event emitter connected", slog.String("url", url), slog.String("subject", subject))
	return &EventEmitter{conn: conn, subject: subject}, nil
}

// EmitCompleted publishes one event for a finished run.
func (e *EventEmitter) EmitCompleted(result *publish.Result, runErr error) error {
	event := CompletedEvent{
		RunID:     result.RunID,
		Succeeded: runErr == nil,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	for _, l := range result.Locales {
		event.Locales = append(event.Locales, l.Locale)
		event.Files += l.Files
		event.Records += l.Records
	}
	if runErr != nil {
		event.Error = runErr.Error()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := e.conn.Publish(e.subject, payload); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Close drains and closes the NATS connection.
func (e *EventEmitter) Close() {
	if err := e.conn.Drain(); err != nil {
		slog.Error("Error draining NATS connection", "error", err)
	}
}
