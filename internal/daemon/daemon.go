// Package daemon supervises watch mode: filesystem-triggered and scheduled
// republishes, a metrics endpoint, and optional completion events. Runs are
// serialized by a mutex because concurrent publishes against the same targets
// race on directory removal and recreation.
package daemon

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docpub/internal/config"
	derrors "git.home.luguber.info/inful/docpub/internal/errors"
	"git.home.luguber.info/inful/docpub/internal/logfields"
	"git.home.luguber.info/inful/docpub/internal/metrics"
	"git.home.luguber.info/inful/docpub/internal/publish"
	"git.home.luguber.info/inful/docpub/internal/watch"
)

// Daemon wires the source watcher, scheduler, metrics server, and event
// emitter around a publisher.
type Daemon struct {
	cfg       *config.Config
	publisher *publish.Publisher
	watcher   *watch.SourceWatcher
	scheduler gocron.Scheduler
	emitter   *EventEmitter
	server    *http.Server
	registry  *prom.Registry

	runMu sync.Mutex
}

// New builds a daemon. The prometheus registry backs both the publisher's
// recorder and the /metrics endpoint.
func New(cfg *config.Config, publisher *publish.Publisher, registry *prom.Registry) *Daemon {
	return &Daemon{cfg: cfg, publisher: publisher, registry: registry}
}

// Start brings up all configured daemon components and blocks until ctx is done.
func (d *Daemon) Start(ctx context.Context) error {
	if d.cfg.Daemon.NATSURL != "" {
		emitter, err := NewEventEmitter(d.cfg.Daemon.NATSURL, d.cfg.Daemon.NATSSubject)
		if err != nil {
			return derrors.DaemonError("failed to connect event emitter", err)
		}
		d.emitter = emitter
		defer d.emitter.Close()
	}

	watcher, err := watch.NewSourceWatcher(d.cfg.Publish.Source, d.cfg.DebounceDuration(), func() {
		d.runPublish(ctx, "watch")
	})
	if err != nil {
		return derrors.DaemonError("failed to create source watcher", err)
	}
	d.watcher = watcher
	if err := d.watcher.Start(ctx); err != nil {
		d.watcher.Stop()
		return derrors.DaemonError("failed to start source watcher", err)
	}
	defer d.watcher.Stop()

	if interval := d.cfg.IntervalDuration(); interval > 0 {
		if err := d.startScheduler(ctx, interval); err != nil {
			return err
		}
		defer func() {
			if err := d.scheduler.Shutdown(); err != nil {
				slog.Error("Error stopping scheduler", logfields.Error(err))
			}
		}()
	}

	if d.cfg.Daemon.Listen != "" {
		d.startMetricsServer(d.cfg.Daemon.Listen)
		defer d.stopMetricsServer()
	}

	// Publish once at startup so the destination reflects the current source
	// before any change arrives.
	d.runPublish(ctx, "startup")

	slog.Info("Daemon started, waiting for changes",
		logfields.Source(d.cfg.Publish.Source),
		logfields.Target(d.cfg.Publish.TargetBase))
	<-ctx.Done()
	slog.Info("Daemon stopping")
	return nil
}

func (d *Daemon) startScheduler(ctx context.Context, interval time.Duration) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return derrors.DaemonError("failed to create scheduler", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { d.runPublish(ctx, "schedule") }),
		gocron.WithName("interval-publish"),
	)
	if err != nil {
		return derrors.DaemonError("failed to schedule interval publish", err)
	}
	d.scheduler = s
	s.Start()
	slog.Info("Scheduled interval republish", slog.Duration("interval", interval))
	return nil
}

func (d *Daemon) startMetricsServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(d.registry))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	d.server = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		slog.Info("Metrics endpoint listening", slog.String("addr", addr))
		if err := d.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", logfields.Error(err))
		}
	}()
}

func (d *Daemon) stopMetricsServer() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.server.Shutdown(ctx); err != nil {
		slog.Error("Error stopping metrics server", logfields.Error(err))
	}
}

// runPublish executes one serialized publication run. Failures are logged, not
// fatal: the daemon keeps watching so the next change can succeed.
func (d *Daemon) runPublish(ctx context.Context, reason string) {
	d.runMu.Lock()
	defer d.runMu.Unlock()

	result, err := d.publisher.Publish(ctx)
	if err != nil {
		slog.Error("Publication run failed", slog.String("reason", reason), logfields.Error(err))
	}
	if d.emitter != nil && result != nil {
		if err := d.emitter.EmitCompleted(result, err); err != nil {
			slog.Warn("Failed to emit publish event", logfields.Error(err))
		}
	}
}
