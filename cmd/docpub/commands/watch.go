package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docpub/internal/config"
	"git.home.luguber.info/inful/docpub/internal/daemon"
	"git.home.luguber.info/inful/docpub/internal/history"
	"git.home.luguber.info/inful/docpub/internal/metrics"
	"git.home.luguber.info/inful/docpub/internal/publish"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Source  string `short:"s" help:"Source documentation tree (overrides config)"`
	Target  string `short:"t" help:"Destination content base directory (overrides config)"`
	Locales string `short:"l" help:"Comma-separated locale list (overrides config)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config, true)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	opts, err := ResolvePublishOptions(cfg, w.Source, w.Target, w.Locales)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	registry := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(registry)

	var sink publish.Recorder
	if cfg.HistoryEnabled() {
		store, err := history.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			return err
		}
		defer func() {
			_ = store.Close()
		}()
		sink = history.NewSink(store)
	}

	publisher := publish.NewPublisher(opts, recorder, sink)
	d := daemon.New(cfg, publisher, registry)
	return d.Start(ctx)
}
