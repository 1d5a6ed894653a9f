package commands

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/docpub/internal/config"
	"git.home.luguber.info/inful/docpub/internal/history"
	"git.home.luguber.info/inful/docpub/internal/logfields"
	"git.home.luguber.info/inful/docpub/internal/publish"
)

// PublishCmd implements the 'publish' command.
type PublishCmd struct {
	Source  string `short:"s" help:"Source documentation tree (overrides config)"`
	Target  string `short:"t" help:"Destination content base directory (overrides config)"`
	Locales string `short:"l" help:"Comma-separated locale list (overrides config)"`
}

func (p *PublishCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config, true)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	opts, err := ResolvePublishOptions(cfg, p.Source, p.Target, p.Locales)
	if err != nil {
		return err
	}
	return RunPublish(context.Background(), cfg, opts)
}

// RunPublish executes one publication run with optional history recording.
func RunPublish(ctx context.Context, cfg *config.Config, opts publish.Options) error {
	fmt.Println("Publishing documentation")

	var sink publish.Recorder
	if cfg.HistoryEnabled() {
		store, err := history.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			// History is observational; a broken store must not block publishing.
			slog.Warn("History store unavailable", logfields.Error(err))
		} else {
			defer func() {
				_ = store.Close()
			}()
			sink = history.NewSink(store)
		}
	}

	publisher := publish.NewPublisher(opts, nil, sink)
	result, err := publisher.Publish(ctx)
	if err != nil {
		fmt.Println("Publication failed")
		return err
	}

	for _, l := range result.Locales {
		fmt.Printf("  %s: %d files, %d navigation records -> %s\n", l.Locale, l.Files, l.Records, l.Target)
	}
	fmt.Println("Publication completed successfully")
	return nil
}
