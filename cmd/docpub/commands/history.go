package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docpub/internal/config"
	"git.home.luguber.info/inful/docpub/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" help:"Maximum number of rows to show" default:"20"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config, true)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	runs, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No publication runs recorded")
		return nil
	}

	for _, r := range runs {
		line := fmt.Sprintf("%s  %s  %-8s %-7s files=%d records=%d %s",
			r.Timestamp.Format("2006-01-02 15:04:05"), r.RunID, r.Locale, r.Outcome, r.Files, r.Records, r.Target)
		if r.Outcome != "success" {
			line += fmt.Sprintf("  stage=%s error=%s", r.Stage, r.Error)
		}
		fmt.Println(line)
	}
	return nil
}
