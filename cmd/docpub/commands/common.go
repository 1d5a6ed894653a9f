package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docpub/internal/config"
	"git.home.luguber.info/inful/docpub/internal/locale"
	"git.home.luguber.info/inful/docpub/internal/publish"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docpub.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Publish PublishCmd `cmd:"" default:"withargs" help:"Publish the documentation tree into per-locale destinations"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
	Watch   WatchCmd   `cmd:"" help:"Watch the source tree and republish on changes"`
	History HistoryCmd `cmd:"" help:"Show recent publication runs"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := parseLogLevel(c.Verbose)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel honors the verbose flag and the DOCPUB_LOG_LEVEL override.
func parseLogLevel(verbose bool) slog.Level {
	if v := os.Getenv("DOCPUB_LOG_LEVEL"); v != "" {
		switch strings.ToLower(v) {
		case "debug":
			return slog.LevelDebug
		case "info":
			return slog.LevelInfo
		case "warn", "warning":
			return slog.LevelWarn
		case "error":
			return slog.LevelError
		}
	}
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// ResolvePublishOptions merges CLI flags over the loaded config and validates
// locales. Precedence: CLI flag > environment > config file > default (env and
// defaults are applied during config.Load).
func ResolvePublishOptions(cfg *config.Config, source, target, locales string) (publish.Options, error) {
	if source != "" {
		cfg.Publish.Source = source
	}
	if target != "" {
		cfg.Publish.TargetBase = target
	}
	if locales != "" {
		cfg.Publish.Locales = config.SplitLocales(locales)
	}

	validated, err := locale.Validate(cfg.Publish.Locales, cfg.Publish.StrictLocales)
	if err != nil {
		return publish.Options{}, err
	}

	return publish.Options{
		Source:     cfg.Publish.Source,
		TargetBase: cfg.Publish.TargetBase,
		Locales:    validated,
		DirName:    cfg.Publish.DirName,
		IndexFile:  cfg.Publish.IndexFile,
		MetaFile:   cfg.Publish.MetaFile,
	}, nil
}
