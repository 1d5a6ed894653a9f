package config

import (
	"fmt"
	"time"
)

// Built-in defaults. The target base points at the conventional sibling docs
// site's content directory.
const (
	DefaultSource     = "./docs"
	DefaultTargetBase = "../docs-site/content"
	DefaultDirName    = "sdk"
	DefaultIndexFile  = "index.mdx"
	DefaultMetaFile   = "_meta.js"
	DefaultHistoryDB  = ".docpub/history.db"
	DefaultDebounce   = 2 * time.Second
)

// DefaultLocales is the two-locale default set applied when no override is given.
var DefaultLocales = []string{"en", "zh"}

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// PublishDefaultApplier handles publish configuration defaults.
type PublishDefaultApplier struct{}

func (PublishDefaultApplier) Domain() string { return "publish" }

func (PublishDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Publish.Source == "" {
		cfg.Publish.Source = DefaultSource
	}
	if cfg.Publish.TargetBase == "" {
		cfg.Publish.TargetBase = DefaultTargetBase
	}
	if len(cfg.Publish.Locales) == 0 {
		cfg.Publish.Locales = append([]string(nil), DefaultLocales...)
	}
	if cfg.Publish.DirName == "" {
		cfg.Publish.DirName = DefaultDirName
	}
	if cfg.Publish.IndexFile == "" {
		cfg.Publish.IndexFile = DefaultIndexFile
	}
	if cfg.Publish.MetaFile == "" {
		cfg.Publish.MetaFile = DefaultMetaFile
	}
	return nil
}

// HistoryDefaultApplier handles history store defaults.
type HistoryDefaultApplier struct{}

func (HistoryDefaultApplier) Domain() string { return "history" }

func (HistoryDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryDB
	}
	return nil
}

// DaemonDefaultApplier handles watch-mode defaults.
type DaemonDefaultApplier struct{}

func (DaemonDefaultApplier) Domain() string { return "daemon" }

func (DaemonDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Daemon.Debounce == "" {
		cfg.Daemon.Debounce = DefaultDebounce.String()
	}
	if _, err := time.ParseDuration(cfg.Daemon.Debounce); err != nil {
		return fmt.Errorf("daemon.debounce: %w", err)
	}
	if cfg.Daemon.Interval != "" {
		if _, err := time.ParseDuration(cfg.Daemon.Interval); err != nil {
			return fmt.Errorf("daemon.interval: %w", err)
		}
	}
	if cfg.Daemon.NATSURL != "" && cfg.Daemon.NATSSubject == "" {
		cfg.Daemon.NATSSubject = "docpub.publish.completed"
	}
	return nil
}

// ApplyDefaults runs every domain applier in a stable order.
func ApplyDefaults(cfg *Config) error {
	appliers := []DefaultApplier{
		PublishDefaultApplier{},
		HistoryDefaultApplier{},
		DaemonDefaultApplier{},
	}
	for _, a := range appliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("apply %s defaults: %w", a.Domain(), err)
		}
	}
	return nil
}

// DebounceDuration returns the parsed debounce window.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Daemon.Debounce)
	if err != nil || d <= 0 {
		return DefaultDebounce
	}
	return d
}

// IntervalDuration returns the parsed schedule interval, zero when unset.
func (c *Config) IntervalDuration() time.Duration {
	if c.Daemon.Interval == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Daemon.Interval)
	if err != nil {
		return 0
	}
	return d
}
