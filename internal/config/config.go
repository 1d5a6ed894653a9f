// Package config loads and validates docpub configuration. Configuration is a
// YAML file plus optional .env overrides; resolved values are passed into the
// publisher explicitly rather than read from module-level state.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docpub/internal/errors"
)

// PublishConfig holds the core publish settings.
type PublishConfig struct {
	// Source is the directory tree produced by the external documentation
	// generator. It is consumed as-is; no schema beyond directories and files.
	Source string `yaml:"source,omitempty"`
	// TargetBase is the destination site's content directory. Each locale gets
	// an independent subtree at TargetBase/<locale>/<DirName>.
	TargetBase string `yaml:"target,omitempty"`
	// Locales selects the destination copies (e.g. en, zh).
	Locales []string `yaml:"locales,omitempty"`
	// DirName is the fixed leaf folder grouping this documentation set apart
	// from others in the same site.
	DirName string `yaml:"dir_name,omitempty"`
	// IndexFile is the content filename that earns the literal "index" key in
	// navigation records.
	IndexFile string `yaml:"index_file,omitempty"`
	// MetaFile is the navigation record filename written per directory.
	MetaFile string `yaml:"meta_file,omitempty"`
	// StrictLocales enables BCP 47 validation of locale identifiers.
	StrictLocales bool `yaml:"strict_locales,omitempty"`
}

// HistoryConfig controls the publish-run history store.
type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"` // nil means default (true)
	Path    string `yaml:"path,omitempty"`
}

// DaemonConfig controls watch mode.
type DaemonConfig struct {
	// Debounce is the quiet period after the last filesystem event before a
	// republish triggers (duration string, default 2s).
	Debounce string `yaml:"debounce,omitempty"`
	// Interval, when set, additionally republishes on a fixed schedule.
	Interval string `yaml:"interval,omitempty"`
	// Listen, when set, serves /metrics and /healthz on this address.
	Listen string `yaml:"listen,omitempty"`
	// NATSURL, when set, emits a publish-completed event per run.
	NATSURL     string `yaml:"nats_url,omitempty"`
	NATSSubject string `yaml:"nats_subject,omitempty"`
}

// Config is the root configuration document.
type Config struct {
	Publish PublishConfig `yaml:"publish"`
	History HistoryConfig `yaml:"history,omitempty"`
	Daemon  DaemonConfig  `yaml:"daemon,omitempty"`
}

// HistoryEnabled reports whether run history should be recorded.
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// Load reads, defaults, and validates a configuration file. A missing file is
// not an error when allowMissing is set; defaults then apply wholesale, which
// keeps `docpub publish` usable without an init step.
func Load(path string, allowMissing bool) (*Config, error) {
	loadEnvFiles()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		if !allowMissing {
			return nil, derrors.ConfigNotFound(path)
		}
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	if err := ApplyDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides maps DOCPUB_* environment variables onto the config.
// Environment sits between config file and CLI flags in precedence.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DOCPUB_SOURCE"); v != "" {
		cfg.Publish.Source = v
	}
	if v := os.Getenv("DOCPUB_TARGET"); v != "" {
		cfg.Publish.TargetBase = v
	}
	if v := os.Getenv("DOCPUB_LOCALES"); v != "" {
		cfg.Publish.Locales = SplitLocales(v)
	}
}

// SplitLocales parses a comma-separated locale list, trimming whitespace and
// dropping empty items.
func SplitLocales(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
