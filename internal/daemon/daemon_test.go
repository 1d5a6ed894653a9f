package daemon

import (
	"context"
	"path/filepath"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docpub/internal/config"
	derrors "git.home.luguber.info/inful/docpub/internal/errors"
	"git.home.luguber.info/inful/docpub/internal/publish"
)

func TestStart_MissingSourceStopsWatcher(t *testing.T) {
	cfg := &config.Config{}
	require.NoError(t, config.ApplyDefaults(cfg))
	cfg.Publish.Source = filepath.Join(t.TempDir(), "missing")

	opts := publish.Options{
		Source:     cfg.Publish.Source,
		TargetBase: t.TempDir(),
		Locales:    []string{"en"},
		DirName:    "sdk",
		IndexFile:  "index.mdx",
		MetaFile:   "_meta.js",
	}
	p := publish.NewPublisher(opts, nil, nil)

	d := New(cfg, p, prom.NewRegistry())
	err := d.Start(context.Background())
	require.Error(t, err)
	require.True(t, derrors.IsCategory(err, derrors.CategoryDaemon))
	// The error path stops the watcher it created, so the failed Start leaves
	// no fsnotify descriptor or goroutine behind.
	require.Nil(t, d.scheduler)
	require.Nil(t, d.server)
}
