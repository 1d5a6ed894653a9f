package config

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/docpub/internal/fsutil"
)

const defaultConfigTemplate = `# docpub configuration
publish:
  # Directory tree produced by the documentation generator.
  source: ./docs
  # Content directory of the destination documentation site.
  target: ../docs-site/content
  # One independent destination copy per locale.
  locales:
    - en
    - zh
  # Fixed leaf folder grouping this documentation set: <target>/<locale>/<dir_name>.
  dir_name: sdk
  # Content file that earns the literal "index" navigation key.
  index_file: index.mdx
  # Navigation record filename written into every directory.
  meta_file: _meta.js
  # Validate locales as BCP 47 tags before publishing.
  strict_locales: true

history:
  enabled: true
  path: .docpub/history.db

daemon:
  debounce: 2s
  # interval: 15m
  # listen: :9464
  # nats_url: nats://localhost:4222
  # nats_subject: docpub.publish.completed
`

// Init writes a commented default configuration file. Refuses to overwrite an
// existing file unless force is set.
func Init(path string, force bool) error {
	exists, err := fsutil.Exists(path)
	if err != nil {
		return fmt.Errorf("check config path: %w", err)
	}
	if exists && !force {
		return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
