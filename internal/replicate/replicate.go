// Package replicate mirrors one directory subtree to a destination path,
// creating directories as needed and copying file contents byte-for-byte.
// Content is opaque: nothing here parses or rewrites what it copies.
package replicate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	derrors "git.home.luguber.info/inful/docpub/internal/errors"
	"git.home.luguber.info/inful/docpub/internal/logfields"
)

// Stats summarizes one replication run.
type Stats struct {
	Files       int
	Directories int
}

// Replicate recursively copies the tree rooted at sourceDir into destDir.
// destDir and intermediate directories are created as needed; existing files
// are overwritten. The design is fail-fast: the first failed copy aborts the
// remaining traversal with no partial guarantee about already-copied siblings.
func Replicate(ctx context.Context, sourceDir, destDir string) (Stats, error) {
	var stats Stats

	info, err := os.Stat(sourceDir)
	if err != nil {
		return stats, derrors.SourceUnavailable(sourceDir, err)
	}
	if !info.IsDir() {
		return stats, derrors.SourceUnavailable(sourceDir, fmt.Errorf("not a directory"))
	}

	if err := replicateDir(ctx, sourceDir, destDir, &stats); err != nil {
		return stats, err
	}
	slog.Debug("Replicated tree",
		logfields.Source(sourceDir),
		logfields.Target(destDir),
		logfields.Files(stats.Files))
	return stats, nil
}

func replicateDir(ctx context.Context, src, dst string, stats *Stats) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return derrors.DestinationWriteFailure(dst, err)
	}
	stats.Directories++

	entries, err := os.ReadDir(src)
	if err != nil {
		return derrors.SourceUnavailable(src, err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := replicateDir(ctx, srcPath, dstPath, stats); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
		stats.Files++
	}
	return nil
}

// copyFile copies a single file verbatim, overwriting dst if present.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return derrors.SourceUnavailable(src, err)
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.Create(dst)
	if err != nil {
		return derrors.DestinationWriteFailure(dst, err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return derrors.DestinationWriteFailure(dst, err)
	}
	if err := dstFile.Close(); err != nil {
		return derrors.DestinationWriteFailure(dst, err)
	}
	return nil
}
