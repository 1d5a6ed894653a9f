package publish

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docpub/internal/errors"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testOptions(t *testing.T, locales ...string) Options {
	t.Helper()
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "core", "index.mdx"), "# core\n")
	writeFile(t, filepath.Join(src, "core", "classes", "Foo.mdx"), "# Foo\n")

	return Options{
		Source:     src,
		TargetBase: t.TempDir(),
		Locales:    locales,
		DirName:    "sdk",
		IndexFile:  "index.mdx",
		MetaFile:   "_meta.js",
	}
}

func TestPublish_EndToEnd(t *testing.T) {
	opts := testOptions(t, "en", "zh")
	p := NewPublisher(opts, nil, nil)

	result, err := p.Publish(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, result.RunID)
	require.Len(t, result.Locales, 2)

	for _, loc := range []string{"en", "zh"} {
		base := filepath.Join(opts.TargetBase, loc, "sdk")

		got, err := os.ReadFile(filepath.Join(base, "core", "index.mdx"))
		require.NoError(t, err)
		require.Equal(t, "# core\n", string(got))

		_, err = os.Stat(filepath.Join(base, "core", "classes", "Foo.mdx"))
		require.NoError(t, err)

		meta, err := os.ReadFile(filepath.Join(base, "core", "_meta.js"))
		require.NoError(t, err)
		require.Contains(t, string(meta), `"classes"`)
		require.Contains(t, string(meta), `"title": "Classes"`)
		require.Contains(t, string(meta), `"index"`)
		require.Contains(t, string(meta), `"title": "Overview"`)

		leaf, err := os.ReadFile(filepath.Join(base, "core", "classes", "_meta.js"))
		require.NoError(t, err)
		require.Contains(t, string(leaf), "export default {};")
	}
}

func TestPublish_DestroysStaleDestination(t *testing.T) {
	opts := testOptions(t, "en")
	stale := filepath.Join(opts.TargetBase, "en", "sdk", "stale", "old.mdx")
	writeFile(t, stale, "leftover")

	p := NewPublisher(opts, nil, nil)
	_, err := p.Publish(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(stale)
	require.True(t, os.IsNotExist(err), "stale file must not survive a run")
}

func TestPublish_IdempotentByteIdentical(t *testing.T) {
	opts := testOptions(t, "en")
	p := NewPublisher(opts, nil, nil)

	_, err := p.Publish(context.Background())
	require.NoError(t, err)
	first := snapshotTree(t, opts.TargetBase)

	_, err = p.Publish(context.Background())
	require.NoError(t, err)
	second := snapshotTree(t, opts.TargetBase)

	require.Equal(t, first, second)
}

func TestPublish_FailFastAcrossLocales(t *testing.T) {
	opts := testOptions(t, "en", "zh")
	opts.Source = filepath.Join(t.TempDir(), "missing")

	p := NewPublisher(opts, nil, nil)
	result, err := p.Publish(context.Background())
	require.Error(t, err)
	require.True(t, derrors.IsCategory(err, derrors.CategorySource))
	require.Empty(t, result.Locales)

	// The second locale was never attempted.
	_, statErr := os.Stat(filepath.Join(opts.TargetBase, "zh"))
	require.True(t, os.IsNotExist(statErr))
}

func TestPublish_ErrorCarriesLocaleAndStage(t *testing.T) {
	opts := testOptions(t, "en")
	opts.Source = filepath.Join(t.TempDir(), "missing")

	p := NewPublisher(opts, nil, nil)
	_, err := p.Publish(context.Background())
	require.Error(t, err)

	pe, ok := err.(*derrors.PublishError)
	require.True(t, ok)
	require.Equal(t, "en", pe.Context["locale"])
	require.Equal(t, StageReplicate, pe.Context["stage"])
}

type recordedCall struct {
	runID  string
	res    LocaleResult
	stage  string
	runErr error
}

type fakeRecorder struct {
	calls []recordedCall
}

func (f *fakeRecorder) RecordLocale(_ context.Context, runID string, res LocaleResult, stage string, runErr error) error {
	f.calls = append(f.calls, recordedCall{runID: runID, res: res, stage: stage, runErr: runErr})
	return nil
}

func TestPublish_RecordsEveryLocale(t *testing.T) {
	opts := testOptions(t, "en", "zh")
	rec := &fakeRecorder{}
	p := NewPublisher(opts, nil, rec)

	result, err := p.Publish(context.Background())
	require.NoError(t, err)
	require.Len(t, rec.calls, 2)
	for _, c := range rec.calls {
		require.Equal(t, result.RunID, c.runID)
		require.NoError(t, c.runErr)
		require.Positive(t, c.res.Files)
	}
}

// snapshotTree maps relative path -> content for every file under root.
func snapshotTree(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := map[string]string{}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree[strings.TrimPrefix(path, root)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return tree
}
