package nav

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func mkTree(t *testing.T, root string, dirs []string, files []string) {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0o755))
	}
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
	}
}

// readRecord strips the JS wrapper and decodes the object literal.
func readRecord(t *testing.T, path string) Record {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	require.True(t, strings.HasPrefix(body, "// @generated"), "missing machine-generated marker")
	body = body[strings.Index(body, "{"):]
	body = strings.TrimSuffix(strings.TrimSpace(body), ";")

	var rec Record
	require.NoError(t, json.Unmarshal([]byte(body), &rec))
	return rec
}

func TestSynthesize_RecordKeysMatchChildDirsAndIndex(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root,
		[]string{"classes", "type-aliases"},
		[]string{"index.mdx", "other.mdx"})

	s := NewSynthesizer("index.mdx", "_meta.js")
	n, err := s.Synthesize(root)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	rec := readRecord(t, filepath.Join(root, "_meta.js"))
	require.Equal(t, Record{
		"classes":      {Title: "Classes"},
		"type-aliases": {Title: "Type Aliases"},
		"index":        {Title: "Overview"},
	}, rec)
}

func TestSynthesize_NoIndexFileNoIndexKey(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, []string{"core"}, []string{"readme.mdx"})

	s := NewSynthesizer("index.mdx", "_meta.js")
	_, err := s.Synthesize(root)
	require.NoError(t, err)

	rec := readRecord(t, filepath.Join(root, "_meta.js"))
	require.Equal(t, Record{"core": {Title: "Core"}}, rec)
}

func TestSynthesize_EmptyDirectoryGetsEmptyRecord(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, []string{"classes"}, nil)

	s := NewSynthesizer("index.mdx", "_meta.js")
	_, err := s.Synthesize(root)
	require.NoError(t, err)

	rec := readRecord(t, filepath.Join(root, "classes", "_meta.js"))
	require.Empty(t, rec)

	data, err := os.ReadFile(filepath.Join(root, "classes", "_meta.js"))
	require.NoError(t, err)
	require.Contains(t, string(data), "export default {};")
}

func TestSynthesize_RecursesIntoChildren(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, nil, []string{
		filepath.Join("core", "index.mdx"),
		filepath.Join("core", "classes", "Foo.mdx"),
	})

	s := NewSynthesizer("index.mdx", "_meta.js")
	n, err := s.Synthesize(root)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	rec := readRecord(t, filepath.Join(root, "core", "_meta.js"))
	require.Equal(t, Record{
		"classes": {Title: "Classes"},
		"index":   {Title: "Overview"},
	}, rec)

	rec = readRecord(t, filepath.Join(root, "core", "classes", "_meta.js"))
	require.Empty(t, rec)
}

func TestSynthesize_IdempotentByteIdentical(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, []string{"types"}, []string{"index.mdx"})

	s := NewSynthesizer("index.mdx", "_meta.js")
	_, err := s.Synthesize(root)
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(root, "_meta.js"))
	require.NoError(t, err)

	_, err = s.Synthesize(root)
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(root, "_meta.js"))
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestSynthesize_JSONMetaFile(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, []string{"core"}, []string{"index.mdx"})

	s := NewSynthesizer("index.mdx", "_meta.json")
	_, err := s.Synthesize(root)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "_meta.json"))
	require.NoError(t, err)

	var rec Record
	require.NoError(t, json.Unmarshal(data, &rec))
	require.Equal(t, Record{
		"core":  {Title: "Core"},
		"index": {Title: "Overview"},
	}, rec)
}

func TestSynthesize_ConfiguredIndexFilename(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, nil, []string{"index.md"})

	s := NewSynthesizer("index.md", "_meta.js")
	_, err := s.Synthesize(root)
	require.NoError(t, err)

	rec := readRecord(t, filepath.Join(root, "_meta.js"))
	require.Equal(t, Record{"index": {Title: "Overview"}}, rec)
}

func TestSynthesize_MissingDirFails(t *testing.T) {
	s := NewSynthesizer("index.mdx", "_meta.js")
	_, err := s.Synthesize(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
