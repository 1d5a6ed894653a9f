// Package nav synthesizes per-directory navigation records for the destination
// site's router. One record is written per directory, mapping each immediate
// child directory (and an optional index entry) to a display title derived
// purely from the segment name.
package nav

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/docpub/internal/errors"
	"git.home.luguber.info/inful/docpub/internal/logfields"
	"git.home.luguber.info/inful/docpub/internal/title"
)

// Entry is one navigation record value.
type Entry struct {
	Title string `json:"title"`
}

// Record maps a directory's immediate child name to its display entry.
type Record map[string]Entry

// IndexKey is the literal record key for a directory's index content file.
// Its title is always the fixed string "Overview", never the general
// formatting path.
const IndexKey = "index"

const generatedMarker = "// @generated by docpub. DO NOT EDIT."

// Synthesizer walks a replicated destination subtree and writes one navigation
// record per directory.
type Synthesizer struct {
	// IndexFile is the content filename that earns the IndexKey entry.
	IndexFile string
	// MetaFile is the record filename written into each directory. A .json
	// extension selects plain JSON; anything else gets the generated-marker
	// JS module form.
	MetaFile string
}

// NewSynthesizer returns a Synthesizer for the given index and metadata filenames.
func NewSynthesizer(indexFile, metaFile string) *Synthesizer {
	return &Synthesizer{IndexFile: indexFile, MetaFile: metaFile}
}

// Synthesize writes navigation records for dir and every directory below it,
// parent before children. Invoked only after replication of the subtree has
// completed. Re-running on an unchanged tree produces byte-identical output;
// a write failure aborts the remaining traversal.
func (s *Synthesizer) Synthesize(dir string) (int, error) {
	written := 0
	if err := s.synthesizeDir(dir, &written); err != nil {
		return written, err
	}
	slog.Debug("Synthesized navigation records", logfields.Path(dir), logfields.Records(written))
	return written, nil
}

func (s *Synthesizer) synthesizeDir(dir string, written *int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return derrors.DestinationWriteFailure(dir, err)
	}

	record := Record{}
	var subdirs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			record[name] = Entry{Title: title.Format(name)}
			subdirs = append(subdirs, name)
			continue
		}
		if name == s.IndexFile {
			record[IndexKey] = Entry{Title: "Overview"}
		}
	}

	if err := s.writeRecord(dir, record); err != nil {
		return err
	}
	*written++

	for _, sub := range subdirs {
		if err := s.synthesizeDir(filepath.Join(dir, sub), written); err != nil {
			return err
		}
	}
	return nil
}

// writeRecord serializes the record into dir. json.MarshalIndent emits map
// keys sorted, so output is deterministic across runs.
func (s *Synthesizer) writeRecord(dir string, record Record) error {
	body, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return derrors.InternalError("marshal navigation record", err)
	}

	var content []byte
	if strings.HasSuffix(s.MetaFile, ".json") {
		content = append(body, '\n')
	} else {
		content = []byte(fmt.Sprintf("%s\nexport default %s;\n", generatedMarker, body))
	}

	path := filepath.Join(dir, s.MetaFile)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return derrors.DestinationWriteFailure(path, err)
	}
	return nil
}
