// Package report assembles the pipeline stages into the report families
// the CLI exposes. Each run is batch-oriented and single-threaded: one
// input at a time, with per-input failures recorded and skipped so one
// bad export cannot abort the rest of the run.
package report

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Document is one raw input handed over by the collaborators that deal
// with directories and uploads: a name for reporting plus the undecoded
// body.
type Document struct {
	Name string
	Body []byte
}

// Warning records one skipped input and why.
type Warning struct {
	Input  string
	Reason string
}

// Summary is the always-produced account of a run, even on partial
// success.
type Summary struct {
	RunID     string
	Processed int
	Skipped   int
	Warnings  []Warning
}

func (s *Summary) skip(input, reason string) {
	s.Skipped++
	s.Warnings = append(s.Warnings, Warning{Input: input, Reason: reason})
}

// String renders the processed/skipped counts for operator output.
func (s *Summary) String() string {
	return fmt.Sprintf("run %s: processed %d, skipped %d", s.RunID, s.Processed, s.Skipped)
}

var runEntropy = ulid.Monotonic(rand.Reader, 0)

func newSummary() Summary {
	return Summary{RunID: ulid.MustNew(ulid.Now(), runEntropy).String()}
}

// ScanDir lists files in dir with the given extension, sorted, and loads
// each into a Document. Unreadable files surface as an error; an
// unreadable input directory is a whole-run failure.
func ScanDir(dir, ext string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	docs := make([]Document, 0, len(names))
	for _, name := range names {
		body, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		docs = append(docs, Document{Name: name, Body: body})
	}
	return docs, nil
}
