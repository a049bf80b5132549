// Package ziparchive is the archive collaborator for the report
// pipeline: it lists export archives, pulls named CSV files out of them
// as parsed tables, and derives the descriptive tags encoded in
// retention archive filenames.
package ziparchive

import (
	"archive/zip"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/cgileta/ytmetrics/pkg/ytmetrics/table"
)

// ErrMissingFile marks an archive that does not contain the wanted CSV.
var ErrMissingFile = errors.New("file not in archive")

// List returns the .zip filenames in dir, sorted for stable run order.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".zip") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ReadCSV extracts the named CSV from the archive and parses it. The
// archive is read in place; nothing is written to disk.
func ReadCSV(zipPath, name string) (*table.Table, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(zipPath), err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s in %s: %w", name, filepath.Base(zipPath), err)
		}
		t, err := table.ReadCSV(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s in %s: %w", name, filepath.Base(zipPath), err)
		}
		return t, nil
	}
	return nil, fmt.Errorf("%s in %s: %w", name, filepath.Base(zipPath), ErrMissingFile)
}

// TagParser derives (start date, end date, video title) from a retention
// archive filename.
type TagParser struct {
	re *regexp.Regexp
}

// NewTagParser compiles the filename pattern. The pattern must capture
// exactly three groups: start date, end date, title.
func NewTagParser(pattern string) (*TagParser, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("filename pattern: %w", err)
	}
	if re.NumSubexp() != 3 {
		return nil, fmt.Errorf("filename pattern: want 3 capture groups, have %d", re.NumSubexp())
	}
	return &TagParser{re: re}, nil
}

// Parse extracts the three tags. A filename that does not match the
// pattern degrades to "Unknown" for all three, never an error.
func (p *TagParser) Parse(filename string) (start, end, title string) {
	m := p.re.FindStringSubmatch(filename)
	if m == nil {
		return "Unknown", "Unknown", "Unknown"
	}
	return m[1], m[2], m[3]
}
