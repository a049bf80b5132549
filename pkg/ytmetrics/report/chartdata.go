package report

import (
	"fmt"
	"path/filepath"

	"github.com/cgileta/ytmetrics/internal/ziparchive"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/config"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/internalerr"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/table"
)

// ChartData merges the named CSV out of every archive in dir with
// outer-merge-with-fill semantics on the configured key set: a later
// archive only fills cells earlier archives left empty. Exact duplicate
// rows are dropped once at the end.
//
// Archives missing the CSV, or whose CSV cannot be read, are skipped
// with a recorded reason; a table missing the key columns skips only its
// merge step.
func ChartData(dir string, cfg config.ChartDataConfig) (*table.Table, Summary, error) {
	summary := newSummary()

	archives, err := ziparchive.List(dir)
	if err != nil {
		return nil, summary, err
	}

	var merged *table.Table
	for _, name := range archives {
		batch, err := ziparchive.ReadCSV(filepath.Join(dir, name), cfg.CSVName)
		if err != nil {
			summary.skip(name, err.Error())
			continue
		}
		if merged == nil {
			merged = batch
			summary.Processed++
			continue
		}
		if _, err := table.MergeFill(merged, batch, cfg.Keys); err != nil {
			summary.skip(name, fmt.Sprintf("merge failed: %v", err))
			continue
		}
		summary.Processed++
	}

	if merged == nil {
		return nil, summary, fmt.Errorf("chart data merge: %w", internalerr.ErrNoData)
	}
	merged.Dedupe()
	return merged, summary, nil
}
