package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cgileta/ytmetrics/internal/ziparchive"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/config"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/internalerr"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/table"
)

// Retention export file and column names.
const (
	positionCol  = "Video position (%)"
	retentionCol = "Absolute audience retention (%)"
	stoppedCol   = "Stopped watching"
	archiveCol   = "zipfilename"

	organicCSV   = "Organic.csv"
	detailedCSV  = "Detailed activity.csv"
	subNonSubCSV = "Subscribers and non-subscribers.csv"
	newRetCSV    = "New and returning viewers.csv"
)

// Retention builds the audience-retention report across every archive in
// dir: per archive, the four export CSVs are joined on video position
// (with the subscriber and new/returning breakdowns pivoted into
// per-category columns), tagged with the archive name, and concatenated.
// The combined table then gains People Remaining (a reverse cumulative
// sum of Stopped watching per archive), the stopped/remaining ratio, and
// the three tags parsed from the archive filename.
func Retention(dir string, cfg config.RetentionConfig) (*table.Table, Summary, error) {
	summary := newSummary()

	parser, err := ziparchive.NewTagParser(cfg.FilenamePattern)
	if err != nil {
		return nil, summary, err
	}
	archives, err := ziparchive.List(dir)
	if err != nil {
		return nil, summary, err
	}

	combined := table.New()
	for _, name := range archives {
		batch, err := retentionBatch(filepath.Join(dir, name))
		if err != nil {
			summary.skip(name, err.Error())
			continue
		}
		batch.SetConstant(archiveCol, name)
		table.Concat(combined, batch)
		summary.Processed++
	}
	if combined.Empty() {
		return nil, summary, fmt.Errorf("retention report: %w", internalerr.ErrNoData)
	}

	combined.SortBy(archiveCol, positionCol)
	addPeopleRemaining(combined)

	for _, row := range combined.Rows() {
		archive, _ := row[archiveCol].(string)
		start, end, title := parser.Parse(archive)
		row["Start Date"] = start
		row["End Date"] = end
		row["Video Title"] = title
	}
	combined.AddColumn("Start Date")
	combined.AddColumn("End Date")
	combined.AddColumn("Video Title")

	combined.Reorder(cfg.ColumnOrder)
	return combined, summary, nil
}

// retentionBatch merges one archive's four CSVs into a per-position
// table. All four files must be present and readable.
func retentionBatch(zipPath string) (*table.Table, error) {
	organic, err := ziparchive.ReadCSV(zipPath, organicCSV)
	if err != nil {
		return nil, err
	}
	detailed, err := ziparchive.ReadCSV(zipPath, detailedCSV)
	if err != nil {
		return nil, err
	}
	subNonSub, err := ziparchive.ReadCSV(zipPath, subNonSubCSV)
	if err != nil {
		return nil, err
	}
	newReturn, err := ziparchive.ReadCSV(zipPath, newRetCSV)
	if err != nil {
		return nil, err
	}

	merged, err := joinOnPosition(organic, detailed, false)
	if err != nil {
		return nil, err
	}

	subPivot := pivotCategories(subNonSub, "Subscription status", map[string]string{
		"Not subscribed": "Not subscribed Retention",
		"Subscribed":     "Subscribed Retention",
	}, nil)
	if subPivot != nil {
		if merged, err = joinOnPosition(merged, subPivot, true); err != nil {
			return nil, err
		}
	}

	newPivot := pivotCategories(newReturn, "New and Returning Viewers", nil, func(cat string) string {
		switch {
		case strings.Contains(strings.ToLower(cat), "new"):
			return "New Viewer Retention"
		case strings.Contains(strings.ToLower(cat), "return"):
			return "Return Viewer Retention"
		}
		return ""
	})
	if newPivot != nil {
		if merged, err = joinOnPosition(merged, newPivot, true); err != nil {
			return nil, err
		}
	}

	return merged, nil
}

// joinOnPosition merges other into base by video position. Inner keeps
// only matched base rows; left keeps every base row with null cells for
// unmatched positions. The first other-row per position wins.
func joinOnPosition(base, other *table.Table, left bool) (*table.Table, error) {
	if !base.HasColumn(positionCol) || !other.HasColumn(positionCol) {
		return nil, fmt.Errorf("%s: %w", positionCol, internalerr.ErrNoKeyColumns)
	}
	index := make(map[string]table.Row, other.Len())
	for _, row := range other.Rows() {
		key := table.Format(row[positionCol])
		if _, seen := index[key]; !seen {
			index[key] = row
		}
	}

	out := table.New(base.Columns()...)
	for _, c := range other.Columns() {
		out.AddColumn(c)
	}
	for _, row := range base.Rows() {
		match, ok := index[table.Format(row[positionCol])]
		if !ok && !left {
			continue
		}
		joined := make(table.Row, len(row)+len(match))
		for k, v := range row {
			joined[k] = v
		}
		for k, v := range match {
			if k == positionCol {
				continue
			}
			if _, exists := joined[k]; !exists {
				joined[k] = v
			}
		}
		out.Append(joined)
	}
	return out, nil
}

// pivotCategories turns a long-form (position, category, retention)
// table into one row per position with a column per category. Either an
// exact category mapping or a classifier function names the output
// columns; every mapped output column exists in the result even when its
// category is absent. The first value per position and column wins.
func pivotCategories(t *table.Table, catCol string, mapping map[string]string, classify func(string) string) *table.Table {
	if !t.HasColumn(positionCol) || !t.HasColumn(catCol) || !t.HasColumn(retentionCol) {
		return nil
	}

	var outCols []string
	if mapping != nil {
		for _, out := range mapping {
			outCols = append(outCols, out)
		}
		// Map iteration order is random; fix the column order.
		if len(outCols) == 2 && outCols[0] > outCols[1] {
			outCols[0], outCols[1] = outCols[1], outCols[0]
		}
	} else {
		outCols = []string{"New Viewer Retention", "Return Viewer Retention"}
	}

	pivot := table.New(append([]string{positionCol}, outCols...)...)
	byPos := make(map[string]table.Row)
	for _, row := range t.Rows() {
		cat, _ := row[catCol].(string)
		outCol := ""
		if mapping != nil {
			outCol = mapping[cat]
		} else if classify != nil {
			outCol = classify(cat)
		}
		if outCol == "" {
			continue
		}
		key := table.Format(row[positionCol])
		pivotRow, ok := byPos[key]
		if !ok {
			pivotRow = table.Row{positionCol: row[positionCol]}
			byPos[key] = pivotRow
			pivot.Append(pivotRow)
		}
		if pivotRow[outCol] == nil {
			pivotRow[outCol] = row[retentionCol]
		}
	}
	pivot.SortBy(positionCol)
	return pivot
}

// addPeopleRemaining derives the survival columns. Rows must already be
// sorted by archive then position; the reverse cumulative sum runs
// within each archive group.
func addPeopleRemaining(t *table.Table) {
	if !t.HasColumn(stoppedCol) {
		return
	}
	t.AddColumn("People Remaining")
	t.AddColumn("Stopped/Remaining %")

	rows := t.Rows()
	for start := 0; start < len(rows); {
		end := start
		archive := rows[start][archiveCol]
		for end < len(rows) && rows[end][archiveCol] == archive {
			end++
		}
		sum := 0.0
		for i := end - 1; i >= start; i-- {
			if f, ok := table.Float(rows[i][stoppedCol]); ok {
				sum += f
			}
			rows[i]["People Remaining"] = sum
		}
		for i := start; i < end; i++ {
			stopped, ok := table.Float(rows[i][stoppedCol])
			remaining, _ := table.Float(rows[i]["People Remaining"])
			if !ok || remaining == 0 {
				continue
			}
			rows[i]["Stopped/Remaining %"] = stopped / remaining
		}
		start = end
	}
}
