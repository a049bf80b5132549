package extract

import (
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/table"
)

// AssembleChart zips the per-day dimension columns and metric columns
// into one row per position. Rows whose metric cells are all null are
// dropped; they are dimension entries with no data in this document.
func AssembleChart(cols Columns) *table.Table {
	t := table.New("Video IDs", "Dates")
	for _, m := range cols.Metrics {
		t.AddColumn(m.Name)
	}
	for i, id := range cols.IDs {
		row := table.Row{"Video IDs": id}
		if i < len(cols.Dates) {
			row["Dates"] = cols.Dates[i]
		}
		empty := true
		for _, m := range cols.Metrics {
			var v table.Value
			if i < len(m.Values) {
				v = m.Values[i]
			}
			row[m.Name] = v
			if v != nil {
				empty = false
			}
		}
		if empty {
			continue
		}
		t.Append(row)
	}
	return t
}

// AssembleFirstDays emits up to one row per video per period label,
// reading metric cells at position i+p for video index i and period
// index p. The row exists only when i+p is in bounds of every metric
// array.
//
// The sliding offset reuses the same per-video arrays across periods
// rather than one value per distinct period. That matches the upstream
// export handling this report has always shipped with; confirm with the
// report consumers before changing the alignment.
func AssembleFirstDays(cols Columns, periods []string) *table.Table {
	t := table.New("VIDEO_ID", "TIME_PERIOD")
	for _, m := range cols.Metrics {
		t.AddColumn(m.Name)
	}
	for i, id := range cols.IDs {
		for p, label := range periods {
			pos := i + p
			inBounds := true
			for _, m := range cols.Metrics {
				if pos >= len(m.Values) {
					inBounds = false
					break
				}
			}
			if !inBounds {
				break
			}
			row := table.Row{"VIDEO_ID": id, "TIME_PERIOD": label}
			empty := true
			for _, m := range cols.Metrics {
				v := m.Values[pos]
				row[m.Name] = v
				if v != nil {
					empty = false
				}
			}
			if empty {
				continue
			}
			t.Append(row)
		}
	}
	return t
}

// MetricNames returns the column names in slot order.
func (c Columns) MetricNames() []string {
	names := make([]string, len(c.Metrics))
	for i, m := range c.Metrics {
		names[i] = m.Name
	}
	return names
}
