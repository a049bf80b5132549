// Package derive computes the output-side columns: running totals per
// video, unit conversions keyed on column names, the daily ratio
// columns, and the deterministic column ordering the downstream
// spreadsheets rely on.
package derive

import (
	"math"
	"strings"

	"github.com/cgileta/ytmetrics/pkg/ytmetrics/table"
)

const runningTotalSuffix = "_RUNNING_TOTAL"

// RunningTotalName maps a metric column to its running-total column.
func RunningTotalName(metric string) string { return metric + runningTotalSuffix }

// IsRunningTotal reports whether col is a running-total column.
func IsRunningTotal(col string) bool { return strings.HasSuffix(col, runningTotalSuffix) }

// AddRunningTotals appends a cumulative-sum column for every metric
// column of t, grouped by the id column, in current row order. Callers
// must sort by id then date first; totals over unsorted rows are
// meaningless. Columns in skip and existing running totals are left
// alone.
func AddRunningTotals(t *table.Table, idCol string, skip []string) {
	metrics := metricColumns(t, idCol, skip)
	AddRunningTotalsNamed(t, idCol, metrics, RunningTotalName)
}

// AddRunningTotalsNamed is AddRunningTotals over an explicit metric list
// with caller-controlled naming.
func AddRunningTotalsNamed(t *table.Table, idCol string, metrics []string, nameFor func(string) string) {
	for _, metric := range metrics {
		totalCol := nameFor(metric)
		t.AddColumn(totalCol)
		integral := columnIsIntegral(t, metric)
		sums := make(map[string]float64)
		for _, row := range t.Rows() {
			id := table.Format(row[idCol])
			if f, ok := table.Float(row[metric]); ok {
				sums[id] += f
			}
			if integral {
				row[totalCol] = int64(sums[id])
			} else {
				row[totalCol] = sums[id]
			}
		}
	}
}

func metricColumns(t *table.Table, idCol string, skip []string) []string {
	skipSet := map[string]bool{idCol: true}
	for _, c := range skip {
		skipSet[c] = true
	}
	var metrics []string
	for _, c := range t.Columns() {
		if skipSet[c] || IsRunningTotal(c) {
			continue
		}
		metrics = append(metrics, c)
	}
	return metrics
}

// columnIsIntegral reports whether every non-null cell of col is int64.
func columnIsIntegral(t *table.Table, col string) bool {
	for _, row := range t.Rows() {
		switch row[col].(type) {
		case nil, int64:
		default:
			return false
		}
	}
	return true
}

// ConvertUnits applies the name-keyed conversion ladder to the listed
// metric columns, exactly once per pipeline run:
//
//	PERCENTAGE / VTR                -> 2 decimals
//	WATCH_TIME (milliseconds)       -> hours, 2 decimals
//	AVERAGE_WATCH_TIME (ms)         -> minutes, 2 decimals
//	other TIME+MILLI columns        -> seconds, 1 decimal
//	everything else (counts)        -> integer, null treated as zero
func ConvertUnits(t *table.Table, cols []string) {
	for _, col := range cols {
		if !t.HasColumn(col) {
			continue
		}
		convert := converterFor(col)
		for _, row := range t.Rows() {
			row[col] = convert(row[col])
		}
	}
}

func converterFor(col string) func(table.Value) table.Value {
	switch {
	case strings.Contains(col, "PERCENTAGE") || strings.Contains(col, "VTR"):
		return roundFloat(2, 1)
	case col == "WATCH_TIME":
		return roundFloat(2, 3_600_000)
	case col == "AVERAGE_WATCH_TIME":
		return roundFloat(2, 60_000)
	case strings.Contains(col, "TIME") && strings.Contains(col, "MILLI"):
		return roundFloat(1, 1_000)
	default:
		return toCount
	}
}

func roundFloat(decimals int, divisor float64) func(table.Value) table.Value {
	scale := math.Pow(10, float64(decimals))
	return func(v table.Value) table.Value {
		f, ok := table.Float(v)
		if !ok {
			return nil
		}
		return math.Round(f/divisor*scale) / scale
	}
}

func toCount(v table.Value) table.Value {
	f, ok := table.Float(v)
	if !ok {
		return int64(0)
	}
	return int64(f)
}

// OrderColumns reorders t to: the leading key columns, known metrics in
// their preferred order, extra metrics in first-seen order, then every
// metric's running total in the same relative order. Golden-file
// consumers depend on this exact ordering.
func OrderColumns(t *table.Table, leading, known []string) {
	order := append([]string{}, leading...)
	inOrder := make(map[string]bool, len(order))
	for _, c := range order {
		inOrder[c] = true
	}

	for _, m := range known {
		if t.HasColumn(m) && !inOrder[m] {
			order = append(order, m)
			inOrder[m] = true
		}
	}

	var extras []string
	for _, c := range t.Columns() {
		if inOrder[c] || IsRunningTotal(c) {
			continue
		}
		extras = append(extras, c)
		order = append(order, c)
		inOrder[c] = true
	}

	for _, m := range known {
		if total := RunningTotalName(m); t.HasColumn(total) {
			order = append(order, total)
		}
	}
	for _, m := range extras {
		if total := RunningTotalName(m); t.HasColumn(total) {
			order = append(order, total)
		}
	}

	t.Reorder(order)
}
