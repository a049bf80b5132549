// Package extract turns decoded analytics documents into row-oriented
// tables: it resolves dimension and metric columns through fixed path
// templates, zips them into rows, and joins per-video metadata.
package extract

import (
	"fmt"
	"time"

	"github.com/cgileta/ytmetrics/pkg/ytmetrics/config"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/internalerr"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/jsondoc"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/table"
)

// MetricColumn is one named value array, aligned by position to the
// dimension columns it was extracted alongside.
type MetricColumn struct {
	Name   string
	Values []table.Value
}

// Columns is the output of template resolution for one document.
type Columns struct {
	IDs     []string
	Dates   []string // per-day families only; empty otherwise
	Metrics []MetricColumn
}

// ResolveChart locates the chart result table (the results[] entry whose
// key matches cfg.QueryKey) and extracts ids, dates, and every metric
// column it advertises. Metric names come from each column's metric.type
// field when every column has one, and from cfg.FallbackNames otherwise;
// the value array is whichever sibling field carries a values list.
func ResolveChart(doc jsondoc.Value, cfg config.ChartConfig) (Columns, error) {
	rt, ok := chartResultTable(doc, cfg.QueryKey)
	if !ok {
		return Columns{}, fmt.Errorf("result table for key %q: %w", cfg.QueryKey, internalerr.ErrNoMetrics)
	}

	ids, ok := stringValues(rt, "dimensionColumns[1].strings.values")
	if !ok {
		return Columns{}, fmt.Errorf("video id column: %w", internalerr.ErrNoDimensions)
	}
	rawDates, ok := stringValues(rt, "dimensionColumns[0].dateIds.values")
	if !ok {
		return Columns{}, fmt.Errorf("date column: %w", internalerr.ErrNoDimensions)
	}
	dates := make([]string, len(rawDates))
	for i, raw := range rawDates {
		d, err := reformatDateID(raw)
		if err != nil {
			return Columns{}, fmt.Errorf("date column: %w", err)
		}
		dates[i] = d
	}

	cols := Columns{IDs: ids, Dates: dates}
	metricCols, _ := jsondoc.Resolve(rt, jsondoc.MustPath("metricColumns"))
	arr := metricCols.Array()

	// All-or-nothing name substitution: discovered names win only when
	// every column carries one, otherwise the positional fallback names
	// apply across the board.
	discovered := make([]string, len(arr))
	allNamed := len(arr) > 0
	for i, mc := range arr {
		if v, ok := jsondoc.Resolve(mc, jsondoc.MustPath("metric.type")); ok && v.String() != "" {
			discovered[i] = v.String()
		} else {
			allNamed = false
		}
	}

	for i, mc := range arr {
		name := discovered[i]
		if !allNamed {
			if i >= len(cfg.FallbackNames) {
				continue
			}
			name = cfg.FallbackNames[i]
		}
		values, ok := valueContainer(mc)
		if !ok {
			continue
		}
		cols.Metrics = append(cols.Metrics, MetricColumn{
			Name:   name,
			Values: padValues(values, len(ids)),
		})
	}
	if len(cols.Metrics) == 0 {
		return Columns{}, fmt.Errorf("metric columns: %w", internalerr.ErrNoMetrics)
	}
	return cols, nil
}

// chartResultTable scans results[] for the entry carrying the query key.
func chartResultTable(doc jsondoc.Value, queryKey string) (jsondoc.Value, bool) {
	results, ok := jsondoc.Resolve(doc, jsondoc.MustPath("results"))
	if !ok {
		return jsondoc.Value{}, false
	}
	for _, res := range results.Array() {
		key, ok := res.Field("key")
		if !ok || key.String() != queryKey {
			continue
		}
		return jsondoc.Resolve(res, jsondoc.MustPath("value.resultTable"))
	}
	return jsondoc.Value{}, false
}

// valueContainer finds the field of a metric column object that holds the
// value array (counts, percentages, milliseconds, ...). Field names drift
// between export versions, so the container is discovered, not addressed.
func valueContainer(mc jsondoc.Value) ([]table.Value, bool) {
	for _, name := range mc.Keys() {
		if name == "metric" {
			continue
		}
		field, _ := mc.Field(name)
		values, ok := field.Field("values")
		if !ok || values.Kind() != jsondoc.Array {
			continue
		}
		return cellValues(values), true
	}
	return nil, false
}

// ResolveFirstDays resolves the scatterplot card columns: the video id
// list plus every configured metric slot. A slot whose value path is
// absent yields an all-null column sized to the id list, so downstream
// stages always see the full expected column set.
//
// Name discovery is all-or-nothing: discovered names replace the slots'
// fallback names only when every slot's metric.type resolves non-empty.
// A partial rename would leave an inconsistent schema.
func ResolveFirstDays(doc jsondoc.Value, cfg config.FirstDaysConfig) (Columns, error) {
	base, err := jsondoc.ParsePath(cfg.BasePath)
	if err != nil {
		return Columns{}, fmt.Errorf("base path: %w", err)
	}

	idsPath, err := base.Append("dimensionColumns[0].strings.values")
	if err != nil {
		return Columns{}, err
	}
	idsVal, ok := jsondoc.Resolve(doc, idsPath)
	if !ok {
		return Columns{}, fmt.Errorf("video list at %s: %w", idsPath, internalerr.ErrNoDimensions)
	}
	ids := make([]string, 0, idsVal.Len())
	for _, v := range idsVal.Array() {
		s, _ := v.AsString()
		ids = append(ids, s)
	}
	if len(ids) == 0 {
		return Columns{}, fmt.Errorf("video list at %s: %w", idsPath, internalerr.ErrNoDimensions)
	}

	discovered := make([]string, len(cfg.Slots))
	allNamed := true
	for i := range cfg.Slots {
		namePath, err := base.Append(fmt.Sprintf("metricColumns[%d].metric.type", i))
		if err != nil {
			return Columns{}, err
		}
		if v, ok := jsondoc.Resolve(doc, namePath); ok && v.String() != "" {
			discovered[i] = v.String()
		} else {
			allNamed = false
		}
	}

	cols := Columns{IDs: ids}
	found := 0
	for i, slot := range cfg.Slots {
		name := slot.Name
		if allNamed {
			name = discovered[i]
		}
		valuePath, err := base.Append(slot.Path)
		if err != nil {
			return Columns{}, err
		}
		var values []table.Value
		if v, ok := jsondoc.Resolve(doc, valuePath); ok && v.Kind() == jsondoc.Array {
			values = cellValues(v)
			found++
		}
		cols.Metrics = append(cols.Metrics, MetricColumn{
			Name:   name,
			Values: padValues(values, len(ids)),
		})
	}
	if found == 0 {
		return Columns{}, fmt.Errorf("metric slots: %w", internalerr.ErrNoMetrics)
	}
	return cols, nil
}

func stringValues(root jsondoc.Value, expr string) ([]string, bool) {
	v, ok := jsondoc.Resolve(root, jsondoc.MustPath(expr))
	if !ok || v.Kind() != jsondoc.Array {
		return nil, false
	}
	out := make([]string, 0, v.Len())
	for _, elem := range v.Array() {
		s, _ := elem.AsString()
		out = append(out, s)
	}
	return out, true
}

// cellValues converts a JSON array into table cells: numbers stay
// numeric, strings stay strings, anything else is null.
func cellValues(arr jsondoc.Value) []table.Value {
	out := make([]table.Value, arr.Len())
	for i, v := range arr.Array() {
		switch v.Kind() {
		case jsondoc.Number:
			out[i] = v.Number()
		case jsondoc.String:
			out[i] = v.String()
		default:
			out[i] = nil
		}
	}
	return out
}

// padValues extends values with nulls to length n.
func padValues(values []table.Value, n int) []table.Value {
	if len(values) >= n {
		return values
	}
	padded := make([]table.Value, n)
	copy(padded, values)
	return padded
}

// reformatDateID turns a compact date id (20240101) into 2024-01-01.
func reformatDateID(raw string) (string, error) {
	d, err := time.Parse("20060102", raw)
	if err != nil {
		return "", fmt.Errorf("date id %q: %w", raw, err)
	}
	return d.Format("2006-01-02"), nil
}
