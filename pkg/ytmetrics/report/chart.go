package report

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cgileta/ytmetrics/pkg/ytmetrics/config"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/derive"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/extract"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/internalerr"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/jsondoc"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/table"
)

var chartKeys = []string{"Video IDs", "Dates"}

// Chart builds the merged chart metrics report from a batch of JSON
// exports: extract per-document tables, reconcile them by outer
// merge-with-fill on video id and date, fill remaining gaps with zero,
// convert units, add running totals, order columns, and left-join the
// collected video metadata.
//
// An input that yields neither metrics nor metadata is skipped with a
// recorded reason. With no metrics and no metadata at all, the returned
// table is the header-only placeholder and the error wraps
// internalerr.ErrNoData.
func Chart(docs []Document, cfg config.Config) (*table.Table, Summary, error) {
	summary := newSummary()
	var combined *table.Table
	meta := extract.NewMetadataSet()

	for _, doc := range docs {
		body := bytes.TrimSpace(doc.Body)
		if len(body) == 0 {
			summary.skip(doc.Name, "empty file")
			continue
		}
		parsed, err := jsondoc.Decode(body)
		if err != nil {
			summary.skip(doc.Name, fmt.Sprintf("undecodable: %v", err))
			continue
		}

		docMeta := extract.ExtractChartMetadata(parsed)
		meta.Merge(docMeta)

		cols, err := extract.ResolveChart(parsed, cfg.Chart)
		if err != nil {
			if docMeta.Len() == 0 {
				summary.skip(doc.Name, fmt.Sprintf("no data extracted: %v", err))
			}
			continue
		}
		batch := extract.AssembleChart(cols)

		if combined == nil {
			combined = batch
		} else if _, err := table.MergeFill(combined, batch, chartKeys); err != nil {
			summary.skip(doc.Name, fmt.Sprintf("merge failed: %v", err))
			continue
		}
		summary.Processed++
	}

	hasMetrics := combined != nil && len(combined.Columns()) > len(chartKeys)
	hasMeta := meta.Len() > 0

	if !hasMetrics && !hasMeta {
		return table.New("Video IDs"), summary, fmt.Errorf("chart report: %w", internalerr.ErrNoData)
	}
	if !hasMetrics {
		return metadataTable(meta), summary, nil
	}

	metricCols := metricColumnsOf(combined)
	combined.FillNull(int64(0), metricCols...)
	derive.ConvertUnits(combined, metricCols)
	combined.SortBy(chartKeys...)
	derive.AddRunningTotals(combined, "Video IDs", []string{"Dates"})
	derive.OrderColumns(combined, chartKeys, cfg.Chart.KnownOrder)

	if hasMeta {
		extract.Join(combined, meta, "Video IDs", extract.MetadataColumns{
			Title:     "Title",
			Published: "Published Date",
			Length:    "Length (seconds)",
		})
		// Metadata columns sit right after the key columns.
		order := append([]string{}, chartKeys...)
		order = append(order, "Title", "Published Date", "Length (seconds)")
		for _, c := range combined.Columns() {
			switch c {
			case "Video IDs", "Dates", "Title", "Published Date", "Length (seconds)":
			default:
				order = append(order, c)
			}
		}
		combined.Reorder(order)
	}

	return combined, summary, nil
}

// IsNoData reports whether err marks a run that produced nothing at all.
func IsNoData(err error) bool {
	return errors.Is(err, internalerr.ErrNoData)
}

func metricColumnsOf(t *table.Table) []string {
	var cols []string
	for _, c := range t.Columns() {
		switch c {
		case "Video IDs", "Dates":
		default:
			if !derive.IsRunningTotal(c) {
				cols = append(cols, c)
			}
		}
	}
	return cols
}

// metadataTable renders the metadata set alone, for batches that carried
// video descriptions but no chart metrics.
func metadataTable(meta *extract.MetadataSet) *table.Table {
	t := table.New("Video IDs", "Title", "Published Date", "Length (seconds)")
	for _, id := range meta.IDs() {
		m, _ := meta.Get(id)
		t.Append(table.Row{
			"Video IDs":        m.ID,
			"Title":            m.Title,
			"Published Date":   m.Published,
			"Length (seconds)": m.Length,
		})
	}
	return t
}
