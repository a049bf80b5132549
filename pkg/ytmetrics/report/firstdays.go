package report

import (
	"bytes"
	"fmt"

	"github.com/cgileta/ytmetrics/pkg/ytmetrics/config"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/derive"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/extract"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/internalerr"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/jsondoc"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/table"
)

// FirstDays builds the per-period report from a single scatterplot card
// export: resolve the configured metric slots, assemble the lag-window
// rows, join the side-entity metadata, and apply the unit-conversion
// ladder. A single-document run has no partial-success mode; any failure
// is the run's failure.
func FirstDays(doc Document, cfg config.Config) (*table.Table, error) {
	body := bytes.TrimSpace(doc.Body)
	if len(body) == 0 {
		return nil, fmt.Errorf("%s: %w", doc.Name, internalerr.ErrEmptyInput)
	}
	parsed, err := jsondoc.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Name, err)
	}

	cols, err := extract.ResolveFirstDays(parsed, cfg.FirstDays)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Name, err)
	}

	t := extract.AssembleFirstDays(cols, cfg.FirstDays.Periods)

	base, err := jsondoc.ParsePath(cfg.FirstDays.BasePath)
	if err != nil {
		return nil, err
	}
	// sideEntities hang off the card, two levels above the result table
	// (cards[i].scatterplotData.resultTable vs cards[i].sideEntities).
	card := base
	if len(base) >= 2 {
		card = base[:len(base)-2]
	}
	meta := extract.ExtractSideEntities(parsed, card)
	extract.Join(t, meta, "VIDEO_ID", extract.MetadataColumns{
		Title:     "TITLE",
		Published: "PUBLISHED_DATE",
	})

	derive.ConvertUnits(t, cols.MetricNames())

	order := []string{"VIDEO_ID", "TITLE", "PUBLISHED_DATE", "TIME_PERIOD"}
	order = append(order, cols.MetricNames()...)
	t.Reorder(order)
	return t, nil
}
