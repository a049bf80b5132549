package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cgileta/ytmetrics/pkg/ytmetrics/config"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/derive"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/internalerr"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/snapshot"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/table"
)

// Daily builds the per-day running-total report from a local stats
// snapshot: rows for videos published on or after filterDate, sorted by
// video then date, with days-since-publish, RunningTotal_* columns for
// every configured metric, and the three rate columns.
func Daily(ctx context.Context, snapshotPath, filterDate string, cfg config.DailyConfig) (*table.Table, error) {
	if _, err := time.Parse("2006-01-02", filterDate); err != nil {
		return nil, fmt.Errorf("filter date %q: want YYYY-MM-DD", filterDate)
	}

	db, err := snapshot.Open(ctx, snapshotPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	t, err := db.VideoStats(ctx, filterDate)
	if err != nil {
		return nil, err
	}
	if t.Empty() {
		return nil, fmt.Errorf("daily stats after %s: %w", filterDate, internalerr.ErrNoData)
	}

	addDaysSincePublish(t)
	t.SortBy("ytVideoID", "Date")
	derive.AddRunningTotalsNamed(t, "ytVideoID", cfg.Metrics, func(metric string) string {
		return "RunningTotal_" + metric
	})
	derive.AddDailyRatios(t)
	return t, nil
}

// addDaysSincePublish computes whole days between the publish date and
// the stats date. Unparseable dates leave a null cell.
func addDaysSincePublish(t *table.Table) {
	t.AddColumn("DaysSincePublish")
	for _, row := range t.Rows() {
		published, ok1 := parseDay(row["ytVideoPublishedDate"])
		day, ok2 := parseDay(row["Date"])
		if !ok1 || !ok2 {
			continue
		}
		row["DaysSincePublish"] = int64(day.Sub(published).Hours() / 24)
	}
}

func parseDay(v table.Value) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
