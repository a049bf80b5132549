package derive

import (
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/table"
)

// Daily ratio column names.
const (
	ViewsPerDayCol    = "ViewsPerDay"
	EngagementRateCol = "EngagementRate"
	RetentionRateCol  = "RetentionRate"
)

// AddDailyRatios appends the per-day rate columns to a daily stats table:
//
//	ViewsPerDay    = views / DaysSincePublish (day zero counts as one)
//	EngagementRate = (comments + likes + shares) / views * 100
//	RetentionRate  = estimatedMinutesWatched / views
//
// A null or zero denominator yields 0, not an error.
func AddDailyRatios(t *table.Table) {
	t.AddColumn(ViewsPerDayCol)
	t.AddColumn(EngagementRateCol)
	t.AddColumn(RetentionRateCol)

	for _, row := range t.Rows() {
		views := cellFloat(row, "views")
		days := cellFloat(row, "DaysSincePublish")
		if days == 0 {
			days = 1
		}
		row[ViewsPerDayCol] = views / days

		engagement := cellFloat(row, "comments") + cellFloat(row, "likes") + cellFloat(row, "shares")
		row[EngagementRateCol] = guardedRate(engagement*100, views)
		row[RetentionRateCol] = guardedRate(cellFloat(row, "estimatedMinutesWatched"), views)
	}
}

func cellFloat(row table.Row, col string) float64 {
	f, _ := table.Float(row[col])
	return f
}

func guardedRate(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
