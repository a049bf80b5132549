package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgileta/ytmetrics/pkg/ytmetrics/table"
)

func TestAddRunningTotalsGroupsByVideo(t *testing.T) {
	tbl := table.New("Video IDs", "Dates", "VIEWS")
	tbl.Append(table.Row{"Video IDs": "v1", "Dates": "2024-01-01", "VIEWS": int64(10)})
	tbl.Append(table.Row{"Video IDs": "v1", "Dates": "2024-01-02", "VIEWS": int64(5)})
	tbl.Append(table.Row{"Video IDs": "v2", "Dates": "2024-01-01", "VIEWS": int64(7)})

	AddRunningTotals(tbl, "Video IDs", []string{"Dates"})

	require.True(t, tbl.HasColumn("VIEWS_RUNNING_TOTAL"))
	assert.Equal(t, int64(10), tbl.Row(0)["VIEWS_RUNNING_TOTAL"])
	assert.Equal(t, int64(15), tbl.Row(1)["VIEWS_RUNNING_TOTAL"])
	assert.Equal(t, int64(7), tbl.Row(2)["VIEWS_RUNNING_TOTAL"], "groups must not bleed into each other")
}

func TestAddRunningTotalsSkipsExistingTotals(t *testing.T) {
	tbl := table.New("Video IDs", "VIEWS", "VIEWS_RUNNING_TOTAL")
	tbl.Append(table.Row{"Video IDs": "v1", "VIEWS": int64(10), "VIEWS_RUNNING_TOTAL": int64(10)})

	AddRunningTotals(tbl, "Video IDs", nil)

	assert.False(t, tbl.HasColumn("VIEWS_RUNNING_TOTAL_RUNNING_TOTAL"))
}

func TestAddRunningTotalsFloatColumn(t *testing.T) {
	tbl := table.New("Video IDs", "WATCH_TIME")
	tbl.Append(table.Row{"Video IDs": "v1", "WATCH_TIME": 1.5})
	tbl.Append(table.Row{"Video IDs": "v1", "WATCH_TIME": 2.25})

	AddRunningTotals(tbl, "Video IDs", nil)

	assert.Equal(t, 3.75, tbl.Row(1)["WATCH_TIME_RUNNING_TOTAL"])
}

func TestConvertUnitsLadder(t *testing.T) {
	tbl := table.New("VIDEO_ID", "VIEWS", "WATCH_TIME", "AVERAGE_WATCH_TIME", "AVERAGE_WATCH_PERCENTAGE", "INTRO_TIME_MILLIS")
	tbl.Append(table.Row{
		"VIDEO_ID":                 "v1",
		"VIEWS":                    float64(10.9),
		"WATCH_TIME":               float64(7_200_000),
		"AVERAGE_WATCH_TIME":       float64(90_000),
		"AVERAGE_WATCH_PERCENTAGE": float64(12.3456),
		"INTRO_TIME_MILLIS":        float64(1_234),
	})

	ConvertUnits(tbl, []string{"VIEWS", "WATCH_TIME", "AVERAGE_WATCH_TIME", "AVERAGE_WATCH_PERCENTAGE", "INTRO_TIME_MILLIS"})

	row := tbl.Row(0)
	assert.Equal(t, int64(10), row["VIEWS"], "counts truncate to integers")
	assert.Equal(t, 2.0, row["WATCH_TIME"], "milliseconds to hours")
	assert.Equal(t, 1.5, row["AVERAGE_WATCH_TIME"], "milliseconds to minutes")
	assert.Equal(t, 12.35, row["AVERAGE_WATCH_PERCENTAGE"], "percentages round to 2 decimals")
	assert.Equal(t, 1.2, row["INTRO_TIME_MILLIS"], "other millisecond columns to seconds, 1 decimal")
}

func TestConvertUnitsNulls(t *testing.T) {
	tbl := table.New("VIEWS", "AVERAGE_WATCH_PERCENTAGE")
	tbl.Append(table.Row{"VIEWS": nil, "AVERAGE_WATCH_PERCENTAGE": nil})

	ConvertUnits(tbl, []string{"VIEWS", "AVERAGE_WATCH_PERCENTAGE"})

	assert.Equal(t, int64(0), tbl.Row(0)["VIEWS"], "null counts become zero")
	assert.Nil(t, tbl.Row(0)["AVERAGE_WATCH_PERCENTAGE"], "null percentages stay null")
}

func TestOrderColumns(t *testing.T) {
	tbl := table.New("Video IDs", "Dates")
	tbl.Append(table.Row{
		"Video IDs": "v1", "Dates": "2024-01-01",
		"EXTRA_METRIC": int64(1), "VIEWS": int64(10), "WATCH_TIME": 2.0,
	})
	AddRunningTotals(tbl, "Video IDs", []string{"Dates"})

	OrderColumns(tbl, []string{"Video IDs", "Dates"}, []string{"VIEWS", "WATCH_TIME"})

	assert.Equal(t, []string{
		"Video IDs", "Dates",
		"VIEWS", "WATCH_TIME", "EXTRA_METRIC",
		"VIEWS_RUNNING_TOTAL", "WATCH_TIME_RUNNING_TOTAL", "EXTRA_METRIC_RUNNING_TOTAL",
	}, tbl.Columns())
}

func TestAddDailyRatios(t *testing.T) {
	tbl := table.New("ytVideoID", "views", "comments", "likes", "shares", "estimatedMinutesWatched", "DaysSincePublish")
	tbl.Append(table.Row{
		"ytVideoID": "v1", "views": int64(200), "comments": int64(4), "likes": int64(10),
		"shares": int64(6), "estimatedMinutesWatched": int64(400), "DaysSincePublish": int64(0),
	})
	tbl.Append(table.Row{
		"ytVideoID": "v2", "views": int64(0), "comments": int64(1), "likes": int64(1),
		"shares": int64(1), "estimatedMinutesWatched": int64(5), "DaysSincePublish": int64(10),
	})

	AddDailyRatios(tbl)

	r0 := tbl.Row(0)
	assert.Equal(t, 200.0, r0[ViewsPerDayCol], "day zero counts as one day")
	assert.Equal(t, 10.0, r0[EngagementRateCol])
	assert.Equal(t, 2.0, r0[RetentionRateCol])

	r1 := tbl.Row(1)
	assert.Equal(t, 0.0, r1[EngagementRateCol], "zero views guards to zero")
	assert.Equal(t, 0.0, r1[RetentionRateCol])
}
