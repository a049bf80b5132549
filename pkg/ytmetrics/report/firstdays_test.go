package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgileta/ytmetrics/pkg/ytmetrics/config"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/internalerr"
)

const firstDaysDoc = `{
  "results": [
    {
      "value": {
        "getCards": {
          "cards": [
            {
              "scatterplotData": {
                "resultTable": {
                  "dimensionColumns": [
                    {"strings": {"values": ["vA", "vB"]}}
                  ],
                  "metricColumns": [
                    {"counts": {"values": [10, 20, 30]}}
                  ]
                }
              },
              "sideEntities": {
                "videos": [
                  {"entityData": {"videoId": "vA", "title": "Alpha"}}
                ]
              }
            }
          ]
        }
      }
    }
  ]
}`

func firstDaysConfig() config.Config {
	cfg := config.Default()
	cfg.FirstDays.Slots = []config.MetricSlot{
		{Path: "metricColumns[0].counts.values", Name: "VIEWS"},
	}
	return cfg
}

func TestFirstDaysReport(t *testing.T) {
	tbl, err := FirstDays(Document{Name: "card.json", Body: []byte(firstDaysDoc)}, firstDaysConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"VIDEO_ID", "TITLE", "PUBLISHED_DATE", "TIME_PERIOD", "VIEWS"}, tbl.Columns())

	// vA reads positions 0..2, vB reads 1..2 before running off the
	// value array.
	require.Equal(t, 5, tbl.Len())
	assert.Equal(t, "vA", tbl.Row(0)["VIDEO_ID"])
	assert.Equal(t, "24h", tbl.Row(0)["TIME_PERIOD"])
	assert.Equal(t, int64(10), tbl.Row(0)["VIEWS"])
	assert.Equal(t, int64(30), tbl.Row(2)["VIEWS"])

	assert.Equal(t, "vB", tbl.Row(3)["VIDEO_ID"])
	assert.Equal(t, "24h", tbl.Row(3)["TIME_PERIOD"])
	assert.Equal(t, int64(20), tbl.Row(3)["VIEWS"])
	assert.Equal(t, int64(30), tbl.Row(4)["VIEWS"])

	assert.Equal(t, "Alpha", tbl.Row(0)["TITLE"], "side entities join by video id")
	assert.Nil(t, tbl.Row(3)["TITLE"], "videos without side entities keep null metadata")
}

func TestFirstDaysEmptyInput(t *testing.T) {
	_, err := FirstDays(Document{Name: "card.json", Body: []byte("\n\t ")}, firstDaysConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrEmptyInput))
}

func TestFirstDaysNoMetrics(t *testing.T) {
	doc := `{"results": [{"value": {"getCards": {"cards": [{"scatterplotData": {"resultTable": {
		"dimensionColumns": [{"strings": {"values": ["vA"]}}],
		"metricColumns": []
	}}}]}}}]}`

	_, err := FirstDays(Document{Name: "card.json", Body: []byte(doc)}, firstDaysConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrNoMetrics))
}
