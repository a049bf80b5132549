package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgileta/ytmetrics/pkg/ytmetrics/internalerr"
)

func TestAppendGrowsSchema(t *testing.T) {
	tbl := New("Video IDs", "Dates")
	tbl.Append(Row{"Video IDs": "v1", "Dates": "2024-01-01", "VIEWS": int64(10)})

	assert.Equal(t, []string{"Video IDs", "Dates", "VIEWS"}, tbl.Columns())
	assert.Equal(t, 1, tbl.Len())
}

func TestMergeFillBackfillsOnly(t *testing.T) {
	// Same video id in two documents: first with views null, second with
	// views=5 -> merged views is 5 (gap filled, not overwritten).
	base := New("Video IDs", "Dates", "VIEWS", "COMMENTS")
	base.Append(Row{"Video IDs": "v1", "Dates": "2024-01-01", "VIEWS": nil, "COMMENTS": int64(3)})

	other := New("Video IDs", "Dates", "VIEWS", "COMMENTS")
	other.Append(Row{"Video IDs": "v1", "Dates": "2024-01-01", "VIEWS": int64(5), "COMMENTS": int64(99)})
	other.Append(Row{"Video IDs": "v2", "Dates": "2024-01-01", "VIEWS": int64(7), "COMMENTS": nil})

	merged, err := MergeFill(base, other, []string{"Video IDs", "Dates"})
	require.NoError(t, err)

	require.Equal(t, 2, merged.Len())
	assert.Equal(t, int64(5), merged.Row(0)["VIEWS"], "null cell should be filled")
	assert.Equal(t, int64(3), merged.Row(0)["COMMENTS"], "present cell must never be overwritten")
	assert.Equal(t, int64(7), merged.Row(1)["VIEWS"], "new key tuple should be appended")
}

func TestMergeFillAddsColumns(t *testing.T) {
	base := New("Video IDs", "Dates", "VIEWS")
	base.Append(Row{"Video IDs": "v1", "Dates": "2024-01-01", "VIEWS": int64(10)})

	other := New("Video IDs", "Dates", "WATCH_TIME")
	other.Append(Row{"Video IDs": "v1", "Dates": "2024-01-01", "WATCH_TIME": float64(3600000)})

	merged, err := MergeFill(base, other, []string{"Video IDs", "Dates"})
	require.NoError(t, err)
	require.Equal(t, 1, merged.Len())
	assert.Equal(t, float64(3600000), merged.Row(0)["WATCH_TIME"])
	assert.Equal(t, []string{"Video IDs", "Dates", "VIEWS", "WATCH_TIME"}, merged.Columns())
}

func TestMergeFillMissingKeyColumn(t *testing.T) {
	base := New("Video IDs", "Dates")
	base.Append(Row{"Video IDs": "v1", "Dates": "2024-01-01"})
	other := New("Video IDs") // no Dates column

	_, err := MergeFill(base, other, []string{"Video IDs", "Dates"})
	require.ErrorIs(t, err, internalerr.ErrNoKeyColumns)
	assert.Equal(t, 1, base.Len(), "failed merge must leave base untouched")
}

func TestConcatAndTag(t *testing.T) {
	a := New("Video position (%)", "Started watching")
	a.Append(Row{"Video position (%)": int64(0), "Started watching": int64(100)})
	a.SetConstant("zipfilename", "a.zip")

	b := New("Video position (%)", "Started watching")
	b.Append(Row{"Video position (%)": int64(0), "Started watching": int64(50)})
	b.SetConstant("zipfilename", "b.zip")

	Concat(a, b)
	require.Equal(t, 2, a.Len())
	assert.Equal(t, "a.zip", a.Row(0)["zipfilename"])
	assert.Equal(t, "b.zip", a.Row(1)["zipfilename"])
}

func TestDedupe(t *testing.T) {
	tbl := New("a", "b")
	tbl.Append(Row{"a": int64(1), "b": "x"})
	tbl.Append(Row{"a": int64(1), "b": "x"})
	tbl.Append(Row{"a": int64(1), "b": "y"})
	tbl.Dedupe()
	assert.Equal(t, 2, tbl.Len())
}

func TestSortByMultipleColumns(t *testing.T) {
	tbl := New("id", "date")
	tbl.Append(Row{"id": "v2", "date": "2024-01-01"})
	tbl.Append(Row{"id": "v1", "date": "2024-01-02"})
	tbl.Append(Row{"id": "v1", "date": "2024-01-01"})
	tbl.SortBy("id", "date")

	assert.Equal(t, "v1", tbl.Row(0)["id"])
	assert.Equal(t, "2024-01-01", tbl.Row(0)["date"])
	assert.Equal(t, "2024-01-02", tbl.Row(1)["date"])
	assert.Equal(t, "v2", tbl.Row(2)["id"])
}

func TestCSVRoundTrip(t *testing.T) {
	tbl := New("Video IDs", "Dates", "VIEWS", "VTR")
	tbl.Append(Row{"Video IDs": "v1", "Dates": "2024-01-01", "VIEWS": int64(10), "VTR": 12.34})
	tbl.Append(Row{"Video IDs": "v2", "Dates": "2024-01-02", "VIEWS": nil, "VTR": 0.5})

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Equal(t, tbl.Len(), back.Len())
	assert.Equal(t, tbl.Columns(), back.Columns())
	assert.Equal(t, int64(10), back.Row(0)["VIEWS"])
	assert.Equal(t, 12.34, back.Row(0)["VTR"])
	assert.Nil(t, back.Row(1)["VIEWS"], "empty field reads back as null")
}

func TestReadCSVTypes(t *testing.T) {
	in := "id,count,rate,label\nv1,10,1.5,24h\n"
	tbl, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	row := tbl.Row(0)
	assert.Equal(t, "v1", row["id"])
	assert.Equal(t, int64(10), row["count"])
	assert.Equal(t, 1.5, row["rate"])
	assert.Equal(t, "24h", row["label"], "non-numeric stays a string")
}

func TestFillNull(t *testing.T) {
	tbl := New("id", "VIEWS", "WATCH_TIME")
	tbl.Append(Row{"id": "v1", "VIEWS": nil, "WATCH_TIME": nil})
	tbl.FillNull(int64(0), "VIEWS", "WATCH_TIME")
	assert.Equal(t, int64(0), tbl.Row(0)["VIEWS"])
	assert.Equal(t, int64(0), tbl.Row(0)["WATCH_TIME"])
	assert.Equal(t, "v1", tbl.Row(0)["id"])
}
