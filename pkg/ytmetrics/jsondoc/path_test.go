package jsondoc

import (
	"testing"
)

const sampleDoc = `{
	"results": [
		{
			"key": "CHART_QUERY",
			"value": {
				"resultTable": {
					"dimensionColumns": [
						{"dateIds": {"values": [20240101, 20240102]}},
						{"strings": {"values": ["v1", "v2"]}}
					],
					"metricColumns": [
						{"metric": {"type": "VIEWS"}, "counts": {"values": [10, 20]}}
					]
				}
			}
		}
	]
}`

func TestResolveFullPath(t *testing.T) {
	doc, err := Decode([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	v, ok := Resolve(doc, MustPath("results[0].value.resultTable.metricColumns[0].metric.type"))
	if !ok {
		t.Fatal("expected path to resolve")
	}
	if v.String() != "VIEWS" {
		t.Errorf("expected VIEWS, got %q", v.String())
	}
}

func TestResolveArrayValue(t *testing.T) {
	doc, err := Decode([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	v, ok := Resolve(doc, MustPath("results[0].value.resultTable.dimensionColumns[1].strings.values"))
	if !ok {
		t.Fatal("expected path to resolve")
	}
	if v.Len() != 2 {
		t.Fatalf("expected 2 ids, got %d", v.Len())
	}
	id, _ := v.Array()[0].AsString()
	if id != "v1" {
		t.Errorf("expected v1, got %q", id)
	}
}

func TestResolveNotFound(t *testing.T) {
	doc, err := Decode([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	cases := []string{
		"results[5].value",              // index out of range
		"results[0].missing",            // absent field
		"results[0].key.nested",         // lookup into a scalar
		"results[0].value.resultTable.dimensionColumns[0].dateIds.values[9]", // element out of range
	}
	for _, expr := range cases {
		if _, ok := Resolve(doc, MustPath(expr)); ok {
			t.Errorf("path %q: expected not-found", expr)
		}
	}
}

func TestResolveNeverPanics(t *testing.T) {
	// Resolving against a scalar root must degrade to not-found.
	doc, _ := Decode([]byte(`42`))
	if _, ok := Resolve(doc, MustPath("a.b[0].c")); ok {
		t.Error("expected not-found against scalar root")
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, expr := range []string{"", "a..b", "a[x]", "a[-1]", "[0]", "a[0"} {
		if _, err := ParsePath(expr); err == nil {
			t.Errorf("expected parse error for %q", expr)
		}
	}
}

func TestPathRoundTrip(t *testing.T) {
	expr := "results[0].value.getCards.cards[0].scatterplotData"
	path := MustPath(expr)
	if got := path.String(); got != expr {
		t.Errorf("round trip mismatch: %q", got)
	}
}

func TestNumericDimensionAsString(t *testing.T) {
	doc, _ := Decode([]byte(sampleDoc))
	v, ok := Resolve(doc, MustPath("results[0].value.resultTable.dimensionColumns[0].dateIds.values[0]"))
	if !ok {
		t.Fatal("expected date id to resolve")
	}
	s, ok := v.AsString()
	if !ok || s != "20240101" {
		t.Errorf("expected 20240101, got %q", s)
	}
}
