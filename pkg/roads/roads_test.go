package roads

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"
)

const collection = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"FULLNAME": "Test Ave", "MTFCC": "S1400"},
      "geometry": {"type": "LineString", "coordinates": [[-77.0326, 38.9288], [-77.0320, 38.9290]]}
    },
    {
      "type": "Feature",
      "properties": {"FULLNAME": null},
      "geometry": {"type": "LineString", "coordinates": [[-77.03, 38.92], [-77.02, 38.93]]}
    },
    {
      "type": "Feature",
      "properties": {"MTFCC": "S1400"},
      "geometry": {"type": "LineString", "coordinates": [[-77.03, 38.92], [-77.02, 38.93]]}
    },
    {
      "type": "Feature",
      "properties": {"FULLNAME": "Moreland St NW"},
      "geometry": {"type": "MultiLineString", "coordinates": [[[-77.03, 38.92], [-77.02, 38.93]]]}
    },
    {
      "type": "Feature",
      "properties": {"FULLNAME": "Irving St NW"},
      "geometry": {"type": "LineString", "coordinates": [[-77.04, 38.928], [-77.03, 38.928], [-77.02, 38.928]]}
    }
  ]
}`

func TestDecode(t *testing.T) {
	got, stats, err := Decode(strings.NewReader(collection), DefaultNameProperty)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Feature{{
		Name: "Test Ave",
		Line: orb.LineString{{-77.0326, 38.9288}, {-77.0320, 38.9290}},
	}, {
		Name: "Irving St NW",
		Line: orb.LineString{{-77.04, 38.928}, {-77.03, 38.928}, {-77.02, 38.928}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong features (-want,+got):\n%s", diff)
	}

	wantStats := Stats{Kept: 2, Unnamed: 2, Unsupported: 1}
	if diff := cmp.Diff(wantStats, stats); diff != "" {
		t.Errorf("wrong stats (-want,+got):\n%s", diff)
	}
}

func TestDecodeNameProperty(t *testing.T) {
	got, stats, err := Decode(strings.NewReader(collection), "MTFCC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "S1400" || got[1].Name != "S1400" {
		t.Errorf("got %+v", got)
	}
	if stats.Unnamed != 3 {
		t.Errorf("got %d unnamed, wanted 3", stats.Unnamed)
	}
}

func TestDecodeEmpty(t *testing.T) {
	got, stats, err := Decode(strings.NewReader(`{"type":"FeatureCollection","features":[]}`), DefaultNameProperty)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 || stats.Kept != 0 {
		t.Errorf("got %v features and stats %v from empty collection", got, stats)
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, _, err := Decode(strings.NewReader(`{"type":"FeatureCollection","features":[`), DefaultNameProperty); err == nil {
		t.Errorf("expected error decoding truncated input")
	}
}
