package henge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"

	"github.com/JoshData/dc-street-henge/pkg/roads"
)

func TestBest(t *testing.T) {
	short := walk(center, eastKm(0.1))
	long := walk(center, eastKm(0.3))
	crooked := walk(center, northKm(0.5), eastKm(0.2), northKm(0.5))

	table := []struct {
		name      string
		features  []roads.Feature
		want      Candidate
		wantFound bool
	}{{
		name:     "no roads",
		features: nil,
	}, {
		name: "no qualifying roads",
		features: []roads.Feature{
			{Name: "Far Rd", Line: walk(orb.Point{-77.2, 38.9}, eastKm(1))},
			{Name: "N St", Line: walk(center, northKm(1))},
			{Name: "Dot Ct", Line: orb.LineString{center}},
		},
	}, {
		name: "longest wins",
		features: []roads.Feature{
			{Name: "Z St", Line: short},
			{Name: "A St", Line: long},
		},
		want:      Candidate{0.3, "A St", long[1]},
		wantFound: true,
	}, {
		name: "tie goes to the greater name",
		features: []roads.Feature{
			{Name: "B St", Line: short},
			{Name: "C St", Line: short},
			{Name: "A St", Line: short},
		},
		want:      Candidate{0.1, "C St", short[1]},
		wantFound: true,
	}, {
		name: "runs inside a crooked road count",
		features: []roads.Feature{
			{Name: "Z St", Line: short},
			{Name: "Crooked Way", Line: crooked},
		},
		want:      Candidate{0.2, "Crooked Way", crooked[2]},
		wantFound: true,
	}}

	round := cmp.Transformer("round", func(c Candidate) Candidate {
		c.LengthKm = lengths([]Run{{LengthKm: c.LengthKm}})[0]
		return c
	})

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got, found := Best(tc.features, east, DefaultParams)
			if found != tc.wantFound {
				t.Fatalf("found = %v, wanted %v", found, tc.wantFound)
			}
			if diff := cmp.Diff(tc.want, got, round); diff != "" {
				t.Errorf("wrong candidate (-want,+got):\n%s", diff)
			}
		})
	}
}

func TestCandidateCompare(t *testing.T) {
	table := []struct {
		a, b Candidate
		want int
	}{
		{Candidate{1, "A", orb.Point{0, 0}}, Candidate{2, "A", orb.Point{0, 0}}, -1},
		{Candidate{2, "A", orb.Point{0, 0}}, Candidate{1, "Z", orb.Point{9, 9}}, 1},
		{Candidate{1, "B", orb.Point{0, 0}}, Candidate{1, "A", orb.Point{9, 9}}, 1},
		{Candidate{1, "A", orb.Point{1, 0}}, Candidate{1, "A", orb.Point{0, 9}}, 1},
		{Candidate{1, "A", orb.Point{0, 1}}, Candidate{1, "A", orb.Point{0, 2}}, -1},
		{Candidate{1, "A", orb.Point{0, 1}}, Candidate{1, "A", orb.Point{0, 1}}, 0},
	}
	for _, tc := range table {
		if got := tc.a.Compare(tc.b); got != tc.want {
			t.Errorf("%v.Compare(%v) = %d, wanted %d", tc.a, tc.b, got, tc.want)
		}
	}
}
