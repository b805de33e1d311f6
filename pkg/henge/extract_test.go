package henge

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"

	"github.com/JoshData/dc-street-henge/pkg/geom"
)

var (
	center = DefaultParams.Center
	east   = geom.Vector{DX: 1, DY: 0}
)

// kmPerDegLon is the length of a degree of longitude at the center's
// latitude on the haversine sphere.
var kmPerDegLon = geom.EarthRadiusKm * math.Pi / 180 * math.Cos(center.Lat()*math.Pi/180)

// walk starts at p and applies each step as a lon/lat offset.
func walk(p orb.Point, steps ...orb.Point) orb.LineString {
	line := orb.LineString{p}
	for _, s := range steps {
		p = orb.Point{p.Lon() + s.Lon(), p.Lat() + s.Lat()}
		line = append(line, p)
	}
	return line
}

func eastKm(km float64) orb.Point  { return orb.Point{km / kmPerDegLon, 0} }
func northKm(km float64) orb.Point { return orb.Point{0, km / (geom.EarthRadiusKm * math.Pi / 180)} }

func lengths(runs []Run) []float64 {
	var out []float64
	for _, r := range runs {
		out = append(out, math.Round(r.LengthKm*1000)/1000)
	}
	return out
}

func TestRunsAlignedThenMisaligned(t *testing.T) {
	line := walk(center, eastKm(1), northKm(1))
	runs := Runs(line, east, DefaultParams)
	if len(runs) != 1 {
		t.Fatalf("got %d runs, wanted 1", len(runs))
	}
	if math.Abs(runs[0].LengthKm-1) > 0.005 {
		t.Errorf("got run of %f km, wanted about 1", runs[0].LengthKm)
	}
	if diff := cmp.Diff([]orb.Point{line[1]}, runs[0].Points); diff != "" {
		t.Errorf("wrong run points (-want,+got):\n%s", diff)
	}
	if got := runs[0].Midpoint(); got != line[1] {
		t.Errorf("midpoint %v, wanted %v", got, line[1])
	}
}

func TestRuns(t *testing.T) {
	farAway := orb.Point{-77.2, 38.9}
	step := eastKm(0.1)

	table := []struct {
		name   string
		line   orb.LineString
		target geom.Vector
		want   []float64
	}{{
		name:   "single point",
		line:   orb.LineString{center},
		target: east,
		want:   nil,
	}, {
		name:   "empty",
		line:   nil,
		target: east,
		want:   nil,
	}, {
		name:   "entirely outside radius",
		line:   walk(farAway, step, step, step),
		target: east,
		want:   nil,
	}, {
		name:   "alternating directions split runs",
		line:   walk(center, step, step, northKm(0.1), step, step, northKm(0.1), step),
		target: east,
		want:   []float64{0.2, 0.2, 0.1},
	}, {
		name:   "direction along the road does not matter",
		line:   walk(center, eastKm(-0.1), eastKm(-0.1)),
		target: east,
		want:   []float64{0.2},
	}, {
		name:   "short runs are dropped",
		line:   walk(center, eastKm(0.04), northKm(0.1), eastKm(0.06)),
		target: east,
		want:   []float64{0.06},
	}, {
		name:   "misaligned road",
		line:   walk(center, northKm(0.5), northKm(0.5)),
		target: east,
		want:   nil,
	}, {
		name:   "diagonal target",
		line:   walk(center, orb.Point{0.001, 0.001}, orb.Point{0.001, 0.001}),
		target: geom.Vector{DX: 1, DY: 1},
		want:   []float64{0.282},
	}, {
		name: "repeated point breaks the run",
		line: orb.LineString{
			center,
			walk(center, step)[1],
			walk(center, step)[1],
			walk(center, step, step)[2],
		},
		target: east,
		want:   []float64{0.1, 0.1},
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got := lengths(Runs(tc.line, tc.target, DefaultParams))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("wrong run lengths (-want,+got):\n%s", diff)
			}
		})
	}
}

func TestRunsFirstPointNotRadiusChecked(t *testing.T) {
	// The seed is 2.05 km from the center, its neighbor 1.95 km.
	seed := orb.Point{center.Lon() - 2.05/kmPerDegLon, center.Lat()}
	line := walk(seed, eastKm(0.1))
	if d := geom.Haversine(seed, center); d <= DefaultParams.RadiusKm {
		t.Fatalf("seed is only %f km from center", d)
	}

	got := lengths(Runs(line, east, DefaultParams))
	if diff := cmp.Diff([]float64{0.1}, got); diff != "" {
		t.Errorf("wrong run lengths (-want,+got):\n%s", diff)
	}
}

func TestRunsProximityRejectionSplits(t *testing.T) {
	step := eastKm(0.1)
	before := walk(center, step, step)
	after := walk(walk(center, step, step, step)[3], step)
	line := append(orb.LineString{}, before...)
	line = append(line, orb.Point{-77.2, 38.9})
	line = append(line, after...)

	runs := Runs(line, east, DefaultParams)
	if diff := cmp.Diff([]float64{0.2, 0.1}, lengths(runs)); diff != "" {
		t.Fatalf("wrong run lengths (-want,+got):\n%s", diff)
	}
	// The point after the rejected one only seeds the next run.
	if diff := cmp.Diff([]orb.Point{after[1]}, runs[1].Points); diff != "" {
		t.Errorf("wrong second run (-want,+got):\n%s", diff)
	}
}

func TestMidpointIndex(t *testing.T) {
	pts := []orb.Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	table := []struct {
		n    int
		want orb.Point
	}{
		{1, pts[0]},
		{2, pts[1]},
		{3, pts[1]},
		{4, pts[2]},
	}
	for _, tc := range table {
		r := Run{Points: pts[:tc.n]}
		if got := r.Midpoint(); got != tc.want {
			t.Errorf("midpoint of %d points is %v, wanted %v", tc.n, got, tc.want)
		}
	}
}

func TestSegments(t *testing.T) {
	line := walk(center, eastKm(0.1), eastKm(0.1), eastKm(0.1), northKm(0.1), eastKm(0.2))
	var got []Segment
	for seg := range Segments(line, east, DefaultParams) {
		got = append(got, seg)
	}
	if len(got) != 2 {
		t.Fatalf("got %d segments, wanted 2", len(got))
	}
	if got[0].Point != line[2] {
		t.Errorf("first segment at %v, wanted middle point %v", got[0].Point, line[2])
	}
	if got[1].Point != line[5] {
		t.Errorf("second segment at %v, wanted %v", got[1].Point, line[5])
	}

	// Stopping early must not panic.
	for range Segments(line, east, DefaultParams) {
		break
	}
}
