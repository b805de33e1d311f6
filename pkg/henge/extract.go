// Package henge finds the stretches of road that line up with the sun.
//
// A road is a polyline. Walking it point by point, consecutive mini-segments
// that all point (to within Threshold) along the target direction are joined
// into a Run. The longest run across all roads wins the day.
package henge

import (
	"iter"
	"math"

	"github.com/paulmach/orb"

	"github.com/JoshData/dc-street-henge/pkg/geom"
)

// Params tune which stretches of road count.
type Params struct {
	// Center and RadiusKm bound the area of interest. Points farther than
	// RadiusKm from Center break a road apart.
	Center   orb.Point
	RadiusKm float64

	// MinRunKm is the length a run must exceed to be reported.
	MinRunKm float64

	// Threshold is the minimum |cos| between a mini-segment and the target
	// direction. Direction along the road does not matter.
	Threshold float64
}

// DefaultParams look within 2 km of the Columbia Heights metro station.
var DefaultParams = Params{
	Center:    orb.Point{-77.0326, 38.9288},
	RadiusKm:  2,
	MinRunKm:  0.05,
	Threshold: 0.9999,
}

// Run is a maximal stretch of consecutive aligned mini-segments. Points holds
// the far end of each mini-segment; the point the run started from is not
// included.
type Run struct {
	LengthKm float64
	Points   []orb.Point
}

// Midpoint is the point at the middle index of the run. It is not the
// geometric midpoint.
func (r Run) Midpoint() orb.Point {
	return r.Points[len(r.Points)/2]
}

// Segment is what a qualifying run contributes to ranking.
type Segment struct {
	LengthKm float64
	Point    orb.Point
}

// Runs splits line into runs aligned with target and returns those longer
// than p.MinRunKm, in point order.
func Runs(line orb.LineString, target geom.Vector, p Params) []Run {
	var (
		runs   []Run
		cur    Run
		pt0    orb.Point
		seeded bool
	)

	closeRun := func() {
		if cur.LengthKm > p.MinRunKm {
			runs = append(runs, cur)
		}
		cur = Run{}
	}

	for _, pt1 := range line {
		if !seeded {
			// pt1 only anchors the next mini-segment; it is never checked
			// against the radius and never accumulated.
			pt0, seeded = pt1, true
			closeRun()
			continue
		}

		if geom.Haversine(pt1, p.Center) > p.RadiusKm {
			seeded = false
			continue
		}

		// A zero-length mini-segment has no direction; its NaN cosine fails
		// the comparison and breaks the run.
		cos := geom.Sub(pt1, pt0).Cosine(target)
		if math.Abs(cos) > p.Threshold {
			cur.LengthKm += geom.Haversine(pt0, pt1)
			cur.Points = append(cur.Points, pt1)
		} else {
			closeRun()
		}

		pt0 = pt1
	}
	closeRun()

	return runs
}

// Segments yields the length and representative point of each qualifying run
// of line.
func Segments(line orb.LineString, target geom.Vector, p Params) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for _, r := range Runs(line, target, p) {
			if !yield(Segment{r.LengthKm, r.Midpoint()}) {
				return
			}
		}
	}
}
