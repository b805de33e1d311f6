package henge

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/paulmach/orb"

	"github.com/JoshData/dc-street-henge/pkg/geom"
	"github.com/JoshData/dc-street-henge/pkg/roads"
)

// Candidate is one qualifying stretch of a named road.
type Candidate struct {
	LengthKm float64
	Name     string
	Point    orb.Point
}

// Compare orders candidates by length, then name, then point. The best
// candidate compares greatest.
func (c Candidate) Compare(o Candidate) int {
	return cmp.Or(
		cmp.Compare(c.LengthKm, o.LengthKm),
		strings.Compare(c.Name, o.Name),
		cmp.Compare(c.Point.Lon(), o.Point.Lon()),
		cmp.Compare(c.Point.Lat(), o.Point.Lat()),
	)
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s (%.3f km at %f,%f)", c.Name, c.LengthKm, c.Point.Lat(), c.Point.Lon())
}

// Best returns the greatest candidate across all features, or false if no
// road has a qualifying run.
func Best(features []roads.Feature, target geom.Vector, p Params) (Candidate, bool) {
	var (
		best  Candidate
		found bool
	)
	for _, f := range features {
		for seg := range Segments(f.Line, target, p) {
			c := Candidate{seg.LengthKm, f.Name, seg.Point}
			if !found || c.Compare(best) > 0 {
				best, found = c, true
			}
		}
	}
	return best, found
}
