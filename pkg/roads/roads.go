// Package roads decodes a GeoJSON feature collection of roads, such as the
// output of converting a TIGER/Line roads shapefile with ogr2ogr, into named
// line strings.
package roads

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// DefaultNameProperty is the TIGER/Line property holding a road's full name.
const DefaultNameProperty = "FULLNAME"

// Feature is a named road.
type Feature struct {
	Name string
	Line orb.LineString
}

// Stats counts what happened to each feature during decoding.
type Stats struct {
	Kept int
	// Unnamed features have no usable name property.
	Unnamed int
	// Unsupported features have a geometry other than a line string. TIGER
	// data has a handful of MultiLineStrings; those roads are ignored.
	Unsupported int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d kept, %d unnamed, %d unsupported geometry",
		s.Kept, s.Unnamed, s.Unsupported)
}

// Decode reads a feature collection from r and returns its named line
// strings in input order.
func Decode(r io.Reader, nameProperty string) ([]Feature, Stats, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to read roads: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(buf)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to decode roads: %w", err)
	}
	features, stats := FromCollection(fc, nameProperty)
	return features, stats, nil
}

// FromCollection extracts named line strings from an already decoded
// collection.
func FromCollection(fc *geojson.FeatureCollection, nameProperty string) ([]Feature, Stats) {
	var stats Stats
	result := make([]Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		name, ok := f.Properties[nameProperty].(string)
		if !ok {
			stats.Unnamed++
			continue
		}

		line, ok := f.Geometry.(orb.LineString)
		if !ok {
			stats.Unsupported++
			continue
		}

		result = append(result, Feature{Name: name, Line: line})
		stats.Kept++
	}
	return result, stats
}
