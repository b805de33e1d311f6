// Package sunset finds where the sun is shortly after it rises and shortly
// before it sets, as a direction a road can be compared against.
package sunset

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/JoshData/dc-street-henge/pkg/geom"
)

// Offsets shift the exact sunrise and sunset. The sun is more striking down a
// street once it has cleared the horizon, so sunrise is pushed later and
// sunset earlier.
type Offsets struct {
	Sunrise time.Duration
	Sunset  time.Duration
}

var DefaultOffsets = Offsets{
	Sunrise: 40 * time.Minute,
	Sunset:  -30 * time.Minute,
}

// Provider computes sun events for one place.
type Provider struct {
	place     Place
	ephemeris Ephemeris
	offsets   Offsets
}

func NewProvider(place Place, ephemeris Ephemeris, offsets Offsets) *Provider {
	return &Provider{
		place:     place,
		ephemeris: ephemeris,
		offsets:   offsets,
	}
}

// Place returns the place the provider computes events for.
func (p *Provider) Place() Place {
	return p.place
}

// Vector returns the adjusted time of the event on date's calendar day and
// the direction of the sun at that time.
func (p *Provider) Vector(date time.Time, event Event) (SunEvent, error) {
	if _, err := ParseEvent(string(event)); err != nil {
		return SunEvent{}, err
	}

	rise, set, err := p.ephemeris.SunriseSunset(date, p.place)
	if err != nil {
		return SunEvent{}, err
	}

	var t time.Time
	switch event {
	case Sunrise:
		t = rise.Add(p.offsets.Sunrise)
	case Sunset:
		t = set.Add(p.offsets.Sunset)
	}

	az := Azimuth(t, p.place.Lat, p.place.Long)
	return SunEvent{
		Time:    t,
		Event:   event,
		Azimuth: az,
		Vector:  geom.FromAzimuth(az),
	}, nil
}

// Azimuth returns the sun's bearing at t, in degrees clockwise from north,
// for an observer at lat/long (degrees, east positive).
func Azimuth(t time.Time, lat, long float64) float64 {
	jd := julian.TimeToJD(t.UTC())
	ra, dec := solar.ApparentEquatorial(jd)

	// Local hour angle from Greenwich apparent sidereal time.
	lst := float64(sidereal.Apparent(jd).Angle()) + long*math.Pi/180
	h := lst - float64(ra)

	φ := lat * math.Pi / 180
	δ := float64(dec)

	// Meeus 13.5 measures westward from south.
	a := math.Atan2(math.Sin(h), math.Cos(h)*math.Sin(φ)-math.Tan(δ)*math.Cos(φ))
	return math.Mod(a*180/math.Pi+180+360, 360)
}
