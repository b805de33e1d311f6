package sunset

import (
	"errors"
	"fmt"
	"time"

	// Places carry IANA zones; embed the database so hosts without
	// /usr/share/zoneinfo still resolve them.
	_ "time/tzdata"

	"github.com/JoshData/dc-street-henge/pkg/geom"
)

// ErrUnknownEvent is returned when asked for an event other than Sunrise or
// Sunset.
var ErrUnknownEvent = errors.New("unknown sun event")

// Place is a lat/long coordinate on the Earth matched with its time zone.
type Place struct {
	Name      string
	Lat, Long float64
	Location  *time.Location
}

var (
	// WashingtonDC matches the coordinates astral uses for "Washington DC".
	WashingtonDC = Place{
		"Washington DC",
		38.9166667, -77.0,
		locationOrPanic("America/New_York"),
	}
)

// NewPlace builds a Place, resolving the IANA time zone name.
func NewPlace(name string, lat, long float64, zone string) (Place, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return Place{}, fmt.Errorf("bad time zone for %s: %w", name, err)
	}
	return Place{name, lat, long, loc}, nil
}

// Event encodes a sunrise or sunset event.
type Event string

const (
	Sunrise Event = "sunrise"
	Sunset  Event = "sunset"
)

// Events lists the events in report order.
var Events = []Event{Sunrise, Sunset}

// ParseEvent converts a name into an Event.
func ParseEvent(s string) (Event, error) {
	switch e := Event(s); e {
	case Sunrise, Sunset:
		return e, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownEvent, s)
}

// SunEvent is a sunrise or sunset as seen from a place, shifted to the moment
// the sun is worth looking at, along with the direction to look.
type SunEvent struct {
	Time  time.Time
	Event Event

	// Azimuth is the sun's bearing in degrees clockwise from north.
	Azimuth float64
	// Vector points toward Azimuth in the lon/lat plane.
	Vector geom.Vector
}

func (s SunEvent) String() string {
	return fmt.Sprintf("%s %s %.1f°",
		s.Time.Format(time.RFC822),
		s.Event,
		s.Azimuth)
}

func locationOrPanic(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}
