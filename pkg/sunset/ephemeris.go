package sunset

import (
	"errors"
	"fmt"
	"time"

	gosunrise "github.com/nathan-osman/go-sunrise"

	"github.com/keep94/sunrise"

	"github.com/JoshData/dc-street-henge/pkg/timetricks"
)

// ErrNoEvent is returned for days the sun does not rise or set at a place.
var ErrNoEvent = errors.New("sun does not rise or set")

// Ephemeris supplies sunrise and sunset for a calendar day at a place. The
// returned times are in the place's location.
type Ephemeris interface {
	SunriseSunset(date time.Time, place Place) (rise, set time.Time, err error)
}

// NewEphemeris picks an Ephemeris by name: "around" or "equation".
func NewEphemeris(name string) (Ephemeris, error) {
	switch name {
	case "", "around":
		return Around{}, nil
	case "equation":
		return Equation{}, nil
	}
	return nil, fmt.Errorf("unknown ephemeris %q", name)
}

// Around is backed by github.com/keep94/sunrise.
type Around struct{}

// maxDayShift bounds how far we walk to land on the requested day.
const maxDayShift = 3

func (Around) SunriseSunset(date time.Time, place Place) (time.Time, time.Time, error) {
	day := noon(date, place)

	var s sunrise.Sunrise
	s.Around(place.Lat, place.Long, day)

	// The sunrise package is not very clean with its dates. Walk toward the
	// requested day until the sunrise lands on it.
	for i := 0; !timetricks.SameDay(day, s.Sunrise().In(place.Location)); i++ {
		if i == maxDayShift || s.Sunrise().IsZero() {
			return time.Time{}, time.Time{}, fmt.Errorf("%w on %s at %s",
				ErrNoEvent, timetricks.ISODay(day), place.Name)
		}
		if s.Sunrise().Before(day) {
			s.AddDays(1)
		} else {
			s.AddDays(-1)
		}
	}
	return s.Sunrise().In(place.Location), s.Sunset().In(place.Location), nil
}

// Equation is backed by github.com/nathan-osman/go-sunrise.
type Equation struct{}

func (Equation) SunriseSunset(date time.Time, place Place) (time.Time, time.Time, error) {
	day := noon(date, place)
	rise, set := gosunrise.SunriseSunset(place.Lat, place.Long, day.Year(), day.Month(), day.Day())
	if rise.IsZero() || set.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("%w on %s at %s",
			ErrNoEvent, timetricks.ISODay(day), place.Name)
	}
	return rise.In(place.Location), set.In(place.Location), nil
}

// noon is local noon at place on date's calendar day.
func noon(date time.Time, place Place) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, place.Location)
}
