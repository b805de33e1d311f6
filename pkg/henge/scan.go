package henge

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JoshData/dc-street-henge/pkg/logging"
	"github.com/JoshData/dc-street-henge/pkg/metrics"
	"github.com/JoshData/dc-street-henge/pkg/roads"
	"github.com/JoshData/dc-street-henge/pkg/sunset"
	"github.com/JoshData/dc-street-henge/pkg/timetricks"
)

// SunVectors supplies the sun's direction for a day and event.
// *sunset.Provider implements it.
type SunVectors interface {
	Vector(date time.Time, event sunset.Event) (sunset.SunEvent, error)
}

// Result is the best road for one sun event. Found is false when no road
// qualified, in which case Candidate is empty.
type Result struct {
	Sun       sunset.SunEvent
	Candidate Candidate
	Found     bool
}

// Day holds both results for one calendar day.
type Day struct {
	Date    time.Time
	Sunrise Result
	Sunset  Result
}

// Results returns the day's results in report order.
func (d Day) Results() []Result {
	return []Result{d.Sunrise, d.Sunset}
}

// Scanner finds the best henge roads day by day.
type Scanner struct {
	Sun    SunVectors
	Roads  []roads.Feature
	Params Params

	// Workers bounds how many days are computed at once. Values below one
	// mean one.
	Workers int

	Log *zap.SugaredLogger
}

// Event ranks all roads against the sun for one event on date.
func (s *Scanner) Event(date time.Time, event sunset.Event) (Result, error) {
	se, err := s.Sun.Vector(date, event)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get %s direction for %s: %w",
			event, timetricks.ISODay(date), err)
	}
	best, found := Best(s.Roads, se.Vector, s.Params)
	metrics.ObserveEvent(string(event), len(s.Roads), found)
	return Result{Sun: se, Candidate: best, Found: found}, nil
}

// Day computes sunrise and sunset results for date.
func (s *Scanner) Day(date time.Time) (Day, error) {
	rise, err := s.Event(date, sunset.Sunrise)
	if err != nil {
		return Day{}, err
	}
	set, err := s.Event(date, sunset.Sunset)
	if err != nil {
		return Day{}, err
	}
	metrics.ObserveDay()
	return Day{Date: date, Sunrise: rise, Sunset: set}, nil
}

// Scan computes days consecutive days starting at start and returns them in
// date order. The first error aborts the scan.
func (s *Scanner) Scan(ctx context.Context, start time.Time, days int) ([]Day, error) {
	log := logging.OrNop(s.Log)
	out := make([]Day, days)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.Workers))
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := s.Day(date)
			if err != nil {
				return err
			}
			log.Debugw("scanned day",
				"date", timetricks.ISODay(date),
				"sunrise", d.Sunrise.Candidate.Name,
				"sunset", d.Sunset.Candidate.Name)
			out[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Infow("scan complete",
		"start", timetricks.ISODay(start),
		"days", days,
		"roads", len(s.Roads))
	return out, nil
}
