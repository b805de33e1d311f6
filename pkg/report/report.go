// Package report formats henge scan results as text or JSON.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"github.com/JoshData/dc-street-henge/pkg/henge"
	"github.com/JoshData/dc-street-henge/pkg/timetricks"
)

// None is printed when no road lines up with the sun.
const None = "NONE"

// Viewer links a location and time to a sun position map.
type Viewer struct {
	BaseURL string
	Zoom    int
}

var DefaultViewer = Viewer{
	BaseURL: "http://suncalc.net",
	Zoom:    14,
}

// URL links to p on date at t's wall clock. Latitude comes first.
func (v Viewer) URL(p orb.Point, date, t time.Time) string {
	return fmt.Sprintf("%s/#/%f,%f,%d/%s/%s",
		strings.TrimSuffix(v.BaseURL, "/"),
		p.Lat(), p.Lon(), v.Zoom,
		timetricks.DotDay(date),
		timetricks.Clock(t))
}

// Entry is one sun event's best road.
type Entry struct {
	Event   string    `json:"event"`
	Time    time.Time `json:"time"`
	Azimuth float64   `json:"azimuth"`
	Found   bool      `json:"found"`

	Road     string  `json:"road,omitempty"`
	LengthKm float64 `json:"length_km,omitempty"`
	Lat      float64 `json:"lat,omitempty"`
	Lng      float64 `json:"lng,omitempty"`
	URL      string  `json:"url,omitempty"`
}

func (e *Entry) String() string {
	if !e.Found {
		return None
	}
	return fmt.Sprintf("%s %s", e.Road, e.URL)
}

// Day is one line of the report.
type Day struct {
	Date   string  `json:"date"`
	Events []Entry `json:"events"`
}

func (d *Day) String() string {
	fields := []string{d.Date}
	for _, e := range d.Events {
		fields = append(fields, e.String())
	}
	return strings.Join(fields, "\t")
}

// Build converts scan results into report days.
func Build(days []henge.Day, v Viewer) []Day {
	out := make([]Day, 0, len(days))
	for _, d := range days {
		rd := Day{Date: timetricks.ISODay(d.Date)}
		for _, r := range d.Results() {
			rd.Events = append(rd.Events, entry(d.Date, r, v))
		}
		out = append(out, rd)
	}
	return out
}

func entry(date time.Time, r henge.Result, v Viewer) Entry {
	e := Entry{
		Event:   string(r.Sun.Event),
		Time:    r.Sun.Time,
		Azimuth: r.Sun.Azimuth,
		Found:   r.Found,
	}
	if r.Found {
		e.Road = r.Candidate.Name
		e.LengthKm = r.Candidate.LengthKm
		e.Lat = r.Candidate.Point.Lat()
		e.Lng = r.Candidate.Point.Lon()
		e.URL = v.URL(r.Candidate.Point, date, r.Sun.Time)
	}
	return e
}

// WriteText writes one tab separated line per day, each followed by a blank
// line.
func WriteText(w io.Writer, days []Day) error {
	bw := bufio.NewWriter(w)
	for _, d := range days {
		if _, err := fmt.Fprintf(bw, "%s\n\n", d.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteJSON writes v, usually a []Day, as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
