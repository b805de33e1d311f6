// Package config reads henge settings from HENGE_* environment variables,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/paulmach/orb"

	"github.com/JoshData/dc-street-henge/pkg/henge"
	"github.com/JoshData/dc-street-henge/pkg/report"
	"github.com/JoshData/dc-street-henge/pkg/roads"
	"github.com/JoshData/dc-street-henge/pkg/sunset"
	"github.com/JoshData/dc-street-henge/pkg/timetricks"
)

const prefix = "HENGE"

type Config struct {
	Port   string `default:"8080"`
	Prefix string `default:"/"`
	Debug  bool

	// Roads is a GeoJSON file; "-" reads stdin.
	Roads        string `default:"-"`
	NameProperty string `default:"FULLNAME" split_words:"true"`

	City      string  `default:"Washington DC"`
	Latitude  float64 `default:"38.9166667"`
	Longitude float64 `default:"-77.0"`
	TimeZone  string  `default:"America/New_York" split_words:"true"`
	Ephemeris string  `default:"around"`

	CenterLongitude float64 `default:"-77.0326" split_words:"true"`
	CenterLatitude  float64 `default:"38.9288" split_words:"true"`
	RadiusKm        float64 `default:"2" split_words:"true"`
	MinRunKm        float64 `default:"0.05" split_words:"true"`
	Threshold       float64 `default:"0.9999"`

	SunriseOffset time.Duration `default:"40m" split_words:"true"`
	SunsetOffset  time.Duration `default:"-30m" split_words:"true"`

	// Start is YYYY-MM-DD; empty means today at the place.
	Start   string
	Days    int `default:"366"`
	Workers int `default:"4"`

	// Format is "text" or "json".
	Format    string `default:"text"`
	ViewerURL string `default:"http://suncalc.net" split_words:"true"`
	Zoom      int    `default:"14"`

	ArchiveDSN string `split_words:"true"`
}

// Load reads .env if present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	var c Config
	if err := envconfig.Process(prefix, &c); err != nil {
		return nil, err
	}
	if c.Days < 0 {
		return nil, fmt.Errorf("days must not be negative, got %d", c.Days)
	}
	if c.Format != "text" && c.Format != "json" {
		return nil, fmt.Errorf("unknown format %q", c.Format)
	}
	return &c, nil
}

// Place is the observer's location.
func (c *Config) Place() (sunset.Place, error) {
	return sunset.NewPlace(c.City, c.Latitude, c.Longitude, c.TimeZone)
}

// Provider builds the sun direction provider for the configured place.
func (c *Config) Provider() (*sunset.Provider, error) {
	place, err := c.Place()
	if err != nil {
		return nil, err
	}
	eph, err := sunset.NewEphemeris(c.Ephemeris)
	if err != nil {
		return nil, err
	}
	return sunset.NewProvider(place, eph, sunset.Offsets{
		Sunrise: c.SunriseOffset,
		Sunset:  c.SunsetOffset,
	}), nil
}

func (c *Config) Params() henge.Params {
	return henge.Params{
		Center:    orb.Point{c.CenterLongitude, c.CenterLatitude},
		RadiusKm:  c.RadiusKm,
		MinRunKm:  c.MinRunKm,
		Threshold: c.Threshold,
	}
}

func (c *Config) Viewer() report.Viewer {
	return report.Viewer{BaseURL: c.ViewerURL, Zoom: c.Zoom}
}

// StartDate resolves Start in loc.
func (c *Config) StartDate(loc *time.Location) (time.Time, error) {
	if c.Start == "" {
		return timetricks.Today(loc), nil
	}
	return timetricks.ParseDay(c.Start, loc)
}

// NameKey is the road name property, falling back to TIGER's.
func (c *Config) NameKey() string {
	if c.NameProperty == "" {
		return roads.DefaultNameProperty
	}
	return c.NameProperty
}
