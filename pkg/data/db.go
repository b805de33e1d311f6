package data

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JoshData/dc-street-henge/pkg/report"
)

// HengeEvent is the archived best road for one sun event on one day.
type HengeEvent struct {
	gorm.Model
	Date  string `gorm:"uniqueIndex:idx_date_event;size:10"`
	Event string `gorm:"uniqueIndex:idx_date_event;size:16"`

	Time     time.Time
	Azimuth  float64
	Found    bool
	Road     string
	LengthKm float64
	Lat, Lng float64
	URL      string
}

// Archive stores reports in postgres.
type Archive struct {
	db *gorm.DB
}

// Open connects to postgres at dsn and migrates the schema.
func Open(dsn string) (*Archive, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&HengeEvent{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return &Archive{db: db}, nil
}

// Rows flattens report days into archive rows.
func Rows(days []report.Day) []HengeEvent {
	var rows []HengeEvent
	for _, d := range days {
		for _, e := range d.Events {
			rows = append(rows, HengeEvent{
				Date:     d.Date,
				Event:    e.Event,
				Time:     e.Time,
				Azimuth:  e.Azimuth,
				Found:    e.Found,
				Road:     e.Road,
				LengthKm: e.LengthKm,
				Lat:      e.Lat,
				Lng:      e.Lng,
				URL:      e.URL,
			})
		}
	}
	return rows
}

// Save upserts days, replacing any earlier result for the same date and
// event.
func (a *Archive) Save(ctx context.Context, days []report.Day) error {
	rows := Rows(days)
	if len(rows) == 0 {
		return nil
	}
	err := a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}, {Name: "event"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"updated_at", "time", "azimuth", "found", "road", "length_km", "lat", "lng", "url",
		}),
	}).CreateInBatches(rows, 200).Error
	if err != nil {
		return fmt.Errorf("failed to archive %d events: %w", len(rows), err)
	}
	return nil
}

// Load returns archived events between from and to inclusive (YYYY-MM-DD),
// in date order with sunrise before sunset.
func (a *Archive) Load(ctx context.Context, from, to string) ([]HengeEvent, error) {
	var rows []HengeEvent
	err := a.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date, event").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load %s..%s: %w", from, to, err)
	}
	return rows, nil
}
