// Command henge reads a GeoJSON road network on stdin and prints, for each
// day, the road best lined up with sunrise and with sunset.
//
//	wget https://www2.census.gov/geo/tiger/TIGER2013/ROADS/tl_2013_11001_roads.zip
//	unzip tl_2013_11001_roads.zip
//	ogr2ogr -f geojson dcroads.geojson tl_2013_11001_roads.shp
//	henge < dcroads.geojson
//
// Settings come from HENGE_* environment variables; see pkg/config.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/JoshData/dc-street-henge/pkg/config"
	"github.com/JoshData/dc-street-henge/pkg/data"
	"github.com/JoshData/dc-street-henge/pkg/henge"
	"github.com/JoshData/dc-street-henge/pkg/logging"
	"github.com/JoshData/dc-street-henge/pkg/report"
	"github.com/JoshData/dc-street-henge/pkg/roads"
)

func main() {
	env, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(env.Debug)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, env, os.Stdin, os.Stdout, log); err != nil {
		log.Fatalw("henge failed", "error", err)
	}
}

func run(ctx context.Context, env *config.Config, stdin io.Reader, stdout io.Writer, log *zap.SugaredLogger) error {
	provider, err := env.Provider()
	if err != nil {
		return err
	}
	start, err := env.StartDate(provider.Place().Location)
	if err != nil {
		return err
	}

	in := stdin
	if env.Roads != "-" {
		f, err := os.Open(env.Roads)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	features, stats, err := roads.Decode(in, env.NameKey())
	if err != nil {
		return err
	}
	log.Infow("loaded roads", "stats", stats.String())

	scanner := &henge.Scanner{
		Sun:     provider,
		Roads:   features,
		Params:  env.Params(),
		Workers: env.Workers,
		Log:     log,
	}
	days, err := scanner.Scan(ctx, start, env.Days)
	if err != nil {
		return err
	}
	result := report.Build(days, env.Viewer())

	if env.Format == "json" {
		err = report.WriteJSON(stdout, result)
	} else {
		err = report.WriteText(stdout, result)
	}
	if err != nil {
		return err
	}

	if env.ArchiveDSN != "" {
		archive, err := data.Open(env.ArchiveDSN)
		if err != nil {
			return err
		}
		if err := archive.Save(ctx, result); err != nil {
			return err
		}
		log.Infow("archived report", "days", len(result))
	}
	return nil
}
