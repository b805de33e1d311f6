package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/JoshData/dc-street-henge/pkg/config"
	"github.com/JoshData/dc-street-henge/pkg/data"
	"github.com/JoshData/dc-street-henge/pkg/handlers"
	"github.com/JoshData/dc-street-henge/pkg/henge"
	"github.com/JoshData/dc-street-henge/pkg/logging"
	"github.com/JoshData/dc-street-henge/pkg/metrics"
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

	server, err := newServer(env, log)
	if err != nil {
		log.Fatalw("failed to start", "error", err)
	}

	r := mux.NewRouter().StrictSlash(true)
	r.Use(metrics.LatencyHandler)
	s := r.PathPrefix(env.Prefix).Subrouter()
	handlers.Register(s, server)

	srv := &http.Server{
		Handler:      r,
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	log.Infow("listening and serving", "addr", srv.Addr, "prefix", env.Prefix)
	log.Fatal(srv.ListenAndServe())
}

func newServer(env *config.Config, log *zap.SugaredLogger) (*handlers.Server, error) {
	provider, err := env.Provider()
	if err != nil {
		return nil, err
	}

	in := os.Stdin
	if env.Roads != "-" {
		if in, err = os.Open(env.Roads); err != nil {
			return nil, err
		}
		defer in.Close()
	}
	features, stats, err := roads.Decode(in, env.NameKey())
	if err != nil {
		return nil, err
	}
	log.Infow("loaded roads", "path", env.Roads, "stats", stats.String())

	server := &handlers.Server{
		Scanner: &henge.Scanner{
			Sun:     provider,
			Roads:   features,
			Params:  env.Params(),
			Workers: env.Workers,
			Log:     log,
		},
		Location: provider.Place().Location,
		Viewer:   env.Viewer(),
		Days:     env.Days,
		Log:      log,
	}

	if env.ArchiveDSN != "" {
		if server.Archive, err = data.Open(env.ArchiveDSN); err != nil {
			return nil, err
		}
		log.Infow("archiving reports")
	}

	// A broken place or ephemeris should fail at startup, not per request.
	if _, err := server.Scanner.Day(time.Now().In(server.Location)); err != nil {
		return nil, err
	}
	return server, nil
}
