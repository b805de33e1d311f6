package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/JoshData/dc-street-henge/pkg/cache"
	"github.com/JoshData/dc-street-henge/pkg/data"
	"github.com/JoshData/dc-street-henge/pkg/henge"
	"github.com/JoshData/dc-street-henge/pkg/logging"
	"github.com/JoshData/dc-street-henge/pkg/report"
	"github.com/JoshData/dc-street-henge/pkg/timetricks"
)

const (
	// cache for slightly less than one day so daily clients don't see stale
	// data
	cacheTTL = 23 * time.Hour

	maxDays = 3 * 366
)

// Server holds what the handlers need to produce reports.
type Server struct {
	Scanner  *henge.Scanner
	Location *time.Location
	Viewer   report.Viewer
	Days     int

	// Archive is optional.
	Archive *data.Archive
	Log     *zap.SugaredLogger

	// now defaults to time.Now.
	now func() time.Time
}

func (s *Server) today() time.Time {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return timetricks.TrimClock(now().In(s.Location))
}

func Register(r *mux.Router, s *Server) {
	r.Handle("/", makeIndexHandler())
	r.Handle("/api/v1/henges", makeServeHenges(s)).Methods(http.MethodGet)
	if s.Archive != nil {
		r.Handle("/api/v1/archive", makeServeArchive(s)).Methods(http.MethodGet)
	}
	r.Handle("/metrics", promhttp.Handler())
}

// parseRange reads the start and days query parameters.
func (s *Server) parseRange(r *http.Request) (time.Time, int, error) {
	start := s.today()
	if v := r.FormValue("start"); v != "" {
		parsed, err := timetricks.ParseDay(v, s.Location)
		if err != nil {
			return time.Time{}, 0, err
		}
		start = parsed
	}

	days := s.Days
	if v := r.FormValue("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxDays {
			return time.Time{}, 0, fmt.Errorf("days must be between 1 and %d, got %q", maxDays, v)
		}
		days = n
	}
	return start, days, nil
}

func makeServeHenges(s *Server) http.Handler {
	log := logging.OrNop(s.Log)
	timeCache := cache.NewTimed(cacheTTL)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start, days, err := s.parseRange(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "Bad request: %v", err)
			return
		}
		outputFormat := r.FormValue("o")

		// cache on the resolved range so a missing start rolls over at
		// midnight
		key := fmt.Sprintf("%s %d %s", timetricks.ISODay(start), days, outputFormat)

		// serve cache version from memory if possible
		if cached, ok := timeCache.Get(key); ok {
			setContentType(w, outputFormat)
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}

		scanned, err := s.Scanner.Scan(r.Context(), start, days)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, "Failed to scan: %+v", err)
			log.Errorw("failed to scan", "start", timetricks.ISODay(start), "days", days, "error", err)
			return
		}
		result := report.Build(scanned, s.Viewer)

		// duplicate the http response onto a buffer for the cache
		var toCache bytes.Buffer
		mw := io.MultiWriter(w, &toCache)

		setContentType(w, outputFormat)
		w.WriteHeader(http.StatusOK)
		if outputFormat == "json" {
			err = report.WriteJSON(mw, result)
		} else {
			err = report.WriteText(mw, result)
		}
		if err != nil {
			log.Warnw("failed to write report", "error", err)
			return
		}

		timeCache.Set(key, toCache.Bytes())

		if s.Archive != nil {
			if err := s.Archive.Save(r.Context(), result); err != nil {
				log.Warnw("failed to archive report", "error", err)
			}
		}
	})
}

func makeServeArchive(s *Server) http.Handler {
	log := logging.OrNop(s.Log)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start, days, err := s.parseRange(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "Bad request: %v", err)
			return
		}
		from := timetricks.ISODay(start)
		to := timetricks.ISODay(start.AddDate(0, 0, days-1))

		rows, err := s.Archive.Load(r.Context(), from, to)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, "Failed to load archive: %+v", err)
			log.Errorw("failed to load archive", "from", from, "to", to, "error", err)
			return
		}

		setContentType(w, "json")
		w.WriteHeader(http.StatusOK)
		if err := report.WriteJSON(w, rows); err != nil {
			log.Warnw("failed to write archive", "error", err)
		}
	})
}

func setContentType(w http.ResponseWriter, outputFormat string) {
	if outputFormat == "json" {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "text/plain")
	}
}

func makeIndexHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintf(w, "henge roads: GET api/v1/henges?start=YYYY-MM-DD&days=N&o=json\n")
	})
}
