package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const subsystem = "henge"

var (
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "request_latency",
			Subsystem: subsystem,
			Help:      "HTTP request latencies in seconds.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0},
		},
		[]string{"verb", "path", "code"},
	)

	daysScanned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:      "days_scanned_total",
			Subsystem: subsystem,
			Help:      "Calendar days scanned for henge roads.",
		},
	)

	roadsScanned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:      "roads_scanned_total",
			Subsystem: subsystem,
			Help:      "Road features checked against a sun direction.",
		},
	)

	eventResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "event_results_total",
			Subsystem: subsystem,
			Help:      "Sun events scanned, by event and whether a road was found.",
		},
		[]string{"event", "found"},
	)
)

func init() {
	prometheus.MustRegister(
		requestLatency,
		daysScanned,
		roadsScanned,
		eventResults,
	)
}

func ObserveRequestLatency(verb, path, code string, latency float64) {
	requestLatency.With(prometheus.Labels{
		"code": code,
		"verb": verb,
		"path": path,
	}).Observe(latency)
}

// ObserveDay counts one scanned day.
func ObserveDay() {
	daysScanned.Inc()
}

// ObserveEvent counts one sun event checked against n roads.
func ObserveEvent(event string, roads int, found bool) {
	roadsScanned.Add(float64(roads))
	eventResults.With(prometheus.Labels{
		"event": event,
		"found": strconv.FormatBool(found),
	}).Inc()
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func LatencyHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.Now()
		verb := r.Method
		path := ""
		if r.URL != nil {
			path = r.URL.Path
		}
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

		// Defer metric observing. Any panics in next are reported as 500 errors
		// and then re-thrown.
		defer func() {
			if err := recover(); err != nil {
				ObserveRequestLatency(verb, path, "500", time.Since(t).Seconds())
				panic(err)
			}
			ObserveRequestLatency(verb, path, strconv.Itoa(rec.code), time.Since(t).Seconds())
		}()

		next.ServeHTTP(rec, r)
	})
}
