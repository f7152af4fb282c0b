package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bikewatch_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "code"})

	windowCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bikewatch_window_cache_total",
		Help: "Window cache lookups by result.",
	}, []string{"result"})

	snapshotTrips = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bikewatch_snapshot_trips",
		Help: "Trips in the currently served snapshot.",
	})
)

func init() {
	prometheus.MustRegister(requestDuration, windowCacheTotal, snapshotTrips)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unknown"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		// websocket upgrades need the raw writer for hijacking
		if route == "/ws" {
			next.ServeHTTP(w, r)
			return
		}
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		requestDuration.WithLabelValues(route, strconv.Itoa(rec.status)).Observe(time.Since(start).Seconds())
	})
}
