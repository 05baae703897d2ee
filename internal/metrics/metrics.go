package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	gestureOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barberpanel",
			Name:      "gesture_outcomes_total",
			Help:      "Count of finished agenda gestures by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	autoScrollFrames = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "barberpanel",
			Name:      "autoscroll_frames_total",
			Help:      "Count of auto-scroll frames that moved the timeline.",
		},
	)

	windowsBuild = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "barberpanel",
			Name:      "windows_build_seconds",
			Help:      "Time to derive staff availability windows for a day.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05},
		},
	)

	windowsCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barberpanel",
			Name:      "windows_cache_total",
			Help:      "Availability windows cache lookups by result.",
		},
		[]string{"result"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barberpanel",
			Name:      "http_requests_total",
			Help:      "HTTP API requests by route and status code.",
		},
		[]string{"route", "code"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(gestureOutcomes, autoScrollFrames, windowsBuild, windowsCache, httpRequests)
	})
}

func IncGesture(kind, outcome string) {
	gestureOutcomes.WithLabelValues(kind, outcome).Inc()
}

func IncAutoScrollFrame() {
	autoScrollFrames.Inc()
}

func ObserveWindowsBuild(d time.Duration) {
	windowsBuild.Observe(d.Seconds())
}

func IncWindowsCache(result string) {
	windowsCache.WithLabelValues(result).Inc()
}

func IncHTTP(route, code string) {
	httpRequests.WithLabelValues(route, code).Inc()
}
