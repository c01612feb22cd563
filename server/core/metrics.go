package core

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics with bounded cardinality: no per-player labels.
var (
	metricConnectedPlayers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "brawlcore_connected_players",
		Help: "Currently connected players",
	})

	metricTicksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brawlcore_ticks_total",
		Help: "Physics ticks executed",
	})

	metricDamageEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brawlcore_damage_events_total",
		Help: "Damage applications that landed",
	})

	metricDeaths = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brawlcore_deaths_total",
		Help: "Actor deaths",
	})

	metricRejectedTransforms = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brawlcore_rejected_transforms_total",
		Help: "Client transform reports rejected by the plausibility check",
	})

	metricThrottledInputs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brawlcore_throttled_inputs_total",
		Help: "Input messages dropped by the per-client rate limiter",
	})

	metricJoinRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brawlcore_join_rejections_total",
		Help: "Join requests rejected",
	}, []string{"reason"}) // Bounded: "version", "full"
)

// StartMetricsServer exposes /metrics and /health on addr. Keep the
// address on a loopback or internal interface.
func StartMetricsServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	go func() {
		log.Printf("[metrics] serving on http://%s/metrics", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("[metrics] server error: %v", err)
		}
	}()
}
