package sim

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sanclaudio/internal/wanted"
)

// Metrics with bounded cardinality: gauges over the pursuit state plus a
// tick-duration histogram. No per-entity labels.
var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pursuit_tick_duration_seconds",
		Help:    "Time spent in one pursuit core tick",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})

	wantedLevel = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pursuit_wanted_level",
		Help: "Current wanted star level",
	})

	wantedHeat = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pursuit_heat",
		Help: "Current accumulated heat",
	})

	pursuerCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pursuit_pursuers",
		Help: "Alive pursuer units",
	})

	obstacleCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pursuit_obstacles",
		Help: "Deployed obstacles by kind",
	}, []string{"kind"}) // bounded: "spike_strip", "roadblock", "aerial"

	vehicleCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pursuit_vehicles_live",
		Help: "Vehicles owned by the pool",
	})

	clearsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pursuit_clears_total",
		Help: "Times the wanted state dropped back to zero",
	})
)

// RecordTick feeds the core's per-tick observations into the registry.
func RecordTick(s *wanted.System, pool *VehiclePool, elapsed time.Duration, cleared bool) {
	tickDuration.Observe(elapsed.Seconds())
	wantedLevel.Set(float64(s.Level))
	wantedHeat.Set(s.Heat)
	pursuerCount.Set(float64(len(s.Pursuers)))
	obstacleCount.WithLabelValues("spike_strip").Set(float64(len(s.Strips)))
	obstacleCount.WithLabelValues("roadblock").Set(float64(len(s.Blocks)))
	aerial := 0.0
	if s.Heli != nil {
		aerial = 1
	}
	obstacleCount.WithLabelValues("aerial").Set(aerial)
	vehicleCount.Set(float64(pool.LiveCount()))
	if cleared {
		clearsTotal.Inc()
	}
}

// SnapshotFunc supplies a consistent snapshot for the debug endpoint; the
// harness wraps it in its tick lock.
type SnapshotFunc func() wanted.Snapshot

// NewDebugRouter serves metrics, pprof and a state snapshot. Bind it to
// localhost; the pprof endpoints are not for public exposure.
func NewDebugRouter(snap SnapshotFunc) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Mount("/debug", middleware.Profiler())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Get("/snapshot", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snap()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	return r
}
