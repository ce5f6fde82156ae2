// Package metrics defines simulation-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	SimulationRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulation_runs_total",
		Help:      "Total number of simulation runs by status",
	}, []string{"status"})

	SimulatedTrialsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulated_trials_total",
		Help:      "Total number of trials simulated across all runs",
	})

	SimulatedBetsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulated_bets_total",
		Help:      "Total number of individual bets simulated across all trials",
	})

	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "simulation_duration_seconds",
		Help:      "Duration of simulation runs in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	})

	LastProfitablePercentage = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_profitable_percentage",
		Help:      "Share of profitable trials in the most recent simulation",
	})
)

// RecordSimulationRun records a simulation run event.
// status should be one of: "success", "invalid", "rejected", "cancelled"
func RecordSimulationRun(status string) {
	SimulationRunsTotal.WithLabelValues(status).Inc()
}

// RecordSimulationCompleted records the size, duration and headline result of a run.
func RecordSimulationCompleted(trials, bets int, durationSeconds, profitablePercentage float64) {
	SimulationRunsTotal.WithLabelValues("success").Inc()
	SimulatedTrialsTotal.Add(float64(trials))
	SimulatedBetsTotal.Add(float64(trials) * float64(bets))
	SimulationDuration.Observe(durationSeconds)
	LastProfitablePercentage.Set(profitablePercentage)
}
