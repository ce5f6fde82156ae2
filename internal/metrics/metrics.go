// Package metrics provides the centralized Prometheus metrics registry.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "betpilot"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	OddsSearchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "odds_searches_total",
		Help:      "Total number of reverse odds searches by outcome",
	}, []string{"status"})
	PlansGeneratedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "plans_generated_total",
		Help:      "Total number of bet plans generated by kind",
	}, []string{"kind"})
	ScenarioOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scenario_operations_total",
		Help:      "Total number of scenario store operations by type",
	}, []string{"operation"})
)

// Gauge metrics
var (
	ScenariosStored = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scenarios_stored",
		Help:      "Number of scenarios currently held in memory",
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(OddsSearchesTotal)
		registry.MustRegister(PlansGeneratedTotal)
		registry.MustRegister(ScenarioOperationsTotal)
		registry.MustRegister(ScenariosStored)

		// Register simulation metrics
		registry.MustRegister(SimulationRunsTotal)
		registry.MustRegister(SimulationDuration)
		registry.MustRegister(SimulatedTrialsTotal)
		registry.MustRegister(SimulatedBetsTotal)
		registry.MustRegister(LastProfitablePercentage)

		// Register HTTP metrics
		registry.MustRegister(HTTPRequestsTotal)
		registry.MustRegister(HTTPRequestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordOddsSearch records a reverse odds search.
// status should be one of: "success", "invalid"
func RecordOddsSearch(status string) {
	OddsSearchesTotal.WithLabelValues(status).Inc()
}

// RecordPlanGenerated records a planner invocation.
// kind should be one of: "recommendations", "weekly"
func RecordPlanGenerated(kind string) {
	PlansGeneratedTotal.WithLabelValues(kind).Inc()
}

// RecordScenarioOperation records a scenario store operation.
func RecordScenarioOperation(operation string) {
	ScenarioOperationsTotal.WithLabelValues(operation).Inc()
}

// UpdateScenariosStored updates the stored scenarios gauge.
func UpdateScenariosStored(count int) {
	ScenariosStored.Set(float64(count))
}
