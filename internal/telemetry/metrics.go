package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsObserver exports pipeline progress as Prometheus metrics on its own
// registry, so scraping never picks up unrelated collectors.
type MetricsObserver struct {
	registry *prometheus.Registry

	skippedTotal     *prometheus.CounterVec
	generationsTotal prometheus.Counter
	bestFitness      prometheus.Gauge
	feasible         prometheus.Gauge
}

// NewMetricsObserver registers the pipeline collectors.
func NewMetricsObserver() *MetricsObserver {
	m := &MetricsObserver{
		registry: prometheus.NewRegistry(),
		skippedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "timetable",
			Name:      "skipped_occurrences_total",
			Help:      "Weekly occurrences dropped because no teacher or room was available.",
		}, []string{"reason"}),
		generationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "timetable",
			Name:      "ga_generations_total",
			Help:      "Genetic algorithm generations evaluated.",
		}),
		bestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "timetable",
			Name:      "ga_best_fitness",
			Help:      "Best fitness observed so far in the current run.",
		}),
		feasible: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "timetable",
			Name:      "ga_best_feasible",
			Help:      "Whether the best individual is free of hard violations (1 or 0).",
		}),
	}
	m.registry.MustRegister(m.skippedTotal, m.generationsTotal, m.bestFitness, m.feasible)
	return m
}

// Handler serves the registry for scraping.
func (m *MetricsObserver) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *MetricsObserver) SkippedOccurrence(sectionID, subjectID, reason string) {
	m.skippedTotal.WithLabelValues(reason).Inc()
}

func (m *MetricsObserver) GenerationProgress(generation int, bestFitness float64, feasible bool) {
	m.generationsTotal.Inc()
	m.bestFitness.Set(bestFitness)
	if feasible {
		m.feasible.Set(1)
	} else {
		m.feasible.Set(0)
	}
}
