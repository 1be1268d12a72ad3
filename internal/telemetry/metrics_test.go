package telemetry

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsObserverExposesCounters(t *testing.T) {
	metrics := NewMetricsObserver()

	metrics.SkippedOccurrence("10A", "math", "no eligible teacher")
	metrics.GenerationProgress(1, -1000, false)
	metrics.GenerationProgress(2, 42.5, true)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `timetable_skipped_occurrences_total{reason="no eligible teacher"} 1`)
	assert.Contains(t, body, "timetable_ga_generations_total 2")
	assert.Contains(t, body, "timetable_ga_best_fitness 42.5")
	assert.Contains(t, body, "timetable_ga_best_feasible 1")
}
