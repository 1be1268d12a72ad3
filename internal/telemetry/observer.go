package telemetry

import (
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-engine/internal/timetable"
)

// LogObserver forwards pipeline progress to structured logging.
type LogObserver struct {
	log *zap.Logger
}

// NewLogObserver wraps a logger as a pipeline observer.
func NewLogObserver(log *zap.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) SkippedOccurrence(sectionID, subjectID, reason string) {
	o.log.Warn("occurrence skipped",
		zap.String("section_id", sectionID),
		zap.String("subject_id", subjectID),
		zap.String("reason", reason),
	)
}

func (o *LogObserver) GenerationProgress(generation int, bestFitness float64, feasible bool) {
	o.log.Debug("generation complete",
		zap.Int("generation", generation),
		zap.Float64("best_fitness", bestFitness),
		zap.Bool("feasible", feasible),
	)
}

// MultiObserver fans signals out to several observers.
type MultiObserver []timetable.Observer

func (m MultiObserver) SkippedOccurrence(sectionID, subjectID, reason string) {
	for _, obs := range m {
		obs.SkippedOccurrence(sectionID, subjectID, reason)
	}
}

func (m MultiObserver) GenerationProgress(generation int, bestFitness float64, feasible bool) {
	for _, obs := range m {
		obs.GenerationProgress(generation, bestFitness, feasible)
	}
}
