package timetable

// Observer receives progress signals from the pipeline. The engine itself
// performs no I/O; callers attach logging or metrics sinks here.
type Observer interface {
	// SkippedOccurrence fires when the activity factory cannot staff or
	// house a required weekly occurrence.
	SkippedOccurrence(sectionID, subjectID, reason string)
	// GenerationProgress fires once per GA generation with the best fitness
	// seen so far and whether that individual is free of hard violations.
	GenerationProgress(generation int, bestFitness float64, feasible bool)
}

// NopObserver discards all signals.
type NopObserver struct{}

func (NopObserver) SkippedOccurrence(sectionID, subjectID, reason string) {}

func (NopObserver) GenerationProgress(generation int, bestFitness float64, feasible bool) {}
