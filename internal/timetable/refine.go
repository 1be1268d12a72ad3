package timetable

// LocalRefiner polishes the optimizer's best schedule with deterministic
// 1-opt passes. Every candidate move is conflict-free by construction and
// accepted only on a strict soft-score improvement, so refinement can never
// introduce a hard violation or lower the score.
type LocalRefiner struct {
	engine    *Engine
	maxPasses int
}

// NewLocalRefiner wraps the evaluation engine for refinement.
func NewLocalRefiner(engine *Engine, maxPasses int) *LocalRefiner {
	if maxPasses < 1 {
		maxPasses = 1
	}
	return &LocalRefiner{engine: engine, maxPasses: maxPasses}
}

// Refine runs up to maxPasses sweeps over all assigned activities, moving
// each to the best strictly improving free slot. It stops early on a sweep
// with no accepted move.
func (r *LocalRefiner) Refine(s *Schedule) *Schedule {
	refined := s.Clone()
	activities := r.engine.Activities()
	catalog := r.engine.Catalog()

	for pass := 0; pass < r.maxPasses; pass++ {
		improved := false
		score := r.engine.SoftScore(refined)

		for _, id := range r.engine.ActivityOrder() {
			current, ok := refined.Get(id)
			if !ok {
				continue
			}
			a := activities[id]
			ix := indexSchedule(refined, activities, catalog)
			currentKeys, blockOK := catalog.Block(current, a.Duration)
			if !blockOK {
				currentKeys = []SlotKey{current.Key()}
			}
			ix.release(a, currentKeys)

			bestSlot := current
			bestScore := score
			for _, candidate := range catalog.Slots() {
				if candidate.Key() == current.Key() {
					continue
				}
				keys, ok := catalog.Block(candidate, a.Duration)
				if !ok || !ix.free(a, keys) {
					continue
				}
				refined.Set(id, candidate)
				if candidateScore := r.engine.SoftScore(refined); candidateScore > bestScore {
					bestSlot = candidate
					bestScore = candidateScore
				}
			}
			refined.Set(id, bestSlot)
			if bestSlot.Key() != current.Key() {
				score = bestScore
				improved = true
			}
		}

		if !improved {
			break
		}
	}
	return refined
}
