package timetable

import "sort"

// GreedyConstructor builds the seed schedule for the optimizer. It places
// activities section by section, hardest first, into the earliest
// conflict-free block, and falls back to section-only checking when strict
// placement assigns nothing at all.
type GreedyConstructor struct {
	engine *Engine
}

// NewGreedyConstructor wraps the evaluation engine for seeding.
func NewGreedyConstructor(engine *Engine) *GreedyConstructor {
	return &GreedyConstructor{engine: engine}
}

// Build returns the seed schedule and whether the relaxed fallback was used.
// Activities that fit nowhere stay unassigned; the optimizer may still find
// room for them through its repair moves.
func (g *GreedyConstructor) Build(activities []Activity) (*Schedule, bool) {
	ordered := make([]Activity, len(activities))
	copy(ordered, activities)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].SectionID != ordered[j].SectionID {
			return ordered[i].SectionID < ordered[j].SectionID
		}
		return ordered[i].Priority > ordered[j].Priority
	})

	catalog := g.engine.Catalog()
	schedule := NewSchedule()
	ix := newResourceIndex()

	for _, a := range ordered {
		for _, slot := range catalog.Slots() {
			keys, ok := catalog.Block(slot, a.Duration)
			if !ok || !ix.free(a, keys) {
				continue
			}
			schedule.Set(a.ID, slot)
			ix.occupy(a, keys)
			break
		}
	}
	if schedule.Len() > 0 {
		return schedule, false
	}

	// Strict placement found nothing, typically because a single teacher or
	// room is shared by everything. Place one activity per section checking
	// only the section dimension and let the optimizer repair the rest.
	ix = newResourceIndex()
	placedSection := make(map[string]struct{})
	for _, a := range ordered {
		if _, done := placedSection[a.SectionID]; done {
			continue
		}
		for _, slot := range catalog.Slots() {
			keys, ok := catalog.Block(slot, a.Duration)
			if !ok || !ix.sectionFree(a, keys) {
				continue
			}
			schedule.Set(a.ID, slot)
			ix.occupy(a, keys)
			placedSection[a.SectionID] = struct{}{}
			break
		}
	}
	return schedule, schedule.Len() > 0
}
