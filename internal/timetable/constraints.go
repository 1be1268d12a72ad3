package timetable

import (
	"fmt"
	"sort"

	"github.com/noah-isme/sma-timetable-engine/internal/models"
)

// Violation kinds.
const (
	ViolationHard = "hard"
	ViolationSoft = "soft"
)

// Violation describes one constraint breach in a schedule.
type Violation struct {
	Kind        string   `json:"kind"`
	Description string   `json:"description"`
	Penalty     float64  `json:"penalty"`
	ActivityIDs []string `json:"activity_ids"`
}

// Engine evaluates schedules against the hard conflict rules and the
// weighted soft preferences. It is read-only after construction and safe for
// concurrent use.
type Engine struct {
	activities map[string]Activity
	order      []string
	preferred  map[string]map[SlotKey]struct{}
	catalog    *SlotCatalog
	weights    Weights
}

// NewEngine indexes the activities and teacher preferences for evaluation.
func NewEngine(activities []Activity, teachers []models.Teacher, catalog *SlotCatalog, weights Weights) *Engine {
	e := &Engine{
		activities: make(map[string]Activity, len(activities)),
		order:      make([]string, 0, len(activities)),
		preferred:  make(map[string]map[SlotKey]struct{}, len(teachers)),
		catalog:    catalog,
		weights:    weights,
	}
	for _, a := range activities {
		e.activities[a.ID] = a
		e.order = append(e.order, a.ID)
	}
	sort.Strings(e.order)
	for _, t := range teachers {
		if len(t.PreferredSlots) == 0 {
			continue
		}
		slots := make(map[SlotKey]struct{}, len(t.PreferredSlots))
		for _, p := range t.PreferredSlots {
			slots[SlotKey{Day: p.Day, Period: p.Period}] = struct{}{}
		}
		e.preferred[t.ID] = slots
	}
	return e
}

// Activities returns the indexed activities keyed by ID. Callers must not
// mutate the result.
func (e *Engine) Activities() map[string]Activity {
	return e.activities
}

// ActivityOrder returns the activity IDs in sorted order.
func (e *Engine) ActivityOrder() []string {
	return e.order
}

// Catalog returns the slot catalog the engine evaluates against.
func (e *Engine) Catalog() *SlotCatalog {
	return e.catalog
}

// HardViolations reports every double-booking and contiguity breach. One
// violation is emitted per conflicting resource per slot, so a slot where two
// activities share both a teacher and a room yields two violations.
func (e *Engine) HardViolations(s *Schedule) []Violation {
	var violations []Violation

	type slotGroup struct {
		teacher map[string][]string
		room    map[string][]string
		section map[string][]string
	}
	groups := make(map[SlotKey]*slotGroup)

	for _, id := range e.order {
		slot, ok := s.Get(id)
		if !ok {
			continue
		}
		a := e.activities[id]
		keys, ok := e.catalog.Block(slot, a.Duration)
		if !ok {
			violations = append(violations, Violation{
				Kind:        ViolationHard,
				Description: fmt.Sprintf("activity %s cannot occupy %d contiguous periods from %s period %d", id, a.Duration, slot.Day, slot.Period),
				Penalty:     e.weights.HardViolation,
				ActivityIDs: []string{id},
			})
			keys = []SlotKey{slot.Key()}
		}
		for _, key := range keys {
			g := groups[key]
			if g == nil {
				g = &slotGroup{
					teacher: make(map[string][]string),
					room:    make(map[string][]string),
					section: make(map[string][]string),
				}
				groups[key] = g
			}
			g.teacher[a.TeacherID] = append(g.teacher[a.TeacherID], id)
			g.room[a.RoomID] = append(g.room[a.RoomID], id)
			g.section[a.SectionID] = append(g.section[a.SectionID], id)
		}
	}

	keys := make([]SlotKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Day != b.Day {
			return e.catalog.DayIndex(a.Day) < e.catalog.DayIndex(b.Day)
		}
		return a.Period < b.Period
	})

	for _, key := range keys {
		g := groups[key]
		violations = append(violations, e.conflictsAt(key, "teacher", g.teacher)...)
		violations = append(violations, e.conflictsAt(key, "room", g.room)...)
		violations = append(violations, e.conflictsAt(key, "section", g.section)...)
	}
	return violations
}

func (e *Engine) conflictsAt(key SlotKey, resource string, byID map[string][]string) []Violation {
	var violations []Violation
	resourceIDs := make([]string, 0, len(byID))
	for id := range byID {
		resourceIDs = append(resourceIDs, id)
	}
	sort.Strings(resourceIDs)
	for _, id := range resourceIDs {
		activityIDs := byID[id]
		if len(activityIDs) < 2 {
			continue
		}
		sort.Strings(activityIDs)
		violations = append(violations, Violation{
			Kind:        ViolationHard,
			Description: fmt.Sprintf("%s %s double-booked on %s period %d", resource, id, key.Day, key.Period),
			Penalty:     e.weights.HardViolation,
			ActivityIDs: activityIDs,
		})
	}
	return violations
}

// SoftScore sums the five weighted preference terms. Higher is better; the
// workload and continuity terms subtract, the rest add.
func (e *Engine) SoftScore(s *Schedule) float64 {
	score := 0.0
	cutoff := e.catalog.MorningCutoff()

	// per-teacher daily counts and per-section daily occupancy drive the
	// balance, continuity and adjacency terms
	teacherDaily := make(map[string]map[string]int)
	sectionDay := make(map[string]map[string][]int)
	labDay := make(map[string]map[string]map[int]struct{})

	for _, id := range e.order {
		slot, ok := s.Get(id)
		if !ok {
			continue
		}
		a := e.activities[id]

		if slot.Period <= cutoff {
			score += e.weights.MorningPreference * (float64(a.Priority) / 5.0)
		}
		if slots, ok := e.preferred[a.TeacherID]; ok {
			if _, preferred := slots[slot.Key()]; preferred {
				score += e.weights.TeacherPreference
			}
		}

		keys, ok := e.catalog.Block(slot, a.Duration)
		if !ok {
			keys = []SlotKey{slot.Key()}
		}
		for _, key := range keys {
			if teacherDaily[a.TeacherID] == nil {
				teacherDaily[a.TeacherID] = make(map[string]int)
			}
			teacherDaily[a.TeacherID][key.Day]++

			if sectionDay[a.SectionID] == nil {
				sectionDay[a.SectionID] = make(map[string][]int)
			}
			sectionDay[a.SectionID][key.Day] = append(sectionDay[a.SectionID][key.Day], key.Period)

			if a.IsLab() {
				if labDay[a.SectionID] == nil {
					labDay[a.SectionID] = make(map[string]map[int]struct{})
				}
				if labDay[a.SectionID][key.Day] == nil {
					labDay[a.SectionID][key.Day] = make(map[int]struct{})
				}
				labDay[a.SectionID][key.Day][key.Period] = struct{}{}
			}
		}
	}

	score -= e.weights.WorkloadBalance * workloadVariance(teacherDaily, e.catalog.Days())
	score -= e.weights.Continuity * float64(totalGaps(sectionDay))
	score += e.weights.LabAdjacency * float64(labAdjacencies(labDay))

	return score
}

// workloadVariance is the population variance of per-teacher daily period
// counts, taken over every (teacher, working day) pair including empty days.
func workloadVariance(teacherDaily map[string]map[string]int, days []string) float64 {
	if len(teacherDaily) == 0 || len(days) == 0 {
		return 0
	}
	var counts []float64
	for _, daily := range teacherDaily {
		for _, day := range days {
			counts = append(counts, float64(daily[day]))
		}
	}
	mean := 0.0
	for _, c := range counts {
		mean += c
	}
	mean /= float64(len(counts))
	variance := 0.0
	for _, c := range counts {
		d := c - mean
		variance += d * d
	}
	return variance / float64(len(counts))
}

// totalGaps counts idle periods inside each section's daily span.
func totalGaps(sectionDay map[string]map[string][]int) int {
	gaps := 0
	for _, byDay := range sectionDay {
		for _, periods := range byDay {
			if len(periods) < 2 {
				continue
			}
			min, max := periods[0], periods[0]
			occupied := make(map[int]struct{}, len(periods))
			for _, p := range periods {
				occupied[p] = struct{}{}
				if p < min {
					min = p
				}
				if p > max {
					max = p
				}
			}
			gaps += max - min + 1 - len(occupied)
		}
	}
	return gaps
}

// labAdjacencies counts pairs of consecutive periods on the same day where a
// section runs lab work in both.
func labAdjacencies(labDay map[string]map[string]map[int]struct{}) int {
	adjacent := 0
	for _, byDay := range labDay {
		for _, periods := range byDay {
			for p := range periods {
				if _, next := periods[p+1]; next {
					adjacent++
				}
			}
		}
	}
	return adjacent
}

// Fitness is the single ranking number for the GA: negative total hard
// penalty while any hard violation remains, the soft score otherwise. Any
// infeasible schedule therefore ranks below every feasible one.
func (e *Engine) Fitness(s *Schedule) float64 {
	violations := e.HardViolations(s)
	if len(violations) > 0 {
		total := 0.0
		for _, v := range violations {
			total += v.Penalty
		}
		return -total
	}
	return e.SoftScore(s)
}

// SoftCeiling is an optimistic upper bound on the soft score, used to
// normalise fitness for the near-optimal early exit. It assumes every
// activity lands in a morning preferred slot, zero variance, zero gaps and
// every lab occurrence adjacent to another.
func (e *Engine) SoftCeiling() float64 {
	ceiling := 0.0
	for _, id := range e.order {
		a := e.activities[id]
		ceiling += e.weights.MorningPreference * (float64(a.Priority) / 5.0)
		if _, ok := e.preferred[a.TeacherID]; ok {
			ceiling += e.weights.TeacherPreference
		}
		if a.IsLab() {
			ceiling += e.weights.LabAdjacency * float64(a.Duration)
		}
	}
	if ceiling < 1 {
		ceiling = 1
	}
	return ceiling
}
