package timetable

import (
	"sort"

	"github.com/noah-isme/sma-timetable-engine/internal/models"
)

// Entries flattens a schedule into export rows, one per occupied period, so
// a two-period lab yields two consecutive entries. Rows are ordered by
// working-day order, then period, then section.
func Entries(s *Schedule, engine *Engine) []models.TimetableEntry {
	catalog := engine.Catalog()
	activities := engine.Activities()

	var entries []models.TimetableEntry
	s.Each(func(id string, slot TimeSlot) {
		a, ok := activities[id]
		if !ok {
			return
		}
		keys, ok := catalog.Block(slot, a.Duration)
		if !ok {
			keys = []SlotKey{slot.Key()}
		}
		for _, key := range keys {
			entries = append(entries, models.TimetableEntry{
				Day:       key.Day,
				Period:    key.Period,
				TeacherID: a.TeacherID,
				SectionID: a.SectionID,
				RoomID:    a.RoomID,
				SubjectID: a.SubjectID,
			})
		}
	})

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Day != b.Day {
			return catalog.DayIndex(a.Day) < catalog.DayIndex(b.Day)
		}
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		return a.SectionID < b.SectionID
	})
	return entries
}
