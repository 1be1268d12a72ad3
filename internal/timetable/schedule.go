package timetable

import "sort"

// Schedule maps activity IDs to time slots. It is partial during
// construction and one GA individual during optimization. Schedules never
// share their underlying map: every derivation goes through Clone.
type Schedule struct {
	assigned map[string]TimeSlot
}

// NewSchedule returns an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{assigned: make(map[string]TimeSlot)}
}

// Get returns the slot assigned to the activity, if any.
func (s *Schedule) Get(activityID string) (TimeSlot, bool) {
	slot, ok := s.assigned[activityID]
	return slot, ok
}

// Set assigns the activity to the slot, replacing any previous assignment.
func (s *Schedule) Set(activityID string, slot TimeSlot) {
	s.assigned[activityID] = slot
}

// Unset removes the activity's assignment.
func (s *Schedule) Unset(activityID string) {
	delete(s.assigned, activityID)
}

// Len returns the number of assigned activities.
func (s *Schedule) Len() int {
	return len(s.assigned)
}

// Clone deep-copies the schedule.
func (s *Schedule) Clone() *Schedule {
	clone := &Schedule{assigned: make(map[string]TimeSlot, len(s.assigned))}
	for id, slot := range s.assigned {
		clone.assigned[id] = slot
	}
	return clone
}

// ActivityIDs returns the assigned activity IDs in sorted order.
func (s *Schedule) ActivityIDs() []string {
	ids := make([]string, 0, len(s.assigned))
	for id := range s.assigned {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Each visits every assignment in unspecified order.
func (s *Schedule) Each(fn func(activityID string, slot TimeSlot)) {
	for id, slot := range s.assigned {
		fn(id, slot)
	}
}

// resourceIndex tracks the occupied slot keys per teacher, room and section.
// It is always derived from a schedule plus the activity lookup and never
// mutated independently of the schedule it mirrors.
type resourceIndex struct {
	teacher map[string]map[SlotKey]struct{}
	room    map[string]map[SlotKey]struct{}
	section map[string]map[SlotKey]struct{}
}

func newResourceIndex() *resourceIndex {
	return &resourceIndex{
		teacher: make(map[string]map[SlotKey]struct{}),
		room:    make(map[string]map[SlotKey]struct{}),
		section: make(map[string]map[SlotKey]struct{}),
	}
}

// indexSchedule rebuilds the occupancy sets from a schedule. Activities whose
// block cannot be expanded (contiguity breach) contribute their start key
// only; the constraint engine reports the breach itself.
func indexSchedule(s *Schedule, activities map[string]Activity, catalog *SlotCatalog) *resourceIndex {
	ix := newResourceIndex()
	s.Each(func(id string, slot TimeSlot) {
		activity, ok := activities[id]
		if !ok {
			return
		}
		keys, ok := catalog.Block(slot, activity.Duration)
		if !ok {
			keys = []SlotKey{slot.Key()}
		}
		ix.occupy(activity, keys)
	})
	return ix
}

func occupySet(m map[string]map[SlotKey]struct{}, id string, key SlotKey) {
	if m[id] == nil {
		m[id] = make(map[SlotKey]struct{})
	}
	m[id][key] = struct{}{}
}

func (ix *resourceIndex) occupy(a Activity, keys []SlotKey) {
	for _, key := range keys {
		occupySet(ix.teacher, a.TeacherID, key)
		occupySet(ix.room, a.RoomID, key)
		occupySet(ix.section, a.SectionID, key)
	}
}

func (ix *resourceIndex) release(a Activity, keys []SlotKey) {
	for _, key := range keys {
		delete(ix.teacher[a.TeacherID], key)
		delete(ix.room[a.RoomID], key)
		delete(ix.section[a.SectionID], key)
	}
}

// free reports whether every key is unoccupied across all three dimensions
// for the activity's resources.
func (ix *resourceIndex) free(a Activity, keys []SlotKey) bool {
	for _, key := range keys {
		if _, busy := ix.teacher[a.TeacherID][key]; busy {
			return false
		}
		if _, busy := ix.room[a.RoomID][key]; busy {
			return false
		}
		if _, busy := ix.section[a.SectionID][key]; busy {
			return false
		}
	}
	return true
}

// sectionFree checks only the section dimension; used by the relaxed
// greedy fallback.
func (ix *resourceIndex) sectionFree(a Activity, keys []SlotKey) bool {
	for _, key := range keys {
		if _, busy := ix.section[a.SectionID][key]; busy {
			return false
		}
	}
	return true
}
