package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefineNeverLowersSoftScore(t *testing.T) {
	engine, activities := testEngine(t)
	seed, _ := NewGreedyConstructor(engine).Build(activities)
	before := engine.SoftScore(seed)

	refined := NewLocalRefiner(engine, 10).Refine(seed)

	assert.GreaterOrEqual(t, engine.SoftScore(refined), before)
}

func TestRefineMovesActivityOutOfAfternoonGap(t *testing.T) {
	engine, _ := testEngine(t)

	s := NewSchedule()
	s.Set("10A:math:0", TimeSlot{Day: "Monday", Period: 1})
	s.Set("10A:physics:0", TimeSlot{Day: "Monday", Period: 4})

	refined := NewLocalRefiner(engine, 10).Refine(s)

	slot, ok := refined.Get("10A:physics:0")
	require.True(t, ok)
	assert.NotEqual(t, SlotKey{Day: "Monday", Period: 4}, slot.Key())
	assert.Empty(t, engine.HardViolations(refined))
}

func TestRefineIntroducesNoHardViolations(t *testing.T) {
	engine, activities := testEngine(t)
	seed, _ := NewGreedyConstructor(engine).Build(activities)
	require.Empty(t, engine.HardViolations(seed))

	refined := NewLocalRefiner(engine, 10).Refine(seed)

	assert.Empty(t, engine.HardViolations(refined))
}

func TestRefineDoesNotMutateInput(t *testing.T) {
	engine, activities := testEngine(t)
	seed, _ := NewGreedyConstructor(engine).Build(activities)
	original := make(map[string]SlotKey)
	seed.Each(func(id string, slot TimeSlot) { original[id] = slot.Key() })

	NewLocalRefiner(engine, 10).Refine(seed)

	seed.Each(func(id string, slot TimeSlot) {
		assert.Equal(t, original[id], slot.Key())
	})
}
