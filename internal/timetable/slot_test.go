package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotCatalogExcludesBreaks(t *testing.T) {
	catalog := testCatalog(t)

	// 2 days x 4 periods minus the break per day
	assert.Equal(t, 6, catalog.Len())
	assert.False(t, catalog.Contains(SlotKey{Day: "Monday", Period: 3}))
	assert.True(t, catalog.Contains(SlotKey{Day: "Monday", Period: 4}))
	assert.False(t, catalog.Contains(SlotKey{Day: "Sunday", Period: 1}))
}

func TestSlotCatalogOrderIsDeterministic(t *testing.T) {
	catalog := testCatalog(t)

	slots := catalog.Slots()
	require.Len(t, slots, 6)
	assert.Equal(t, SlotKey{Day: "Monday", Period: 1}, slots[0].Key())
	assert.Equal(t, SlotKey{Day: "Monday", Period: 2}, slots[1].Key())
	assert.Equal(t, SlotKey{Day: "Monday", Period: 4}, slots[2].Key())
	assert.Equal(t, SlotKey{Day: "Tuesday", Period: 1}, slots[3].Key())
}

func TestSlotCatalogDeduplicatesDays(t *testing.T) {
	catalog := NewSlotCatalog([]string{"Monday", "Monday"}, 2, nil, nil)

	assert.Equal(t, []string{"Monday"}, catalog.Days())
	assert.Equal(t, 2, catalog.Len())
}

func TestSlotCatalogBlockRespectsBreaksAndDayEnd(t *testing.T) {
	catalog := testCatalog(t)

	keys, ok := catalog.Block(TimeSlot{Day: "Monday", Period: 1}, 2)
	require.True(t, ok)
	assert.Equal(t, []SlotKey{{Day: "Monday", Period: 1}, {Day: "Monday", Period: 2}}, keys)

	// period 3 is a break; a block starting at 2 cannot span it
	_, ok = catalog.Block(TimeSlot{Day: "Monday", Period: 2}, 2)
	assert.False(t, ok)

	// period 4 is the last of the day
	_, ok = catalog.Block(TimeSlot{Day: "Monday", Period: 4}, 2)
	assert.False(t, ok)
}

func TestSlotCatalogMorningCutoff(t *testing.T) {
	assert.Equal(t, 2, testCatalog(t).MorningCutoff())
	assert.Equal(t, 3, NewSlotCatalog([]string{"Monday"}, 8, nil, nil).MorningCutoff())
	assert.Equal(t, 0, NewSlotCatalog(nil, 0, nil, nil).MorningCutoff())
}

func TestSlotCatalogEmptyGrid(t *testing.T) {
	assert.Equal(t, 0, NewSlotCatalog(nil, 8, nil, nil).Len())
	assert.Equal(t, 0, NewSlotCatalog([]string{"Monday"}, 0, nil, nil).Len())
}

func TestTimeSlotKeyIgnoresDisplayTimes(t *testing.T) {
	a := TimeSlot{Day: "Monday", Period: 1, Start: "08:00", End: "08:45"}
	b := TimeSlot{Day: "Monday", Period: 1}

	assert.Equal(t, a.Key(), b.Key())
}
