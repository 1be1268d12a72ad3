package timetable

// SlotKey identifies a grid cell. TimeSlot equality is defined solely by
// (day, period); display times never participate in identity.
type SlotKey struct {
	Day    string
	Period int
}

// TimeSlot is one assignable (day, period) cell of the weekly grid. Start and
// End are informational display times. Immutable value type.
type TimeSlot struct {
	Day    string `json:"day"`
	Period int    `json:"period"`
	Start  string `json:"start,omitempty"`
	End    string `json:"end,omitempty"`
}

// Key returns the identity of the slot.
func (t TimeSlot) Key() SlotKey {
	return SlotKey{Day: t.Day, Period: t.Period}
}

// PeriodTime carries optional display times for a period index.
type PeriodTime struct {
	Start string
	End   string
}

// SlotCatalog enumerates the week's assignable slots in deterministic
// catalog order (working-day order, then period), excluding break periods.
type SlotCatalog struct {
	slots         []TimeSlot
	index         map[SlotKey]int
	days          []string
	dayIndex      map[string]int
	periodsPerDay int
	breaks        map[int]struct{}
}

// NewSlotCatalog builds the catalog from grid configuration. The result is
// empty when workingDays or periodsPerDay is zero, signalling that there is
// no schedulable capacity.
func NewSlotCatalog(workingDays []string, periodsPerDay int, breakPeriods []int, periodTimes map[int]PeriodTime) *SlotCatalog {
	c := &SlotCatalog{
		index:         make(map[SlotKey]int),
		days:          make([]string, 0, len(workingDays)),
		dayIndex:      make(map[string]int),
		periodsPerDay: periodsPerDay,
		breaks:        make(map[int]struct{}, len(breakPeriods)),
	}
	for _, period := range breakPeriods {
		c.breaks[period] = struct{}{}
	}
	for _, day := range workingDays {
		if _, seen := c.dayIndex[day]; seen {
			continue
		}
		c.dayIndex[day] = len(c.days)
		c.days = append(c.days, day)
	}
	for _, day := range c.days {
		for period := 1; period <= periodsPerDay; period++ {
			if _, isBreak := c.breaks[period]; isBreak {
				continue
			}
			slot := TimeSlot{Day: day, Period: period}
			if times, ok := periodTimes[period]; ok {
				slot.Start = times.Start
				slot.End = times.End
			}
			c.index[slot.Key()] = len(c.slots)
			c.slots = append(c.slots, slot)
		}
	}
	return c
}

// Slots returns the catalog in order. Callers must not mutate the result.
func (c *SlotCatalog) Slots() []TimeSlot {
	return c.slots
}

// Len returns the number of assignable slots per week.
func (c *SlotCatalog) Len() int {
	return len(c.slots)
}

// Contains reports whether the key addresses an assignable slot.
func (c *SlotCatalog) Contains(key SlotKey) bool {
	_, ok := c.index[key]
	return ok
}

// Days returns the working days in configured order.
func (c *SlotCatalog) Days() []string {
	return c.days
}

// DayIndex returns the ordinal of a working day, or -1 when unknown.
func (c *SlotCatalog) DayIndex(day string) int {
	if idx, ok := c.dayIndex[day]; ok {
		return idx
	}
	return -1
}

// PeriodsPerDay returns the configured grid height.
func (c *SlotCatalog) PeriodsPerDay() int {
	return c.periodsPerDay
}

// MorningCutoff returns the last period considered "morning": the first
// third of the day, rounded up.
func (c *SlotCatalog) MorningCutoff() int {
	if c.periodsPerDay <= 0 {
		return 0
	}
	return (c.periodsPerDay + 2) / 3
}

// Block expands a starting slot into the contiguous keys an activity of the
// given duration occupies. It fails when the block would cross a break
// period or run past the end of the day.
func (c *SlotCatalog) Block(start TimeSlot, duration int) ([]SlotKey, bool) {
	if duration < 1 {
		duration = 1
	}
	keys := make([]SlotKey, 0, duration)
	for offset := 0; offset < duration; offset++ {
		key := SlotKey{Day: start.Day, Period: start.Period + offset}
		if !c.Contains(key) {
			return nil, false
		}
		keys = append(keys, key)
	}
	return keys, true
}
