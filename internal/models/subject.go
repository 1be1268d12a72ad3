package models

// Subject represents a subject (school mode) or course (college mode) with
// its weekly demand. One timetable activity is created per weekly occurrence.
type Subject struct {
	ID                string   `json:"id"`
	Code              string   `json:"code"`
	Name              string   `json:"name"`
	WeeklyOccurrences int      `json:"weekly_occurrences" validate:"min=0"`
	DurationPeriods   int      `json:"duration_periods,omitempty" validate:"min=0"`
	Priority          int      `json:"priority,omitempty" validate:"min=0,max=5"`
	DepartmentID      string   `json:"department_id,omitempty"`
	Tags              []string `json:"tags,omitempty"`
}

// IsLab reports whether the subject carries the lab tag.
func (s Subject) IsLab() bool {
	for _, tag := range s.Tags {
		if tag == "lab" {
			return true
		}
	}
	return false
}
