package models

// Section represents a student group that follows one shared timetable.
type Section struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Size         int    `json:"size" validate:"min=0"`
	DepartmentID string `json:"department_id,omitempty"`
}
