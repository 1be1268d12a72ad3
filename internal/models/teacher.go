package models

// PreferredSlot declares a (day, period) cell a teacher prefers to teach in.
type PreferredSlot struct {
	Day    string `json:"day" validate:"required"`
	Period int    `json:"period" validate:"min=1"`
}

// Teacher represents an instructor record together with its weekly capacity
// and declared capabilities.
type Teacher struct {
	ID             string          `json:"id"`
	FullName       string          `json:"full_name"`
	MaxLoad        int             `json:"max_load" validate:"min=0"`
	SubjectIDs     []string        `json:"subject_ids,omitempty"`
	CourseIDs      []string        `json:"course_ids,omitempty"`
	PreferredSlots []PreferredSlot `json:"preferred_slots,omitempty"`
}

// Teachable is the capability check resolved once per generation run. It
// replaces ad hoc attribute probing on teacher records: school deployments
// match against subject capabilities, college deployments against course
// capabilities.
type Teachable interface {
	CanTeach(subjectOrCourseID string) bool
}

type subjectCapability struct {
	ids map[string]struct{}
}

func (c subjectCapability) CanTeach(id string) bool {
	_, ok := c.ids[id]
	return ok
}

type courseCapability struct {
	ids map[string]struct{}
}

func (c courseCapability) CanTeach(id string) bool {
	_, ok := c.ids[id]
	return ok
}

// SubjectCapability builds the school-mode capability set for a teacher.
func SubjectCapability(t Teacher) Teachable {
	ids := make(map[string]struct{}, len(t.SubjectIDs))
	for _, id := range t.SubjectIDs {
		ids[id] = struct{}{}
	}
	return subjectCapability{ids: ids}
}

// CourseCapability builds the college-mode capability set for a teacher.
func CourseCapability(t Teacher) Teachable {
	ids := make(map[string]struct{}, len(t.CourseIDs))
	for _, id := range t.CourseIDs {
		ids[id] = struct{}{}
	}
	return courseCapability{ids: ids}
}
