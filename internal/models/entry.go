package models

// TimetableEntry is the persistence-ready flat record the engine hands to the
// storage layer. One entry per scheduled activity occurrence.
type TimetableEntry struct {
	Day       string `json:"day"`
	Period    int    `json:"period"`
	TeacherID string `json:"teacher_id"`
	SectionID string `json:"section_id"`
	RoomID    string `json:"room_id"`
	SubjectID string `json:"subject_id"`
}
