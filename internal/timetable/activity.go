package timetable

import (
	"fmt"

	"github.com/noah-isme/sma-timetable-engine/internal/models"
)

// Activity is one required weekly occurrence of a section/subject pairing,
// bound to the teacher and room chosen at factory time. Immutable for the
// lifetime of a generation run.
type Activity struct {
	ID        string
	SectionID string
	TeacherID string
	RoomID    string
	SubjectID string
	Duration  int
	Priority  int
	Tags      []string
}

// IsLab reports whether the activity carries the lab tag.
func (a Activity) IsLab() bool {
	for _, tag := range a.Tags {
		if tag == "lab" {
			return true
		}
	}
	return false
}

// capacityShortfallPenalty dominates room usage counts whenever a room is
// too small for the section, so undersized rooms are only ever picked when
// nothing else exists.
const capacityShortfallPenalty = 1_000_000

// ActivityFactory derives the schedulable activities from institutional
// inputs. Occurrences that cannot be staffed or housed are skipped and
// reported, never errors.
type ActivityFactory struct {
	settings Settings
	obs      Observer
}

// NewActivityFactory builds a factory for one generation run.
func NewActivityFactory(settings Settings, obs Observer) *ActivityFactory {
	if obs == nil {
		obs = NopObserver{}
	}
	return &ActivityFactory{settings: settings, obs: obs}
}

// Build creates exactly one Activity per required weekly occurrence and
// returns the flat list plus the number of skipped occurrences.
func (f *ActivityFactory) Build(data models.Dataset, catalog *SlotCatalog) ([]Activity, int) {
	capabilities := make(map[string]models.Teachable, len(data.Teachers))
	for _, teacher := range data.Teachers {
		if f.settings.Mode == ModeCollege {
			capabilities[teacher.ID] = models.CourseCapability(teacher)
		} else {
			capabilities[teacher.ID] = models.SubjectCapability(teacher)
		}
	}

	teacherUsage := make(map[string]int, len(data.Teachers))
	roomUsage := make(map[string]int, len(data.Rooms))

	var activities []Activity
	skipped := 0

	for _, section := range data.Sections {
		for _, subject := range f.relevantSubjects(section, data.Subjects) {
			for occurrence := 0; occurrence < subject.WeeklyOccurrences; occurrence++ {
				teacher, ok := f.pickTeacher(data.Teachers, capabilities, teacherUsage, subject.ID, catalog)
				if !ok {
					skipped++
					f.obs.SkippedOccurrence(section.ID, subject.ID, "no eligible teacher")
					continue
				}
				room, ok := pickRoom(data.Rooms, roomUsage, section)
				if !ok {
					skipped++
					f.obs.SkippedOccurrence(section.ID, subject.ID, "no eligible room")
					continue
				}

				duration := subject.DurationPeriods
				if duration < 1 {
					duration = 1
				}
				priority := subject.Priority
				if priority < 1 {
					priority = 1
				}

				activities = append(activities, Activity{
					ID:        fmt.Sprintf("%s:%s:%d", section.ID, subject.ID, occurrence),
					SectionID: section.ID,
					TeacherID: teacher.ID,
					RoomID:    room.ID,
					SubjectID: subject.ID,
					Duration:  duration,
					Priority:  priority,
					Tags:      subject.Tags,
				})
				teacherUsage[teacher.ID]++
				roomUsage[room.ID]++
			}
		}
	}

	return activities, skipped
}

// relevantSubjects scopes the catalog per section. School mode takes the
// full catalog; college mode filters by department and falls back to the
// full catalog when no department-scoped subset exists.
func (f *ActivityFactory) relevantSubjects(section models.Section, subjects []models.Subject) []models.Subject {
	if f.settings.Mode != ModeCollege {
		return subjects
	}
	var scoped []models.Subject
	for _, subject := range subjects {
		if subject.DepartmentID != "" && subject.DepartmentID == section.DepartmentID {
			scoped = append(scoped, subject)
		}
	}
	if len(scoped) == 0 {
		return subjects
	}
	return scoped
}

// pickTeacher returns the first capability-matched teacher, in stable input
// order, whose running assignment count sits below its load cap.
func (f *ActivityFactory) pickTeacher(
	teachers []models.Teacher,
	capabilities map[string]models.Teachable,
	usage map[string]int,
	subjectID string,
	catalog *SlotCatalog,
) (models.Teacher, bool) {
	defaultCap := int(float64(catalog.Len()) * f.settings.LoadCapFactor)
	for _, teacher := range teachers {
		capability := capabilities[teacher.ID]
		if capability == nil || !capability.CanTeach(subjectID) {
			continue
		}
		cap := defaultCap
		if teacher.MaxLoad > 0 && teacher.MaxLoad < cap {
			cap = teacher.MaxLoad
		}
		if usage[teacher.ID] >= cap {
			continue
		}
		return teacher, true
	}
	return models.Teacher{}, false
}

// pickRoom minimises usage plus capacity shortfall, yielding even room
// utilisation while respecting section sizes.
func pickRoom(rooms []models.Room, usage map[string]int, section models.Section) (models.Room, bool) {
	best := -1
	bestPenalty := 0
	for i, room := range rooms {
		penalty := usage[room.ID]
		if room.Capacity < section.Size {
			penalty += capacityShortfallPenalty
		}
		if best == -1 || penalty < bestPenalty {
			best = i
			bestPenalty = penalty
		}
	}
	if best == -1 {
		return models.Room{}, false
	}
	return rooms[best], true
}
