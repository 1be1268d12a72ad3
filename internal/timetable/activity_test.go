package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-engine/internal/models"
)

type recordingObserver struct {
	NopObserver
	skips []string
}

func (r *recordingObserver) SkippedOccurrence(sectionID, subjectID, reason string) {
	r.skips = append(r.skips, sectionID+"/"+subjectID+": "+reason)
}

func TestActivityFactoryBuildsOnePerOccurrence(t *testing.T) {
	catalog := testCatalog(t)
	data := testDataset()

	activities, skipped := NewActivityFactory(testSettings(), nil).Build(data, catalog)

	require.Equal(t, 0, skipped)
	require.Len(t, activities, 4)
	assert.Equal(t, "10A:math:0", activities[0].ID)
	assert.Equal(t, "10A:math:1", activities[1].ID)
	assert.Equal(t, "t-math", activities[0].TeacherID)
	assert.Equal(t, "t-phy", activities[2].TeacherID)
}

func TestActivityFactorySkipsWithoutTeacher(t *testing.T) {
	catalog := testCatalog(t)
	data := testDataset()
	data.Subjects = append(data.Subjects, models.Subject{
		ID: "art", Code: "ART", Name: "Art", WeeklyOccurrences: 1,
	})
	obs := &recordingObserver{}

	activities, skipped := NewActivityFactory(testSettings(), obs).Build(data, catalog)

	assert.Len(t, activities, 4)
	assert.Equal(t, 1, skipped)
	require.Len(t, obs.skips, 1)
	assert.Equal(t, "10A/art: no eligible teacher", obs.skips[0])
}

func TestActivityFactorySkipsWithoutRoom(t *testing.T) {
	catalog := testCatalog(t)
	data := testDataset()
	data.Rooms = nil
	obs := &recordingObserver{}

	activities, skipped := NewActivityFactory(testSettings(), obs).Build(data, catalog)

	assert.Empty(t, activities)
	assert.Equal(t, 4, skipped)
	assert.Contains(t, obs.skips[0], "no eligible room")
}

func TestActivityFactoryHonoursLoadCap(t *testing.T) {
	catalog := testCatalog(t) // 6 slots; cap factor 0.8 -> 4 assignments max
	data := testDataset()
	data.Teachers = []models.Teacher{
		{ID: "t-all", FullName: "Solo Teacher", SubjectIDs: []string{"math", "physics"}},
	}
	data.Subjects = []models.Subject{
		{ID: "math", Code: "MTH", Name: "Mathematics", WeeklyOccurrences: 6, Priority: 5},
	}

	activities, skipped := NewActivityFactory(testSettings(), nil).Build(data, catalog)

	assert.Len(t, activities, 4)
	assert.Equal(t, 2, skipped)
}

func TestActivityFactoryPrefersExplicitMaxLoad(t *testing.T) {
	catalog := testCatalog(t)
	data := testDataset()
	data.Teachers[0].MaxLoad = 1

	activities, skipped := NewActivityFactory(testSettings(), nil).Build(data, catalog)

	assert.Len(t, activities, 3)
	assert.Equal(t, 1, skipped)
}

func TestActivityFactoryCollegeModeFiltersByDepartment(t *testing.T) {
	catalog := testCatalog(t)
	settings := testSettings()
	settings.Mode = ModeCollege

	data := models.Dataset{
		Sections: []models.Section{{ID: "cs-1", Size: 20, DepartmentID: "cs"}},
		Teachers: []models.Teacher{
			{ID: "t-1", CourseIDs: []string{"algo", "lit"}, MaxLoad: 10},
		},
		Rooms: []models.Room{{ID: "r-1", Capacity: 40}},
		Subjects: []models.Subject{
			{ID: "algo", Name: "Algorithms", WeeklyOccurrences: 1, DepartmentID: "cs"},
			{ID: "lit", Name: "Literature", WeeklyOccurrences: 1, DepartmentID: "arts"},
		},
	}

	activities, skipped := NewActivityFactory(settings, nil).Build(data, catalog)

	require.Len(t, activities, 1)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, "algo", activities[0].SubjectID)
}

func TestActivityFactoryCollegeModeFallsBackToFullCatalog(t *testing.T) {
	catalog := testCatalog(t)
	settings := testSettings()
	settings.Mode = ModeCollege

	data := models.Dataset{
		Sections: []models.Section{{ID: "gen-1", Size: 20, DepartmentID: "unmatched"}},
		Teachers: []models.Teacher{{ID: "t-1", CourseIDs: []string{"algo"}, MaxLoad: 10}},
		Rooms:    []models.Room{{ID: "r-1", Capacity: 40}},
		Subjects: []models.Subject{
			{ID: "algo", Name: "Algorithms", WeeklyOccurrences: 1, DepartmentID: "cs"},
		},
	}

	activities, _ := NewActivityFactory(settings, nil).Build(data, catalog)

	require.Len(t, activities, 1)
}

func TestPickRoomAvoidsUndersizedRooms(t *testing.T) {
	rooms := []models.Room{
		{ID: "small", Capacity: 10},
		{ID: "big", Capacity: 40},
	}
	usage := map[string]int{"big": 5}

	room, ok := pickRoom(rooms, usage, models.Section{ID: "s", Size: 30})

	require.True(t, ok)
	assert.Equal(t, "big", room.ID)
}

func TestPickRoomFallsBackToUndersizedWhenNothingElse(t *testing.T) {
	rooms := []models.Room{{ID: "small", Capacity: 10}}

	room, ok := pickRoom(rooms, map[string]int{}, models.Section{ID: "s", Size: 30})

	require.True(t, ok)
	assert.Equal(t, "small", room.ID)
}
