package timetable

import (
	"math/rand"
	"testing"

	"github.com/noah-isme/sma-timetable-engine/internal/models"
)

// testCatalog is a compact two-day grid with a break after period 2.
func testCatalog(t *testing.T) *SlotCatalog {
	t.Helper()
	return NewSlotCatalog([]string{"Monday", "Tuesday"}, 4, []int{3}, nil)
}

func testSettings() Settings {
	return Settings{
		Mode:          ModeSchool,
		WorkingDays:   []string{"Monday", "Tuesday"},
		PeriodsPerDay: 4,
		BreakPeriods:  []int{3},

		PopulationSize: 20,
		Generations:    15,
		MutationRate:   0.1,
		CrossoverRate:  0.8,
		EliteFraction:  0.1,
		TournamentSize: 3,
		NearOptimal:    0.95,
		Workers:        2,

		RefinerMaxPasses: 5,
		Weights:          DefaultWeights(),
	}
}

func testDataset() models.Dataset {
	return models.Dataset{
		Sections: []models.Section{
			{ID: "10A", Name: "Grade 10 A", Size: 28},
		},
		Teachers: []models.Teacher{
			{ID: "t-math", FullName: "Ama Owusu", MaxLoad: 10, SubjectIDs: []string{"math"}},
			{ID: "t-phy", FullName: "Ben Carter", MaxLoad: 10, SubjectIDs: []string{"physics"}},
		},
		Rooms: []models.Room{
			{ID: "r-101", Name: "Room 101", Capacity: 30},
		},
		Subjects: []models.Subject{
			{ID: "math", Code: "MTH", Name: "Mathematics", WeeklyOccurrences: 2, Priority: 5},
			{ID: "physics", Code: "PHY", Name: "Physics", WeeklyOccurrences: 2, Priority: 3},
		},
	}
}

// addLabSubject is a two-period lab appended by multi-period scenarios.
func addLabSubject() models.Subject {
	return models.Subject{
		ID:                "chem-lab",
		Code:              "CHL",
		Name:              "Chemistry Lab",
		WeeklyOccurrences: 1,
		DurationPeriods:   2,
		Priority:          4,
		Tags:              []string{"lab"},
	}
}

// testEngine builds the activity set and engine for the standard fixture.
func testEngine(t *testing.T) (*Engine, []Activity) {
	t.Helper()
	catalog := testCatalog(t)
	data := testDataset()
	activities, skipped := NewActivityFactory(testSettings(), nil).Build(data, catalog)
	if skipped != 0 {
		t.Fatalf("fixture skipped %d occurrences", skipped)
	}
	return NewEngine(activities, data.Teachers, catalog, DefaultWeights()), activities
}

func testRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
