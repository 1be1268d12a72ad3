package timetable

import (
	"runtime"
	"time"

	appErrors "github.com/noah-isme/sma-timetable-engine/pkg/errors"
)

// Generation modes. School mode schedules every subject for every section;
// college mode filters subjects by department with a full-catalog fallback.
const (
	ModeSchool  = "school"
	ModeCollege = "college"
)

// Weights carries the soft-constraint weights plus the hard-violation
// penalty. The hard penalty must dwarf any attainable soft score so that a
// single double-booking outranks every soft preference.
type Weights struct {
	MorningPreference float64
	WorkloadBalance   float64
	Continuity        float64
	LabAdjacency      float64
	TeacherPreference float64
	HardViolation     float64
}

// DefaultWeights mirrors the scoring priorities the institutions ran with
// before weights became configurable.
func DefaultWeights() Weights {
	return Weights{
		MorningPreference: 10,
		WorkloadBalance:   5,
		Continuity:        8,
		LabAdjacency:      15,
		TeacherPreference: 3,
		HardViolation:     1000,
	}
}

// Settings is the immutable per-run configuration threaded explicitly
// through every pipeline component.
type Settings struct {
	Mode          string
	WorkingDays   []string
	PeriodsPerDay int
	BreakPeriods  []int
	PeriodTimes   map[int]PeriodTime
	LoadCapFactor float64

	PopulationSize int
	Generations    int
	MutationRate   float64
	CrossoverRate  float64
	EliteFraction  float64
	TournamentSize int
	NearOptimal    float64
	Workers        int
	Deadline       time.Duration

	RefinerMaxPasses int

	Weights Weights
}

// Validate fails fast on configuration that leaves nothing to schedule.
func (s Settings) Validate() error {
	if len(s.WorkingDays) == 0 {
		return appErrors.Clone(appErrors.ErrConfiguration, "working days must not be empty")
	}
	if s.PeriodsPerDay <= 0 {
		return appErrors.Clone(appErrors.ErrConfiguration, "periods per day must be positive")
	}
	if s.Mode != "" && s.Mode != ModeSchool && s.Mode != ModeCollege {
		return appErrors.Clone(appErrors.ErrConfiguration, "mode must be school or college")
	}
	if s.MutationRate < 0 || s.MutationRate > 1 {
		return appErrors.Clone(appErrors.ErrConfiguration, "mutation rate must be within [0, 1]")
	}
	if s.CrossoverRate < 0 || s.CrossoverRate > 1 {
		return appErrors.Clone(appErrors.ErrConfiguration, "crossover rate must be within [0, 1]")
	}
	if s.EliteFraction < 0 || s.EliteFraction >= 1 {
		return appErrors.Clone(appErrors.ErrConfiguration, "elite fraction must be within [0, 1)")
	}
	return nil
}

// normalized fills unset knobs with the canonical defaults.
func (s Settings) normalized() Settings {
	if s.Mode == "" {
		s.Mode = ModeSchool
	}
	if s.LoadCapFactor <= 0 || s.LoadCapFactor > 1 {
		s.LoadCapFactor = 0.8
	}
	if s.PopulationSize <= 0 {
		s.PopulationSize = 100
	}
	if s.Generations <= 0 {
		s.Generations = 50
	}
	if s.MutationRate <= 0 {
		s.MutationRate = 0.05
	}
	if s.CrossoverRate <= 0 {
		s.CrossoverRate = 0.8
	}
	if s.EliteFraction <= 0 {
		s.EliteFraction = 0.1
	}
	if s.TournamentSize <= 0 {
		s.TournamentSize = 3
	}
	if s.NearOptimal <= 0 {
		s.NearOptimal = 0.95
	}
	if s.Workers <= 0 {
		s.Workers = runtime.NumCPU()
	}
	if s.RefinerMaxPasses <= 0 {
		s.RefinerMaxPasses = 10
	}
	if s.Weights == (Weights{}) {
		s.Weights = DefaultWeights()
	}
	if s.Weights.HardViolation <= 0 {
		s.Weights.HardViolation = 1000
	}
	return s
}
