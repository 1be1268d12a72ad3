package timetable

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/sma-timetable-engine/pkg/errors"
)

func TestGeneratorRunProducesConflictFreeTimetable(t *testing.T) {
	gen := NewGenerator(testSettings(), testDataset(), nil, testRNG(1))

	result, err := gen.Run(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.False(t, result.Infeasible)
	assert.Empty(t, result.HardViolations)
	assert.Equal(t, 0, result.Skipped)
	// four single-period occurrences flatten to four entries
	assert.Len(t, result.Entries, 4)
	assert.Greater(t, result.Score, 0.0)
	assert.True(t, result.Feasible())
}

func TestGeneratorRunIsDeterministicPerSeed(t *testing.T) {
	resultA, err := NewGenerator(testSettings(), testDataset(), nil, testRNG(99)).Run(context.Background())
	require.NoError(t, err)
	resultB, err := NewGenerator(testSettings(), testDataset(), nil, testRNG(99)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, resultA.Score, resultB.Score)
	assert.Equal(t, resultA.Entries, resultB.Entries)
}

func TestGeneratorRunFailsFastOnBadSettings(t *testing.T) {
	settings := testSettings()
	settings.PeriodsPerDay = 0

	_, err := NewGenerator(settings, testDataset(), nil, testRNG(1)).Run(context.Background())

	var typed *appErrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, appErrors.ErrConfiguration.Code, typed.Code)
}

func TestGeneratorRunRejectsAllBreakGrid(t *testing.T) {
	settings := testSettings()
	settings.PeriodsPerDay = 2
	settings.BreakPeriods = []int{1, 2}

	_, err := NewGenerator(settings, testDataset(), nil, testRNG(1)).Run(context.Background())

	var typed *appErrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, appErrors.ErrConfiguration.Code, typed.Code)
}

func TestGeneratorRunInfeasibleWithoutRooms(t *testing.T) {
	data := testDataset()
	data.Rooms = nil

	result, err := NewGenerator(testSettings(), data, nil, testRNG(1)).Run(context.Background())

	require.NoError(t, err)
	assert.True(t, result.Infeasible)
	assert.Empty(t, result.Entries)
	assert.Equal(t, 4, result.Skipped)
	assert.False(t, result.Feasible())
}

func TestGeneratorRunInfeasibleWithEmptyDataset(t *testing.T) {
	gen := NewGenerator(testSettings(), testDataset(), nil, testRNG(1))
	gen.dataset.Subjects = nil

	result, err := gen.Run(context.Background())

	require.NoError(t, err)
	assert.True(t, result.Infeasible)
}

func TestGeneratorRunReportsProgress(t *testing.T) {
	obs := &progressObserver{}

	_, err := NewGenerator(testSettings(), testDataset(), obs, testRNG(1)).Run(context.Background())

	require.NoError(t, err)
	assert.Greater(t, obs.generations, 0)
}

func TestGeneratorRunMultiPeriodLabFlattensPerPeriod(t *testing.T) {
	data := testDataset()
	data.Subjects = append(data.Subjects, addLabSubject())
	data.Teachers[1].SubjectIDs = append(data.Teachers[1].SubjectIDs, "chem-lab")

	result, err := NewGenerator(testSettings(), data, nil, testRNG(4)).Run(context.Background())

	require.NoError(t, err)
	require.False(t, result.Infeasible)
	assert.Empty(t, result.HardViolations)
	// 4 single-period entries plus one two-period lab
	assert.Len(t, result.Entries, 6)
}

func TestGeneratorRunHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewGenerator(testSettings(), testDataset(), nil, testRNG(1)).Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Generations)
	// the greedy seed alone is already conflict-free for this dataset
	assert.Empty(t, result.HardViolations)
}

func TestResultFeasible(t *testing.T) {
	assert.True(t, Result{}.Feasible())
	assert.False(t, Result{Infeasible: true}.Feasible())
	assert.False(t, Result{HardViolations: []Violation{{}}}.Feasible())
}

type progressObserver struct {
	NopObserver
	generations int
}

func (p *progressObserver) GenerationProgress(generation int, bestFitness float64, feasible bool) {
	p.generations = generation
}
