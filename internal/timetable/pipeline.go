package timetable

import (
	"context"
	"math/rand"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/noah-isme/sma-timetable-engine/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-engine/pkg/errors"
)

// Result is the outcome of one generation run. Infeasible runs are results,
// not errors: Entries is empty and Infeasible is set when no activity could
// be derived or placed at all.
type Result struct {
	RunID           string                  `json:"run_id"`
	Entries         []models.TimetableEntry `json:"entries"`
	Score           float64                 `json:"score"`
	Fitness         float64                 `json:"fitness"`
	HardViolations  []Violation             `json:"hard_violations,omitempty"`
	Skipped         int                     `json:"skipped_occurrences"`
	RelaxedFallback bool                    `json:"relaxed_fallback"`
	Generations     int                     `json:"generations"`
	Infeasible      bool                    `json:"infeasible"`
}

// Feasible reports whether the result is a usable timetable.
func (r Result) Feasible() bool {
	return !r.Infeasible && len(r.HardViolations) == 0
}

// Generator runs the three-phase pipeline: greedy construction, genetic
// optimization, local refinement. One Generator instance serves one run.
type Generator struct {
	settings Settings
	dataset  models.Dataset
	obs      Observer
	rng      *rand.Rand
	validate *validator.Validate
}

// NewGenerator wires a run. A nil observer disables progress reporting; a
// nil rng falls back to an unseeded source, losing replayability.
func NewGenerator(settings Settings, dataset models.Dataset, obs Observer, rng *rand.Rand) *Generator {
	if obs == nil {
		obs = NopObserver{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Generator{
		settings: settings,
		dataset:  dataset,
		obs:      obs,
		rng:      rng,
		validate: validator.New(),
	}
}

// Run executes the pipeline end to end. Configuration problems fail fast
// with a typed error; an unschedulable dataset returns an infeasible Result
// with a nil error.
func (g *Generator) Run(ctx context.Context) (Result, error) {
	if err := g.settings.Validate(); err != nil {
		return Result{}, err
	}
	settings := g.settings.normalized()

	if err := g.validate.Struct(g.dataset); err != nil {
		return Result{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, "dataset validation failed")
	}

	catalog := NewSlotCatalog(settings.WorkingDays, settings.PeriodsPerDay, settings.BreakPeriods, settings.PeriodTimes)
	if catalog.Len() == 0 {
		return Result{}, appErrors.Clone(appErrors.ErrConfiguration, "grid has no schedulable capacity")
	}

	result := Result{RunID: uuid.New().String()}

	factory := NewActivityFactory(settings, g.obs)
	activities, skipped := factory.Build(g.dataset, catalog)
	result.Skipped = skipped
	if len(activities) == 0 {
		result.Infeasible = true
		return result, nil
	}

	engine := NewEngine(activities, g.dataset.Teachers, catalog, settings.Weights)

	seed, relaxed := NewGreedyConstructor(engine).Build(activities)
	result.RelaxedFallback = relaxed
	if seed.Len() == 0 {
		result.Infeasible = true
		return result, nil
	}

	runCtx := ctx
	if settings.Deadline > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, settings.Deadline)
		defer cancel()
	}

	optimized := NewGeneticOptimizer(engine, settings, g.rng, g.obs).Optimize(runCtx, seed)
	refined := NewLocalRefiner(engine, settings.RefinerMaxPasses).Refine(optimized.Schedule)

	result.Generations = optimized.Generations
	result.HardViolations = engine.HardViolations(refined)
	result.Score = engine.SoftScore(refined)
	result.Fitness = engine.Fitness(refined)
	result.Entries = Entries(refined, engine)
	return result, nil
}
