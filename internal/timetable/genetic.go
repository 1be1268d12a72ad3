package timetable

import (
	"context"
	"math/rand"
	"sort"
	"sync"
)

// Bounded retry counts for randomized repair and move search. Small on
// purpose: a failed search falls back to a conflicting assignment that the
// hard penalty will surface, keeping every operation O(retries).
const (
	crossoverRepairRetries = 20
	mutationMoveRetries    = 10
	seedMutationRate       = 0.1
)

// GeneticOptimizer evolves a population of schedules from a greedy seed.
// All randomness flows through the single injected source, so a fixed seed
// replays the exact run. Fitness evaluation fans out across a bounded worker
// pool; everything else is sequential.
type GeneticOptimizer struct {
	engine   *Engine
	settings Settings
	rng      *rand.Rand
	obs      Observer
}

// NewGeneticOptimizer wires the optimizer for one run.
func NewGeneticOptimizer(engine *Engine, settings Settings, rng *rand.Rand, obs Observer) *GeneticOptimizer {
	if obs == nil {
		obs = NopObserver{}
	}
	return &GeneticOptimizer{engine: engine, settings: settings, rng: rng, obs: obs}
}

// OptimizeResult carries the best individual ever observed plus run stats.
type OptimizeResult struct {
	Schedule    *Schedule
	Fitness     float64
	Generations int
}

// Optimize runs the configured number of generations, stopping early when
// the best fitness crosses the near-optimal fraction of the soft ceiling or
// the context ends. The returned schedule is always the best ever seen, not
// the best of the final generation.
func (o *GeneticOptimizer) Optimize(ctx context.Context, seed *Schedule) OptimizeResult {
	population := o.seedPopulation(seed)
	fitness := o.evaluate(population)

	bestIdx := argmax(fitness)
	best := population[bestIdx].Clone()
	bestFitness := fitness[bestIdx]
	ceiling := o.engine.SoftCeiling()

	generations := 0
	for gen := 1; gen <= o.settings.Generations; gen++ {
		select {
		case <-ctx.Done():
			return OptimizeResult{Schedule: best, Fitness: bestFitness, Generations: generations}
		default:
		}

		population = o.nextGeneration(population, fitness)
		fitness = o.evaluate(population)
		generations = gen

		genBest := argmax(fitness)
		if fitness[genBest] > bestFitness {
			best = population[genBest].Clone()
			bestFitness = fitness[genBest]
		}

		feasible := bestFitness >= 0
		o.obs.GenerationProgress(gen, bestFitness, feasible)

		if feasible && bestFitness >= o.settings.NearOptimal*ceiling {
			break
		}
	}
	return OptimizeResult{Schedule: best, Fitness: bestFitness, Generations: generations}
}

// seedPopulation keeps the greedy seed verbatim at index 0 and fills the
// rest with lightly mutated copies for diversity.
func (o *GeneticOptimizer) seedPopulation(seed *Schedule) []*Schedule {
	population := make([]*Schedule, o.settings.PopulationSize)
	population[0] = seed.Clone()
	for i := 1; i < len(population); i++ {
		individual := seed.Clone()
		rounds := 1 + o.rng.Intn(5)
		for r := 0; r < rounds; r++ {
			o.mutate(individual, seedMutationRate)
		}
		population[i] = individual
	}
	return population
}

// evaluate computes fitness for the whole population over the worker pool.
func (o *GeneticOptimizer) evaluate(population []*Schedule) []float64 {
	fitness := make([]float64, len(population))
	sem := make(chan struct{}, o.settings.Workers)
	var wg sync.WaitGroup
	for i, individual := range population {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, s *Schedule) {
			defer wg.Done()
			fitness[i] = o.engine.Fitness(s)
			<-sem
		}(i, individual)
	}
	wg.Wait()
	return fitness
}

// nextGeneration applies elitism, tournament selection, crossover and
// mutation to produce a population of the same size.
func (o *GeneticOptimizer) nextGeneration(population []*Schedule, fitness []float64) []*Schedule {
	next := make([]*Schedule, 0, len(population))

	elites := o.eliteCount()
	ranked := make([]int, len(population))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return fitness[ranked[a]] > fitness[ranked[b]]
	})
	for _, idx := range ranked[:elites] {
		next = append(next, population[idx].Clone())
	}

	for len(next) < len(population) {
		parentA := population[o.tournament(fitness)]
		parentB := population[o.tournament(fitness)]

		var child *Schedule
		if o.rng.Float64() < o.settings.CrossoverRate {
			child = o.crossover(parentA, parentB)
		} else {
			child = parentA.Clone()
		}
		o.mutate(child, o.settings.MutationRate)
		next = append(next, child)
	}
	return next
}

func (o *GeneticOptimizer) eliteCount() int {
	elites := int(o.settings.EliteFraction*float64(o.settings.PopulationSize) + 0.5)
	if elites < 1 {
		elites = 1
	}
	if elites > o.settings.PopulationSize {
		elites = o.settings.PopulationSize
	}
	return elites
}

// tournament draws TournamentSize distinct contestants and returns the index
// of the fittest.
func (o *GeneticOptimizer) tournament(fitness []float64) int {
	k := o.settings.TournamentSize
	if k > len(fitness) {
		k = len(fitness)
	}
	contestants := o.rng.Perm(len(fitness))[:k]
	best := contestants[0]
	for _, idx := range contestants[1:] {
		if fitness[idx] > fitness[best] {
			best = idx
		}
	}
	return best
}

// crossover splices two parents at a single point over the sorted activity
// order. Assignments inherited from parent B that conflict with the child
// built so far are repaired by a bounded random slot search; when the search
// fails the parent slot is kept anyway, so the child always covers exactly
// the activities its parents cover.
func (o *GeneticOptimizer) crossover(parentA, parentB *Schedule) *Schedule {
	order := o.engine.ActivityOrder()
	catalog := o.engine.Catalog()
	activities := o.engine.Activities()

	cut := 1
	if len(order) > 1 {
		cut = 1 + o.rng.Intn(len(order)-1)
	}

	child := NewSchedule()
	ix := newResourceIndex()

	place := func(id string, slot TimeSlot) {
		a := activities[id]
		keys, ok := catalog.Block(slot, a.Duration)
		if !ok {
			keys = []SlotKey{slot.Key()}
		}
		child.Set(id, slot)
		ix.occupy(a, keys)
	}

	for i, id := range order {
		a := activities[id]
		primary, fallback := parentA, parentB
		if i >= cut {
			primary, fallback = parentB, parentA
		}

		slot, ok := primary.Get(id)
		if !ok {
			slot, ok = fallback.Get(id)
		}
		if !ok {
			continue
		}

		if keys, blockOK := catalog.Block(slot, a.Duration); blockOK && ix.free(a, keys) {
			place(id, slot)
			continue
		}

		repaired := false
		for retry := 0; retry < crossoverRepairRetries; retry++ {
			candidate := catalog.Slots()[o.rng.Intn(catalog.Len())]
			if keys, blockOK := catalog.Block(candidate, a.Duration); blockOK && ix.free(a, keys) {
				place(id, candidate)
				repaired = true
				break
			}
		}
		if !repaired {
			place(id, slot)
		}
	}
	return child
}

// mutate applies one randomly chosen move per activity that passes the rate
// roll. Moves keep the occupancy index in sync so later rolls in the same
// pass see the updated schedule.
func (o *GeneticOptimizer) mutate(s *Schedule, rate float64) {
	order := o.engine.ActivityOrder()
	activities := o.engine.Activities()
	catalog := o.engine.Catalog()
	ix := indexSchedule(s, activities, catalog)

	for _, id := range order {
		if o.rng.Float64() >= rate {
			continue
		}
		if _, assigned := s.Get(id); !assigned {
			o.moveUnassigned(s, ix, activities[id])
			continue
		}
		switch o.rng.Intn(3) {
		case 0:
			o.swapMove(s, ix, id)
		case 1:
			o.relocateMove(s, ix, activities[id])
		case 2:
			o.exchangeMove(s, ix, id)
		}
	}
}

// moveUnassigned tries to place an unassigned activity conflict-free. Only
// relaxed seeds leave activities unassigned; this is the repair path.
func (o *GeneticOptimizer) moveUnassigned(s *Schedule, ix *resourceIndex, a Activity) {
	catalog := o.engine.Catalog()
	for retry := 0; retry < mutationMoveRetries; retry++ {
		candidate := catalog.Slots()[o.rng.Intn(catalog.Len())]
		if keys, ok := catalog.Block(candidate, a.Duration); ok && ix.free(a, keys) {
			s.Set(a.ID, candidate)
			ix.occupy(a, keys)
			return
		}
	}
}

// swapMove exchanges the slots of two assigned activities unconditionally;
// any conflict it creates is left for the fitness penalty to punish.
func (o *GeneticOptimizer) swapMove(s *Schedule, ix *resourceIndex, id string) {
	other := o.randomAssigned(s, id)
	if other == "" {
		return
	}
	activities := o.engine.Activities()
	catalog := o.engine.Catalog()

	slotA, _ := s.Get(id)
	slotB, _ := s.Get(other)
	o.releaseAssignment(ix, activities[id], slotA)
	o.releaseAssignment(ix, activities[other], slotB)
	s.Set(id, slotB)
	s.Set(other, slotA)
	o.occupyAssignment(ix, activities[id], slotB, catalog)
	o.occupyAssignment(ix, activities[other], slotA, catalog)
}

// relocateMove searches for a conflict-free destination and moves the
// activity there, or leaves it in place when nothing free turns up.
func (o *GeneticOptimizer) relocateMove(s *Schedule, ix *resourceIndex, a Activity) {
	catalog := o.engine.Catalog()
	current, _ := s.Get(a.ID)
	o.releaseAssignment(ix, a, current)
	for retry := 0; retry < mutationMoveRetries; retry++ {
		candidate := catalog.Slots()[o.rng.Intn(catalog.Len())]
		if keys, ok := catalog.Block(candidate, a.Duration); ok && ix.free(a, keys) {
			s.Set(a.ID, candidate)
			ix.occupy(a, keys)
			return
		}
	}
	o.occupyAssignment(ix, a, current, catalog)
}

// exchangeMove swaps two activities only when both land conflict-free in
// each other's slot; otherwise it is a no-op.
func (o *GeneticOptimizer) exchangeMove(s *Schedule, ix *resourceIndex, id string) {
	other := o.randomAssigned(s, id)
	if other == "" {
		return
	}
	activities := o.engine.Activities()
	catalog := o.engine.Catalog()
	a, b := activities[id], activities[other]

	slotA, _ := s.Get(id)
	slotB, _ := s.Get(other)
	o.releaseAssignment(ix, a, slotA)
	o.releaseAssignment(ix, b, slotB)

	keysA, okA := catalog.Block(slotB, a.Duration)
	keysB, okB := catalog.Block(slotA, b.Duration)
	if okA && okB && ix.free(a, keysA) {
		ix.occupy(a, keysA)
		if ix.free(b, keysB) {
			ix.occupy(b, keysB)
			s.Set(id, slotB)
			s.Set(other, slotA)
			return
		}
		ix.release(a, keysA)
	}

	o.occupyAssignment(ix, a, slotA, catalog)
	o.occupyAssignment(ix, b, slotB, catalog)
}

// randomAssigned picks a uniformly random assigned activity other than id.
func (o *GeneticOptimizer) randomAssigned(s *Schedule, id string) string {
	var candidates []string
	for _, candidate := range o.engine.ActivityOrder() {
		if candidate == id {
			continue
		}
		if _, ok := s.Get(candidate); ok {
			candidates = append(candidates, candidate)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	return candidates[o.rng.Intn(len(candidates))]
}

func (o *GeneticOptimizer) releaseAssignment(ix *resourceIndex, a Activity, slot TimeSlot) {
	keys, ok := o.engine.Catalog().Block(slot, a.Duration)
	if !ok {
		keys = []SlotKey{slot.Key()}
	}
	ix.release(a, keys)
}

func (o *GeneticOptimizer) occupyAssignment(ix *resourceIndex, a Activity, slot TimeSlot, catalog *SlotCatalog) {
	keys, ok := catalog.Block(slot, a.Duration)
	if !ok {
		keys = []SlotKey{slot.Key()}
	}
	ix.occupy(a, keys)
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
