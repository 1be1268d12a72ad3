package main

import (
	"context"
	"encoding/json"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-engine/internal/dataset"
	"github.com/noah-isme/sma-timetable-engine/internal/telemetry"
	"github.com/noah-isme/sma-timetable-engine/internal/timetable"
	"github.com/noah-isme/sma-timetable-engine/pkg/config"
	"github.com/noah-isme/sma-timetable-engine/pkg/export"
	"github.com/noah-isme/sma-timetable-engine/pkg/logger"
)

func main() {
	datasetPath := flag.String("dataset", "dataset.json", "path to the institutional dataset JSON")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	data, err := dataset.Load(*datasetPath)
	if err != nil {
		log.Fatal("failed to load dataset", zap.Error(err))
	}

	observers := telemetry.MultiObserver{telemetry.NewLogObserver(log)}
	if cfg.Metrics.Enabled {
		metrics := telemetry.NewMetricsObserver()
		observers = append(observers, metrics)

		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			log.Info("metrics listener started", zap.String("addr", cfg.Metrics.Addr))
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil && err != http.ErrServerClosed {
				log.Error("metrics listener failed", zap.Error(err))
			}
		}()
	}

	seed := cfg.GA.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	settings := timetable.Settings{
		Mode:          cfg.Grid.Mode,
		WorkingDays:   cfg.Grid.WorkingDays,
		PeriodsPerDay: cfg.Grid.PeriodsPerDay,
		BreakPeriods:  cfg.Grid.BreakPeriods,
		LoadCapFactor: cfg.Grid.LoadCapFactor,

		PopulationSize: cfg.GA.PopulationSize,
		Generations:    cfg.GA.Generations,
		MutationRate:   cfg.GA.MutationRate,
		CrossoverRate:  cfg.GA.CrossoverRate,
		EliteFraction:  cfg.GA.EliteFraction,
		TournamentSize: cfg.GA.TournamentSize,
		NearOptimal:    cfg.GA.NearOptimal,
		Workers:        cfg.GA.Workers,
		Deadline:       cfg.GA.Deadline,

		RefinerMaxPasses: cfg.Refiner.MaxPasses,

		Weights: timetable.Weights{
			MorningPreference: cfg.Weights.MorningPreference,
			WorkloadBalance:   cfg.Weights.WorkloadBalance,
			Continuity:        cfg.Weights.Continuity,
			LabAdjacency:      cfg.Weights.LabAdjacency,
			TeacherPreference: cfg.Weights.TeacherPreference,
			HardViolation:     cfg.Weights.HardViolation,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	result, err := timetable.NewGenerator(settings, data, observers, rng).Run(ctx)
	if err != nil {
		log.Fatal("generation failed", zap.Error(err))
	}

	if result.Infeasible {
		log.Warn("no feasible timetable for this dataset",
			zap.String("run_id", result.RunID),
			zap.Int("skipped_occurrences", result.Skipped),
		)
	}

	if cfg.Output.EntriesPath != "" {
		raw, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatal("failed to encode result", zap.Error(err))
		}
		if err := os.WriteFile(cfg.Output.EntriesPath, raw, 0o644); err != nil {
			log.Fatal("failed to write result", zap.Error(err))
		}
	}

	if cfg.Output.PDFPath != "" && len(result.Entries) > 0 {
		exporter := export.NewPDFExporter(cfg.Grid.WorkingDays, cfg.Grid.PeriodsPerDay)
		pdf, err := exporter.Render(result.Entries, "Weekly Timetable")
		if err != nil {
			log.Error("failed to render pdf", zap.Error(err))
		} else if err := os.WriteFile(cfg.Output.PDFPath, pdf, 0o644); err != nil {
			log.Error("failed to write pdf", zap.Error(err))
		}
	}

	log.Info("generation complete",
		zap.String("run_id", result.RunID),
		zap.Int("entries", len(result.Entries)),
		zap.Float64("score", result.Score),
		zap.Int("generations", result.Generations),
		zap.Int("hard_violations", len(result.HardViolations)),
		zap.Int("skipped_occurrences", result.Skipped),
		zap.Bool("relaxed_fallback", result.RelaxedFallback),
		zap.Int64("seed", seed),
		zap.Duration("elapsed", time.Since(started)),
	)
}
