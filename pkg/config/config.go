package config

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	ModeSchool  = "school"
	ModeCollege = "college"
)

type Config struct {
	Env string

	Log     LogConfig
	Grid    GridConfig
	GA      GAConfig
	Weights WeightsConfig
	Refiner RefinerConfig
	Metrics MetricsConfig
	Output  OutputConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// GridConfig describes the weekly slot grid shared by every generation run.
type GridConfig struct {
	Mode          string
	WorkingDays   []string
	PeriodsPerDay int
	BreakPeriods  []int
	LoadCapFactor float64
}

// GAConfig carries the genetic optimizer tuning knobs.
type GAConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	CrossoverRate  float64
	EliteFraction  float64
	TournamentSize int
	NearOptimal    float64
	Workers        int
	Deadline       time.Duration
	Seed           int64
}

// WeightsConfig exposes the soft-constraint weights so institutions can
// retune scoring priorities without a rebuild.
type WeightsConfig struct {
	MorningPreference float64
	WorkloadBalance   float64
	Continuity        float64
	LabAdjacency      float64
	TeacherPreference float64
	HardViolation     float64
}

// RefinerConfig bounds the post-optimization hill-climbing pass.
type RefinerConfig struct {
	MaxPasses int
}

// MetricsConfig gates the optional Prometheus listener.
type MetricsConfig struct {
	Enabled bool
	Addr    string
}

// OutputConfig points the CLI at its result sinks.
type OutputConfig struct {
	EntriesPath string
	PDFPath     string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Grid = GridConfig{
		Mode:          v.GetString("TIMETABLE_MODE"),
		WorkingDays:   splitAndTrim(v.GetString("TIMETABLE_WORKING_DAYS")),
		PeriodsPerDay: v.GetInt("TIMETABLE_PERIODS_PER_DAY"),
		BreakPeriods:  splitInts(v.GetString("TIMETABLE_BREAK_PERIODS")),
		LoadCapFactor: v.GetFloat64("TIMETABLE_LOAD_CAP_FACTOR"),
	}

	cfg.GA = GAConfig{
		PopulationSize: v.GetInt("GA_POPULATION_SIZE"),
		Generations:    v.GetInt("GA_GENERATIONS"),
		MutationRate:   v.GetFloat64("GA_MUTATION_RATE"),
		CrossoverRate:  v.GetFloat64("GA_CROSSOVER_RATE"),
		EliteFraction:  v.GetFloat64("GA_ELITE_FRACTION"),
		TournamentSize: v.GetInt("GA_TOURNAMENT_SIZE"),
		NearOptimal:    v.GetFloat64("GA_NEAR_OPTIMAL"),
		Workers:        v.GetInt("GA_WORKERS"),
		Deadline:       parseDuration(v.GetString("GA_DEADLINE"), 0),
		Seed:           v.GetInt64("GA_SEED"),
	}

	cfg.Weights = WeightsConfig{
		MorningPreference: v.GetFloat64("WEIGHT_MORNING_PREFERENCE"),
		WorkloadBalance:   v.GetFloat64("WEIGHT_WORKLOAD_BALANCE"),
		Continuity:        v.GetFloat64("WEIGHT_CONTINUITY"),
		LabAdjacency:      v.GetFloat64("WEIGHT_LAB_ADJACENCY"),
		TeacherPreference: v.GetFloat64("WEIGHT_TEACHER_PREFERENCE"),
		HardViolation:     v.GetFloat64("WEIGHT_HARD_VIOLATION"),
	}

	cfg.Refiner = RefinerConfig{
		MaxPasses: v.GetInt("REFINER_MAX_PASSES"),
	}

	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("ENABLE_METRICS"),
		Addr:    v.GetString("METRICS_ADDR"),
	}

	cfg.Output = OutputConfig{
		EntriesPath: v.GetString("OUTPUT_ENTRIES_PATH"),
		PDFPath:     v.GetString("OUTPUT_PDF_PATH"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("TIMETABLE_MODE", ModeSchool)
	v.SetDefault("TIMETABLE_WORKING_DAYS", "Monday,Tuesday,Wednesday,Thursday,Friday")
	v.SetDefault("TIMETABLE_PERIODS_PER_DAY", 8)
	v.SetDefault("TIMETABLE_BREAK_PERIODS", "5")
	v.SetDefault("TIMETABLE_LOAD_CAP_FACTOR", 0.8)

	v.SetDefault("GA_POPULATION_SIZE", 100)
	v.SetDefault("GA_GENERATIONS", 50)
	v.SetDefault("GA_MUTATION_RATE", 0.05)
	v.SetDefault("GA_CROSSOVER_RATE", 0.8)
	v.SetDefault("GA_ELITE_FRACTION", 0.1)
	v.SetDefault("GA_TOURNAMENT_SIZE", 3)
	v.SetDefault("GA_NEAR_OPTIMAL", 0.95)
	v.SetDefault("GA_WORKERS", 0)
	v.SetDefault("GA_DEADLINE", "")
	v.SetDefault("GA_SEED", 0)

	v.SetDefault("WEIGHT_MORNING_PREFERENCE", 10.0)
	v.SetDefault("WEIGHT_WORKLOAD_BALANCE", 5.0)
	v.SetDefault("WEIGHT_CONTINUITY", 8.0)
	v.SetDefault("WEIGHT_LAB_ADJACENCY", 15.0)
	v.SetDefault("WEIGHT_TEACHER_PREFERENCE", 3.0)
	v.SetDefault("WEIGHT_HARD_VIOLATION", 1000.0)

	v.SetDefault("REFINER_MAX_PASSES", 10)

	v.SetDefault("ENABLE_METRICS", false)
	v.SetDefault("METRICS_ADDR", ":9190")

	v.SetDefault("OUTPUT_ENTRIES_PATH", "./timetable.json")
	v.SetDefault("OUTPUT_PDF_PATH", "")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

func splitInts(raw string) []int {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]int, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		value, err := strconv.Atoi(trimmed)
		if err != nil {
			continue
		}
		result = append(result, value)
	}

	return result
}
