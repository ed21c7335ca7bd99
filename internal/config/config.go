// Package config loads runtime configuration for taskrank from viper.
// Values come from .taskrank.yaml, TASKRANK_* env vars, and CLI flags.
package config

import (
	"github.com/spf13/viper"

	"github.com/taskrank/taskrank/internal/engine"
)

// ScoringConfig exposes the engine tunables. Every field mirrors a field of
// engine.Options; defaults match engine.DefaultOptions.
type ScoringConfig struct {
	UrgencyWeight     float64 `mapstructure:"urgency_weight"`
	ImportanceWeight  float64 `mapstructure:"importance_weight"`
	NeutralUrgency    float64 `mapstructure:"neutral_urgency"`
	DueTodayBoost     float64 `mapstructure:"due_today_boost"`
	UrgencyFloor      float64 `mapstructure:"urgency_floor"`
	HorizonDays       int     `mapstructure:"horizon_days"`
	OverdueBase       float64 `mapstructure:"overdue_base"`
	OverduePerDay     float64 `mapstructure:"overdue_per_day"`
	OverdueCap        float64 `mapstructure:"overdue_cap"`
	MinEffortHours    float64 `mapstructure:"min_effort_hours"`
	EffortScale       float64 `mapstructure:"effort_scale"`
	EffortCeiling     float64 `mapstructure:"effort_ceiling"`
	BoostPerDependent float64 `mapstructure:"boost_per_dependent"`
	KatzBaseline      float64 `mapstructure:"katz_baseline"`
	KatzDecay         float64 `mapstructure:"katz_decay"`
	KatzIterations    int     `mapstructure:"katz_iterations"`
	ScoreAnchor       float64 `mapstructure:"score_anchor"`
	WeekdaysOnly      bool    `mapstructure:"weekdays_only"`
}

// Config holds all runtime configuration for a taskrank invocation.
type Config struct {
	DBPath        string        `mapstructure:"db_path"`
	TasksFile     string        `mapstructure:"tasks_file"`
	ListenAddr    string        `mapstructure:"listen_addr"`
	SuggestLimit  int           `mapstructure:"suggest_limit"`
	TelemetryPath string        `mapstructure:"telemetry_path"`
	Verbose       bool          `mapstructure:"verbose"`
	Scoring       ScoringConfig `mapstructure:"scoring"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	def := engine.DefaultOptions()

	viper.SetDefault("db_path", ".taskrank.db")
	viper.SetDefault("tasks_file", "tasks.toml")
	viper.SetDefault("listen_addr", ":8440")
	viper.SetDefault("suggest_limit", 3)
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("verbose", false)

	viper.SetDefault("scoring.urgency_weight", def.UrgencyWeight)
	viper.SetDefault("scoring.importance_weight", def.ImportanceWeight)
	viper.SetDefault("scoring.neutral_urgency", def.NeutralUrgency)
	viper.SetDefault("scoring.due_today_boost", def.DueTodayBoost)
	viper.SetDefault("scoring.urgency_floor", def.UrgencyFloor)
	viper.SetDefault("scoring.horizon_days", def.HorizonDays)
	viper.SetDefault("scoring.overdue_base", def.OverdueBase)
	viper.SetDefault("scoring.overdue_per_day", def.OverduePerDay)
	viper.SetDefault("scoring.overdue_cap", def.OverdueCap)
	viper.SetDefault("scoring.min_effort_hours", def.MinEffortHours)
	viper.SetDefault("scoring.effort_scale", def.EffortScale)
	viper.SetDefault("scoring.effort_ceiling", def.EffortCeiling)
	viper.SetDefault("scoring.boost_per_dependent", def.BoostPerDependent)
	viper.SetDefault("scoring.katz_baseline", def.KatzBaseline)
	viper.SetDefault("scoring.katz_decay", def.KatzDecay)
	viper.SetDefault("scoring.katz_iterations", def.KatzIterations)
	viper.SetDefault("scoring.score_anchor", def.ScoreAnchor)
	viper.SetDefault("scoring.weekdays_only", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}

// EngineOptions converts the scoring section into engine.Options. The
// weekday predicate is the only non-scalar: weekdays_only=true installs the
// built-in Monday-Friday calendar, otherwise every day counts.
func (c Config) EngineOptions() engine.Options {
	s := c.Scoring
	opts := engine.Options{
		UrgencyWeight:     s.UrgencyWeight,
		ImportanceWeight:  s.ImportanceWeight,
		NeutralUrgency:    s.NeutralUrgency,
		DueTodayBoost:     s.DueTodayBoost,
		UrgencyFloor:      s.UrgencyFloor,
		HorizonDays:       s.HorizonDays,
		OverdueBase:       s.OverdueBase,
		OverduePerDay:     s.OverduePerDay,
		OverdueCap:        s.OverdueCap,
		MinEffortHours:    s.MinEffortHours,
		EffortScale:       s.EffortScale,
		EffortCeiling:     s.EffortCeiling,
		BoostPerDependent: s.BoostPerDependent,
		KatzBaseline:      s.KatzBaseline,
		KatzDecay:         s.KatzDecay,
		KatzIterations:    s.KatzIterations,
		ScoreAnchor:       s.ScoreAnchor,
	}
	if s.WeekdaysOnly {
		opts.Workday = engine.Weekdays
	}
	return opts
}
