// Package config loads engine configuration via Viper, so
// the same settings can come from a file, environment variables prefixed
// TIMETABLE_, or CLI flags bound by cmd/timetable.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// PairLengthMinutes is the canonical duration of one scheduling slot.
const PairLengthMinutes = 90

// SoftConstraint is one weighted, independently toggleable objective term.
type SoftConstraint struct {
	Enabled bool    `mapstructure:"enabled"`
	Weight  float64 `mapstructure:"weight"`
}

// Config mirrors the external configuration table: a solver time budget
// plus one SoftConstraint entry per objective term.
type Config struct {
	// SolverTimeLimitSeconds is the wire representation documented in §6:
	// a plain number of seconds, so a file or environment value decodes
	// through Viper's numeric/string handling instead of time.Duration's
	// unit-suffixed parsing (which rejects a bare "30").
	SolverTimeLimitSeconds float64 `mapstructure:"solver_time_limit_seconds"`
	// SolverTimeLimit is SolverTimeLimitSeconds converted to a Duration by
	// Load/Default; callers use this field and never the raw seconds one.
	SolverTimeLimit time.Duration `mapstructure:"-"`

	AvoidLateSlots           SoftConstraint `mapstructure:"avoid_late_slots"`
	MinimizeStudentGaps      SoftConstraint `mapstructure:"minimize_student_gaps"`
	MinimizeTeacherGaps      SoftConstraint `mapstructure:"minimize_teacher_gaps"`
	BalanceWorkload          SoftConstraint `mapstructure:"balance_workload"`
	MinimizeBuildingTransfer SoftConstraint `mapstructure:"minimize_building_transitions"`
	TeacherSeniorityPriority SoftConstraint `mapstructure:"teacher_seniority_priority"`
	GroupConsecutiveLessons  SoftConstraint `mapstructure:"group_consecutive_lessons"`
}

// Default returns the configuration the engine uses when a caller supplies
// none: a generous time budget and every soft term enabled at equal weight.
func Default() Config {
	equal := SoftConstraint{Enabled: true, Weight: 1.0}
	return Config{
		SolverTimeLimitSeconds:   30,
		SolverTimeLimit:          30 * time.Second,
		AvoidLateSlots:           equal,
		MinimizeStudentGaps:      equal,
		MinimizeTeacherGaps:      equal,
		BalanceWorkload:          equal,
		MinimizeBuildingTransfer: equal,
		TeacherSeniorityPriority: equal,
		GroupConsecutiveLessons:  equal,
	}
}

// Load resolves a Config from an optional file path plus environment
// variables (TIMETABLE_SOLVER_TIME_LIMIT_SECONDS, etc.), falling back to
// Default for anything unset.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("timetable")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("solver_time_limit_seconds", def.SolverTimeLimitSeconds)
	v.SetDefault("avoid_late_slots.enabled", def.AvoidLateSlots.Enabled)
	v.SetDefault("avoid_late_slots.weight", def.AvoidLateSlots.Weight)
	v.SetDefault("minimize_student_gaps.enabled", def.MinimizeStudentGaps.Enabled)
	v.SetDefault("minimize_student_gaps.weight", def.MinimizeStudentGaps.Weight)
	v.SetDefault("minimize_teacher_gaps.enabled", def.MinimizeTeacherGaps.Enabled)
	v.SetDefault("minimize_teacher_gaps.weight", def.MinimizeTeacherGaps.Weight)
	v.SetDefault("balance_workload.enabled", def.BalanceWorkload.Enabled)
	v.SetDefault("balance_workload.weight", def.BalanceWorkload.Weight)
	v.SetDefault("minimize_building_transitions.enabled", def.MinimizeBuildingTransfer.Enabled)
	v.SetDefault("minimize_building_transitions.weight", def.MinimizeBuildingTransfer.Weight)
	v.SetDefault("teacher_seniority_priority.enabled", def.TeacherSeniorityPriority.Enabled)
	v.SetDefault("teacher_seniority_priority.weight", def.TeacherSeniorityPriority.Weight)
	v.SetDefault("group_consecutive_lessons.enabled", def.GroupConsecutiveLessons.Enabled)
	v.SetDefault("group_consecutive_lessons.weight", def.GroupConsecutiveLessons.Weight)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.SolverTimeLimit = time.Duration(cfg.SolverTimeLimitSeconds * float64(time.Second))
	return cfg, nil
}
