// Package engine orchestrates the five pipeline stages — Linearizer,
// Resolver, Builder, Compiler, Extractor — around a single backend solve,
// owning the run's lifecycle state machine and its observability fields.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/f2re/planer-solving/internal/backend"
	"github.com/f2re/planer-solving/internal/calendar"
	"github.com/f2re/planer-solving/internal/compile"
	"github.com/f2re/planer-solving/internal/config"
	"github.com/f2re/planer-solving/internal/cpmodel"
	"github.com/f2re/planer-solving/internal/engineerr"
	"github.com/f2re/planer-solving/internal/extract"
	"github.com/f2re/planer-solving/internal/metrics"
	"github.com/f2re/planer-solving/internal/model"
	"github.com/f2re/planer-solving/internal/resolve"
	"github.com/f2re/planer-solving/internal/validate"
)

// State is one step of the run lifecycle: Idle -> Preprocessed -> Built ->
// Solving -> {Solved, Infeasible, TimedOut, Error}.
type State string

const (
	StateIdle         State = "idle"
	StatePreprocessed State = "preprocessed"
	StateBuilt        State = "built"
	StateSolving      State = "solving"
	StateSolved       State = "solved"
	StateInfeasible   State = "infeasible"
	StateTimedOut     State = "timed_out"
	StateError        State = "error"
)

// Result is everything one engine run produces.
type Result struct {
	RunID          uuid.UUID
	State          State
	Assignments    []model.ScheduleAssignment
	ObjectiveValue float64
	SolveDuration  time.Duration
	Warnings       []string
}

// Engine is stateless between runs; all per-run state lives in Result and
// the call stack of Run.
type Engine struct {
	logger *zap.Logger
}

// New returns an Engine that logs through logger.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Run drives one full pipeline pass: validate, linearize, resolve, build,
// compile, solve, extract. ctx's deadline overrides
// cfg.SolverTimeLimit when it would expire sooner; cancelling ctx stops
// the solve cooperatively at its next check point.
func (e *Engine) Run(ctx context.Context, data model.DataSet, cfg config.Config) (Result, error) {
	runID := uuid.New()
	log := e.logger.With(zap.String("run_id", runID.String()))
	start := time.Now()

	result := Result{RunID: runID, State: StateIdle}

	warnings, err := validate.Validate(data)
	if err != nil {
		result.State = StateError
		e.record(log, result, start, err)
		return result, err
	}
	result.Warnings = append(result.Warnings, warnings...)

	linear, err := calendar.Linearize(data.Calendar, data.TimeSlots)
	if err != nil {
		result.State = StateError
		e.record(log, result, start, err)
		return result, err
	}
	result.State = StatePreprocessed
	log.Info("calendar linearized", zap.Int("global_slot_count", len(linear.Slots)))

	resolved := resolve.Resolve(data, cfg)
	result.Warnings = append(result.Warnings, resolved.Warnings...)
	log.Info("lesson domains resolved", zap.Int("lesson_count", len(resolved.Domains)), zap.Int("warnings", len(resolved.Warnings)))

	b := backend.New()
	b.SetTimeLimit(cfg.SolverTimeLimit)

	m, err := cpmodel.Build(b, linear, resolved.Domains)
	if err != nil {
		result.State = StateError
		wrapped := engineerr.Wrap(engineerr.ErrSolverError, err.Error())
		e.record(log, result, start, wrapped)
		return result, wrapped
	}
	result.State = StateBuilt

	compile.Compile(b, linear, m, data, cfg)
	result.State = StateSolving
	log.Info("solving", zap.Duration("time_limit", cfg.SolverTimeLimit))

	sol := b.Solve(ctx)
	result.SolveDuration = time.Since(start)

	switch sol.Status {
	case backend.StatusOptimal, backend.StatusFeasible:
		result.State = StateSolved
		result.ObjectiveValue = sol.ObjectiveValue
		result.Assignments = extract.Extract(sol, linear, m, data)
		e.record(log, result, start, nil)
		return result, nil
	case backend.StatusInfeasible:
		result.State = StateInfeasible
		wrapped := engineerr.Wrap(engineerr.ErrNoFeasibleSchedule, "engine run")
		e.record(log, result, start, wrapped)
		return result, wrapped
	case backend.StatusTimeout:
		result.State = StateTimedOut
		wrapped := engineerr.Wrap(engineerr.ErrSolverTimeout, "engine run")
		e.record(log, result, start, wrapped)
		return result, wrapped
	default:
		result.State = StateError
		wrapped := engineerr.Wrap(engineerr.ErrSolverError, "solver returned unknown status")
		e.record(log, result, start, wrapped)
		return result, wrapped
	}
}

func (e *Engine) record(log *zap.Logger, result Result, start time.Time, err error) {
	duration := time.Since(start)
	metrics.RecordSolve(string(result.State), duration, result.ObjectiveValue, err == nil)
	if err != nil {
		log.Error("engine run failed", zap.String("state", string(result.State)), zap.Error(err))
		return
	}
	log.Info("engine run finished",
		zap.String("state", string(result.State)),
		zap.Int("assignment_count", len(result.Assignments)),
		zap.Float64("objective_value", result.ObjectiveValue),
		zap.Duration("solve_duration", duration))
}
