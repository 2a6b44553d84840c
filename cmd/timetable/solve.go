package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f2re/planer-solving/internal/config"
	"github.com/f2re/planer-solving/internal/engine"
	"github.com/f2re/planer-solving/internal/ingest"
	"github.com/f2re/planer-solving/internal/logging"
)

type solveOutput struct {
	RunID          string        `json:"run_id"`
	State          string        `json:"state"`
	ObjectiveValue float64       `json:"objective_value"`
	SolveDuration  time.Duration `json:"solve_duration_ns"`
	Warnings       []string      `json:"warnings"`
	Assignments    any           `json:"assignments"`
}

func newSolveCmd(v *viper.Viper) *cobra.Command {
	var inputDir, outPath string

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a timetable from on-disk JSON input and write the schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(v.GetString("log_level"), v.GetString("log_format"))
			if err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := config.Load(v.GetString("config"))
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if tl := v.GetDuration("time_limit"); tl > 0 {
				cfg.SolverTimeLimit = tl
			}

			data, err := ingest.LoadDataSet(inputDir)
			if err != nil {
				return fmt.Errorf("loading input: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.SolverTimeLimit+5*time.Second)
			defer cancel()

			eng := engine.New(logger)
			result, err := eng.Run(ctx, data, cfg)
			if err != nil {
				return fmt.Errorf("solve failed (state=%s): %w", result.State, err)
			}

			out := solveOutput{
				RunID:          result.RunID.String(),
				State:          string(result.State),
				ObjectiveValue: result.ObjectiveValue,
				SolveDuration:  result.SolveDuration,
				Warnings:       result.Warnings,
				Assignments:    result.Assignments,
			}
			return writeJSON(outPath, out)
		},
	}

	cmd.Flags().StringVar(&inputDir, "input", "", "directory containing the input JSON files")
	cmd.Flags().StringVar(&outPath, "out", "", "output path for the schedule JSON (stdout if empty)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if path == "" {
		_, err := os.Stdout.Write(append(b, '\n'))
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
