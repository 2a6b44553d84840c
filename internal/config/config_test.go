package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f2re/planer-solving/internal/config"
)

func TestDefault_EnablesEverySoftConstraintAtEqualWeight(t *testing.T) {
	cfg := config.Default()
	assert.True(t, cfg.AvoidLateSlots.Enabled)
	assert.True(t, cfg.MinimizeStudentGaps.Enabled)
	assert.True(t, cfg.TeacherSeniorityPriority.Enabled)
	assert.Equal(t, cfg.AvoidLateSlots.Weight, cfg.BalanceWorkload.Weight)
}

func TestLoad_WithNoFileFallsBackToDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default().SolverTimeLimit, cfg.SolverTimeLimit)
}

func TestLoad_SolverTimeLimitSecondsFromFileDecodesAsSeconds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solver_time_limit_seconds: 45\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.SolverTimeLimit)
}

func TestLoad_SolverTimeLimitSecondsFromEnvDecodesAsSeconds(t *testing.T) {
	t.Setenv("TIMETABLE_SOLVER_TIME_LIMIT_SECONDS", "30")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.SolverTimeLimit)
}
