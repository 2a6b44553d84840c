package backend_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f2re/planer-solving/internal/backend"
)

func TestSolve_TrivialSingleVariable(t *testing.T) {
	b := backend.New()
	b.SetTimeLimit(time.Second)
	v := b.NewIntVar(0, 5, "v")
	b.AddObjectiveTerm(backend.VarTerm(v, 1))

	sol := b.Solve(context.Background())
	require.Equal(t, backend.StatusFeasible, sol.Status)
	assert.Equal(t, 5, sol.Value(v))
}

func TestSolve_NoOverlapSeparatesIntervals(t *testing.T) {
	b := backend.New()
	b.SetTimeLimit(2 * time.Second)

	s1 := b.NewIntVar(0, 3, "s1")
	s2 := b.NewIntVar(0, 3, "s2")
	i1 := b.NewInterval(s1, 2, "i1")
	i2 := b.NewInterval(s2, 2, "i2")
	b.AddNoOverlap([]backend.IntervalID{i1, i2})

	sol := b.Solve(context.Background())
	require.Contains(t, []backend.Status{backend.StatusOptimal, backend.StatusFeasible}, sol.Status)

	start1, start2 := sol.Value(s1), sol.Value(s2)
	overlap := start1 < start2+2 && start2 < start1+2
	assert.False(t, overlap, "intervals must not overlap: start1=%d start2=%d", start1, start2)
}

func TestSolve_ExactlyOneInfeasibleWhenNoCandidate(t *testing.T) {
	b := backend.New()
	b.SetTimeLimit(200 * time.Millisecond)

	v := b.NewIntVarFromDomain([]int{1, 2, 3}, "v")
	bEq0 := b.ReifiedEquals(v, 0) // never true: 0 is outside v's domain
	b.AddExactlyOne([]backend.BoolID{bEq0})

	sol := b.Solve(context.Background())
	assert.Equal(t, backend.StatusInfeasible, sol.Status)
}

func TestSolve_RespectsContextCancellation(t *testing.T) {
	b := backend.New()
	b.SetTimeLimit(time.Minute)

	v := b.NewIntVarFromDomain([]int{1, 2, 3}, "v")
	bEq0 := b.ReifiedEquals(v, 0)
	b.AddExactlyOne([]backend.BoolID{bEq0})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	sol := b.Solve(ctx)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Contains(t, []backend.Status{backend.StatusTimeout, backend.StatusInfeasible}, sol.Status)
}
