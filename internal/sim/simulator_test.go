package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/dicestats/internal/dice"
	"github.com/cory-johannsen/dicestats/internal/sim"
)

func seed(v int64) *int64 { return &v }

func TestSimulator_Outcomes(t *testing.T) {
	s := sim.NewSimulator(seed(42))
	expr := dice.MustParse("2d6")

	outcomes, err := s.Outcomes(expr, 1000)
	require.NoError(t, err)

	total := 0
	for v, count := range outcomes {
		assert.GreaterOrEqual(t, v, 2)
		assert.LessOrEqual(t, v, 12)
		assert.Greater(t, count, 0)
		total += count
	}
	assert.Equal(t, 1000, total, "outcome counts must account for every roll")
}

func TestSimulator_Outcomes_Deterministic(t *testing.T) {
	expr := dice.MustParse("3d6+1")

	a, err := sim.NewSimulator(seed(7)).Outcomes(expr, 500)
	require.NoError(t, err)
	b, err := sim.NewSimulator(seed(7)).Outcomes(expr, 500)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSimulator_Outcomes_Validation(t *testing.T) {
	s := sim.NewSimulator(seed(1))
	_, err := s.Outcomes(dice.MustParse("d6"), 0)

	var validationErr *dice.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestSimulator_EmpiricalProbability(t *testing.T) {
	s := sim.NewSimulator(seed(42))
	expr := dice.MustParse("d6")

	p, err := s.EmpiricalProbability(expr, 3, 6000)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/6.0, p, 0.03, "empirical probability approaches 1/6")
}

func TestSimulator_EmpiricalProbability_ImpossibleTarget(t *testing.T) {
	s := sim.NewSimulator(seed(1))
	p, err := s.EmpiricalProbability(dice.MustParse("d6"), 7, 100)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p, "impossible targets short-circuit to zero")
}

func TestSimulator_Compare(t *testing.T) {
	s := sim.NewSimulator(seed(42))
	big := dice.MustParse("3d6+5")
	small := dice.MustParse("1d4")

	result, err := s.Compare(big, small, 500)
	require.NoError(t, err)

	assert.Equal(t, "3d6 + 5", result.Expression1)
	assert.Equal(t, "1d4", result.Expression2)
	assert.Equal(t, 500, result.Iterations)
	assert.Equal(t, 500, result.Wins1, "3d6+5 always beats 1d4 (min 8 > max 4)")
	assert.Equal(t, 0, result.Wins2)
	assert.Equal(t, 0, result.Ties)
	assert.InDelta(t, 1.0, result.WinRate1+result.WinRate2+result.TieRate, 1e-9)
	assert.Greater(t, result.Average1, result.Average2)
}

func TestSimulator_Compare_Validation(t *testing.T) {
	s := sim.NewSimulator(seed(1))
	_, err := s.Compare(dice.MustParse("d6"), dice.MustParse("d6"), -1)

	var validationErr *dice.ValidationError
	require.ErrorAs(t, err, &validationErr)
}
