package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/dicestats/internal/dice"
)

func sessionWithTotals(t *testing.T, totals ...int) dice.RollSession {
	t.Helper()
	expr := dice.MustParse("d6")
	s := dice.NewSession(expr, nil)
	for _, total := range totals {
		s.Append(dice.RollResult{
			Expression: expr,
			GroupRolls: [][]int{{total}},
			Total:      total,
		})
	}
	return s
}

func TestRollSession_Derived(t *testing.T) {
	s := sessionWithTotals(t, 1, 3, 6, 3, 5)

	assert.Equal(t, 5, s.Count())
	assert.Equal(t, []int{1, 3, 6, 3, 5}, s.Totals())
	assert.Equal(t, 3.6, s.AverageTotal())
	assert.Equal(t, 1, s.MinTotal())
	assert.Equal(t, 6, s.MaxTotal())
	assert.NotEqual(t, s.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestRollSession_EmptyDefaults(t *testing.T) {
	s := dice.NewSession(dice.MustParse("d6"), nil)

	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Totals())
	assert.Equal(t, 0.0, s.AverageTotal())
	assert.Equal(t, 0, s.MinTotal())
	assert.Equal(t, 0, s.MaxTotal())
}

func TestRollHistory_AddAndRecent(t *testing.T) {
	var h dice.RollHistory
	for i := 0; i < 5; i++ {
		h.Add(sessionWithTotals(t, i+1))
	}

	assert.Equal(t, 5, h.Len())

	recent := h.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, []int{4}, recent[0].Totals())
	assert.Equal(t, []int{5}, recent[1].Totals())

	assert.Len(t, h.Recent(100), 5, "asking for more than stored returns all")
	assert.Nil(t, h.Recent(0))
}

func TestRollHistory_Truncate_KeepsMostRecent(t *testing.T) {
	var h dice.RollHistory
	for i := 1; i <= 10; i++ {
		h.Add(sessionWithTotals(t, i))
	}

	h.Truncate(3)

	require.Equal(t, 3, h.Len())
	assert.Equal(t, []int{8}, h.Sessions[0].Totals())
	assert.Equal(t, []int{10}, h.Sessions[2].Totals())
}

func TestRollHistory_Truncate_NoopBelowLimit(t *testing.T) {
	var h dice.RollHistory
	h.Add(sessionWithTotals(t, 1))
	h.Truncate(5)
	assert.Equal(t, 1, h.Len())
}

func TestRollHistory_Clear(t *testing.T) {
	var h dice.RollHistory
	h.Add(sessionWithTotals(t, 1))
	h.Clear()
	assert.Equal(t, 0, h.Len())
}
