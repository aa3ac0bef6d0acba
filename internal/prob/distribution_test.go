package prob_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dicestats/internal/dice"
	"github.com/cory-johannsen/dicestats/internal/prob"
)

const tolerance = 1e-9

func TestSingle(t *testing.T) {
	d := prob.Single(6)
	require.Len(t, d, 6)
	for v := 1; v <= 6; v++ {
		assert.InDelta(t, 1.0/6.0, d[v], tolerance)
	}
	assert.InDelta(t, 1.0, d.Sum(), tolerance)
}

func TestConvolve_TwoDice(t *testing.T) {
	d6 := prob.Single(6)
	twod6 := prob.Convolve(d6, d6)

	require.Len(t, twod6, 11, "2d6 attains exactly the totals 2..12")
	assert.InDelta(t, 1.0/36.0, twod6[2], tolerance)
	assert.InDelta(t, 1.0/36.0, twod6[12], tolerance)
	assert.InDelta(t, 6.0/36.0, twod6[7], tolerance, "7 is the peak of 2d6")
	assert.InDelta(t, 1.0, twod6.Sum(), tolerance)
}

func TestDistribution_Shift(t *testing.T) {
	d := prob.Distribution{1: 0.5, 2: 0.5}

	shifted := d.Shift(3)
	assert.InDelta(t, 0.5, shifted[4], tolerance)
	assert.InDelta(t, 0.5, shifted[5], tolerance)
	assert.Len(t, shifted, 2)

	same := d.Shift(0)
	assert.InDelta(t, 0.5, same[1], tolerance)
}

func TestDistribution_Values_Sorted(t *testing.T) {
	d := prob.Distribution{5: 0.2, 1: 0.3, 3: 0.5}
	assert.Equal(t, []int{1, 3, 5}, d.Values())
	assert.Equal(t, 1, d.Min())
	assert.Equal(t, 5, d.Max())
}

func TestEngine_Distribution_2d6(t *testing.T) {
	engine := prob.NewEngine(nil)
	d := engine.Distribution(dice.MustParse("2d6"))

	require.Len(t, d, 11)
	assert.Equal(t, 2, d.Min())
	assert.Equal(t, 12, d.Max())
	assert.InDelta(t, 1.0/36.0, d[2], tolerance)
	assert.InDelta(t, 1.0/36.0, d[12], tolerance)
	assert.InDelta(t, 6.0/36.0, d[7], tolerance)
}

func TestEngine_Distribution_ModifierShiftsKeys(t *testing.T) {
	engine := prob.NewEngine(nil)

	plain := engine.Distribution(dice.MustParse("2d6"))
	shifted := engine.Distribution(dice.MustParse("2d6+3"))

	require.Len(t, shifted, len(plain))
	for v, p := range plain {
		assert.InDelta(t, p, shifted[v+3], tolerance,
			"probability of %d must carry to %d unchanged", v, v+3)
	}
}

func TestEngine_Distribution_ConstantIsDirac(t *testing.T) {
	engine := prob.NewEngine(nil)
	d := engine.Distribution(dice.Constant(7))

	require.Len(t, d, 1)
	assert.InDelta(t, 1.0, d[7], tolerance)
}

func TestEngine_Distribution_SingleSidedDie(t *testing.T) {
	engine := prob.NewEngine(nil)
	d := engine.Distribution(dice.MustParse("3d1"))

	require.Len(t, d, 1)
	assert.InDelta(t, 1.0, d[3], tolerance)
}

// TestEngine_Distribution_Properties verifies the three distribution
// invariants over arbitrary expressions: probabilities sum to 1, and
// the support bounds equal the expression bounds.
func TestEngine_Distribution_Properties(t *testing.T) {
	engine := prob.NewEngine(prob.NewCache())

	rapid.Check(t, func(rt *rapid.T) {
		groupCount := rapid.IntRange(0, 3).Draw(rt, "groups")
		groups := make([]dice.Group, groupCount)
		for i := range groups {
			groups[i] = dice.Group{
				Count: rapid.IntRange(1, 4).Draw(rt, "count"),
				Die:   dice.Die{Sides: rapid.IntRange(1, 12).Draw(rt, "sides")},
			}
		}
		expr := dice.Expression{
			Groups:   groups,
			Modifier: rapid.IntRange(-10, 10).Draw(rt, "modifier"),
		}

		d := engine.Distribution(expr)

		assert.InDelta(rt, 1.0, d.Sum(), tolerance, "probabilities must sum to 1")
		assert.Equal(rt, expr.Min(), d.Min(), "distribution support must start at expression min")
		assert.Equal(rt, expr.Max(), d.Max(), "distribution support must end at expression max")
	})
}

func TestCache_SharedAcrossEngines(t *testing.T) {
	cache := prob.NewCache()
	a := prob.NewEngine(cache)
	b := prob.NewEngine(cache)

	da := a.Distribution(dice.MustParse("2d6"))
	db := b.Distribution(dice.MustParse("2d6"))

	require.Len(t, db, len(da))
	for v, p := range da {
		assert.InDelta(t, p, db[v], tolerance)
	}
}

func TestCache_Single_Memoizes(t *testing.T) {
	cache := prob.NewCache()

	first := cache.Single(20)
	second := cache.Single(20)

	// Same underlying map: insert-if-absent semantics.
	assert.InDelta(t, 1.0/20.0, first[1], tolerance)
	require.Len(t, second, 20)
	for v, p := range first {
		assert.InDelta(t, p, second[v], tolerance)
	}
}
