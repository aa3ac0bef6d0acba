// Package analyze computes empirical statistics over realized roll
// sessions and compares them against the exact theoretical
// distribution of the rolled expression.
package analyze

import (
	"math"
	"sort"

	"github.com/cory-johannsen/dicestats/internal/dice"
	"github.com/cory-johannsen/dicestats/internal/prob"
)

// Summary holds the empirical statistics of a session's realized
// totals. Variance is the population variance (divide by N), and
// percentiles use nearest-rank indexing into the sorted totals,
// unlike the CDF-walk percentiles in the prob package.
type Summary struct {
	TotalRolls      int         `json:"total_rolls"`
	Mean            float64     `json:"mean"`
	Median          float64     `json:"median"`
	Modes           []int       `json:"modes"`
	Variance        float64     `json:"variance"`
	StdDev          float64     `json:"standard_deviation"`
	Min             int         `json:"min"`
	Max             int         `json:"max"`
	Range           int         `json:"range"`
	Percentiles     map[int]int `json:"percentiles"`
	Distribution    map[int]int `json:"distribution"`
	TheoreticalMean float64     `json:"theoretical_mean"`
	MeanDeviation   float64     `json:"mean_deviation"`
}

// Session computes the empirical summary of a session. The second
// return is false for a session with zero rolls, which is a valid
// state, not an error.
func Session(s dice.RollSession) (Summary, bool) {
	totals := s.Totals()
	if len(totals) == 0 {
		return Summary{}, false
	}

	n := len(totals)
	sum := 0
	for _, t := range totals {
		sum += t
	}
	mean := float64(sum) / float64(n)

	sorted := make([]int, n)
	copy(sorted, totals)
	sort.Ints(sorted)

	variance := 0.0
	for _, t := range totals {
		diff := float64(t) - mean
		variance += diff * diff
	}
	variance /= float64(n)

	// Nearest-rank indexing into the sorted totals, unlike the
	// CDF-walk percentiles used for theoretical distributions.
	percentiles := make(map[int]int, len(prob.DefaultPercentiles))
	for _, p := range prob.DefaultPercentiles {
		percentiles[int(math.Round(p*100))] = sorted[int(p*float64(n-1))]
	}

	theoreticalMean := s.Expression.Average()

	return Summary{
		TotalRolls:      n,
		Mean:            mean,
		Median:          median(sorted),
		Modes:           modes(totals),
		Variance:        variance,
		StdDev:          math.Sqrt(variance),
		Min:             sorted[0],
		Max:             sorted[n-1],
		Range:           sorted[n-1] - sorted[0],
		Percentiles:     percentiles,
		Distribution:    frequencies(totals),
		TheoreticalMean: theoreticalMean,
		MeanDeviation:   math.Abs(mean - theoreticalMean),
	}, true
}

// median returns the middle value of the pre-sorted totals, averaging
// the two middle values for even counts.
func median(sorted []int) float64 {
	n := len(sorted)
	if n%2 == 0 {
		return float64(sorted[n/2-1]+sorted[n/2]) / 2
	}
	return float64(sorted[n/2])
}

// modes returns every value sharing the maximum observed frequency,
// sorted ascending.
func modes(totals []int) []int {
	counts := frequencies(totals)
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	var out []int
	for v, c := range counts {
		if c == maxCount {
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

func frequencies(totals []int) map[int]int {
	counts := make(map[int]int)
	for _, t := range totals {
		counts[t]++
	}
	return counts
}

// Comparison reports how a session's realized totals stack up against
// the exact theoretical distribution of its expression.
type Comparison struct {
	Theoretical prob.Distribution `json:"theoretical_distribution"`
	Actual      map[int]float64   `json:"actual_distribution"`
	ChiSquare   float64           `json:"chi_square"`
	TotalRolls  int               `json:"total_rolls"`

	TheoreticalMean float64 `json:"theoretical_mean"`
	ActualMean      float64 `json:"actual_mean"`
	MeanDifference  float64 `json:"mean_difference"`

	// ValuesWithZeroTheoreticalProbability lists realized totals the
	// expression cannot produce. Rolls made through the Roller never
	// land here; a non-empty list signals manually constructed or
	// corrupted roll data.
	ValuesWithZeroTheoreticalProbability []int `json:"values_with_zero_theoretical_probability"`
}

// CompareToTheoretical compares a session against the exact
// distribution computed by engine. The chi-square statistic is
// Σ (observed − expected)² / expected over the theoretical support,
// skipping values whose expected count is zero. The second return is
// false for a session with zero rolls.
func CompareToTheoretical(engine *prob.Engine, s dice.RollSession) (Comparison, bool) {
	totals := s.Totals()
	if len(totals) == 0 {
		return Comparison{}, false
	}

	theoretical := engine.Distribution(s.Expression)
	counts := frequencies(totals)
	n := len(totals)

	actual := make(map[int]float64, len(counts))
	for v, c := range counts {
		actual[v] = float64(c) / float64(n)
	}

	chiSquare := 0.0
	for v, p := range theoretical {
		expected := p * float64(n)
		if expected <= 0 {
			continue
		}
		observed := float64(counts[v])
		diff := observed - expected
		chiSquare += diff * diff / expected
	}

	var impossible []int
	for v := range counts {
		if _, ok := theoretical[v]; !ok {
			impossible = append(impossible, v)
		}
	}
	sort.Ints(impossible)

	actualMean := s.AverageTotal()
	theoreticalMean := s.Expression.Average()

	return Comparison{
		Theoretical:                          theoretical,
		Actual:                               actual,
		ChiSquare:                            chiSquare,
		TotalRolls:                           n,
		TheoreticalMean:                      theoreticalMean,
		ActualMean:                           actualMean,
		MeanDifference:                       math.Abs(actualMean - theoreticalMean),
		ValuesWithZeroTheoreticalProbability: impossible,
	}, true
}
