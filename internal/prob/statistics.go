package prob

import (
	"math"
	"sort"

	"github.com/cory-johannsen/dicestats/internal/dice"
)

// DefaultPercentiles is the percentile set reported by Extended
// statistics and session analysis.
var DefaultPercentiles = []float64{0.05, 0.25, 0.5, 0.75, 0.95}

// StatisticsResult bundles an expression's theoretical bounds with its
// exact distribution.
type StatisticsResult struct {
	Expression   dice.Expression `json:"expression"`
	Min          int             `json:"min"`
	Max          int             `json:"max"`
	Average      float64         `json:"average"`
	Distribution Distribution    `json:"distribution"`
}

// MostLikely returns the value with the highest probability. Ties are
// broken deterministically: the smallest value wins.
func (r StatisticsResult) MostLikely() int {
	return Mode(r.Distribution)
}

// Median returns the first value, walking totals in ascending order,
// whose cumulative probability reaches 0.5.
func (r StatisticsResult) Median() int {
	m, _ := Percentile(r.Distribution, 0.5)
	return m
}

// Statistics computes the theoretical statistics for expr.
func (e *Engine) Statistics(expr dice.Expression) StatisticsResult {
	return StatisticsResult{
		Expression:   expr,
		Min:          expr.Min(),
		Max:          expr.Max(),
		Average:      expr.Average(),
		Distribution: e.Distribution(expr),
	}
}

// Extended holds the full set of derived statistical descriptors for
// an expression's theoretical distribution. Kurtosis uses the excess
// convention (normal distribution = 0).
type Extended struct {
	Mean                   float64     `json:"mean"`
	Median                 int         `json:"median"`
	Mode                   int         `json:"mode"`
	Variance               float64     `json:"variance"`
	StdDev                 float64     `json:"standard_deviation"`
	Skewness               float64     `json:"skewness"`
	Kurtosis               float64     `json:"kurtosis"`
	Percentiles            map[int]int `json:"percentiles"`
	Min                    int         `json:"min"`
	Max                    int         `json:"max"`
	Range                  int         `json:"range"`
	CoefficientOfVariation float64     `json:"coefficient_of_variation"`
}

// ExtendedStatistics computes moments, percentiles, and mode for expr.
// The mean is the expression's closed-form average, not a sum over the
// distribution; the higher moments are derived from the distribution.
func (e *Engine) ExtendedStatistics(expr dice.Expression) Extended {
	dist := e.Distribution(expr)
	mean := expr.Average()
	variance := Variance(dist, mean)
	stdDev := math.Sqrt(variance)

	median, ok := Percentile(dist, 0.5)
	if !ok {
		median = int(mean)
	}

	cv := 0.0
	if mean != 0 {
		cv = stdDev / mean
	}

	return Extended{
		Mean:                   mean,
		Median:                 median,
		Mode:                   Mode(dist),
		Variance:               variance,
		StdDev:                 stdDev,
		Skewness:               Skewness(dist, mean, stdDev),
		Kurtosis:               Kurtosis(dist, mean, stdDev),
		Percentiles:            Percentiles(dist, DefaultPercentiles),
		Min:                    expr.Min(),
		Max:                    expr.Max(),
		Range:                  expr.Max() - expr.Min(),
		CoefficientOfVariation: cv,
	}
}

// Variance returns Σ p(v)·(v-mean)².
func Variance(d Distribution, mean float64) float64 {
	variance := 0.0
	for v, p := range d {
		diff := float64(v) - mean
		variance += p * diff * diff
	}
	return variance
}

// Skewness returns the third standardized moment Σ p(v)·((v-mean)/σ)³,
// or 0 when σ is 0 (a degenerate single-point distribution).
func Skewness(d Distribution, mean, stdDev float64) float64 {
	if stdDev == 0 {
		return 0
	}
	skew := 0.0
	for v, p := range d {
		z := (float64(v) - mean) / stdDev
		skew += p * z * z * z
	}
	return skew
}

// Kurtosis returns the excess kurtosis Σ p(v)·((v-mean)/σ)⁴ − 3, or 0
// when σ is 0.
func Kurtosis(d Distribution, mean, stdDev float64) float64 {
	if stdDev == 0 {
		return 0
	}
	kurt := 0.0
	for v, p := range d {
		z := (float64(v) - mean) / stdDev
		kurt += p * z * z * z * z
	}
	return kurt - 3.0
}

// Percentile returns the first value, walking totals ascending, whose
// cumulative probability reaches p. The second return is false for an
// empty distribution or p outside [0, 1].
func Percentile(d Distribution, p float64) (int, bool) {
	if len(d) == 0 || p < 0 || p > 1 {
		return 0, false
	}
	cumulative := 0.0
	values := d.Values()
	for _, v := range values {
		cumulative += d[v]
		if cumulative >= p {
			return v, true
		}
	}
	// Floating-point underrun can leave the last cumulative slightly
	// below 1; the maximum value is the correct answer then.
	return values[len(values)-1], true
}

// Percentiles computes Percentile for each requested p, skipping
// values outside [0, 1]. Keys are whole percents (0.25 -> 25) so the
// result is JSON-encodable. An empty distribution yields an empty map.
func Percentiles(d Distribution, ps []float64) map[int]int {
	out := make(map[int]int, len(ps))
	for _, p := range ps {
		if v, ok := Percentile(d, p); ok {
			out[int(math.Round(p*100))] = v
		}
	}
	return out
}

// Mode returns the value with the strictly highest probability,
// breaking ties toward the smallest value so the result is
// deterministic across runs.
func Mode(d Distribution) int {
	values := make([]int, 0, len(d))
	for v := range d {
		values = append(values, v)
	}
	sort.Ints(values)

	best := 0
	bestProb := -1.0
	for _, v := range values {
		if d[v] > bestProb {
			best = v
			bestProb = d[v]
		}
	}
	return best
}
