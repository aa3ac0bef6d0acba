// Package prob computes exact probability distributions for dice
// expressions by discrete convolution and derives statistical
// descriptors from them.
package prob

import (
	"sort"
	"sync"

	"github.com/cory-johannsen/dicestats/internal/dice"
)

// Distribution maps each attainable total to its probability.
//
// Invariant: probabilities of a distribution produced by Engine sum to
// 1.0 within floating-point tolerance. Distributions handed out by
// Engine or Cache may be shared and must not be mutated by callers.
type Distribution map[int]float64

// Single returns the uniform distribution of one die: {1..sides: 1/sides}.
//
// Precondition: sides >= 1.
func Single(sides int) Distribution {
	d := make(Distribution, sides)
	p := 1.0 / float64(sides)
	for v := 1; v <= sides; v++ {
		d[v] = p
	}
	return d
}

// Convolve combines the distributions of two independent sums: every
// (v1, p1) in a and (v2, p2) in b accumulates p1*p2 onto v1+v2. This
// is exactly the distribution of rolling both and adding the results.
func Convolve(a, b Distribution) Distribution {
	out := make(Distribution, len(a)+len(b)-1)
	for v1, p1 := range a {
		for v2, p2 := range b {
			out[v1+v2] += p1 * p2
		}
	}
	return out
}

// Shift translates every value by offset, leaving probabilities
// unchanged. A zero offset returns the receiver itself.
func (d Distribution) Shift(offset int) Distribution {
	if offset == 0 {
		return d
	}
	out := make(Distribution, len(d))
	for v, p := range d {
		out[v+offset] = p
	}
	return out
}

// Values returns the attainable totals in ascending order.
func (d Distribution) Values() []int {
	values := make([]int, 0, len(d))
	for v := range d {
		values = append(values, v)
	}
	sort.Ints(values)
	return values
}

// Min returns the smallest attainable total. Undefined for an empty
// distribution (returns 0).
func (d Distribution) Min() int {
	first := true
	min := 0
	for v := range d {
		if first || v < min {
			min = v
			first = false
		}
	}
	return min
}

// Max returns the largest attainable total. Undefined for an empty
// distribution (returns 0).
func (d Distribution) Max() int {
	first := true
	max := 0
	for v := range d {
		if first || v > max {
			max = v
			first = false
		}
	}
	return max
}

// Sum returns the total probability mass, 1.0 within tolerance for
// any distribution produced by Engine.
func (d Distribution) Sum() float64 {
	sum := 0.0
	for _, p := range d {
		sum += p
	}
	return sum
}

// Cache memoizes single-die distributions by side count. Entries are
// insert-if-absent under a mutex, so a Cache may be shared across
// engines and goroutines; no operation depends on mutation ordering.
type Cache struct {
	mu     sync.Mutex
	single map[int]Distribution
}

// NewCache creates an empty distribution cache.
func NewCache() *Cache {
	return &Cache{single: make(map[int]Distribution)}
}

// Single returns the memoized single-die distribution for the given
// side count, computing and storing it on first use.
func (c *Cache) Single(sides int) Distribution {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d, ok := c.single[sides]; ok {
		return d
	}
	d := Single(sides)
	c.single[sides] = d
	return d
}

// Engine computes exact distributions for dice expressions. The
// zero-cost construction path NewEngine(nil) gives the engine a
// private cache; passing a shared Cache reuses single-die
// distributions across engines.
type Engine struct {
	cache *Cache
}

// NewEngine creates an Engine backed by cache, or by a fresh private
// cache when cache is nil.
func NewEngine(cache *Cache) *Engine {
	if cache == nil {
		cache = NewCache()
	}
	return &Engine{cache: cache}
}

// GroupDistribution returns the exact distribution of a group of
// identical dice: the count-fold convolution of the single-die
// distribution with itself.
func (e *Engine) GroupDistribution(g dice.Group) Distribution {
	single := e.cache.Single(g.Die.Sides)
	result := single
	for i := 1; i < g.Count; i++ {
		result = Convolve(result, single)
	}
	return result
}

// Distribution returns the exact distribution of totals for expr: the
// convolution of all group distributions, shifted by the modifier. An
// expression with no dice groups collapses to the Dirac distribution
// {modifier: 1.0}.
//
// Postcondition: Min() and Max() of the result equal expr.Min() and
// expr.Max(), and the probabilities sum to 1.0 within tolerance.
func (e *Engine) Distribution(expr dice.Expression) Distribution {
	if len(expr.Groups) == 0 {
		return Distribution{expr.Modifier: 1.0}
	}

	result := e.GroupDistribution(expr.Groups[0])
	for _, g := range expr.Groups[1:] {
		result = Convolve(result, e.GroupDistribution(g))
	}
	return result.Shift(expr.Modifier)
}
