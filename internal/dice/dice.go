// Package dice provides the dice-notation expression model, parser, and
// seedable roller for the dicestats toolkit.
package dice

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Die is a single die with a fixed number of sides.
//
// Invariant: Sides >= 1 after construction via Parse or NewDie.
type Die struct {
	Sides int `json:"sides"`
}

// NewDie creates a Die with the given side count.
//
// Precondition: sides must be >= 1. Panics otherwise; use Parse for
// untrusted input.
func NewDie(sides int) Die {
	if sides < 1 {
		panic(fmt.Sprintf("dice: NewDie called with sides %d < 1", sides))
	}
	return Die{Sides: sides}
}

// Min returns the lowest face value, always 1.
func (d Die) Min() int { return 1 }

// Max returns the highest face value.
func (d Die) Max() int { return d.Sides }

// Average returns the expected value of a single roll, (1+Sides)/2.
func (d Die) Average() float64 { return float64(1+d.Sides) / 2 }

// String renders the die in dice notation, e.g. "d6".
func (d Die) String() string { return "d" + strconv.Itoa(d.Sides) }

// Group is a set of identical dice rolled together, e.g. "3d6".
//
// Invariant: Count >= 1 after construction via Parse or NewGroup.
type Group struct {
	Count int `json:"count"`
	Die   Die `json:"die"`
}

// NewGroup creates a Group of count identical dice.
//
// Precondition: count must be >= 1. Panics otherwise.
func NewGroup(count int, die Die) Group {
	if count < 1 {
		panic(fmt.Sprintf("dice: NewGroup called with count %d < 1", count))
	}
	return Group{Count: count, Die: die}
}

// Min returns the lowest total the group can roll.
func (g Group) Min() int { return g.Count * g.Die.Min() }

// Max returns the highest total the group can roll.
func (g Group) Max() int { return g.Count * g.Die.Max() }

// Average returns the expected total of the group.
func (g Group) Average() float64 { return float64(g.Count) * g.Die.Average() }

// String renders the group in dice notation, e.g. "3d6".
func (g Group) String() string {
	return strconv.Itoa(g.Count) + g.Die.String()
}

// Expression is a complete dice expression: an ordered sequence of dice
// groups plus a flat modifier. Group order affects only display, never
// the distribution of totals. The zero-group form is legal and behaves
// as the constant Modifier.
//
// Expression values are treated as immutable once built and are shared
// by reference across RollResult, RollSession, and statistics results.
type Expression struct {
	Groups   []Group `json:"groups"`
	Modifier int     `json:"modifier"`
}

// Constant builds a dice-free Expression that always evaluates to
// modifier. A pure constant cannot be produced by Parse.
func Constant(modifier int) Expression {
	return Expression{Modifier: modifier}
}

// Min returns the lowest attainable total: sum of group minimums plus
// the modifier.
func (e Expression) Min() int {
	min := e.Modifier
	for _, g := range e.Groups {
		min += g.Min()
	}
	return min
}

// Max returns the highest attainable total: sum of group maximums plus
// the modifier.
func (e Expression) Max() int {
	max := e.Modifier
	for _, g := range e.Groups {
		max += g.Max()
	}
	return max
}

// Average returns the expected total of the expression.
func (e Expression) Average() float64 {
	avg := float64(e.Modifier)
	for _, g := range e.Groups {
		avg += g.Average()
	}
	return avg
}

// TotalDice returns the number of individual dice across all groups.
func (e Expression) TotalDice() int {
	n := 0
	for _, g := range e.Groups {
		n += g.Count
	}
	return n
}

// String renders the canonical notation for the expression, the single
// source of truth for display: groups joined by " + ", the modifier
// appended as " + M" or " - M". A constant expression renders as the
// bare modifier.
//
// Postcondition: Parse(e.String()) is structurally equal to e for any
// e produced by Parse.
func (e Expression) String() string {
	if len(e.Groups) == 0 {
		return strconv.Itoa(e.Modifier)
	}

	parts := make([]string, len(e.Groups))
	for i, g := range e.Groups {
		parts[i] = g.String()
	}
	s := strings.Join(parts, " + ")

	switch {
	case e.Modifier > 0:
		s += " + " + strconv.Itoa(e.Modifier)
	case e.Modifier < 0:
		s += " - " + strconv.Itoa(-e.Modifier)
	}
	return s
}

// Equal reports whether two expressions are structurally equal: same
// groups in the same order and the same modifier.
func (e Expression) Equal(other Expression) bool {
	if e.Modifier != other.Modifier || len(e.Groups) != len(other.Groups) {
		return false
	}
	for i, g := range e.Groups {
		if g != other.Groups[i] {
			return false
		}
	}
	return true
}

// RollResult holds the full audit trail for a single evaluation of an
// expression: one slice of face values per group, in group order.
//
// Postcondition: Total == sum over GroupRolls + Modifier. Immutable
// after creation.
type RollResult struct {
	Expression Expression `json:"expression"`
	GroupRolls [][]int    `json:"group_rolls"`
	Modifier   int        `json:"modifier"`
	Total      int        `json:"total"`
	Timestamp  time.Time  `json:"timestamp"`
}

// GroupTotals returns the summed face values of each group, in group
// order.
func (r RollResult) GroupTotals() []int {
	totals := make([]int, len(r.GroupRolls))
	for i, rolls := range r.GroupRolls {
		for _, v := range rolls {
			totals[i] += v
		}
	}
	return totals
}

// String returns a human-readable audit string in the format:
//
//	"2d6 + 3 → [[4 5]] +3 = 12"
func (r RollResult) String() string {
	return fmt.Sprintf("%s → %v %+d = %d",
		r.Expression.String(), r.GroupRolls, r.Modifier, r.Total)
}
