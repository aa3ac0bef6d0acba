// Package sim provides Monte Carlo utilities for dice expressions:
// outcome counting, empirical probability, and head-to-head comparison
// of two expressions. Exact probabilities live in the prob package;
// sim answers the same questions by actually rolling.
package sim

import (
	"github.com/cory-johannsen/dicestats/internal/dice"
)

// Simulator drives repeated rolls through a single Roller so seeded
// simulations are reproducible.
type Simulator struct {
	roller *dice.Roller
}

// NewSimulator creates a Simulator. A non-nil seed makes every
// simulation deterministic.
func NewSimulator(seed *int64) *Simulator {
	return &Simulator{roller: dice.NewRoller(seed)}
}

// Outcomes rolls expr n times and counts how often each total occurs.
//
// Precondition: n >= 1; returns a *ValidationError otherwise.
func (s *Simulator) Outcomes(expr dice.Expression, n int) (map[int]int, error) {
	if n <= 0 {
		return nil, &dice.ValidationError{Reason: "iterations must be positive"}
	}
	outcomes := make(map[int]int)
	for i := 0; i < n; i++ {
		outcomes[s.roller.Roll(expr).Total]++
	}
	return outcomes, nil
}

// EmpiricalProbability estimates the probability of rolling exactly
// target by simulation. Targets outside the attainable range return 0
// without rolling.
func (s *Simulator) EmpiricalProbability(expr dice.Expression, target, n int) (float64, error) {
	if n <= 0 {
		return 0, &dice.ValidationError{Reason: "iterations must be positive"}
	}
	if target < expr.Min() || target > expr.Max() {
		return 0, nil
	}
	hits := 0
	for i := 0; i < n; i++ {
		if s.roller.Roll(expr).Total == target {
			hits++
		}
	}
	return float64(hits) / float64(n), nil
}

// ComparisonResult summarizes n head-to-head rolls of two expressions.
type ComparisonResult struct {
	Expression1 string  `json:"expression1"`
	Expression2 string  `json:"expression2"`
	Iterations  int     `json:"iterations"`
	Wins1       int     `json:"expr1_wins"`
	Wins2       int     `json:"expr2_wins"`
	Ties        int     `json:"ties"`
	WinRate1    float64 `json:"expr1_win_rate"`
	WinRate2    float64 `json:"expr2_win_rate"`
	TieRate     float64 `json:"tie_rate"`
	Average1    float64 `json:"expr1_avg"`
	Average2    float64 `json:"expr2_avg"`
}

// Compare rolls both expressions n times each and tallies which wins
// per round.
//
// Precondition: n >= 1; returns a *ValidationError otherwise.
func (s *Simulator) Compare(expr1, expr2 dice.Expression, n int) (ComparisonResult, error) {
	if n <= 0 {
		return ComparisonResult{}, &dice.ValidationError{Reason: "iterations must be positive"}
	}

	wins1, wins2 := 0, 0
	sum1, sum2 := 0, 0
	for i := 0; i < n; i++ {
		t1 := s.roller.Roll(expr1).Total
		t2 := s.roller.Roll(expr2).Total
		sum1 += t1
		sum2 += t2
		switch {
		case t1 > t2:
			wins1++
		case t2 > t1:
			wins2++
		}
	}
	ties := n - wins1 - wins2

	return ComparisonResult{
		Expression1: expr1.String(),
		Expression2: expr2.String(),
		Iterations:  n,
		Wins1:       wins1,
		Wins2:       wins2,
		Ties:        ties,
		WinRate1:    float64(wins1) / float64(n),
		WinRate2:    float64(wins2) / float64(n),
		TieRate:     float64(ties) / float64(n),
		Average1:    float64(sum1) / float64(n),
		Average2:    float64(sum2) / float64(n),
	}, nil
}
