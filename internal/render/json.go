package render

import (
	"github.com/cory-johannsen/dicestats/internal/analyze"
	"github.com/cory-johannsen/dicestats/internal/dice"
	"github.com/cory-johannsen/dicestats/internal/prob"
)

// RollPayload is the JSON shape for roll output.
type RollPayload struct {
	Expression         string           `json:"expression"`
	Iterations         int              `json:"iterations"`
	Seed               *int64           `json:"seed"`
	Results            []int            `json:"results"`
	Average            float64          `json:"average"`
	Min                int              `json:"min"`
	Max                int              `json:"max"`
	TheoreticalAverage float64          `json:"theoretical_average"`
	Statistics         *analyze.Summary `json:"statistics,omitempty"`
}

// NewRollPayload builds the JSON payload for a session, optionally
// including the empirical statistics block.
func NewRollPayload(s dice.RollSession, withStats bool) RollPayload {
	p := RollPayload{
		Expression:         s.Expression.String(),
		Iterations:         s.Count(),
		Seed:               s.Seed,
		Results:            s.Totals(),
		Average:            s.AverageTotal(),
		Min:                s.MinTotal(),
		Max:                s.MaxTotal(),
		TheoreticalAverage: s.Expression.Average(),
	}
	if withStats {
		if sum, ok := analyze.Session(s); ok {
			p.Statistics = &sum
		}
	}
	return p
}

// AnalyzePayload is the JSON shape for analyze output.
type AnalyzePayload struct {
	Expression   string            `json:"expression"`
	Min          int               `json:"min_value"`
	Max          int               `json:"max_value"`
	Average      float64           `json:"average"`
	MostLikely   int               `json:"most_likely"`
	Median       int               `json:"median"`
	Distribution prob.Distribution `json:"probability_distribution"`
	Extended     *prob.Extended    `json:"extended_statistics,omitempty"`
}

// NewAnalyzePayload builds the JSON payload for theoretical analysis.
func NewAnalyzePayload(st prob.StatisticsResult, ext *prob.Extended) AnalyzePayload {
	return AnalyzePayload{
		Expression:   st.Expression.String(),
		Min:          st.Min,
		Max:          st.Max,
		Average:      st.Average,
		MostLikely:   st.MostLikely(),
		Median:       st.Median(),
		Distribution: st.Distribution,
		Extended:     ext,
	}
}

// HistoryPayload is the JSON shape for history output.
type HistoryPayload struct {
	TotalSessions  int              `json:"total_sessions"`
	RecentSessions []SessionSummary `json:"recent_sessions"`
}

// SessionSummary is one history row.
type SessionSummary struct {
	Expression string  `json:"expression"`
	Rolls      int     `json:"rolls"`
	Average    float64 `json:"average"`
	Min        int     `json:"min"`
	Max        int     `json:"max"`
	Seed       *int64  `json:"seed"`
}

// NewHistoryPayload builds the JSON payload for the history listing.
func NewHistoryPayload(sessions []dice.RollSession, total int) HistoryPayload {
	rows := make([]SessionSummary, len(sessions))
	for i, s := range sessions {
		rows[i] = SessionSummary{
			Expression: s.Expression.String(),
			Rolls:      s.Count(),
			Average:    s.AverageTotal(),
			Min:        s.MinTotal(),
			Max:        s.MaxTotal(),
			Seed:       s.Seed,
		}
	}
	return HistoryPayload{TotalSessions: total, RecentSessions: rows}
}

// InfoPayload is the JSON shape for expression info output.
type InfoPayload struct {
	Expression string       `json:"expression"`
	Groups     int          `json:"dice_groups"`
	TotalDice  int          `json:"total_dice"`
	Modifier   int          `json:"modifier"`
	Min        int          `json:"min_value"`
	Max        int          `json:"max_value"`
	Average    float64      `json:"average_value"`
	DiceTypes  []GroupShape `json:"dice_types"`
}

// GroupShape describes one dice group for info output.
type GroupShape struct {
	Count   int     `json:"count"`
	Sides   int     `json:"sides"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
	Average float64 `json:"average"`
}

// NewInfoPayload builds the JSON payload describing an expression.
func NewInfoPayload(expr dice.Expression) InfoPayload {
	groups := make([]GroupShape, len(expr.Groups))
	for i, g := range expr.Groups {
		groups[i] = GroupShape{
			Count:   g.Count,
			Sides:   g.Die.Sides,
			Min:     g.Min(),
			Max:     g.Max(),
			Average: g.Average(),
		}
	}
	return InfoPayload{
		Expression: expr.String(),
		Groups:     len(expr.Groups),
		TotalDice:  expr.TotalDice(),
		Modifier:   expr.Modifier,
		Min:        expr.Min(),
		Max:        expr.Max(),
		Average:    expr.Average(),
		DiceTypes:  groups,
	}
}
