package dice

import "github.com/google/uuid"

// RollSession is an ordered collection of rolls of a single
// expression, together with the seed that produced them (nil for
// non-reproducible sessions). Sessions are mutated only by appending
// rolls while they are being built, then persisted as a whole.
type RollSession struct {
	ID         uuid.UUID    `json:"id"`
	Expression Expression   `json:"expression"`
	Rolls      []RollResult `json:"rolls"`
	Seed       *int64       `json:"seed,omitempty"`
}

// NewSession creates an empty session for expr.
func NewSession(expr Expression, seed *int64) RollSession {
	return RollSession{ID: uuid.New(), Expression: expr, Seed: seed}
}

// Append adds a roll to the session.
func (s *RollSession) Append(r RollResult) {
	s.Rolls = append(s.Rolls, r)
}

// Count returns the number of rolls in the session.
func (s RollSession) Count() int { return len(s.Rolls) }

// Totals returns the realized totals in roll order.
func (s RollSession) Totals() []int {
	totals := make([]int, len(s.Rolls))
	for i, r := range s.Rolls {
		totals[i] = r.Total
	}
	return totals
}

// AverageTotal returns the arithmetic mean of the realized totals, or
// 0 for an empty session.
func (s RollSession) AverageTotal() float64 {
	if len(s.Rolls) == 0 {
		return 0
	}
	sum := 0
	for _, r := range s.Rolls {
		sum += r.Total
	}
	return float64(sum) / float64(len(s.Rolls))
}

// MinTotal returns the lowest realized total, or 0 for an empty
// session.
func (s RollSession) MinTotal() int {
	if len(s.Rolls) == 0 {
		return 0
	}
	min := s.Rolls[0].Total
	for _, r := range s.Rolls[1:] {
		if r.Total < min {
			min = r.Total
		}
	}
	return min
}

// MaxTotal returns the highest realized total, or 0 for an empty
// session.
func (s RollSession) MaxTotal() int {
	if len(s.Rolls) == 0 {
		return 0
	}
	max := s.Rolls[0].Total
	for _, r := range s.Rolls[1:] {
		if r.Total > max {
			max = r.Total
		}
	}
	return max
}

// RollHistory is an ordered, append-only collection of sessions. The
// history exclusively owns its session list; persistence truncates it
// to a configured maximum on save, keeping the most recent entries.
type RollHistory struct {
	Sessions []RollSession `json:"sessions"`
}

// Add appends a session to the history.
func (h *RollHistory) Add(s RollSession) {
	h.Sessions = append(h.Sessions, s)
}

// Len returns the number of recorded sessions.
func (h RollHistory) Len() int { return len(h.Sessions) }

// Recent returns up to n of the most recent sessions, oldest first.
// n <= 0 returns nil.
func (h RollHistory) Recent(n int) []RollSession {
	if n <= 0 {
		return nil
	}
	if n > len(h.Sessions) {
		n = len(h.Sessions)
	}
	return h.Sessions[len(h.Sessions)-n:]
}

// Truncate keeps only the limit most recent sessions. A non-positive
// limit clears the history.
func (h *RollHistory) Truncate(limit int) {
	if limit <= 0 {
		h.Sessions = nil
		return
	}
	if len(h.Sessions) > limit {
		kept := make([]RollSession, limit)
		copy(kept, h.Sessions[len(h.Sessions)-limit:])
		h.Sessions = kept
	}
}

// Clear removes all sessions.
func (h *RollHistory) Clear() {
	h.Sessions = nil
}
