package dice

import "time"

// DefaultMaxAttempts bounds RollUntilTarget when the caller passes a
// non-positive attempt limit.
const DefaultMaxAttempts = 10000

// Roller produces concrete random outcomes for expressions. A Roller
// owns exactly one generator instance, so a session of sequential
// rolls is deterministic and reproducible given the same seed.
type Roller struct {
	src  Source
	seed *int64
}

// NewRoller creates a Roller. A non-nil seed selects the
// deterministic generator: the same seed and expression always
// reproduce bit-identical sequences of totals and per-die values. A
// nil seed selects crypto/rand-backed, non-reproducible rolls.
func NewRoller(seed *int64) *Roller {
	return &Roller{src: sourceFor(seed), seed: seed}
}

// NewRollerWithSource creates a Roller drawing from src. Used by the
// simulator and by tests that need a scripted Source.
//
// Precondition: src must be non-nil.
func NewRollerWithSource(src Source) *Roller {
	return &Roller{src: src}
}

// Seed returns the seed the Roller was created or last reseeded with,
// or nil for non-reproducible rollers.
func (r *Roller) Seed() *int64 { return r.seed }

// Reseed replaces the generator, resetting its state. Passing the
// previous seed restarts the sequence from the beginning.
func (r *Roller) Reseed(seed *int64) {
	r.src = sourceFor(seed)
	r.seed = seed
}

func sourceFor(seed *int64) Source {
	if seed == nil {
		return NewCryptoSource()
	}
	return NewSeededSource(*seed)
}

// Roll evaluates expr once: each group contributes Count independent
// uniform draws in [1, Sides], recorded per group in group order.
//
// Postcondition: result.Total == sum of all draws + expr.Modifier, and
// len(result.GroupRolls[i]) == expr.Groups[i].Count for every group.
func (r *Roller) Roll(expr Expression) RollResult {
	groupRolls := make([][]int, len(expr.Groups))
	total := expr.Modifier
	for i, g := range expr.Groups {
		rolls := make([]int, g.Count)
		for j := range rolls {
			rolls[j] = r.src.Intn(g.Die.Sides) + 1
			total += rolls[j]
		}
		groupRolls[i] = rolls
	}
	return RollResult{
		Expression: expr,
		GroupRolls: groupRolls,
		Modifier:   expr.Modifier,
		Total:      total,
		Timestamp:  time.Now(),
	}
}

// RollMany evaluates expr n times through the shared generator and
// collects the results into a new session.
//
// Precondition: n >= 1; returns a *ValidationError otherwise.
func (r *Roller) RollMany(expr Expression, n int) (RollSession, error) {
	if n <= 0 {
		return RollSession{}, validationErrorf("iterations must be positive, got %d", n)
	}
	session := NewSession(expr, r.seed)
	for i := 0; i < n; i++ {
		session.Append(r.Roll(expr))
	}
	return session, nil
}

// RollUntilTarget rolls expr repeatedly until the total equals target,
// returning the matching result and the number of attempts consumed.
// maxAttempts <= 0 selects DefaultMaxAttempts.
//
// A target outside [expr.Min(), expr.Max()] fails immediately with a
// *ValidationError, consuming no attempts. Exhausting maxAttempts also
// fails with a *ValidationError; for low-probability targets this is
// the expected outcome, not a defect, so callers must size the limit
// deliberately.
func (r *Roller) RollUntilTarget(expr Expression, target, maxAttempts int) (RollResult, int, error) {
	if target < expr.Min() || target > expr.Max() {
		return RollResult{}, 0, validationErrorf(
			"target %d is impossible for expression %s (range %d-%d)",
			target, expr.String(), expr.Min(), expr.Max())
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result := r.Roll(expr)
		if result.Total == target {
			return result, attempt, nil
		}
	}
	return RollResult{}, maxAttempts, validationErrorf(
		"target %d not reached in %d attempts", target, maxAttempts)
}

// RollExpr parses text and rolls it once.
func (r *Roller) RollExpr(text string) (RollResult, error) {
	e, err := Parse(text)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}
