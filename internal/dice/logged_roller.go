package dice

import "go.uber.org/zap"

// LoggedRoller wraps a Roller so every roll is logged at debug level
// with expression, per-group values, modifier, and total.
type LoggedRoller struct {
	roller *Roller
	logger *zap.Logger
}

// NewLoggedRoller creates a LoggedRoller around roller.
//
// Precondition: roller and logger must be non-nil.
func NewLoggedRoller(roller *Roller, logger *zap.Logger) *LoggedRoller {
	return &LoggedRoller{roller: roller, logger: logger}
}

// Roll evaluates expr and logs the result at debug level.
func (r *LoggedRoller) Roll(expr Expression) RollResult {
	result := r.roller.Roll(expr)
	r.logger.Debug("dice roll",
		zap.String("expression", expr.String()),
		zap.Ints("group_totals", result.GroupTotals()),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total),
	)
	return result
}

// RollMany evaluates expr n times, logging the session summary.
func (r *LoggedRoller) RollMany(expr Expression, n int) (RollSession, error) {
	session, err := r.roller.RollMany(expr, n)
	if err != nil {
		return RollSession{}, err
	}
	r.logger.Debug("dice session",
		zap.String("expression", expr.String()),
		zap.String("session_id", session.ID.String()),
		zap.Int("rolls", session.Count()),
		zap.Float64("average", session.AverageTotal()),
	)
	return session, nil
}

// RollUntilTarget rolls until target is hit, logging the search
// outcome including the number of attempts consumed.
func (r *LoggedRoller) RollUntilTarget(expr Expression, target, maxAttempts int) (RollResult, int, error) {
	result, attempts, err := r.roller.RollUntilTarget(expr, target, maxAttempts)
	if err != nil {
		r.logger.Debug("dice target search failed",
			zap.String("expression", expr.String()),
			zap.Int("target", target),
			zap.Int("attempts", attempts),
			zap.Error(err),
		)
		return RollResult{}, attempts, err
	}
	r.logger.Debug("dice target search",
		zap.String("expression", expr.String()),
		zap.Int("target", target),
		zap.Int("attempts", attempts),
		zap.Int("total", result.Total),
	)
	return result, attempts, nil
}
