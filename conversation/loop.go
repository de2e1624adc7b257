package conversation

import (
	"context"
	"errors"
	"time"
)

type loopConfig struct {
	maxTurns  int
	interval  time.Duration
	predicate func(Turn) bool
}

// LoopOption defines a configuration function for customizing Loop behavior.
type LoopOption func(*loopConfig)

// WithMaxTurns sets the maximum number of turns. Zero means no limit, which
// relies on a participant ending the conversation or on ctx.
func WithMaxTurns(n int) LoopOption {
	return func(c *loopConfig) { c.maxTurns = n }
}

// WithInterval sets the delay between turns.
func WithInterval(d time.Duration) LoopOption {
	return func(c *loopConfig) { c.interval = d }
}

// WithPredicate stops the loop after the first turn for which pred returns true.
//
// Example:
//
//	WithPredicate(func(t Turn) bool {
//	    return strings.Contains(t.Text, "Goodbye")
//	})
func WithPredicate(pred func(Turn) bool) LoopOption {
	return func(c *loopConfig) { c.predicate = pred }
}

// Loop drives g and hands every turn to fn. It returns nil when a
// participant ends the conversation, the turn limit is reached or the
// predicate matches. Errors from participants, fn or ctx are returned.
// Defaults: 100 turns, no interval.
func Loop(ctx context.Context, g *GroupChat, fn func(Turn) error, opts ...LoopOption) error {
	cfg := loopConfig{maxTurns: 100}
	for _, o := range opts {
		o(&cfg)
	}

	for i := 0; cfg.maxTurns <= 0 || i < cfg.maxTurns; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		turn, err := g.Next(ctx)
		if errors.Is(err, ErrEnd) {
			if turn.Ended {
				return fn(turn)
			}
			return nil
		}
		if err != nil {
			return err
		}

		if err := fn(turn); err != nil {
			return err
		}

		if cfg.predicate != nil && cfg.predicate(turn) {
			return nil
		}

		if cfg.interval > 0 {
			timer := time.NewTimer(cfg.interval)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	return nil
}
