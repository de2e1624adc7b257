package engine

import "fmt"

// RedirectLimiter bounds the number of redirects followed for one keyword.
type RedirectLimiter struct {
	max   int
	count int
}

// NewRedirectLimiter creates a limiter allowing max redirects.
// If max == 0, unlimited redirects are allowed.
func NewRedirectLimiter(max int) *RedirectLimiter {
	return &RedirectLimiter{max: max}
}

// Increment records one redirect and returns an error once the limit is exceeded.
func (rl *RedirectLimiter) Increment() error {
	rl.count++
	if rl.max > 0 && rl.count > rl.max {
		return fmt.Errorf("%w: %d", ErrRedirectLimit, rl.max)
	}
	return nil
}

// Count returns the number of redirects followed so far.
func (rl *RedirectLimiter) Count() int { return rl.count }

// Remaining returns how many redirects are left before hitting the limit.
func (rl *RedirectLimiter) Remaining() int {
	if rl.max == 0 {
		return -1 // unlimited
	}
	return rl.max - rl.count
}
