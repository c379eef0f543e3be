package retry

import "time"

// Backoff computes the delay before the next retry attempt.
type Backoff interface {
	Next(attempt int) time.Duration
}

// LinearBackoff grows delays by Base per attempt: Base, 2*Base, 3*Base...
type LinearBackoff struct {
	Base time.Duration
}

// Next returns the delay after the given attempt (1-based).
func (b LinearBackoff) Next(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := b.Base
	if base <= 0 {
		base = time.Second
	}
	return base * time.Duration(attempt)
}
