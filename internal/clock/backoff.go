package clock

import "time"

// Backoff yields exponentially growing delays between Min and Max. The zero value is not usable.
type Backoff struct {
	Min time.Duration
	Max time.Duration

	current time.Duration
}

// NewBackoff returns a Backoff starting at initial and capped at ceiling.
func NewBackoff(initial, ceiling time.Duration) *Backoff {
	if ceiling < initial {
		ceiling = initial
	}
	return &Backoff{Min: initial, Max: ceiling}
}

// Next returns the delay to wait after another failure.
func (b *Backoff) Next() time.Duration {
	switch {
	case b.current == 0:
		b.current = b.Min
	case b.current < b.Max:
		b.current *= 2
		if b.current > b.Max {
			b.current = b.Max
		}
	}
	return b.current
}

// Reset starts the sequence over after a success.
func (b *Backoff) Reset() {
	b.current = 0
}
