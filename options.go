package cubematch

import "github.com/SeamusWaldron/cubematch/internal/matcher"

// Option configures a Match call.
type Option func(*config)

type config struct {
	attempts int
}

func defaultConfig() *config {
	return &config{attempts: matcher.DefaultAttempts}
}

// WithAttempts sets the per-facelet retry budget. The default is 3,
// tuned for the domain: it guards against pathological inputs where
// constraint propagation would otherwise explore too many alternatives
// at a single facelet.
func WithAttempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.attempts = n
		}
	}
}
