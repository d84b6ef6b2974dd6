package dispatcher

// Config holds dispatcher configuration options.
type Config struct {
	// Gaps is the spacing used when re-tiling after a window move.
	Gaps int

	// EnableMetrics enables per-action dispatch statistics.
	EnableMetrics bool
}

// DefaultGaps is the default window spacing.
const DefaultGaps = 10

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Gaps:          DefaultGaps,
		EnableMetrics: false,
	}
}

// WithGaps returns a copy of the config with the gap set.
func (c Config) WithGaps(gaps int) Config {
	if gaps >= 0 {
		c.Gaps = gaps
	}
	return c
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}
