package meta

import "log/slog"

// Config controls compilation and search.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.MaxSteps = 1_000_000 // bound runaway patterns tighter
//	engine, err := meta.CompileWithConfig(`(a+)+b`, 0, config)
type Config struct {
	// MaxSteps bounds the ops executed by one anchored match attempt.
	// Zero means unlimited.
	// Default: 10,000,000
	MaxSteps int

	// MaxBacktrackDepth bounds the backtracking stack of one attempt, in
	// frames. Zero means unlimited.
	// Default: 4,000,000
	MaxBacktrackDepth int

	// EnableBoyerMoore enables the required-literal pre-filter. The F flag
	// disables it for a single pattern.
	// Default: true
	EnableBoyerMoore bool

	// EnablePrefilter enables the head-literal prefilter. The H flag
	// disables it for a single pattern.
	// Default: true
	EnablePrefilter bool

	// MinLiteralLen is the shortest literal worth filtering on.
	// Default: 1
	MinLiteralLen int

	// MaxLiterals bounds the head-literal set.
	// Default: 64
	MaxLiterals int

	// Logger receives strategy selection at debug level and limit trips at
	// warn level. Nil discards.
	Logger *slog.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxSteps:          10_000_000,
		MaxBacktrackDepth: 4_000_000,
		EnableBoyerMoore:  true,
		EnablePrefilter:   true,
		MinLiteralLen:     1,
		MaxLiterals:       64,
	}
}

// Validate checks that every parameter is in range.
//
// Valid ranges:
//   - MaxSteps, MaxBacktrackDepth: >= 0
//   - MinLiteralLen: 1 to 64
//   - MaxLiterals: 1 to 1,000
func (c Config) Validate() error {
	if c.MaxSteps < 0 {
		return &ConfigError{
			Field:   "MaxSteps",
			Message: "must not be negative",
		}
	}
	if c.MaxBacktrackDepth < 0 {
		return &ConfigError{
			Field:   "MaxBacktrackDepth",
			Message: "must not be negative",
		}
	}

	if c.EnablePrefilter || c.EnableBoyerMoore {
		if c.MinLiteralLen < 1 || c.MinLiteralLen > 64 {
			return &ConfigError{
				Field:   "MinLiteralLen",
				Message: "must be between 1 and 64",
			}
		}
	}
	if c.EnablePrefilter {
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
	}

	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return discard
}

var discard = slog.New(slog.DiscardHandler)

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "regx: invalid config: " + e.Field + ": " + e.Message
}
