package supercompiler

import (
	"io"

	"github.com/xyproto/env/v2"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvMaxSteps = "SPSC_MAX_STEPS"
	EnvTrace    = "SPSC_TRACE"
)

// Config holds the settings of a tree construction.
type Config struct {
	// MaxSteps bounds the number of growth steps. Construction stops with
	// ErrStepLimitExceeded when it is reached. 0 means unbounded.
	MaxSteps int

	// Trace enables [SC] log lines for every fold and unfold of this
	// Supercompiler.
	Trace bool

	// TraceWriter, when set, receives the rendering of the tree after
	// every growth step.
	TraceWriter io.Writer
}

// DefaultConfig returns the default configuration: a generous step bound
// and no tracing.
func DefaultConfig() *Config {
	return &Config{
		MaxSteps: 100000,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by SPSC_MAX_STEPS and
// SPSC_TRACE.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	cfg.MaxSteps = env.Int(EnvMaxSteps, cfg.MaxSteps)
	cfg.Trace = env.Bool(EnvTrace)
	return cfg
}
