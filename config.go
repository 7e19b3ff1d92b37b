// Completion: 100% - Environment-backed configuration defaults, via
// github.com/xyproto/env/v2 (§10.3)
package main

import "github.com/xyproto/env/v2"

// Config holds every tunable of a compile run. Values default from
// environment variables and are overridable by CLI flags in main.go, which
// is why every field here has an exported zero-value-safe default (§10.3).
type Config struct {
	OutDir    string
	MaxErrors int
	NoColor   bool
	Verbose   bool
}

// DefaultConfig reads MYLANG_OUT_DIR, MYLANG_MAX_ERRORS, MYLANG_NO_COLOR,
// and MYLANG_VERBOSE from the environment, falling back to sensible
// compiler defaults when unset (§10.3).
func DefaultConfig() Config {
	return Config{
		OutDir:    env.Str("MYLANG_OUT_DIR", "."),
		MaxErrors: env.Int("MYLANG_MAX_ERRORS", 10),
		NoColor:   env.Bool("MYLANG_NO_COLOR"),
		Verbose:   env.Bool("MYLANG_VERBOSE"),
	}
}
