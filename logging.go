// Completion: 100% - Leveled stderr logging, via
// github.com/hashicorp/logutils (§10.1)
package main

import (
	"log"
	"os"

	"github.com/hashicorp/logutils"
)

// SetupLogging installs a level-filtered writer on the standard logger: at
// verbose=false only WARN and above are shown, at verbose=true DEBUG and
// above are shown. Every other file in this repo logs through the
// standard "log" package with a "[DEBUG]"/"[INFO]"/"[WARN]"/"[ERROR]" prefix rather
// than writing straight to os.Stderr, so this filter is the single place
// that decides what's noisy (§10.1).
func SetupLogging(verbose bool) {
	minLevel := logutils.LogLevel("WARN")
	if verbose {
		minLevel = logutils.LogLevel("DEBUG")
	}
	filter := &logutils.LevelFilter{
		Levels:   []logutils.LogLevel{"DEBUG", "INFO", "WARN", "ERROR"},
		MinLevel: minLevel,
		Writer:   os.Stderr,
	}
	log.SetOutput(filter)
	log.SetFlags(0)
}
