// Completion: 100% - Entrypoint: flag parsing and dispatch to the CLI
// subcommands in cli.go, adapted from the teacher's flag-parse-then-
// dispatch main() shape without any native-target build logic.
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	cfg := DefaultConfig()

	out := flag.String("out", cfg.OutDir, "output directory for generated .h/.cpp files")
	maxErrors := flag.Int("max-errors", cfg.MaxErrors, "stop after this many errors")
	verbose := flag.Bool("verbose", cfg.Verbose, "verbose logging")
	noColor := flag.Bool("no-color", cfg.NoColor, "disable ANSI color in diagnostics")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <command> [arguments]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg.OutDir = *out
	cfg.MaxErrors = *maxErrors
	cfg.Verbose = *verbose
	cfg.NoColor = *noColor

	SetupLogging(cfg.Verbose)

	if err := RunCLI(flag.Args(), cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
