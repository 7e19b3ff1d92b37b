// Completion: 100% - User-facing CLI: compile/version/help subcommands,
// grounded on the teacher's CommandContext/RunCLI dispatch shape (§6,
// §12 item 3)
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const versionString = "mylangc 0.1.0"

// CommandContext holds the execution context for a CLI invocation.
type CommandContext struct {
	Config Config
}

// RunCLI is the entry point for the user-facing CLI. args is everything
// after flag parsing: the subcommand plus its own arguments (§6).
func RunCLI(args []string, cfg Config) error {
	ctx := &CommandContext{Config: cfg}

	if len(args) == 0 {
		return cmdHelp(ctx)
	}

	switch args[0] {
	case "compile":
		return cmdCompile(ctx, args[1:])
	case "help", "--help", "-h":
		return cmdHelp(ctx)
	case "version", "--version", "-V":
		fmt.Println(versionString)
		return nil
	default:
		// Shorthand: `mylangc <pattern>` is `mylangc compile <pattern>`.
		return cmdCompile(ctx, args)
	}
}

// cmdCompile discovers every input source matching the given doublestar
// glob patterns (defaulting to "*.mylang" in the working directory if
// none are given), parses and checks the whole program, and emits one
// .h/.cpp pair per logical module into cfg.OutDir (§4, §6, §12 item 3).
func cmdCompile(ctx *CommandContext, patterns []string) error {
	if len(patterns) == 0 {
		patterns = []string{"*.mylang"}
	}

	var files []string
	seen := map[string]bool{}
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("invalid input pattern '%s': %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files matched: %s", strings.Join(patterns, ", "))
	}

	log.Printf("[DEBUG] discovered %d input file(s)", len(files))

	errs := NewErrorCollector(ctx.Config.MaxErrors)
	result := CompileProgram(files, ctx.Config.OutDir, FileSinkFactory{}, errs)

	if errs.HasErrors() || errs.WarningCount() > 0 {
		fmt.Fprint(os.Stderr, errs.Report(!ctx.Config.NoColor))
	}
	if errs.HasErrors() {
		return fmt.Errorf("compilation failed with %d error(s)", errs.ErrorCount())
	}
	log.Printf("[INFO] wrote %d module(s) to %s", len(result.ModuleNames), ctx.Config.OutDir)
	return nil
}

func cmdHelp(ctx *CommandContext) error {
	fmt.Printf(`mylangc - the MyLang compiler (%s)

USAGE:
    mylangc <command> [arguments]

COMMANDS:
    compile <pattern>...   Compile MyLang sources to C++ header/source pairs
    help                   Show this help message
    version                Show version information

SHORTHAND:
    mylangc <pattern>       Same as 'mylangc compile <pattern>'
    mylangc compile         Compile "*.mylang" in the current directory

FLAGS:
    -out <dir>          Output directory for generated .h/.cpp files (default: ".")
    -max-errors <n>     Stop after this many errors (default: 10)
    -verbose            Verbose logging
    -no-color           Disable ANSI color in diagnostics

EXAMPLES:
    mylangc compile "src/**/*.mylang"
    mylangc -out build/ compile vector.mylang circle.mylang
`, versionString)
	return nil
}
