// Completion: 100% - Error handling: taxonomy, collector, parse-routine traces
package main

import (
	"fmt"
	"strings"
)

// ErrorLevel indicates the severity of a reported error.
type ErrorLevel int

const (
	LevelWarning ErrorLevel = iota
	LevelError
	LevelFatal
)

func (l ErrorLevel) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal error"
	default:
		return "unknown"
	}
}

// ErrorCategory classifies an error per SPEC_FULL.md §7's taxonomy.
type ErrorCategory int

const (
	CategoryLexical ErrorCategory = iota
	CategorySyntax
	CategorySemantic
	CategoryIO
)

// Kind renders the category the way the user-visible format requires:
// "[<Kind> Error]...", with Kind one of Lexical, Syntax, Semantic, IO.
func (c ErrorCategory) Kind() string {
	switch c {
	case CategoryLexical:
		return "Lexical"
	case CategorySemantic:
		return "Semantic"
	case CategoryIO:
		return "IO"
	default:
		return "Syntax"
	}
}

func (c ErrorCategory) String() string {
	switch c {
	case CategoryLexical:
		return "lexical"
	case CategorySyntax:
		return "syntax"
	case CategorySemantic:
		return "semantic"
	case CategoryIO:
		return "io"
	default:
		return "unknown"
	}
}

// SourceLocation represents a position in source code.
type SourceLocation struct {
	File   string
	Line   int
	Column int
	Length int // length of the problematic token/expression, if known
}

func (loc SourceLocation) String() string {
	return fmt.Sprintf("Ln %d, Col %d", loc.Line, loc.Column)
}

// ErrorContext provides additional, optional context for an error.
type ErrorContext struct {
	SourceLine string
	Suggestion string
	HelpText   string
}

// CompilerError is a single compilation diagnostic.
type CompilerError struct {
	Level    ErrorLevel
	Category ErrorCategory
	Message  string
	Location SourceLocation
	Context  ErrorContext
}

// Error implements the error interface with the required user-visible
// one-line format: "[<Kind> Error][Ln L, Col C] <message>" (§6, §7).
func (e CompilerError) Error() string {
	return fmt.Sprintf("[%s Error][%s] %s", e.Category.Kind(), e.Location, e.Message)
}

// Format returns a richer, optionally ANSI-colored multi-line rendering
// for interactive terminals (colour is on unless -no-color or
// MYLANG_NO_COLOR is set, see main.go and config.go),
// kept in the teacher's own presentation style.
func (e CompilerError) Format(useColor bool) string {
	var sb strings.Builder

	if useColor {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString(e.Error())
	if useColor {
		sb.WriteString("\033[0m")
	}
	sb.WriteString("\n")

	if e.Context.SourceLine != "" {
		lineNum := fmt.Sprintf("%d", e.Location.Line)
		padding := strings.Repeat(" ", len(lineNum)+1)

		sb.WriteString(padding)
		sb.WriteString("|\n")
		sb.WriteString(lineNum)
		sb.WriteString(" | ")
		sb.WriteString(e.Context.SourceLine)
		sb.WriteString("\n")
		sb.WriteString(padding)
		sb.WriteString("| ")

		if e.Location.Column > 0 {
			sb.WriteString(strings.Repeat(" ", e.Location.Column-1))
			if useColor {
				sb.WriteString("\033[1;31m")
			}
			if e.Location.Length > 0 {
				sb.WriteString(strings.Repeat("^", e.Location.Length))
			} else {
				sb.WriteString("^")
			}
			if useColor {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
		}
	}

	if e.Context.Suggestion != "" {
		if useColor {
			sb.WriteString("\033[1;32m")
		}
		sb.WriteString("   help: ")
		if useColor {
			sb.WriteString("\033[0m")
		}
		sb.WriteString(e.Context.Suggestion)
		sb.WriteString("\n")
	}

	if e.Context.HelpText != "" {
		if useColor {
			sb.WriteString("\033[1;36m")
		}
		sb.WriteString("   note: ")
		if useColor {
			sb.WriteString("\033[0m")
		}
		sb.WriteString(e.Context.HelpText)
		sb.WriteString("\n")
	}

	return sb.String()
}

// ErrorCollector accumulates errors during compilation and enforces the
// configured error ceiling (see config.go / -max-errors).
type ErrorCollector struct {
	errors     []CompilerError
	warnings   []CompilerError
	maxErrors  int
	sourceCode string
}

// NewErrorCollector creates a new error collector, stopping after
// maxErrors errors (0 or negative selects the default of 10).
func NewErrorCollector(maxErrors int) *ErrorCollector {
	if maxErrors <= 0 {
		maxErrors = 10
	}
	return &ErrorCollector{maxErrors: maxErrors}
}

// SetSourceCode stores the source text so errors can show the offending
// line without every caller threading it through.
func (ec *ErrorCollector) SetSourceCode(source string) {
	ec.sourceCode = source
}

// AddError records a compilation error (Error or Fatal level).
func (ec *ErrorCollector) AddError(err CompilerError) {
	if err.Context.SourceLine == "" && ec.sourceCode != "" {
		err.Context.SourceLine = ec.getSourceLine(err.Location.Line)
	}
	if err.Level == LevelFatal || err.Level == LevelError {
		ec.errors = append(ec.errors, err)
	} else {
		ec.warnings = append(ec.warnings, err)
	}
}

// AddWarning records a warning, forcing its level to Warning.
func (ec *ErrorCollector) AddWarning(warn CompilerError) {
	warn.Level = LevelWarning
	if warn.Context.SourceLine == "" && ec.sourceCode != "" {
		warn.Context.SourceLine = ec.getSourceLine(warn.Location.Line)
	}
	ec.warnings = append(ec.warnings, warn)
}

func (ec *ErrorCollector) getSourceLine(lineNum int) string {
	if ec.sourceCode == "" || lineNum <= 0 {
		return ""
	}
	lines := strings.Split(ec.sourceCode, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// HasErrors reports whether any error-or-worse diagnostics were collected.
func (ec *ErrorCollector) HasErrors() bool {
	return len(ec.errors) > 0
}

// HasFatalError reports whether any Fatal-level diagnostic was collected.
func (ec *ErrorCollector) HasFatalError() bool {
	for _, err := range ec.errors {
		if err.Level == LevelFatal {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of collected errors.
func (ec *ErrorCollector) ErrorCount() int {
	return len(ec.errors)
}

// WarningCount returns the number of collected warnings.
func (ec *ErrorCollector) WarningCount() int {
	return len(ec.warnings)
}

// ShouldStop reports whether the error ceiling has been reached.
func (ec *ErrorCollector) ShouldStop() bool {
	return len(ec.errors) >= ec.maxErrors
}

// Report formats all collected errors and warnings for display.
func (ec *ErrorCollector) Report(useColor bool) string {
	var sb strings.Builder

	for i, err := range ec.errors {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(err.Format(useColor))
	}

	for i, warn := range ec.warnings {
		if i > 0 || len(ec.errors) > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(warn.Format(useColor))
	}

	if len(ec.errors) > 0 || len(ec.warnings) > 0 {
		sb.WriteString("\n")
		if len(ec.errors) > 0 {
			sb.WriteString(fmt.Sprintf("%d error(s)", len(ec.errors)))
		}
		if len(ec.warnings) > 0 {
			if len(ec.errors) > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%d warning(s)", len(ec.warnings)))
		}
		sb.WriteString(" found\n")
	}

	return sb.String()
}

// Clear resets the collector to empty, for reuse across compilation runs.
func (ec *ErrorCollector) Clear() {
	ec.errors = nil
	ec.warnings = nil
}

// --- Helper constructors for common diagnostics ---

// LexicalError reports a malformed lexeme (unterminated string, unknown char).
func LexicalError(message string, loc SourceLocation) CompilerError {
	return CompilerError{Level: LevelError, Category: CategoryLexical, Message: message, Location: loc}
}

// UndefinedSymbolError reports a reference to an undeclared symbol.
func UndefinedSymbolError(name string, loc SourceLocation) CompilerError {
	return CompilerError{
		Level: LevelError, Category: CategorySemantic,
		Message:  fmt.Sprintf("undefined symbol '%s'", name),
		Location: loc,
		Context:  ErrorContext{HelpText: "symbols must be declared, or imported and exported, before use"},
	}
}

// SymbolRedefinitionError reports an ODR violation within one scope level.
func SymbolRedefinitionError(name string, loc SourceLocation) CompilerError {
	return CompilerError{
		Level: LevelError, Category: CategorySemantic,
		Message:  fmt.Sprintf("redefinition of '%s' in the same scope", name),
		Location: loc,
	}
}

// TypeMismatchError reports that an actual type doesn't match what was expected.
func TypeMismatchError(expected, actual string, loc SourceLocation) CompilerError {
	return CompilerError{
		Level: LevelError, Category: CategorySemantic,
		Message:  fmt.Sprintf("type mismatch: expected %s, got %s", expected, actual),
		Location: loc,
	}
}

// JumpOutsideLoopError reports a break/continue with no enclosing loop.
func JumpOutsideLoopError(keyword string, loc SourceLocation) CompilerError {
	return CompilerError{
		Level: LevelError, Category: CategorySemantic,
		Message:  fmt.Sprintf("'%s' used outside of a loop", keyword),
		Location: loc,
	}
}

// SyntaxMessageError creates a plain syntax error with a custom message.
func SyntaxMessageError(message string, loc SourceLocation) CompilerError {
	return CompilerError{Level: LevelError, Category: CategorySyntax, Message: message, Location: loc}
}

// IOErrorf creates an IO-category error (file cannot be opened/created).
func IOErrorf(loc SourceLocation, format string, args ...any) CompilerError {
	return CompilerError{
		Level: LevelError, Category: CategoryIO,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	}
}

// FatalError creates a fatal internal-compiler-error diagnostic.
func FatalError(message string, loc SourceLocation) CompilerError {
	return CompilerError{
		Level: LevelFatal, Category: CategorySemantic,
		Message:  message,
		Location: loc,
		Context:  ErrorContext{HelpText: "this is an internal compiler error"},
	}
}

// ParseRoutineError is the sum type raised by parser routines, per
// SPEC_FULL.md §4.3/§7 and §12 item 2 (rule-trace wrapping). Exactly one
// of the three constructor functions below should be used to build one.
type ParseRoutineError struct {
	CompilerError
	RuleTrace []string // outermost rule first, populated by wrapping
}

// NewUnexpectedTokenError builds an UnexpectedToken parse error: actual
// token kind didn't match any of the expected kinds.
func NewUnexpectedTokenError(expectedDescription, gotDescription string, loc SourceLocation) *ParseRoutineError {
	return &ParseRoutineError{
		CompilerError: CompilerError{
			Level: LevelError, Category: CategorySyntax,
			Message:  fmt.Sprintf("expected %s, got %s", expectedDescription, gotDescription),
			Location: loc,
		},
	}
}

// NewInvalidAssignTargetError builds a parse error for an assignment whose
// LHS is not an assignable designator (identifier, member access, or array
// access — §4.6).
func NewInvalidAssignTargetError(gotDescription string, loc SourceLocation) *ParseRoutineError {
	return &ParseRoutineError{
		CompilerError: CompilerError{
			Level: LevelError, Category: CategorySyntax,
			Message:  fmt.Sprintf("invalid assignment target: %s is not an identifier, member access, or array access", gotDescription),
			Location: loc,
		},
	}
}

// NewLeftoverTokensError builds a LeftoverTokens parse error: the parser
// reached program-level completion but input remained (§4.3).
func NewLeftoverTokensError(got string, loc SourceLocation) *ParseRoutineError {
	return &ParseRoutineError{
		CompilerError: CompilerError{
			Level: LevelError, Category: CategorySyntax,
			Message:  fmt.Sprintf("unexpected trailing input starting at %s", got),
			Location: loc,
		},
	}
}

// WrapAsPatternMismatch wraps a subordinate ParseRoutineError with the
// enclosing grammar-rule name, building a rule-trace as the error
// propagates up through nested parse routines (§12 item 2, grounded on
// original_source's PatternMismatchError).
func WrapAsPatternMismatch(inner *ParseRoutineError, ruleName string) *ParseRoutineError {
	wrapped := &ParseRoutineError{
		CompilerError: inner.CompilerError,
		RuleTrace:     append([]string{ruleName}, inner.RuleTrace...),
	}
	wrapped.CompilerError.Message = fmt.Sprintf("in %s: %s", ruleName, inner.CompilerError.Message)
	return wrapped
}
