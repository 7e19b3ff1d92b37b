// Completion: 100% - Whole-program compilation driver: wires the lexer,
// parser, global symbol scanner, type checker, jump checker, and code
// generator into the single pipeline described end-to-end in §2 and §4.
package main

import (
	"os"
)

// CompileResult summarizes a finished (possibly failed) compile run.
type CompileResult struct {
	ModuleNames []string
}

// CompileProgram runs the full MyLang compilation pipeline over every
// file in files, writing generated C++ into outDir via sinks built from
// factory. All diagnostics are appended to errs; the caller decides how
// to report and whether to treat HasErrors() as fatal (cli.go).
//
// Per §4.4/§4.5, every file must be lexed and parsed, and every parsed
// fragment's global declarations must be scanned into the shared
// ProgramEnvironment, before type checking or code generation may begin
// over any one of them — so this function runs in the same two-phase
// shape the pipeline stages name: a loop over files to build Modules and
// populate the environment, then a second loop over the resulting
// Modules to check and generate.
func CompileProgram(files []string, outDir string, factory OutputSinkFactory, errs *ErrorCollector) CompileResult {
	pipeline := NewCompilationPipeline()
	env := NewProgramEnvironment()
	structs := make(map[string]*StructDecl)

	pipeline.AdvanceTo(StageLexing)
	pipeline.AdvanceTo(StageParsing)

	var modules []*Module
	for _, path := range files {
		mod, ok := parseFile(path, errs)
		if !ok || mod == nil {
			continue
		}
		modules = append(modules, mod)
		if errs.ShouldStop() {
			break
		}
	}
	if errs.HasErrors() {
		return CompileResult{}
	}

	pipeline.AdvanceTo(StageScanning)
	for _, mod := range modules {
		if err := ScanModule(env, mod); err != nil {
			if ce, ok := err.(CompilerError); ok {
				errs.AddError(ce)
			} else {
				errs.AddError(SyntaxMessageError(err.Error(), SourceLocation{File: mod.FileName}))
			}
			if errs.ShouldStop() {
				break
			}
		}
	}
	for _, mod := range modules {
		for _, decl := range mod.Decls {
			if sd, ok := decl.(*StructDecl); ok {
				structs[sd.DeclName()] = sd
			}
		}
	}
	if errs.HasErrors() {
		return CompileResult{}
	}

	pipeline.AdvanceTo(StageTypeChecking)
	tc := NewTypeChecker(env, errs, structs)
	for _, mod := range modules {
		tc.CheckModule(mod.Name(), mod)
		if errs.ShouldStop() {
			break
		}
	}
	if errs.HasErrors() {
		return CompileResult{}
	}

	pipeline.AdvanceTo(StageJumpChecking)
	for _, mod := range modules {
		for _, decl := range mod.Decls {
			if fn, ok := decl.(*FuncDecl); ok {
				CheckJumps(fn, errs)
			}
		}
		if errs.ShouldStop() {
			break
		}
	}
	if errs.HasErrors() {
		return CompileResult{}
	}

	pipeline.AdvanceTo(StageCodeGen)
	gen := NewCodeGenerator(env, tc, outDir, factory)
	seen := map[string]bool{}
	for _, mod := range modules {
		if err := gen.GenerateModule(mod.Name(), mod); err != nil {
			errs.AddError(IOErrorf(SourceLocation{File: mod.FileName}, "%s", err.Error()))
			continue
		}
		seen[mod.Name()] = true
	}
	if err := gen.CloseAll(); err != nil {
		errs.AddError(IOErrorf(SourceLocation{}, "%s", err.Error()))
	}

	pipeline.AdvanceTo(StageComplete)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	return CompileResult{ModuleNames: names}
}

// parseFile reads, lexes, and parses one source file into a Module
// fragment, recording any IO or parse-routine error into errs.
func parseFile(path string, errs *ErrorCollector) (*Module, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		errs.AddError(IOErrorf(SourceLocation{File: path}, "cannot read %s: %s", path, err.Error()))
		return nil, false
	}

	sf := NewSourceFile(path, string(content))
	errs.SetSourceCode(string(content))

	lex := NewLexer(sf)
	parser := NewParser(lex)

	mod, parseErr := parser.ParseProgram(path)
	if parseErr != nil {
		errs.AddError(parseErr.CompilerError)
		return nil, false
	}
	mod.FileName = path
	return mod, true
}
