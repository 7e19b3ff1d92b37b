// Completion: 100% - C++ header/source emitter, grounded on
// original_source/src/codegen/CodeGenerator.cpp and
// sample/output/vector.{h,cpp}, circle.{h,cpp} (§4.7)
package main

import (
	"fmt"
	"path/filepath"
)

// CodeGenerator walks every parsed Module fragment and emits one header
// and one source file per logical module name, per §4.7. It holds an
// open-sink map keyed by output file name so that multiple fragments of
// the same logical module append to the same pair of files.
type CodeGenerator struct {
	env          *ProgramEnvironment
	tc           *TypeChecker
	outDir       string
	factory      OutputSinkFactory
	openSinks    map[string]OutputSink
	visited      map[string]bool
	current      OutputSink
	forwardDecl  bool
}

// NewCodeGenerator builds a generator that writes into outDir using the
// sinks produced by factory (FileSinkFactory for real builds,
// BufferSinkFactory for tests).
func NewCodeGenerator(env *ProgramEnvironment, tc *TypeChecker, outDir string, factory OutputSinkFactory) *CodeGenerator {
	return &CodeGenerator{
		env: env, tc: tc, outDir: outDir, factory: factory,
		openSinks: make(map[string]OutputSink),
		visited:   make(map[string]bool),
	}
}

func headerGuardMacro(moduleName string) string { return "MODULE_" + moduleName + "_H" }
func headerFileName(moduleName string) string   { return moduleName + ".h" }
func sourceFileName(moduleName string) string   { return moduleName + ".cpp" }

// getSink returns the already-open sink for fileName, opening a new one
// against outDir if this is the first reference (§4.7 "open-files map").
func (g *CodeGenerator) getSink(fileName string) (OutputSink, error) {
	if s, ok := g.openSinks[fileName]; ok {
		return s, nil
	}
	s := g.factory.CreateOutputSink()
	if err := s.Open(filepath.Join(g.outDir, fileName)); err != nil {
		return nil, err
	}
	g.openSinks[fileName] = s
	return s, nil
}

// CloseAll flushes and closes every sink opened during generation.
func (g *CodeGenerator) CloseAll() error {
	for _, s := range g.openSinks {
		if err := s.Close(); err != nil {
			return err
		}
	}
	return nil
}

// GenerateModule emits code for one parsed fragment belonging to
// moduleName. The caller (CompileProgram in compile.go) must have already run
// ScanModule and the type checker over every fragment of every module in
// the program before calling this, so cross-module symbol/type
// information is complete.
func (g *CodeGenerator) GenerateModule(moduleName string, mod *Module) error {
	if !g.visited[moduleName] {
		g.visited[moduleName] = true
		if err := g.initHeaderFile(moduleName); err != nil {
			return err
		}
		if err := g.initSourceFile(moduleName); err != nil {
			return err
		}
	}

	source, err := g.getSink(sourceFileName(moduleName))
	if err != nil {
		return err
	}
	g.current = source

	for _, decl := range mod.Decls {
		g.genGlobalDecl(decl)
	}
	return nil
}

// initHeaderFile emits the header guard, the mandatory <functional>
// include (function types are rendered as std::function), #includes for
// every re-exported import, and full forward declarations of every
// public symbol (§4.7).
func (g *CodeGenerator) initHeaderFile(moduleName string) error {
	header, err := g.getSink(headerFileName(moduleName))
	if err != nil {
		return err
	}
	guard := headerGuardMacro(moduleName)
	header.Print("#ifndef " + guard + "\n")
	header.Print("#define " + guard + "\n")
	header.Print("#include <functional>\n")

	info := g.env.Module(moduleName)
	for name, shouldExport := range info.Imports {
		if shouldExport {
			header.Print("#include \"" + headerFileName(name) + "\"\n")
		}
	}

	g.current = header
	g.forwardDecl = true
	for _, sym := range info.Symbols.GlobalPublicSymbols() {
		g.genForwardDecl(sym)
	}
	g.forwardDecl = false

	header.Print("#endif // " + guard + "\n")
	return nil
}

// initSourceFile emits the include of this module's own header, #includes
// for every non-re-exported import, and forward declarations of every
// global symbol of the module — public functions included, since a
// function may call a sibling declared later in the same file. Public
// structs are skipped: the header already gave them a full definition,
// and a source-file redefinition would be an illegal C++ redefinition
// (§4.7, matching sample/output/vector.cpp's re-declared
// `subtract`/`squared_magnitude` prototypes ahead of `squared_distance`).
func (g *CodeGenerator) initSourceFile(moduleName string) error {
	source, err := g.getSink(sourceFileName(moduleName))
	if err != nil {
		return err
	}
	source.Print("#include \"" + headerFileName(moduleName) + "\"\n")

	info := g.env.Module(moduleName)
	for name, shouldExport := range info.Imports {
		if !shouldExport {
			source.Print("#include \"" + headerFileName(name) + "\"\n")
		}
	}

	g.current = source
	g.forwardDecl = true
	for _, sym := range info.Symbols.GlobalSymbols() {
		if _, isStruct := sym.Decl.(*StructDecl); isStruct && sym.IsPublic {
			continue
		}
		g.genForwardDecl(sym)
	}
	g.forwardDecl = false
	return nil
}

// genForwardDecl renders one symbol's forward declaration: a function
// prototype, or a full struct definition (C++ structs can't be used
// before their full definition is seen, unlike functions — §4.7).
func (g *CodeGenerator) genForwardDecl(sym *Symbol) {
	switch decl := sym.Decl.(type) {
	case *FuncDecl:
		g.genFuncSignature(decl)
		g.current.Print(";\n")
	case *StructDecl:
		g.genStructDefinition(decl)
	}
}

func (g *CodeGenerator) genGlobalDecl(decl GlobalDecl) {
	switch d := decl.(type) {
	case *FuncDecl:
		g.genFuncSignature(d)
		g.current.Print(" ")
		g.genCompound(d.Body)
	case *StructDecl:
		// Already fully defined during the forward-declaration step; a
		// struct has no body of its own to emit here.
	}
}

func (g *CodeGenerator) genFuncSignature(fn *FuncDecl) {
	retType := "void"
	if fn.ReturnType != nil {
		retType = fn.ReturnType.CppDeclType()
	}
	g.current.Print(fmt.Sprintf("%s %s(", retType, fn.NameTok.Lexeme))
	for i, p := range fn.Params {
		if i > 0 {
			g.current.Print(", ")
		}
		g.current.Print(p.Usage.CppRefSpec(p.Type.CppDeclType()) + " " + p.NameTok.Lexeme)
	}
	g.current.Print(")")
}

func (g *CodeGenerator) genStructDefinition(sd *StructDecl) {
	g.current.Print("struct " + sd.NameTok.Lexeme + " {\n")
	g.current.IncreaseDepth()
	for _, m := range sd.Members {
		g.current.PrintIndented(m.Type.CppDeclType() + " " + m.NameTok.Lexeme + ";\n")
	}
	g.current.DecreaseDepth()
	g.current.Print("};\n")
}

func (g *CodeGenerator) genCompound(block *CompoundStmt) {
	g.current.PrintIndented("{\n")
	g.current.IncreaseDepth()
	for _, s := range block.Stmts {
		g.genStmt(s)
	}
	g.current.DecreaseDepth()
	g.current.PrintIndented("}\n")
}

func (g *CodeGenerator) genStmt(stmt Statement) {
	switch s := stmt.(type) {
	case *CompoundStmt:
		g.genCompound(s)
	case *VarDeclStmt:
		g.genVarDecl(s)
	case *ExprStmt:
		g.current.PrintIndented(s.Expr.String() + ";\n")
	case *IfStmt:
		g.genIf(s)
	case *ForStmt:
		g.genFor(s)
	case *WhileStmt:
		g.genWhile(s)
	case *JumpStmt:
		g.genJump(s)
	}
}

func (g *CodeGenerator) genVarDecl(s *VarDeclStmt) {
	g.current.PrintIndented(s.Type.CppDeclType() + " " + s.NameTok.Lexeme)
	g.current.Print(" = ")
	if s.Type.IsArray() {
		g.current.Print("{")
	}
	g.genVarInit(s.Init)
	if s.Type.IsArray() {
		g.current.Print("}")
	}
	g.current.Print(";\n")
}

func (g *CodeGenerator) genVarInit(init VarInit) {
	switch v := init.(type) {
	case *VarInitExpr:
		g.current.Print(v.Expr.String())
	case *VarInitList:
		g.current.Print("{")
		for i, e := range v.Elements {
			if i > 0 {
				g.current.Print(", ")
			}
			g.genVarInit(e)
		}
		g.current.Print("}")
	}
}

func (g *CodeGenerator) genIf(s *IfStmt) {
	g.current.PrintIndented("if (" + s.Cond.String() + ") ")
	g.current.DisableNextIndent()
	g.genCompound(s.Then)
	if s.Else != nil {
		g.current.PrintIndented("else ")
		switch e := s.Else.(type) {
		case *CompoundStmt:
			g.current.DisableNextIndent()
			g.genCompound(e)
		default:
			g.genStmt(e)
		}
	}
}

func (g *CodeGenerator) genWhile(s *WhileStmt) {
	g.current.PrintIndented("while (" + s.Cond.String() + ") ")
	g.current.DisableNextIndent()
	g.genCompound(s.Body)
}

// genFor desugars `for (init; cond; inc) body` into a nested block with a
// while(true) loop, exactly as the reference generator does (§4.7):
//
//	{
//	    init;
//	    while (true) {
//	        if (cond == false) break;
//	        body;
//	        inc;
//	    }
//	}
func (g *CodeGenerator) genFor(s *ForStmt) {
	g.current.PrintIndented("{\n")
	g.current.IncreaseDepth()

	if s.Init != nil {
		g.genStmt(s.Init)
	}

	g.current.PrintIndented("while (true) {\n")
	g.current.IncreaseDepth()

	if s.Cond != nil {
		g.current.PrintIndented("if (" + s.Cond.String() + " == false) break;\n")
	}

	g.genCompound(s.Body)

	if s.Inc != nil {
		g.current.PrintIndented(s.Inc.String())
		g.current.Print(";\n")
	}

	g.current.DecreaseDepth()
	g.current.PrintIndented("}\n")

	g.current.DecreaseDepth()
	g.current.PrintIndented("}\n")
}

func (g *CodeGenerator) genJump(s *JumpStmt) {
	g.current.PrintIndented(s.Kind.String())
	if s.Kind == JumpReturn && s.Value != nil {
		g.current.Print(" " + s.Value.String())
	}
	g.current.Print(";\n")
}
