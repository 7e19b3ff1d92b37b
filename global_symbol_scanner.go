// Completion: 100% - Pre-pass global symbol scanner, grounded on
// original_source/src/parser/GlobalSymbolScanner.cpp (§4.5)
package main

// ScanModule registers one parsed fragment's module declaration and its
// top-level declarations into env. It visits only Module, FuncDecl, and
// StructDecl — it never descends into function bodies, since only
// cross-module-visible names matter here (§4.5). ScanModule must run on
// every parsed file before any type checking begins, because struct-type
// validity and function-call resolution depend on symbols declared in
// other files.
func ScanModule(env *ProgramEnvironment, mod *Module) error {
	moduleName := mod.Name()
	env.AddModuleDeclaration(mod)

	for _, decl := range mod.Decls {
		declType := globalDeclType(decl)
		if err := env.AddSymbol(moduleName, decl.DeclName(), declType, decl.IsExported(), decl); err != nil {
			return err
		}
	}
	return nil
}

// globalDeclType derives the Type under which a top-level declaration is
// registered: a FunctionType for FuncDecl, a named struct Type for
// StructDecl.
func globalDeclType(decl GlobalDecl) *Type {
	switch d := decl.(type) {
	case *FuncDecl:
		return NewFunctionType(d.FuncType())
	case *StructDecl:
		return NewStructType(d.DeclName())
	default:
		return NewVoidType()
	}
}
