// Completion: 100% - Program-wide module environment and cross-module
// symbol resolution, grounded on
// original_source/src/parser/ProgramEnvironment.cpp
package main

// ModuleInfo is everything known about one logical module: its merged
// import set and its own symbol table (§3 "ModuleInfo").
type ModuleInfo struct {
	// Imports is keyed by import-name lexeme; ShouldExport is the logical
	// OR across every fragment/duplicate import of that name (§3, §9
	// "Import set ordering" — the Open Question resolution recorded in
	// DESIGN.md).
	Imports map[string]bool
	Symbols *SymbolTable
}

func newModuleInfo() *ModuleInfo {
	return &ModuleInfo{Imports: make(map[string]bool), Symbols: NewSymbolTable()}
}

// ProgramEnvironment maps module-name -> ModuleInfo across every parsed
// fragment in the program (§4.4).
type ProgramEnvironment struct {
	modules map[string]*ModuleInfo
}

// NewProgramEnvironment builds an empty environment.
func NewProgramEnvironment() *ProgramEnvironment {
	return &ProgramEnvironment{modules: make(map[string]*ModuleInfo)}
}

// ModuleNames returns every logical module name seen so far, in no
// particular order.
func (env *ProgramEnvironment) ModuleNames() []string {
	names := make([]string, 0, len(env.modules))
	for name := range env.modules {
		names = append(names, name)
	}
	return names
}

// Module returns the ModuleInfo for name, or nil if unseen.
func (env *ProgramEnvironment) Module(name string) *ModuleInfo {
	return env.modules[name]
}

// AddModuleDeclaration idempotently creates the module entry (if this is
// the first fragment seen for that name) and unions import directives
// with an explicit OR on ShouldExport (§4.4).
func (env *ProgramEnvironment) AddModuleDeclaration(mod *Module) {
	info, ok := env.modules[mod.Name()]
	if !ok {
		info = newModuleInfo()
		env.modules[mod.Name()] = info
	}
	for _, imp := range mod.Imports {
		info.Imports[imp.NameTok.Lexeme] = info.Imports[imp.NameTok.Lexeme] || imp.ShouldExport
	}
}

// OpenScope delegates to the named module's symbol table.
func (env *ProgramEnvironment) OpenScope(moduleName string) {
	env.modules[moduleName].Symbols.OpenScope()
}

// CloseScope delegates to the named module's symbol table.
func (env *ProgramEnvironment) CloseScope(moduleName string) {
	env.modules[moduleName].Symbols.CloseScope()
}

// AddSymbol delegates to the named module's symbol table, raising
// *SemanticError* on ODR violation (§4.4).
func (env *ProgramEnvironment) AddSymbol(moduleName string, name string, typ *Type, isPublic bool, decl Node) error {
	return env.modules[moduleName].Symbols.AddSymbol(name, typ, isPublic, decl)
}

// FindSymbol resolves name starting from moduleName: first a local lookup
// of any visibility, then a cycle-safe transitive public-only search
// through re-exported imports (§4.4).
func (env *ProgramEnvironment) FindSymbol(moduleName string, name string) (*Symbol, bool) {
	info := env.modules[moduleName]
	if info == nil {
		return nil, false
	}
	if sym, ok := info.Symbols.FindLocal(name); ok {
		return sym, true
	}
	visited := map[string]bool{moduleName: true}
	return env.findPublicTransitive(moduleName, name, visited, true)
}

// findPublicTransitive implements phase 2 of FindSymbol. moduleName's own
// direct imports are always searched (any should_export value: a module
// always sees the public symbols of what it directly imports) — that is
// the isFirstHop==true case. Past that first hop, an edge only gets
// checked and recursed through at all if it is re-exported: "only
// re-exported imports of that [intermediate] module propagate further;
// private imports of the intermediate module are not traversed" (§4.4).
// The visited set, seeded with the starting module, makes cyclic imports
// terminate rather than loop (§8 "Cycle safety").
func (env *ProgramEnvironment) findPublicTransitive(moduleName string, name string, visited map[string]bool, isFirstHop bool) (*Symbol, bool) {
	info := env.modules[moduleName]
	if info == nil {
		return nil, false
	}

	for importedName, shouldExport := range info.Imports {
		if visited[importedName] {
			continue
		}
		if !isFirstHop && !shouldExport {
			continue
		}
		visited[importedName] = true

		imported := env.modules[importedName]
		if imported == nil {
			continue
		}
		if sym, ok := imported.Symbols.FindLocal(name); ok && sym.IsPublic {
			return sym, true
		}
		if sym, ok := env.findPublicTransitive(importedName, name, visited, false); ok {
			return sym, true
		}
	}
	return nil, false
}
