// Completion: 100% - Flat scope-level symbol stack, grounded on
// original_source/src/parser/SymbolTable.cpp
package main

// Symbol is one declared name, owned by exactly one ModuleInfo (§3 "Symbol").
type Symbol struct {
	Name       string
	Type       *Type
	IsPublic   bool
	ScopeLevel int
	Decl       Node // the declaring AST node (FuncDecl, StructDecl, Parameter, VarDeclStmt)
}

// SymbolTable is an ordered stack of symbols with a current scope level;
// scopes are strictly nested (§3 "SymbolTable", §4.4).
type SymbolTable struct {
	entries      []*Symbol
	currentScope int
}

// NewSymbolTable builds an empty table at scope level 0.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// OpenScope enters a new nested scope.
func (t *SymbolTable) OpenScope() {
	t.currentScope++
}

// CloseScope leaves the current scope, popping every entry whose scope
// level exceeds the level being returned to (§4.4).
func (t *SymbolTable) CloseScope() {
	t.currentScope--
	for len(t.entries) > 0 && t.entries[len(t.entries)-1].ScopeLevel > t.currentScope {
		t.entries = t.entries[:len(t.entries)-1]
	}
}

// CurrentScope reports the active scope level.
func (t *SymbolTable) CurrentScope() int {
	return t.currentScope
}

// AddSymbol appends a new symbol at the current scope level. It is an ODR
// violation (*SemanticError*, §4.4/§7) for two symbols to share a name at
// the same scope level.
func (t *SymbolTable) AddSymbol(name string, typ *Type, isPublic bool, decl Node) error {
	for i := len(t.entries) - 1; i >= 0; i-- {
		e := t.entries[i]
		if e.ScopeLevel != t.currentScope {
			break
		}
		if e.Name == name {
			return symbolRedefinitionErr(name, decl)
		}
	}
	t.entries = append(t.entries, &Symbol{Name: name, Type: typ, IsPublic: isPublic, ScopeLevel: t.currentScope, Decl: decl})
	return nil
}

// symbolRedefinitionErr builds a *SemanticError*-shaped error using the
// redefining declaration's own position when available.
func symbolRedefinitionErr(name string, decl Node) error {
	loc := SourceLocation{}
	if p, ok := decl.(interface{ Pos() SourceLocation }); ok {
		loc = p.Pos()
	}
	e := SymbolRedefinitionError(name, loc)
	return e
}

// FindLocal looks up name in this table only, any visibility, tail-first
// (innermost scope wins) — §3 "Lookup returns the innermost match".
func (t *SymbolTable) FindLocal(name string) (*Symbol, bool) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Name == name {
			return t.entries[i], true
		}
	}
	return nil, false
}

// GlobalPublicSymbols returns every scope-level-0 symbol with IsPublic set,
// used by the code generator for header emission (§4.4, §4.7).
func (t *SymbolTable) GlobalPublicSymbols() []*Symbol {
	var out []*Symbol
	for _, e := range t.entries {
		if e.ScopeLevel == 0 && e.IsPublic {
			out = append(out, e)
		}
	}
	return out
}

// GlobalSymbols returns every scope-level-0 symbol regardless of
// visibility, in declaration order. The source file re-declares every
// function of its own module — public ones included, even though the
// header already declares them — so that a function can call another
// declared later in the same file (§4.7, matching sample/output/vector.cpp
// where `squared_distance` calls `subtract`/`squared_magnitude` ahead of
// their own definitions further down the file).
func (t *SymbolTable) GlobalSymbols() []*Symbol {
	var out []*Symbol
	for _, e := range t.entries {
		if e.ScopeLevel == 0 {
			out = append(out, e)
		}
	}
	return out
}
