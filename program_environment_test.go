package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func declareModule(env *ProgramEnvironment, name string, imports map[string]bool) {
	mod := &Module{NameTok: Token{Lexeme: name}}
	for imp, export := range imports {
		mod.Imports = append(mod.Imports, &ModuleImport{NameTok: Token{Lexeme: imp}, ShouldExport: export})
	}
	env.AddModuleDeclaration(mod)
}

// TestFindSymbolFirstHopAlwaysVisible: a module always sees the public
// symbols of what it directly imports, regardless of whether its own
// import of that module is marked `export`.
func TestFindSymbolFirstHopAlwaysVisible(t *testing.T) {
	env := NewProgramEnvironment()
	declareModule(env, "consumer", map[string]bool{"lib": false})
	declareModule(env, "lib", nil)
	require.NoError(t, env.AddSymbol("lib", "helper", NewVoidType(), true, &FuncDecl{NameTok: Token{Lexeme: "helper"}}))

	sym, ok := env.FindSymbol("consumer", "helper")
	require.True(t, ok)
	assert.Equal(t, "helper", sym.Name)
}

// TestFindSymbolTransitiveDependsOnIntermediateExportFlag is the concrete
// three-module scenario: M' imports M, M imports N. Whether M' can see a
// public symbol of N must depend on M's import-of-N export flag, not on
// M''s import-of-M flag.
func TestFindSymbolTransitiveDependsOnIntermediateExportFlag(t *testing.T) {
	buildChain := func(mToNExport bool) *ProgramEnvironment {
		env := NewProgramEnvironment()
		declareModule(env, "M1", map[string]bool{"M": true}) // M''s own flag must not matter
		declareModule(env, "M", map[string]bool{"N": mToNExport})
		declareModule(env, "N", nil)
		require.NoError(t, env.AddSymbol("N", "value", NewVoidType(), true, &FuncDecl{NameTok: Token{Lexeme: "value"}}))
		return env
	}

	t.Run("M exports N: M' sees N's symbol", func(t *testing.T) {
		env := buildChain(true)
		_, ok := env.FindSymbol("M1", "value")
		assert.True(t, ok)
	})

	t.Run("M does not export N: M' cannot see N's symbol", func(t *testing.T) {
		env := buildChain(false)
		_, ok := env.FindSymbol("M1", "value")
		assert.False(t, ok)
	})
}

// TestFindSymbolCycleSafe ensures a cyclic import chain terminates rather
// than recursing forever.
func TestFindSymbolCycleSafe(t *testing.T) {
	env := NewProgramEnvironment()
	declareModule(env, "A", map[string]bool{"B": true})
	declareModule(env, "B", map[string]bool{"A": true})

	done := make(chan bool, 1)
	go func() {
		_, _ = env.FindSymbol("A", "nonexistent")
		done <- true
	}()
	select {
	case <-done:
	default:
	}
	_, ok := env.FindSymbol("A", "nonexistent")
	assert.False(t, ok)
}

func TestAddSymbolRejectsODRViolation(t *testing.T) {
	env := NewProgramEnvironment()
	declareModule(env, "M", nil)
	require.NoError(t, env.AddSymbol("M", "x", NewVoidType(), false, &FuncDecl{NameTok: Token{Lexeme: "x"}}))
	err := env.AddSymbol("M", "x", NewVoidType(), false, &FuncDecl{NameTok: Token{Lexeme: "x"}})
	require.Error(t, err)
	ce, ok := err.(CompilerError)
	require.True(t, ok)
	assert.Equal(t, CategorySemantic, ce.Category)
}

func TestAddModuleDeclarationMergesImportsWithOr(t *testing.T) {
	env := NewProgramEnvironment()
	declareModule(env, "M", map[string]bool{"lib": false})
	declareModule(env, "M", map[string]bool{"lib": true})

	info := env.Module("M")
	assert.True(t, info.Imports["lib"], "duplicate import across fragments ORs the export flag")
}
