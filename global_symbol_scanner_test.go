package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanModuleDoesNotDescendIntoFunctionBodies(t *testing.T) {
	src := `module m;

f: func = () {
  local_var: i32 = 0;
}
`
	lex := NewLexer(NewSourceFile("m.mylang", src))
	p := NewParser(lex)
	mod, perr := p.ParseProgram("m.mylang")
	require.Nil(t, perr, "%v", perr)

	env := NewProgramEnvironment()
	require.NoError(t, ScanModule(env, mod))

	_, ok := env.Module("m").Symbols.FindLocal("f")
	assert.True(t, ok)
	_, ok = env.Module("m").Symbols.FindLocal("local_var")
	assert.False(t, ok, "the pre-pass scanner must never see statement-level locals")
}

func TestScanModuleMultiFragmentUnion(t *testing.T) {
	fragA := `module shapes;

circle: struct = {
  radius: f32;
}
`
	fragB := `module shapes;

square: struct = {
  side: f32;
}
`
	env := NewProgramEnvironment()
	for i, src := range []string{fragA, fragB} {
		fileName := "shapes" + string(rune('0'+i)) + ".mylang"
		lex := NewLexer(NewSourceFile(fileName, src))
		p := NewParser(lex)
		mod, perr := p.ParseProgram(fileName)
		require.Nil(t, perr, "%v", perr)
		require.NoError(t, ScanModule(env, mod))
	}

	_, ok := env.Module("shapes").Symbols.FindLocal("circle")
	assert.True(t, ok)
	_, ok = env.Module("shapes").Symbols.FindLocal("square")
	assert.True(t, ok)
}

func TestScanModuleODRViolationAcrossFragments(t *testing.T) {
	fragA := `module shapes;

circle: struct = {
  radius: f32;
}
`
	fragB := `module shapes;

circle: struct = {
  side: f32;
}
`
	env := NewProgramEnvironment()
	lexA := NewLexer(NewSourceFile("a.mylang", fragA))
	modA, perrA := NewParser(lexA).ParseProgram("a.mylang")
	require.Nil(t, perrA, "%v", perrA)
	require.NoError(t, ScanModule(env, modA))

	lexB := NewLexer(NewSourceFile("b.mylang", fragB))
	modB, perrB := NewParser(lexB).ParseProgram("b.mylang")
	require.Nil(t, perrB, "%v", perrB)

	err := ScanModule(env, modB)
	require.Error(t, err)
}
