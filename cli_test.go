package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCmdCompileGlobDiscoveryAndOutput(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writeTempSource(t, srcDir, "a.mylang", `module a;

f: func = () -> i32 {
  return 1;
}
`)
	writeTempSource(t, srcDir, "b.mylang", `module b;

g: func = () -> i32 {
  return 2;
}
`)

	cfg := DefaultConfig()
	cfg.OutDir = outDir
	ctx := &CommandContext{Config: cfg}

	err := cmdCompile(ctx, []string{filepath.Join(srcDir, "*.mylang")})
	require.NoError(t, err)

	for _, name := range []string{"a.h", "a.cpp", "b.h", "b.cpp"} {
		_, statErr := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, statErr)
	}
}

func TestCmdCompileNoMatchesIsAnError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutDir = t.TempDir()
	ctx := &CommandContext{Config: cfg}

	err := cmdCompile(ctx, []string{filepath.Join(t.TempDir(), "*.mylang")})
	assert.Error(t, err)
}

func TestRunCLIHelpAndVersionDoNotError(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, RunCLI([]string{"help"}, cfg))
	assert.NoError(t, RunCLI([]string{"version"}, cfg))
	assert.NoError(t, RunCLI(nil, cfg))
}
