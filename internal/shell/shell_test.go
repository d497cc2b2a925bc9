package shell_test

import (
	"testing"

	"github.com/hbjs97/aiida-project/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_AllSupportedShells(t *testing.T) {
	for _, name := range shell.Names() {
		t.Run(name, func(t *testing.T) {
			p, err := shell.Lookup(name)
			require.NoError(t, err)
			assert.Equal(t, shell.Kind(name), p.Kind)
			assert.NotEmpty(t, p.ActivateFile)
			assert.NotEmpty(t, p.DeactivateMarker)
		})
	}
}

func TestLookup_Values(t *testing.T) {
	bash, err := shell.Lookup("bash")
	require.NoError(t, err)
	assert.Equal(t, "activate", bash.ActivateFile)
	assert.Equal(t, "deactivate () {", bash.DeactivateMarker)

	zsh, err := shell.Lookup("zsh")
	require.NoError(t, err)
	assert.Equal(t, bash.ActivateFile, zsh.ActivateFile)
	assert.Equal(t, bash.DeactivateMarker, zsh.DeactivateMarker)

	fish, err := shell.Lookup("fish")
	require.NoError(t, err)
	assert.Equal(t, "activate.fish", fish.ActivateFile)
	assert.Contains(t, fish.DeactivateMarker, "function deactivate")
}

func TestLookup_Unsupported(t *testing.T) {
	for _, name := range []string{"tcsh", "", "powershell", "sh"} {
		_, err := shell.Lookup(name)
		assert.ErrorIs(t, err, shell.ErrInvalidShell, "shell %q", name)
	}
}

func TestParse_NormalizesCase(t *testing.T) {
	k, err := shell.Parse(" Zsh ")
	require.NoError(t, err)
	assert.Equal(t, shell.Zsh, k)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"bash", "fish", "zsh"}, shell.Names())
}

func TestExport(t *testing.T) {
	tests := []struct {
		kind shell.Kind
		want string
	}{
		{shell.Bash, "export AIIDA_PATH='/tmp/proj'\n"},
		{shell.Zsh, "export AIIDA_PATH='/tmp/proj'\n"},
		{shell.Fish, "set -gx AIIDA_PATH '/tmp/proj'\n"},
	}
	for _, tt := range tests {
		got, err := shell.Export(tt.kind, "AIIDA_PATH", "/tmp/proj")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "shell %s", tt.kind)
	}
}

func TestUnset(t *testing.T) {
	got, err := shell.Unset(shell.Bash, "AIIDA_PATH")
	require.NoError(t, err)
	assert.Equal(t, "unset AIIDA_PATH\n", got)

	got, err = shell.Unset(shell.Fish, "AIIDA_PATH")
	require.NoError(t, err)
	assert.Equal(t, "set -e AIIDA_PATH\n", got)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `'it'\''s'`, shell.Quote(shell.Bash, "it's"))
	assert.Equal(t, `'$HOME'`, shell.Quote(shell.Zsh, "$HOME"))
	assert.Equal(t, `'it\'s'`, shell.Quote(shell.Fish, "it's"))
	assert.Equal(t, `'a\\b'`, shell.Quote(shell.Fish, `a\b`))
	assert.Equal(t, `'a\b'`, shell.Quote(shell.Bash, `a\b`))
}

func TestValidateVarName(t *testing.T) {
	for _, name := range []string{"AIIDA_PATH", "_x", "a1"} {
		assert.NoError(t, shell.ValidateVarName(name), "name %q", name)
	}
	for _, name := range []string{"", "MY-VAR", "1ABC", "A B", "A=B", "$X"} {
		assert.ErrorIs(t, shell.ValidateVarName(name), shell.ErrInvalidVarName, "name %q", name)
	}
}

func TestExport_RejectsInvalidName(t *testing.T) {
	for _, k := range []shell.Kind{shell.Bash, shell.Zsh, shell.Fish} {
		_, err := shell.Export(k, "MY-VAR", "x")
		assert.ErrorIs(t, err, shell.ErrInvalidVarName)
		_, err = shell.Unset(k, "MY-VAR")
		assert.ErrorIs(t, err, shell.ErrInvalidVarName)
	}
}
