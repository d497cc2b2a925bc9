// Package testutil provides common test helpers for the aiida-project module.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// BashActivateScript is a trimmed copy of the bash/zsh activate script that venv writes.
const BashActivateScript = `# This file must be used with "source bin/activate" *from bash*
# you cannot run it directly

deactivate () {
    # reset old environment variables
    if [ -n "${_OLD_VIRTUAL_PATH:-}" ] ; then
        PATH="${_OLD_VIRTUAL_PATH:-}"
        export PATH
        unset _OLD_VIRTUAL_PATH
    fi
    unset VIRTUAL_ENV
}

# unset irrelevant variables
deactivate nondestructive

VIRTUAL_ENV="/tmp/proj/.venv"
export VIRTUAL_ENV
`

// FishActivateScript is a trimmed copy of the fish activate script that venv writes.
const FishActivateScript = `# This file must be used with "source <venv>/bin/activate.fish" *from fish*
# (https://fishshell.com/); you cannot run it directly.

function deactivate  -d "Exit virtual environment and return to normal shell environment"
    # reset old environment variables
    if test -n "$_OLD_VIRTUAL_PATH"
        set -gx PATH $_OLD_VIRTUAL_PATH
        set -e _OLD_VIRTUAL_PATH
    end
    set -e VIRTUAL_ENV
end

# Unset irrelevant variables.
deactivate nondestructive

set -gx VIRTUAL_ENV "/tmp/proj/.venv"
`

// WriteActivationScripts creates <venvPath>/bin with bash and fish activate scripts,
// emulating what a successful environment creation leaves behind.
func WriteActivationScripts(t *testing.T, venvPath string) string {
	t.Helper()

	binDir := filepath.Join(venvPath, "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		t.Fatalf("WriteActivationScripts: mkdir failed: %v", err)
	}
	files := map[string]string{
		"activate":      BashActivateScript,
		"activate.fish": FishActivateScript,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(binDir, name), []byte(content), 0644); err != nil {
			t.Fatalf("WriteActivationScripts: write %s failed: %v", name, err)
		}
	}
	return binDir
}

// NewEnvCommander returns an OK commander whose environment-creation calls
// (`<python> -m venv .` and `uv venv ... <venv>`) write activation scripts.
func NewEnvCommander(t *testing.T) *FakeCommander {
	t.Helper()

	fc := NewOKCommander()
	fc.OnRun = func(call Call) {
		switch {
		case len(call.Args) >= 2 && call.Args[0] == "-m" && call.Args[1] == "venv":
			WriteActivationScripts(t, call.Dir)
		case len(call.Args) >= 2 && call.Args[0] == "venv":
			WriteActivationScripts(t, call.Args[len(call.Args)-1])
		}
	}
	return fc
}

// TempConfigFile creates a temporary config.toml with the given content
// and returns its path. The file is automatically cleaned up.
func TempConfigFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("TempConfigFile: write failed: %v", err)
	}

	return path
}

// SetupTestConfig creates a config.toml whose project and registry directories
// live under a fresh temp dir. Returns the config path and that root dir.
func SetupTestConfig(t *testing.T, shell string) (cfgPath, root string) {
	t.Helper()

	root = t.TempDir()
	content := `shell = "` + shell + `"
project_dir = "` + filepath.Join(root, "projects") + `"
registry_dir = "` + filepath.Join(root, "registry") + `"
default_python = "/usr/bin/python3"
default_engine = "venv"
command_timeout = "1m"
dir_structure = ["data", "notebooks"]
`
	return TempConfigFile(t, content), root
}

// ReadFile reads a file and fails the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}
