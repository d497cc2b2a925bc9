package activation_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/hbjs97/aiida-project/internal/activation"
	"github.com/hbjs97/aiida-project/internal/shell"
	"github.com/hbjs97/aiida-project/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPatcher(t *testing.T, shellName string, opts ...activation.Option) (*activation.Patcher, string) {
	t.Helper()
	venv := filepath.Join(t.TempDir(), ".venv")
	testutil.WriteActivationScripts(t, venv)
	profile, err := shell.Lookup(shellName)
	require.NoError(t, err)
	return activation.New(venv, profile, opts...), venv
}

func TestNew_Path(t *testing.T) {
	bash, _ := shell.Lookup("bash")
	fish, _ := shell.Lookup("fish")
	assert.Equal(t, "/tmp/p/.venv/bin/activate", activation.New("/tmp/p/.venv", bash).Path())
	assert.Equal(t, "/tmp/p/.venv/bin/activate.fish", activation.New("/tmp/p/.venv", fish).Path())
}

func TestAppendActivateText_AppendsAtEnd(t *testing.T) {
	p, _ := newPatcher(t, "bash")

	require.NoError(t, p.AppendActivateText("X"))

	content := testutil.ReadFile(t, p.Path())
	assert.True(t, strings.HasSuffix(content, "X"))
	assert.Equal(t, testutil.BashActivateScript, strings.TrimSuffix(content, "X"))
}

func TestAppendActivateText_Twice(t *testing.T) {
	p, _ := newPatcher(t, "fish")

	require.NoError(t, p.AppendActivateText("set -gx A 1\n"))
	require.NoError(t, p.AppendActivateText("set -gx B 2\n"))

	content := testutil.ReadFile(t, p.Path())
	assert.True(t, strings.HasSuffix(content, "set -gx A 1\nset -gx B 2\n"))
}

func TestAppendActivateText_MissingFile(t *testing.T) {
	bash, _ := shell.Lookup("bash")
	venv := filepath.Join(t.TempDir(), ".venv")
	p := activation.New(venv, bash)

	err := p.AppendActivateText("X")
	assert.ErrorIs(t, err, activation.ErrActivationFileMissing)
	_, statErr := os.Stat(p.Path())
	assert.True(t, os.IsNotExist(statErr), "activation file must not be created")
}

func TestAppendDeactivateText_Bash(t *testing.T) {
	p, _ := newPatcher(t, "bash")

	require.NoError(t, p.AppendDeactivateText("Y"))

	content := testutil.ReadFile(t, p.Path())
	want := strings.Replace(testutil.BashActivateScript,
		"deactivate () {\n", "deactivate () {\n    Y\n\n", 1)
	assert.Equal(t, want, content)
}

func TestAppendDeactivateText_Fish(t *testing.T) {
	p, _ := newPatcher(t, "fish")

	require.NoError(t, p.AppendDeactivateText("set -e AIIDA_PATH\n"))

	content := testutil.ReadFile(t, p.Path())
	marker := `function deactivate  -d "Exit virtual environment and return to normal shell environment"`
	assert.Contains(t, content, marker+"\n    set -e AIIDA_PATH\n\n    # reset old environment variables")
}

func TestAppendDeactivateText_NormalizesIndent(t *testing.T) {
	p, _ := newPatcher(t, "zsh")

	require.NoError(t, p.AppendDeactivateText("  Y\n      Z"))

	content := testutil.ReadFile(t, p.Path())
	assert.Contains(t, content, "deactivate () {\n    Y\n    Z\n\n")
	assert.NotContains(t, content, "      Y")
}

func TestAppendDeactivateText_PreservesTrailingContent(t *testing.T) {
	p, _ := newPatcher(t, "bash")

	require.NoError(t, p.AppendDeactivateText("Y"))

	content := testutil.ReadFile(t, p.Path())
	idx := strings.Index(testutil.BashActivateScript, "deactivate () {") + len("deactivate () {")
	assert.True(t, strings.HasSuffix(content, testutil.BashActivateScript[idx:]))
}

func TestAppendDeactivateText_MarkerNotFound(t *testing.T) {
	p, _ := newPatcher(t, "bash")
	original := "# no deactivate routine here\n"
	require.NoError(t, os.WriteFile(p.Path(), []byte(original), 0644))

	err := p.AppendDeactivateText("Y")
	assert.ErrorIs(t, err, activation.ErrMarkerNotFound)
	assert.Equal(t, original, testutil.ReadFile(t, p.Path()))
}

func TestAppendDeactivateText_MissingFile(t *testing.T) {
	fish, _ := shell.Lookup("fish")
	p := activation.New(filepath.Join(t.TempDir(), ".venv"), fish)

	err := p.AppendDeactivateText("Y")
	assert.ErrorIs(t, err, activation.ErrActivationFileMissing)
}

func TestAppendDeactivateText_MultipleMarkers(t *testing.T) {
	doubled := "deactivate () {\n    a\n}\ndeactivate () {\n    b\n}\n"

	tests := []struct {
		name string
		opts []activation.Option
		want string
	}{
		{
			name: "first only by default",
			want: "deactivate () {\n    Y\n\n    a\n}\ndeactivate () {\n    b\n}\n",
		},
		{
			name: "all when requested",
			opts: []activation.Option{activation.WithMode(activation.InsertAll)},
			want: "deactivate () {\n    Y\n\n    a\n}\ndeactivate () {\n    Y\n\n    b\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newPatcher(t, "bash", tt.opts...)
			require.NoError(t, os.WriteFile(p.Path(), []byte(doubled), 0644))

			require.NoError(t, p.AppendDeactivateText("Y"))
			assert.Equal(t, tt.want, testutil.ReadFile(t, p.Path()))
		})
	}
}

func TestAppendDeactivateText_KeepsPermissions(t *testing.T) {
	p, _ := newPatcher(t, "bash")
	require.NoError(t, os.Chmod(p.Path(), 0640))

	require.NoError(t, p.AppendDeactivateText("Y"))

	info, err := os.Stat(p.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
}

func TestAppendDeactivateText_ConcurrentPatchesAllLand(t *testing.T) {
	p, venv := newPatcher(t, "bash")
	bash, _ := shell.Lookup("bash")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// 인스턴스마다 별도 파일 핸들로 잠금을 잡는다
			assert.NoError(t, activation.New(venv, bash).AppendDeactivateText(fmt.Sprintf("unset VAR_%d", i)))
		}(i)
	}
	wg.Wait()

	content := testutil.ReadFile(t, p.Path())
	for i := 0; i < 10; i++ {
		assert.Contains(t, content, fmt.Sprintf("    unset VAR_%d\n", i))
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"Y", "    Y"},
		{"  Y", "    Y"},
		{"a\nb\n", "    a\n    b"},
		{"a\r\n  b", "    a\n    b"},
		{"\tkeep-tab", "    \tkeep-tab"},
		{"a\n\nb", "    a\n    \n    b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, activation.Indent(tt.in), "input %q", tt.in)
	}
}
