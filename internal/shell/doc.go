// Package shell holds static per-shell knowledge: the venv activation file name,
// the line that opens the deactivate routine, and the export/unset syntax used
// for hooks injected into those files (bash, zsh, fish).
package shell
