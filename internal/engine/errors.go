package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hbjs97/aiida-project/internal/cmdexec"
)

var (
	// ErrCommandFailed는 백엔드 명령이 0이 아닌 코드로 종료했을 때 매칭된다.
	ErrCommandFailed = errors.New("백엔드 명령 실패")
	// ErrCommandTimeout는 백엔드 명령이 제한 시간 내에 끝나지 않았을 때 매칭된다.
	ErrCommandTimeout = errors.New("백엔드 명령 시간 초과")
)

// CommandError는 실패한 백엔드 명령의 종료 코드와 출력이다.
type CommandError struct {
	Name string
	Args []string
	Dir  string
	// ExitCode는 프로세스가 시작조차 못 했거나 시간 초과로 종료된 경우 -1이다.
	ExitCode int
	Output   []byte
	Err      error
}

func newCommandError(name string, args []string, dir string, out []byte, err error) *CommandError {
	code, ok := cmdexec.ExitCode(err)
	if !ok {
		code = -1
	}
	return &CommandError{Name: name, Args: args, Dir: dir, ExitCode: code, Output: out, Err: err}
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s %s: exit %d", e.Name, strings.Join(e.Args, " "), e.ExitCode)
	if out := strings.TrimSpace(string(e.Output)); out != "" {
		msg += ": " + lastLines(out, 5)
	}
	return msg
}

// Is는 ErrCommandFailed 와 ErrCommandTimeout 매칭을 지원한다.
func (e *CommandError) Is(target error) bool {
	switch target {
	case ErrCommandFailed:
		return true
	case ErrCommandTimeout:
		return errors.Is(e.Err, cmdexec.ErrTimeout)
	}
	return false
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
