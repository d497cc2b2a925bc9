package shell

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	// ErrInvalidShell는 지원하지 않는 셸 이름이 주어졌을 때 반환된다.
	ErrInvalidShell = errors.New("지원하지 않는 셸")
	// ErrInvalidVarName는 환경변수 이름이 셸 식별자 규칙을 어길 때 반환된다.
	ErrInvalidVarName = errors.New("올바르지 않은 환경변수 이름")
)

var varNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Kind는 지원하는 셸 종류다.
type Kind string

const (
	Bash Kind = "bash"
	Zsh  Kind = "zsh"
	Fish Kind = "fish"
)

// activateFiles는 셸별 venv 활성화 스크립트 파일 이름이다.
var activateFiles = map[Kind]string{
	Bash: "activate",
	Zsh:  "activate",
	Fish: "activate.fish",
}

// deactivateMarkers는 활성화 스크립트 안에서 deactivate 함수를 여는 줄이다.
var deactivateMarkers = map[Kind]string{
	Bash: "deactivate () {",
	Zsh:  "deactivate () {",
	Fish: `function deactivate  -d "Exit virtual environment and return to normal shell environment"`,
}

// Profile은 하나의 셸에 대한 활성화 파일 정보다.
type Profile struct {
	Kind             Kind
	ActivateFile     string
	DeactivateMarker string
}

// Parse는 셸 이름을 Kind로 변환한다. 기본값으로 대체하지 않는다.
func Parse(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := activateFiles[k]; !ok {
		return "", fmt.Errorf("shell.Parse: %w: %q (지원: %s)", ErrInvalidShell, name, strings.Join(Names(), ", "))
	}
	return k, nil
}

// Lookup은 셸 이름에 해당하는 Profile을 반환한다.
func Lookup(name string) (Profile, error) {
	k, err := Parse(name)
	if err != nil {
		return Profile{}, err
	}
	marker, ok := deactivateMarkers[k]
	if !ok {
		return Profile{}, fmt.Errorf("shell.Lookup: %w: %q 의 deactivate 마커 없음", ErrInvalidShell, name)
	}
	return Profile{Kind: k, ActivateFile: activateFiles[k], DeactivateMarker: marker}, nil
}

// Names는 지원하는 셸 이름 목록을 정렬해서 반환한다.
func Names() []string {
	names := make([]string, 0, len(activateFiles))
	for k := range activateFiles {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}

// ValidateVarName은 name이 bash, zsh, fish 모두에서 쓸 수 있는 변수 이름인지 확인한다.
func ValidateVarName(name string) error {
	if !varNameRegex.MatchString(name) {
		return fmt.Errorf("shell.ValidateVarName: %w: %q", ErrInvalidVarName, name)
	}
	return nil
}

// Quote는 value를 셸 k에서 확장 없이 그대로 읽히는 작은따옴표 문자열로 만든다.
func Quote(k Kind, value string) string {
	switch k {
	case Fish:
		// fish의 작은따옴표 안에서는 \ 와 \' 만 이스케이프다.
		r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
		return "'" + r.Replace(value) + "'"
	default: // bash, zsh
		return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
	}
}

// Export는 환경변수를 설정하는 셸 구문을 생성한다.
func Export(k Kind, name, value string) (string, error) {
	if err := ValidateVarName(name); err != nil {
		return "", err
	}
	switch k {
	case Fish:
		return fmt.Sprintf("set -gx %s %s\n", name, Quote(k, value)), nil
	default: // bash, zsh
		return fmt.Sprintf("export %s=%s\n", name, Quote(k, value)), nil
	}
}

// Unset은 환경변수를 해제하는 셸 구문을 생성한다.
func Unset(k Kind, name string) (string, error) {
	if err := ValidateVarName(name); err != nil {
		return "", err
	}
	switch k {
	case Fish:
		return fmt.Sprintf("set -e %s\n", name), nil
	default:
		return fmt.Sprintf("unset %s\n", name), nil
	}
}
