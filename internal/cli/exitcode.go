package cli

import (
	"errors"
)

// ExitCode는 aiida-project의 종료 코드다.
type ExitCode int

const (
	// ExitSuccess는 정상 종료다.
	ExitSuccess ExitCode = 0
	// ExitGeneral는 일반 에러다.
	ExitGeneral ExitCode = 1
	// ExitInvalidShell는 지원하지 않는 셸 또는 셸에서 쓸 수 없는 변수 이름이다.
	ExitInvalidShell ExitCode = 2
	// ExitActivation는 활성화 스크립트 수정 실패다.
	ExitActivation ExitCode = 3
	// ExitCommandFailed는 백엔드 명령 실패 또는 시간 초과다.
	ExitCommandFailed ExitCode = 4
	// ExitConfigError는 설정 파일 오류다.
	ExitConfigError ExitCode = 5
	// ExitProject는 프로젝트 레지스트리/엔진 관련 오류다.
	ExitProject ExitCode = 6
)

// MapExitCode는 sentinel error를 기반으로 적절한 종료 코드를 반환한다.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	switch {
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrInvalidShell), errors.Is(err, ErrInvalidVarName):
		return ExitInvalidShell
	case errors.Is(err, ErrActivationFileMissing), errors.Is(err, ErrMarkerNotFound):
		return ExitActivation
	case errors.Is(err, ErrCommandFailed), errors.Is(err, ErrCommandTimeout):
		return ExitCommandFailed
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrExists),
		errors.Is(err, ErrEngineMismatch), errors.Is(err, ErrUnknownEngine),
		errors.Is(err, ErrInvalidName):
		return ExitProject
	default:
		return ExitGeneral
	}
}
