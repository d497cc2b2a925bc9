package cli

import (
	"github.com/hbjs97/aiida-project/internal/activation"
	"github.com/hbjs97/aiida-project/internal/config"
	"github.com/hbjs97/aiida-project/internal/engine"
	"github.com/hbjs97/aiida-project/internal/project"
	"github.com/hbjs97/aiida-project/internal/registry"
	"github.com/hbjs97/aiida-project/internal/shell"
)

// 각 도메인 패키지의 sentinel error를 CLI 레이어에서 편의상 re-export한다.
var (
	// ErrInvalidShell는 지원하지 않는 셸이 설정됐을 때의 sentinel error다.
	ErrInvalidShell = shell.ErrInvalidShell
	// ErrInvalidVarName는 hook 환경변수 이름이 셸 식별자가 아닐 때의 sentinel error다.
	ErrInvalidVarName = shell.ErrInvalidVarName
	// ErrActivationFileMissing는 환경 생성 전에 hook을 주입하려 할 때의 sentinel error다.
	ErrActivationFileMissing = activation.ErrActivationFileMissing
	// ErrMarkerNotFound는 deactivate 마커가 스크립트에 없을 때의 sentinel error다.
	ErrMarkerNotFound = activation.ErrMarkerNotFound
	// ErrCommandFailed는 백엔드 명령이 실패했을 때의 sentinel error다.
	ErrCommandFailed = engine.ErrCommandFailed
	// ErrCommandTimeout는 백엔드 명령이 제한 시간을 넘겼을 때의 sentinel error다.
	ErrCommandTimeout = engine.ErrCommandTimeout
	// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
	ErrConfig = config.ErrConfig
	// ErrNotFound는 등록되지 않은 프로젝트일 때의 sentinel error다.
	ErrNotFound = registry.ErrNotFound
	// ErrExists는 이미 등록된 프로젝트일 때의 sentinel error다.
	ErrExists = registry.ErrExists
	// ErrEngineMismatch는 프로젝트를 다른 엔진으로 다루려 할 때의 sentinel error다.
	ErrEngineMismatch = engine.ErrEngineMismatch
	// ErrUnknownEngine는 지원하지 않는 엔진 태그일 때의 sentinel error다.
	ErrUnknownEngine = engine.ErrUnknownEngine
	// ErrInvalidName는 프로젝트 이름 규칙 위반일 때의 sentinel error다.
	ErrInvalidName = project.ErrInvalidName
)
