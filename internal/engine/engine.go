// Package engine creates, destroys and installs into a project's virtual
// environment. Two interchangeable backends implement the same contract:
// the standard library venv module with pip, and the uv accelerator.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hbjs97/aiida-project/internal/cmdexec"
	"github.com/rs/zerolog"
)

// Engine은 백엔드 종류 태그다. 프로젝트 생성 시 고정된다.
type Engine string

const (
	// Venv는 python -m venv + pip 백엔드다.
	Venv Engine = "venv"
	// UV는 uv 가속 백엔드다.
	UV Engine = "uv"
)

var (
	// ErrUnknownEngine는 지원하지 않는 엔진 태그일 때 반환된다.
	ErrUnknownEngine = errors.New("지원하지 않는 엔진")
	// ErrEngineMismatch는 기존 프로젝트를 다른 엔진으로 다루려 할 때 반환된다.
	ErrEngineMismatch = errors.New("프로젝트 엔진 불일치")
)

// ParseEngine은 문자열을 Engine으로 변환한다.
func ParseEngine(s string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(s))); e {
	case Venv, UV:
		return e, nil
	default:
		return "", fmt.Errorf("engine.ParseEngine: %w: %q", ErrUnknownEngine, s)
	}
}

// Backend는 가상환경 생성/삭제/설치 계약이다.
type Backend interface {
	// Engine은 이 백엔드의 태그를 반환한다.
	Engine() Engine
	// Create는 pythonPath 인터프리터로 환경을 만든다.
	Create(ctx context.Context, pythonPath string) error
	// Destroy는 환경 디렉토리를 제거한다. 이미 없으면 성공이다.
	Destroy(ctx context.Context) error
	// Install은 패키지 식별자로 설치한다.
	Install(ctx context.Context, pkg string) error
	// InstallLocal은 로컬 경로를 editable 모드로 설치한다.
	InstallLocal(ctx context.Context, path string) error
}

// Layout은 백엔드가 다루는 디스크 위치다.
type Layout struct {
	ProjectPath string
	VenvPath    string
}

// BinPath는 환경 bin 디렉토리 안의 실행 파일 경로다.
func (l Layout) BinPath(name string) string {
	return filepath.Join(l.VenvPath, "bin", name)
}

// Option은 백엔드 설정 함수다.
type Option func(*runner)

// WithLogger는 명령 실행 로그를 받을 로거를 지정한다.
func WithLogger(l zerolog.Logger) Option {
	return func(r *runner) { r.log = l }
}

// WithUVPath는 uv 실행 파일 경로를 지정한다. 기본값은 PATH의 "uv"다.
func WithUVPath(path string) Option {
	return func(r *runner) { r.uv = path }
}

// New는 태그에 맞는 백엔드를 생성한다.
func New(e Engine, layout Layout, cmd cmdexec.Commander, opts ...Option) (Backend, error) {
	r := runner{layout: layout, cmd: cmd, log: zerolog.Nop(), uv: "uv"}
	for _, opt := range opts {
		opt(&r)
	}
	switch e {
	case Venv:
		return &StandardBackend{runner: r}, nil
	case UV:
		return &FastBackend{runner: r}, nil
	default:
		return nil, fmt.Errorf("engine.New: %w: %q", ErrUnknownEngine, e)
	}
}

// runner는 두 백엔드가 공유하는 명령 실행 로직이다.
type runner struct {
	layout Layout
	cmd    cmdexec.Commander
	log    zerolog.Logger
	uv     string
}

// run은 명령을 실행하고 실패를 CommandError로 변환한다. dir이 비어있으면 현재 디렉토리.
func (r *runner) run(ctx context.Context, dir string, name string, args ...string) error {
	start := time.Now()
	out, err := r.cmd.RunInDir(ctx, dir, name, args...)
	ev := r.log.Debug()
	if err != nil {
		ev = r.log.Warn()
	}
	ev.Str("cmd", name).Strs("args", args).Str("dir", dir).
		Dur("duration", time.Since(start)).Bool("ok", err == nil).Msg("backend command")
	if err != nil {
		return newCommandError(name, args, dir, out, err)
	}
	return nil
}

// ensureVenvDir는 환경 디렉토리를 (부모 포함) 만든다. 이미 있어도 성공이다.
func (r *runner) ensureVenvDir() error {
	return os.MkdirAll(r.layout.VenvPath, 0755)
}

// destroy는 환경 디렉토리를 재귀 삭제한다.
func (r *runner) destroy() error {
	if err := os.RemoveAll(r.layout.VenvPath); err != nil {
		return err
	}
	r.log.Debug().Str("venv", r.layout.VenvPath).Msg("environment removed")
	return nil
}

// absPython은 인터프리터 경로를 절대 경로로 만든다. 존재 여부는 검사하지 않는다.
func absPython(pythonPath string) (string, error) {
	if pythonPath == "" {
		return "", errors.New("인터프리터 경로가 비어있음")
	}
	return filepath.Abs(pythonPath)
}
