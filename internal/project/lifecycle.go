package project

import (
	"context"
	"fmt"
	"time"

	"github.com/hbjs97/aiida-project/internal/activation"
	"github.com/hbjs97/aiida-project/internal/cmdexec"
	"github.com/hbjs97/aiida-project/internal/engine"
	"github.com/hbjs97/aiida-project/internal/registry"
	"github.com/hbjs97/aiida-project/internal/shell"
	"github.com/rs/zerolog"
)

// ShellSource는 현재 설정된 셸 이름을 제공한다 (config.Config가 구현).
type ShellSource interface {
	ActiveShell() string
}

// Lifecycle은 하나의 프로젝트에 대한 생성/삭제/설치/hook 주입을 조율한다.
// 호출 한 번의 범위에서만 사용하며, 동시에 여러 곳에서 쓰지 않는다.
type Lifecycle struct {
	project  *Project
	base     Base
	backend  engine.Backend
	registry *registry.Registry
	shell    ShellSource
	mode     activation.InsertMode
	log      zerolog.Logger
}

// Option은 Lifecycle 설정 함수다.
type Option func(*lifecycleOptions)

type lifecycleOptions struct {
	base   Base
	dirs   []string
	purge  bool
	mode   activation.InsertMode
	log    zerolog.Logger
	uvPath string
}

// WithBase는 기본 Scaffold 대신 사용할 Base를 지정한다.
func WithBase(b Base) Option {
	return func(o *lifecycleOptions) { o.base = b }
}

// WithDirStructure는 Scaffold가 만들 하위 디렉토리 목록이다.
func WithDirStructure(dirs []string) Option {
	return func(o *lifecycleOptions) { o.dirs = dirs }
}

// WithPurge는 Destroy 시 프로젝트 디렉토리까지 삭제하게 한다.
func WithPurge(purge bool) Option {
	return func(o *lifecycleOptions) { o.purge = purge }
}

// WithInsertMode는 deactivate 마커 삽입 정책이다.
func WithInsertMode(m activation.InsertMode) Option {
	return func(o *lifecycleOptions) { o.mode = m }
}

// WithLogger는 로거를 지정한다.
func WithLogger(l zerolog.Logger) Option {
	return func(o *lifecycleOptions) { o.log = l }
}

// WithUVPath는 uv 실행 파일 경로를 지정한다.
func WithUVPath(path string) Option {
	return func(o *lifecycleOptions) { o.uvPath = path }
}

// NewLifecycle은 프로젝트의 엔진 태그에 맞는 백엔드를 묶은 Lifecycle을 생성한다.
func NewLifecycle(p *Project, cmd cmdexec.Commander, reg *registry.Registry, sh ShellSource, opts ...Option) (*Lifecycle, error) {
	o := lifecycleOptions{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	engineOpts := []engine.Option{engine.WithLogger(o.log)}
	if o.uvPath != "" {
		engineOpts = append(engineOpts, engine.WithUVPath(o.uvPath))
	}
	backend, err := engine.New(p.Engine, p.Layout(), cmd, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("project.NewLifecycle: %w", err)
	}

	base := o.base
	if base == nil {
		base = NewScaffold(p, o.dirs, o.purge)
	}

	return &Lifecycle{
		project:  p,
		base:     base,
		backend:  backend,
		registry: reg,
		shell:    sh,
		mode:     o.mode,
		log:      o.log.With().Str("project", p.Name).Str("engine", string(p.Engine)).Logger(),
	}, nil
}

// Project는 대상 프로젝트다.
func (l *Lifecycle) Project() *Project {
	return l.project
}

// Create는 프로젝트 디렉토리를 만들고 백엔드로 환경을 생성한 뒤 레지스트리에 기록한다.
// 이미 다른 엔진으로 등록된 이름이면 ErrEngineMismatch. 실패 시 롤백하지 않는다.
func (l *Lifecycle) Create(ctx context.Context, pythonPath string) error {
	existing, err := l.registry.Get(l.project.Name)
	registered := err == nil
	if registered && existing.Engine != string(l.project.Engine) {
		return fmt.Errorf("project.Create: %w: %s 는 %s 로 생성됨", engine.ErrEngineMismatch, l.project.Name, existing.Engine)
	}

	start := time.Now()
	if err := l.base.Create(pythonPath); err != nil {
		return err
	}
	if err := l.backend.Create(ctx, pythonPath); err != nil {
		return err
	}

	l.project.PythonPath = pythonPath
	if registered {
		// 재생성은 기존 레코드의 ID와 생성 시각을 유지한다.
		l.project.ID = existing.ID
		if created, err := time.Parse(time.RFC3339, existing.CreatedAt); err == nil {
			l.project.CreatedAt = created
		}
	}
	l.registry.Put(l.project.Entry())
	if err := l.registry.Save(); err != nil {
		return fmt.Errorf("project.Create: %w", err)
	}
	l.log.Info().Str("python", pythonPath).Str("venv", l.project.VenvPath).
		Dur("duration", time.Since(start)).Msg("project created")
	return nil
}

// Destroy는 환경을 삭제하고 Base 정리 후 레지스트리 기록을 제거한다.
func (l *Lifecycle) Destroy(ctx context.Context) error {
	if err := l.backend.Destroy(ctx); err != nil {
		return err
	}
	if err := l.base.Destroy(); err != nil {
		return err
	}
	l.registry.Remove(l.project.Name)
	if err := l.registry.Save(); err != nil {
		return fmt.Errorf("project.Destroy: %w", err)
	}
	l.log.Info().Msg("project destroyed")
	return nil
}

// Install은 패키지를 환경에 설치한다.
func (l *Lifecycle) Install(ctx context.Context, pkg string) error {
	if err := l.backend.Install(ctx, pkg); err != nil {
		return err
	}
	l.log.Info().Str("package", pkg).Msg("package installed")
	return nil
}

// InstallLocal은 로컬 경로를 editable 모드로 설치한다.
func (l *Lifecycle) InstallLocal(ctx context.Context, path string) error {
	if err := l.backend.InstallLocal(ctx, path); err != nil {
		return err
	}
	l.log.Info().Str("path", path).Msg("local package installed")
	return nil
}

// AppendActivateText는 설정된 셸의 활성화 스크립트 끝에 text를 덧붙인다.
func (l *Lifecycle) AppendActivateText(text string) error {
	p, err := l.patcher()
	if err != nil {
		return err
	}
	return p.AppendActivateText(text)
}

// AppendDeactivateText는 설정된 셸의 deactivate 함수 안에 text를 삽입한다.
func (l *Lifecycle) AppendDeactivateText(text string) error {
	p, err := l.patcher()
	if err != nil {
		return err
	}
	return p.AppendDeactivateText(text)
}

// SetEnv는 활성화 시 name=value를 export하고 비활성화 시 unset하는 hook을 주입한다.
// 변수 이름이 올바르지 않으면 어느 파일도 수정하지 않는다.
func (l *Lifecycle) SetEnv(name, value string) error {
	profile, err := shell.Lookup(l.shell.ActiveShell())
	if err != nil {
		return fmt.Errorf("project.SetEnv: %w", err)
	}
	export, err := shell.Export(profile.Kind, name, value)
	if err != nil {
		return fmt.Errorf("project.SetEnv: %w", err)
	}
	unset, err := shell.Unset(profile.Kind, name)
	if err != nil {
		return fmt.Errorf("project.SetEnv: %w", err)
	}
	if err := l.AppendActivateText(export); err != nil {
		return err
	}
	return l.AppendDeactivateText(unset)
}

func (l *Lifecycle) patcher() (*activation.Patcher, error) {
	profile, err := shell.Lookup(l.shell.ActiveShell())
	if err != nil {
		return nil, fmt.Errorf("project.patcher: %w", err)
	}
	return activation.New(l.project.VenvPath, profile,
		activation.WithMode(l.mode), activation.WithLogger(l.log)), nil
}
