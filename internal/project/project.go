// Package project owns a project's on-disk location and orchestrates its
// lifecycle: scaffolding, environment creation through the selected backend,
// package installation, activation hooks and teardown.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/hbjs97/aiida-project/internal/engine"
	"github.com/hbjs97/aiida-project/internal/registry"
)

// ErrInvalidName은 프로젝트 이름 규칙을 위반할 때 반환된다.
var ErrInvalidName = errors.New("올바르지 않은 프로젝트 이름")

// VenvDirName은 프로젝트 루트 아래 환경 디렉토리 이름이다.
const VenvDirName = ".venv"

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// Project는 하나의 프로젝트 레코드다.
type Project struct {
	ID          string
	Name        string
	ProjectPath string
	VenvPath    string
	Engine      engine.Engine
	PythonPath  string
	CreatedAt   time.Time
}

// New는 새 프로젝트를 생성한다. 디스크에는 아무것도 만들지 않는다.
func New(name, projectPath string, e engine.Engine) (*Project, error) {
	if !nameRegex.MatchString(name) {
		return nil, fmt.Errorf("project.New: %w: %q", ErrInvalidName, name)
	}
	if _, err := engine.ParseEngine(string(e)); err != nil {
		return nil, fmt.Errorf("project.New: %w", err)
	}
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("project.New: %w", err)
	}
	return &Project{
		ID:          uuid.NewString(),
		Name:        name,
		ProjectPath: abs,
		VenvPath:    filepath.Join(abs, VenvDirName),
		Engine:      e,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Layout은 백엔드에 넘길 디스크 위치다.
func (p *Project) Layout() engine.Layout {
	return engine.Layout{ProjectPath: p.ProjectPath, VenvPath: p.VenvPath}
}

// Entry는 레지스트리 레코드로 변환한다.
func (p *Project) Entry() registry.Entry {
	return registry.Entry{
		ID:          p.ID,
		Name:        p.Name,
		ProjectPath: p.ProjectPath,
		VenvPath:    p.VenvPath,
		Engine:      string(p.Engine),
		PythonPath:  p.PythonPath,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

// FromEntry는 레지스트리 레코드에서 Project를 복원한다.
func FromEntry(e registry.Entry) (*Project, error) {
	eng, err := engine.ParseEngine(e.Engine)
	if err != nil {
		return nil, fmt.Errorf("project.FromEntry: %s: %w", e.Name, err)
	}
	created, err := time.Parse(time.RFC3339, e.CreatedAt)
	if err != nil {
		created = time.Time{} // 손상된 타임스탬프는 치명적이지 않음
	}
	return &Project{
		ID:          e.ID,
		Name:        e.Name,
		ProjectPath: e.ProjectPath,
		VenvPath:    e.VenvPath,
		Engine:      eng,
		PythonPath:  e.PythonPath,
		CreatedAt:   created,
	}, nil
}

// Open은 등록된 프로젝트를 불러온다.
// requested가 비어있지 않고 저장된 엔진과 다르면 ErrEngineMismatch를 반환한다.
func Open(reg *registry.Registry, name string, requested engine.Engine) (*Project, error) {
	e, err := reg.Get(name)
	if err != nil {
		return nil, fmt.Errorf("project.Open: %w", err)
	}
	p, err := FromEntry(e)
	if err != nil {
		return nil, err
	}
	if requested != "" && requested != p.Engine {
		return nil, fmt.Errorf("project.Open: %w: %s 는 %s 로 생성됨 (요청: %s)",
			engine.ErrEngineMismatch, name, p.Engine, requested)
	}
	return p, nil
}

// Base는 프로젝트 자체의 생성/삭제 hook이다.
type Base interface {
	ProjectPath() string
	VenvPath() string
	// Create는 환경 생성 전에 호출된다.
	Create(pythonPath string) error
	// Destroy는 환경 삭제 후에 호출된다.
	Destroy() error
}

// Scaffold는 프로젝트 디렉토리와 하위 디렉토리 구조를 만드는 Base 구현이다.
type Scaffold struct {
	project *Project
	dirs    []string
	purge   bool
}

var _ Base = (*Scaffold)(nil)

// NewScaffold는 dirs를 프로젝트 루트 아래 만드는 Scaffold를 생성한다.
// purge가 true면 Destroy 시 프로젝트 디렉토리 전체를 삭제한다.
func NewScaffold(p *Project, dirs []string, purge bool) *Scaffold {
	return &Scaffold{project: p, dirs: dirs, purge: purge}
}

func (s *Scaffold) ProjectPath() string { return s.project.ProjectPath }

func (s *Scaffold) VenvPath() string { return s.project.VenvPath }

// Create는 프로젝트 디렉토리와 구조를 만든다. 이미 있어도 성공이다.
func (s *Scaffold) Create(_ string) error {
	if err := os.MkdirAll(s.project.ProjectPath, 0755); err != nil {
		return fmt.Errorf("project.Scaffold.Create: %w", err)
	}
	for _, dir := range s.dirs {
		if err := os.MkdirAll(filepath.Join(s.project.ProjectPath, dir), 0755); err != nil {
			return fmt.Errorf("project.Scaffold.Create: %w", err)
		}
	}
	return nil
}

// Destroy는 purge 설정 시 프로젝트 디렉토리를 삭제한다.
func (s *Scaffold) Destroy() error {
	if !s.purge {
		return nil
	}
	if err := os.RemoveAll(s.project.ProjectPath); err != nil {
		return fmt.Errorf("project.Scaffold.Destroy: %w", err)
	}
	return nil
}
