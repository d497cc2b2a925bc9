// Package registry persists the records of created projects, including the
// engine tag each project was created with.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"
)

var (
	// ErrNotFound는 등록되지 않은 프로젝트를 조회할 때 반환된다.
	ErrNotFound = errors.New("등록되지 않은 프로젝트")
	// ErrExists는 같은 이름의 프로젝트가 이미 등록되어 있을 때 반환된다.
	ErrExists = errors.New("이미 등록된 프로젝트")
)

// FileName은 레지스트리 디렉토리 안의 파일 이름이다.
const FileName = "projects.json"

// Registry는 프로젝트 이름 → 레코드 매핑이다.
type Registry struct {
	Version  int              `json:"version"`
	Projects map[string]Entry `json:"projects"`

	path string
	lock *flock.Flock
}

// Entry는 하나의 프로젝트 레코드다.
type Entry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ProjectPath string `json:"project_path"`
	VenvPath    string `json:"venv_path"`
	Engine      string `json:"engine"`
	PythonPath  string `json:"python_path"`
	CreatedAt   string `json:"created_at"`
}

// New는 path에 저장될 빈 레지스트리를 생성한다.
func New(path string) *Registry {
	return &Registry{Version: 1, Projects: make(map[string]Entry), path: path}
}

// Load는 레지스트리 파일을 파싱한다. 파일이 없으면 빈 레지스트리를 반환한다.
// 파싱 실패는 빈 레지스트리로 대체하지 않고 에러로 반환한다.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(path), nil
	}
	if err != nil {
		return nil, fmt.Errorf("registry.Load: %w", err)
	}
	r := New(path)
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("registry.Load: %s: %w", path, err)
	}
	if r.Projects == nil {
		r.Projects = make(map[string]Entry)
	}
	return r, nil
}

// Acquire는 <path>.lock 을 배타적으로 잡은 뒤 레지스트리를 읽는다.
// 잠금은 Release 까지 유지되므로 읽기부터 Save 까지 다른 프로세스가 끼어들지 못한다.
func Acquire(path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("registry.Acquire: %w", err)
	}
	fl := flock.New(path + ".lock")
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("registry.Acquire: %w", err)
	}
	r, err := Load(path)
	if err != nil {
		_ = fl.Unlock() // 읽기 실패가 우선이다
		return nil, err
	}
	r.lock = fl
	return r, nil
}

// Release는 Acquire로 잡은 잠금을 푼다. 잠금이 없으면 아무것도 하지 않는다.
func (r *Registry) Release() error {
	if r.lock == nil {
		return nil
	}
	err := r.lock.Unlock()
	r.lock = nil
	if err != nil {
		return fmt.Errorf("registry.Release: %w", err)
	}
	return nil
}

// Get은 이름으로 레코드를 조회한다.
func (r *Registry) Get(name string) (Entry, error) {
	e, ok := r.Projects[name]
	if !ok {
		return Entry{}, fmt.Errorf("registry.Get: %w: %s", ErrNotFound, name)
	}
	return e, nil
}

// Put은 레코드를 추가하거나 갱신한다.
func (r *Registry) Put(e Entry) {
	r.Projects[e.Name] = e
}

// Remove는 레코드를 제거한다. 없으면 아무것도 하지 않는다.
func (r *Registry) Remove(name string) {
	delete(r.Projects, name)
}

// Names는 등록된 프로젝트 이름을 정렬해서 반환한다.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Projects))
	for name := range r.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Save는 레지스트리를 JSON 파일로 저장한다 (0600 권한).
func (r *Registry) Save() error {
	if r.path == "" {
		return fmt.Errorf("registry.Save: 저장 경로 없음")
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("registry.Save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0700); err != nil {
		return fmt.Errorf("registry.Save: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0600); err != nil {
		return fmt.Errorf("registry.Save: %w", err)
	}
	return nil
}
