package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hbjs97/aiida-project/internal/engine"
	"github.com/hbjs97/aiida-project/internal/shell"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// ErrConfig는 설정 파일/환경변수 오류를 나타내는 sentinel error다.
var ErrConfig = errors.New("설정 오류")

// EnvPrefix는 설정을 덮어쓰는 환경변수 접두사다 (예: AIIDA_PROJECT_SHELL).
const EnvPrefix = "AIIDA_PROJECT_"

const (
	defaultShell   = "bash"
	defaultPython  = "/usr/bin/python3"
	defaultUV      = "uv"
	defaultTimeout = "30m"
)

// Config는 aiida-project 설정 파일의 최상위 구조체다.
type Config struct {
	Shell          string   `toml:"shell"`
	ProjectDir     string   `toml:"project_dir"`
	RegistryDir    string   `toml:"registry_dir"`
	DefaultPython  string   `toml:"default_python"`
	DefaultEngine  string   `toml:"default_engine"`
	UVPath         string   `toml:"uv_path"`
	CommandTimeout string   `toml:"command_timeout"`
	DirStructure   []string `toml:"dir_structure"`
	LogLevel       string   `toml:"log_level,omitempty"`

	timeout time.Duration
}

// DefaultPath는 기본 설정 파일 경로다.
func DefaultPath() string {
	return filepath.Join(homeDir(), ".config", "aiida-project", "config.toml")
}

// Load는 config.toml을 파싱하고 환경변수로 덮어쓴 Config를 반환한다.
// 파일이 없으면 기본값과 환경변수만 사용한다.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config.Load: %w: %w", ErrConfig, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default는 기본값만 채운 Config를 반환한다. 파일과 환경변수는 읽지 않는다.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Save는 Config를 TOML 파일로 저장한다 (0600 권한).
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	return nil
}

// ActiveShell은 설정된 셸 이름을 반환한다.
func (c *Config) ActiveShell() string {
	return c.Shell
}

// Timeout은 백엔드 명령 제한 시간이다. 0이면 제한 없음.
func (c *Config) Timeout() time.Duration {
	return c.timeout
}

// Engine은 기본 엔진 태그를 반환한다.
func (c *Config) Engine() engine.Engine {
	return engine.Engine(c.DefaultEngine)
}

// RegistryPath는 프로젝트 레지스트리 파일 경로다.
func (c *Config) RegistryPath() string {
	return filepath.Join(c.RegistryDir, "projects.json")
}

// ProjectPath는 이름에 해당하는 프로젝트 루트 경로다.
func (c *Config) ProjectPath(name string) string {
	return filepath.Join(c.ProjectDir, name)
}

// applyEnv는 AIIDA_PROJECT_* 환경변수로 값을 덮어쓴다.
func (c *Config) applyEnv() error {
	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		// AIIDA_PROJECT_DEFAULT_PYTHON -> default_python
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return fmt.Errorf("config.Load: %w: %w", ErrConfig, err)
	}

	overrides := map[string]*string{
		"shell":           &c.Shell,
		"project_dir":     &c.ProjectDir,
		"registry_dir":    &c.RegistryDir,
		"default_python":  &c.DefaultPython,
		"default_engine":  &c.DefaultEngine,
		"uv_path":         &c.UVPath,
		"command_timeout": &c.CommandTimeout,
		"log_level":       &c.LogLevel,
	}
	for key, field := range overrides {
		if k.Exists(key) {
			*field = k.String(key)
		}
	}
	if k.Exists("dir_structure") {
		c.DirStructure = splitList(k.String("dir_structure"))
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Shell == "" {
		c.Shell = defaultShell
	}
	if c.ProjectDir == "" {
		c.ProjectDir = filepath.Join(homeDir(), "project")
	}
	if c.RegistryDir == "" {
		c.RegistryDir = filepath.Join(homeDir(), ".aiida_project")
	}
	if c.DefaultPython == "" {
		c.DefaultPython = defaultPython
	}
	if c.DefaultEngine == "" {
		c.DefaultEngine = string(engine.Venv)
	}
	if c.UVPath == "" {
		c.UVPath = defaultUV
	}
	if c.CommandTimeout == "" {
		c.CommandTimeout = defaultTimeout
	}
	c.ProjectDir = expandHome(c.ProjectDir)
	c.RegistryDir = expandHome(c.RegistryDir)
	c.DefaultPython = expandHome(c.DefaultPython)
	c.UVPath = expandHome(c.UVPath)
}

func (c *Config) validate() error {
	if _, err := shell.Lookup(c.Shell); err != nil {
		return fmt.Errorf("config.Load: %w: shell: %w", ErrConfig, err)
	}
	if _, err := engine.ParseEngine(c.DefaultEngine); err != nil {
		return fmt.Errorf("config.Load: %w: default_engine: %w", ErrConfig, err)
	}
	d, err := time.ParseDuration(c.CommandTimeout)
	if err != nil || d < 0 {
		return fmt.Errorf("config.Load: %w: command_timeout %q 가 올바른 기간이 아님", ErrConfig, c.CommandTimeout)
	}
	c.timeout = d
	for _, dir := range c.DirStructure {
		if filepath.IsAbs(dir) || strings.HasPrefix(filepath.Clean(dir), "..") {
			return fmt.Errorf("config.Load: %w: dir_structure 항목 %q 는 프로젝트 내부 상대 경로여야 함", ErrConfig, dir)
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func expandHome(p string) string {
	if p == "~" {
		return homeDir()
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(homeDir(), p[2:])
	}
	return p
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
