// Package doctor는 aiida-project 실행 환경을 진단한다.
package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/aiida-project/internal/cmdexec"
	"github.com/hbjs97/aiida-project/internal/engine"
	"github.com/hbjs97/aiida-project/internal/registry"
	"github.com/hbjs97/aiida-project/internal/shell"
)

// Status는 진단 결과 상태다.
type Status string

const (
	// StatusOK는 정상 상태다.
	StatusOK Status = "OK"
	// StatusWarn는 경고 상태다.
	StatusWarn Status = "WARN"
	// StatusFail는 실패 상태다.
	StatusFail Status = "FAIL"
)

// DiagResult는 하나의 진단 결과다.
type DiagResult struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// Options는 진단 대상 설정이다.
type Options struct {
	Python        string
	UVPath        string
	DefaultEngine engine.Engine
	Shell         string
	RegistryPath  string
}

// CheckPython은 기본 인터프리터가 실행되고 venv 모듈을 갖고 있는지 확인한다.
func CheckPython(ctx context.Context, cmd cmdexec.Commander, python string) []DiagResult {
	out, err := cmd.Run(ctx, python, "--version")
	if err != nil {
		return []DiagResult{{
			Name:    "python",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s 실행 실패", python),
			Fix:     "config.toml 의 default_python 을 올바른 인터프리터로 지정",
		}}
	}
	results := []DiagResult{{
		Name:    "python",
		Status:  StatusOK,
		Message: strings.TrimSpace(string(out)),
	}}

	if _, err := cmd.Run(ctx, python, "-m", "venv", "--help"); err != nil {
		results = append(results, DiagResult{
			Name:    "python_venv",
			Status:  StatusWarn,
			Message: "venv 모듈 없음 (venv 엔진 사용 불가)",
			Fix:     "python3-venv 패키지 설치 또는 uv 엔진 사용",
		})
	} else {
		results = append(results, DiagResult{
			Name:    "python_venv",
			Status:  StatusOK,
			Message: "venv 모듈 사용 가능",
		})
	}
	return results
}

// CheckUV는 uv 존재 여부를 확인한다. 기본 엔진이 uv일 때만 없으면 실패다.
func CheckUV(ctx context.Context, cmd cmdexec.Commander, uvPath string, defaultEngine engine.Engine) DiagResult {
	out, err := cmd.Run(ctx, uvPath, "--version")
	if err == nil {
		return DiagResult{
			Name:    "uv",
			Status:  StatusOK,
			Message: strings.TrimSpace(string(out)),
		}
	}
	status := StatusWarn
	if defaultEngine == engine.UV {
		status = StatusFail
	}
	return DiagResult{
		Name:    "uv",
		Status:  status,
		Message: fmt.Sprintf("%s 없음", uvPath),
		Fix:     "설치: https://docs.astral.sh/uv/",
	}
}

// CheckShell은 설정된 셸이 지원 대상인지 확인한다.
func CheckShell(name string) DiagResult {
	p, err := shell.Lookup(name)
	if err != nil {
		return DiagResult{
			Name:    "shell",
			Status:  StatusFail,
			Message: fmt.Sprintf("지원하지 않는 셸: %q", name),
			Fix:     fmt.Sprintf("config.toml 의 shell 을 %s 중 하나로 지정", strings.Join(shell.Names(), ", ")),
		}
	}
	return DiagResult{
		Name:    "shell",
		Status:  StatusOK,
		Message: fmt.Sprintf("%s (bin/%s)", p.Kind, p.ActivateFile),
	}
}

// CheckProjects는 등록된 프로젝트마다 활성화 스크립트가 남아있는지 확인한다.
func CheckProjects(registryPath, shellName string) []DiagResult {
	reg, err := registry.Load(registryPath)
	if err != nil {
		return []DiagResult{{
			Name:    "registry",
			Status:  StatusFail,
			Message: err.Error(),
			Fix:     fmt.Sprintf("%s 확인 또는 삭제", registryPath),
		}}
	}
	p, err := shell.Lookup(shellName)
	if err != nil {
		return nil
	}

	var results []DiagResult
	for _, name := range reg.Names() {
		e, _ := reg.Get(name)
		script := filepath.Join(e.VenvPath, "bin", p.ActivateFile)
		if _, err := os.Stat(script); err != nil {
			results = append(results, DiagResult{
				Name:    "project_" + name,
				Status:  StatusWarn,
				Message: fmt.Sprintf("활성화 스크립트 없음: %s", script),
				Fix:     fmt.Sprintf("aiida-project destroy %s 후 다시 create", name),
			})
			continue
		}
		results = append(results, DiagResult{
			Name:    "project_" + name,
			Status:  StatusOK,
			Message: fmt.Sprintf("%s (%s)", e.VenvPath, e.Engine),
		})
	}
	return results
}

// RunAll은 모든 진단을 실행한다.
func RunAll(ctx context.Context, cmd cmdexec.Commander, opts Options) []DiagResult {
	var results []DiagResult
	results = append(results, CheckPython(ctx, cmd, opts.Python)...)
	results = append(results, CheckUV(ctx, cmd, opts.UVPath, opts.DefaultEngine))
	results = append(results, CheckShell(opts.Shell))
	results = append(results, CheckProjects(opts.RegistryPath, opts.Shell)...)
	return results
}

// HasFailure는 결과 중 FAIL이 있는지 반환한다.
func HasFailure(results []DiagResult) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}
