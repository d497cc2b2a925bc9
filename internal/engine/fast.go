package engine

import (
	"context"
	"fmt"
)

// FastBackend는 외부 uv 도구로 환경을 만들고 설치한다.
// 대상 인터프리터는 -p 플래그로 명시한다.
type FastBackend struct {
	runner
}

var _ Backend = (*FastBackend)(nil)

// Engine은 UV를 반환한다.
func (b *FastBackend) Engine() Engine { return UV }

// Create는 환경 디렉토리를 먼저 만든 뒤 `uv venv -p <python> <venv>` 를 실행한다.
// uv는 venv 모듈과 달리 작업 디렉토리를 요구하지 않는다.
func (b *FastBackend) Create(ctx context.Context, pythonPath string) error {
	python, err := absPython(pythonPath)
	if err != nil {
		return fmt.Errorf("engine.FastBackend.Create: %w", err)
	}
	if err := b.ensureVenvDir(); err != nil {
		return fmt.Errorf("engine.FastBackend.Create: %w", err)
	}
	if err := b.run(ctx, "", b.uv, "venv", "-p", python, b.layout.VenvPath); err != nil {
		return fmt.Errorf("engine.FastBackend.Create: %w", err)
	}
	return nil
}

// Destroy는 환경 디렉토리를 제거한다.
func (b *FastBackend) Destroy(_ context.Context) error {
	if err := b.destroy(); err != nil {
		return fmt.Errorf("engine.FastBackend.Destroy: %w", err)
	}
	return nil
}

// Install은 `uv -p <venv>/bin/python pip install <pkg>` 를 실행한다.
func (b *FastBackend) Install(ctx context.Context, pkg string) error {
	if err := b.run(ctx, "", b.uv, "-p", b.layout.BinPath("python"), "pip", "install", pkg); err != nil {
		return fmt.Errorf("engine.FastBackend.Install: %w", err)
	}
	return nil
}

// InstallLocal은 프로젝트 루트에서 `uv -p <venv>/bin/python pip install -e <path>` 를 실행한다.
func (b *FastBackend) InstallLocal(ctx context.Context, path string) error {
	if err := b.run(ctx, b.layout.ProjectPath, b.uv, "-p", b.layout.BinPath("python"), "pip", "install", "-e", path); err != nil {
		return fmt.Errorf("engine.FastBackend.InstallLocal: %w", err)
	}
	return nil
}
