package engine

import (
	"context"
	"fmt"
)

// StandardBackend는 python -m venv 로 환경을 만들고 환경 안의 pip로 설치한다.
type StandardBackend struct {
	runner
}

var _ Backend = (*StandardBackend)(nil)

// Engine은 Venv를 반환한다.
func (b *StandardBackend) Engine() Engine { return Venv }

// Create는 환경 디렉토리 안에서 `<python> -m venv .` 을 실행한다.
func (b *StandardBackend) Create(ctx context.Context, pythonPath string) error {
	python, err := absPython(pythonPath)
	if err != nil {
		return fmt.Errorf("engine.StandardBackend.Create: %w", err)
	}
	if err := b.ensureVenvDir(); err != nil {
		return fmt.Errorf("engine.StandardBackend.Create: %w", err)
	}
	if err := b.run(ctx, b.layout.VenvPath, python, "-m", "venv", "."); err != nil {
		return fmt.Errorf("engine.StandardBackend.Create: %w", err)
	}
	return nil
}

// Destroy는 환경 디렉토리를 제거한다.
func (b *StandardBackend) Destroy(_ context.Context) error {
	if err := b.destroy(); err != nil {
		return fmt.Errorf("engine.StandardBackend.Destroy: %w", err)
	}
	return nil
}

// Install은 `<venv>/bin/pip install <pkg>` 를 실행한다.
func (b *StandardBackend) Install(ctx context.Context, pkg string) error {
	if err := b.run(ctx, "", b.layout.BinPath("pip"), "install", pkg); err != nil {
		return fmt.Errorf("engine.StandardBackend.Install: %w", err)
	}
	return nil
}

// InstallLocal은 프로젝트 루트에서 `<venv>/bin/pip install -e <path>` 를 실행한다.
func (b *StandardBackend) InstallLocal(ctx context.Context, path string) error {
	if err := b.run(ctx, b.layout.ProjectPath, b.layout.BinPath("pip"), "install", "-e", path); err != nil {
		return fmt.Errorf("engine.StandardBackend.InstallLocal: %w", err)
	}
	return nil
}
