package cli

import (
	"fmt"

	"github.com/hbjs97/aiida-project/internal/engine"
	"github.com/hbjs97/aiida-project/internal/project"
	"github.com/spf13/cobra"
)

const (
	corePackage = "aiida-core"
	// aiidaPathVar는 활성화 시 프로젝트 루트를 가리키도록 주입되는 변수다.
	aiidaPathVar = "AIIDA_PATH"
)

type createOptions struct {
	engine      string
	python      string
	coreVersion string
	plugins     []string
	noCore      bool
}

func (a *App) newCreateCmd() *cobra.Command {
	var o createOptions

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "프로젝트와 가상환경을 생성하고 aiida-core를 설치한다",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCreate(cmd, args[0], o)
		},
	}
	cmd.Flags().StringVar(&o.engine, "engine", "", "환경 엔진 (venv, uv). 생략 시 default_engine")
	cmd.Flags().StringVar(&o.python, "python", "", "인터프리터 경로. 생략 시 default_python")
	cmd.Flags().StringVar(&o.coreVersion, "core-version", "", "설치할 aiida-core 버전")
	cmd.Flags().StringArrayVar(&o.plugins, "plugin", nil, "추가로 설치할 플러그인 패키지 (반복 가능)")
	cmd.Flags().BoolVar(&o.noCore, "no-core", false, "aiida-core 설치 생략")
	return cmd
}

func (a *App) runCreate(cmd *cobra.Command, name string, o createOptions) error {
	s, err := a.open(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	eng := s.cfg.Engine()
	if o.engine != "" {
		if eng, err = engine.ParseEngine(o.engine); err != nil {
			return fmt.Errorf("cli.create: %w", err)
		}
	}
	python := o.python
	if python == "" {
		python = s.cfg.DefaultPython
	}

	// 이미 등록된 이름은 엔진이 다르면 불일치, 같으면 중복이다.
	if _, err := s.reg.Get(name); err == nil {
		if _, err := project.Open(s.reg, name, eng); err != nil {
			return err
		}
		return fmt.Errorf("cli.create: %w: %s", ErrExists, name)
	}

	p, err := project.New(name, s.cfg.ProjectPath(name), eng)
	if err != nil {
		return err
	}
	lc, err := s.lifecycle(p)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	fmt.Fprintf(out, "프로젝트 생성: %s (%s, %s)\n", name, eng, python)
	if err := lc.Create(ctx, python); err != nil {
		return err
	}

	var packages []string
	if !o.noCore {
		packages = append(packages, corePackageRequirement(o.coreVersion))
	}
	packages = append(packages, o.plugins...)
	for _, pkg := range packages {
		fmt.Fprintf(out, "설치: %s\n", pkg)
		if err := lc.Install(ctx, pkg); err != nil {
			return err
		}
	}

	if err := lc.SetEnv(aiidaPathVar, p.ProjectPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "완료: %s\n", p.ProjectPath)
	fmt.Fprintf(out, "활성화: source %s/bin/activate\n", p.VenvPath)
	return nil
}

func corePackageRequirement(version string) string {
	if version == "" {
		return corePackage
	}
	return corePackage + "==" + version
}
