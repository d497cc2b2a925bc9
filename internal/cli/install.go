package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hbjs97/aiida-project/internal/project"
	"github.com/spf13/cobra"
)

func (a *App) newInstallCmd() *cobra.Command {
	var locals []string

	cmd := &cobra.Command{
		Use:   "install NAME [PACKAGE...]",
		Short: "프로젝트 환경에 패키지를 설치한다",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInstall(cmd, args[0], args[1:], locals)
		},
	}
	cmd.Flags().StringArrayVar(&locals, "local", nil, "editable 모드로 설치할 로컬 경로 (반복 가능)")
	return cmd
}

func (a *App) runInstall(cmd *cobra.Command, name string, packages, locals []string) error {
	if len(packages) == 0 && len(locals) == 0 {
		return errors.New("cli.install: 설치할 패키지 또는 --local 경로가 필요합니다")
	}

	s, err := a.open(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	p, err := project.Open(s.reg, name, "")
	if err != nil {
		return err
	}
	lc, err := s.lifecycle(p)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	for _, pkg := range packages {
		fmt.Fprintf(out, "설치: %s\n", pkg)
		if err := lc.Install(ctx, pkg); err != nil {
			return err
		}
	}
	for _, local := range locals {
		// 명령은 프로젝트 루트에서 실행되므로 사용자 기준 상대 경로를 먼저 고정한다.
		abs, err := filepath.Abs(local)
		if err != nil {
			return fmt.Errorf("cli.install: %w", err)
		}
		fmt.Fprintf(out, "설치 (editable): %s\n", abs)
		if err := lc.InstallLocal(ctx, abs); err != nil {
			return err
		}
	}
	return nil
}
