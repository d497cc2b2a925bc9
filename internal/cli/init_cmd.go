package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hbjs97/aiida-project/internal/config"
	"github.com/hbjs97/aiida-project/internal/shell"
	"github.com/spf13/cobra"
)

func (a *App) newInitCmd() *cobra.Command {
	var shellFlag string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "기본 설정 파일을 생성한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, shellFlag, force)
		},
	}
	cmd.Flags().StringVar(&shellFlag, "shell", "", "활성화 hook을 주입할 셸 (bash, zsh, fish). 생략 시 $SHELL")
	cmd.Flags().BoolVar(&force, "force", false, "기존 설정 파일 덮어쓰기")
	return cmd
}

// DetectShell은 현재 사용자의 셸을 감지한다.
func DetectShell() string {
	sh := os.Getenv("SHELL")
	return filepath.Base(sh)
}

// runInit는 기본값과 감지된 셸로 config.toml을 생성한다.
func (a *App) runInit(cmd *cobra.Command, shellFlag string, force bool) error {
	if _, err := os.Stat(a.CfgPath); err == nil && !force {
		return fmt.Errorf("cli.init: 설정 파일이 이미 존재합니다: %s", a.CfgPath)
	}

	name := shellFlag
	if name == "" {
		name = DetectShell()
		if _, err := shell.Lookup(name); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "경고: 감지된 셸 %q 는 지원하지 않아 bash 를 사용합니다\n", name)
			name = string(shell.Bash)
		}
	}
	kind, err := shell.Parse(name)
	if err != nil {
		return fmt.Errorf("cli.init: %w", err)
	}

	cfg := config.Default()
	cfg.Shell = string(kind)
	if err := config.Save(a.CfgPath, cfg); err != nil {
		return fmt.Errorf("cli.init: 설정 파일 생성 실패: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "설정 파일이 생성되었습니다: %s\n", a.CfgPath)
	fmt.Fprintf(out, "셸: %s, 프로젝트 디렉토리: %s\n", cfg.Shell, cfg.ProjectDir)
	fmt.Fprintln(out, "aiida-project doctor 로 환경을 확인하세요.")
	return nil
}
