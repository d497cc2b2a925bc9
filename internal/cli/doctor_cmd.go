package cli

import (
	"fmt"
	"io"

	"github.com/hbjs97/aiida-project/internal/cmdexec"
	"github.com/hbjs97/aiida-project/internal/config"
	"github.com/hbjs97/aiida-project/internal/doctor"
	"github.com/spf13/cobra"
)

func (a *App) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "환경 설정을 진단한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd)
		},
	}
}

func (a *App) runDoctor(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	cfg, err := config.Load(a.CfgPath)
	if err != nil {
		fmt.Fprintf(out, "  [%s] config: %v\n", statusIcon(doctor.StatusFail), err)
		fmt.Fprintln(out, "      Fix: aiida-project init --force 실행 또는 설정 파일 확인")
		// 설정 없이도 기본값으로 점검 가능한 항목은 진행한다.
		cfg = config.Default()
	}

	commander := a.Commander
	if commander == nil {
		commander = &cmdexec.RealCommander{Timeout: cfg.Timeout()}
	}
	results := doctor.RunAll(cmd.Context(), commander, doctor.Options{
		Python:        cfg.DefaultPython,
		UVPath:        cfg.UVPath,
		DefaultEngine: cfg.Engine(),
		Shell:         cfg.Shell,
		RegistryPath:  cfg.RegistryPath(),
	})
	printDiagResults(out, results)
	return nil
}

// printDiagResults는 진단 결과 목록을 출력한다.
func printDiagResults(out io.Writer, results []doctor.DiagResult) {
	for _, r := range results {
		fmt.Fprintf(out, "  [%s] %s: %s\n", statusIcon(r.Status), r.Name, r.Message)
		if r.Fix != "" {
			fmt.Fprintf(out, "      Fix: %s\n", r.Fix)
		}
	}
}
