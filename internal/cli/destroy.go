package cli

import (
	"fmt"

	"github.com/hbjs97/aiida-project/internal/project"
	"github.com/spf13/cobra"
)

func (a *App) newDestroyCmd() *cobra.Command {
	var force, purge bool

	cmd := &cobra.Command{
		Use:   "destroy NAME",
		Short: "프로젝트 가상환경을 삭제하고 등록을 해제한다",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDestroy(cmd, args[0], force, purge)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "확인 없이 삭제")
	cmd.Flags().BoolVar(&purge, "purge", false, "프로젝트 디렉토리 전체 삭제")
	return cmd
}

func (a *App) runDestroy(cmd *cobra.Command, name string, force, purge bool) error {
	s, err := a.open(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	p, err := project.Open(s.reg, name, "")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !force {
		target := p.VenvPath
		if purge {
			target = p.ProjectPath
		}
		ok, err := a.prompter().Confirm(fmt.Sprintf("%s 을(를) 삭제할까요?", target))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "취소되었습니다.")
			return nil
		}
	}

	lc, err := s.lifecycle(p, project.WithPurge(purge))
	if err != nil {
		return err
	}
	if err := lc.Destroy(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(out, "삭제 완료: %s\n", name)
	return nil
}
