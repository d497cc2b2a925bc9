package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hbjs97/aiida-project/internal/activation"
	"github.com/hbjs97/aiida-project/internal/project"
	"github.com/hbjs97/aiida-project/internal/shell"
	"github.com/spf13/cobra"
)

type hookOptions struct {
	activate   string
	deactivate string
	envs       []string
	all        bool
}

func (a *App) newHookCmd() *cobra.Command {
	var o hookOptions

	cmd := &cobra.Command{
		Use:   "hook NAME",
		Short: "활성화/비활성화 스크립트에 셸 코드를 주입한다",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHook(cmd, args[0], o)
		},
	}
	cmd.Flags().StringVar(&o.activate, "activate", "", "활성화 스크립트 끝에 덧붙일 텍스트")
	cmd.Flags().StringVar(&o.deactivate, "deactivate", "", "deactivate 함수 안에 삽입할 텍스트")
	cmd.Flags().StringArrayVar(&o.envs, "env", nil, "KEY=VALUE: 활성화 시 export, 비활성화 시 unset (반복 가능)")
	cmd.Flags().BoolVar(&o.all, "all", false, "deactivate 마커가 여러 개면 모두에 삽입")
	return cmd
}

func (a *App) runHook(cmd *cobra.Command, name string, o hookOptions) error {
	if o.activate == "" && o.deactivate == "" && len(o.envs) == 0 {
		return errors.New("cli.hook: --activate, --deactivate, --env 중 하나가 필요합니다")
	}
	envs := make([][2]string, 0, len(o.envs))
	for _, kv := range o.envs {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("cli.hook: --env 는 KEY=VALUE 형식이어야 합니다: %q", kv)
		}
		if err := shell.ValidateVarName(key); err != nil {
			return fmt.Errorf("cli.hook: %w", err)
		}
		envs = append(envs, [2]string{key, value})
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
	mode := activation.InsertFirst
	if o.all {
		mode = activation.InsertAll
	}
	lc, err := s.lifecycle(p, project.WithInsertMode(mode))
	if err != nil {
		return err
	}

	if o.activate != "" {
		text := o.activate
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		if err := lc.AppendActivateText(text); err != nil {
			return err
		}
	}
	if o.deactivate != "" {
		if err := lc.AppendDeactivateText(o.deactivate); err != nil {
			return err
		}
	}
	for _, kv := range envs {
		if err := lc.SetEnv(kv[0], kv[1]); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "hook 주입 완료: %s (%s)\n", name, s.cfg.Shell)
	return nil
}
