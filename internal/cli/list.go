package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "등록된 프로젝트 목록을 출력한다",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd)
		},
	}
}

func (a *App) runList(cmd *cobra.Command) error {
	s, err := a.open(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	out := cmd.OutOrStdout()
	names := s.reg.Names()
	if len(names) == 0 {
		fmt.Fprintln(out, "등록된 프로젝트 없음")
		return nil
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-20s %-6s %-28s %s", "NAME", "ENGINE", "PYTHON", "PATH")))
	for _, name := range names {
		e, _ := s.reg.Get(name) // Names에서 나온 이름이므로 항상 존재
		fmt.Fprintf(out, "%s %-6s %-28s %s\n",
			nameStyle.Render(fmt.Sprintf("%-20s", e.Name)),
			e.Engine,
			e.PythonPath,
			dimStyle.Render(e.ProjectPath),
		)
	}
	return nil
}
