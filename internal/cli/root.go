// Package cli wires the aiida-project commands on top of cobra.
package cli

import (
	"fmt"

	"github.com/hbjs97/aiida-project/internal/cmdexec"
	"github.com/hbjs97/aiida-project/internal/config"
	"github.com/hbjs97/aiida-project/internal/logging"
	"github.com/hbjs97/aiida-project/internal/project"
	"github.com/hbjs97/aiida-project/internal/registry"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// App은 CLI 실행에 필요한 의존성을 묶는다. 테스트는 Commander와 Prompter를 주입한다.
type App struct {
	// Commander가 nil이면 설정의 command_timeout을 쓰는 RealCommander를 사용한다.
	Commander cmdexec.Commander
	CfgPath   string
	// Prompter가 nil이면 HuhPrompter를 사용한다.
	Prompter Prompter

	verbose bool
}

// NewRootCmd는 aiida-project CLI의 루트 명령을 생성한다.
func (a *App) NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "aiida-project",
		Short:        "격리된 Python 환경 프로젝트 매니저",
		SilenceUsage: true,
	}

	defaultCfg := a.CfgPath
	if defaultCfg == "" {
		defaultCfg = config.DefaultPath()
	}
	cmd.PersistentFlags().StringVar(&a.CfgPath, "config", defaultCfg, "설정 파일 경로")
	cmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "상세 출력")

	cmd.AddCommand(
		a.newInitCmd(),
		a.newCreateCmd(),
		a.newDestroyCmd(),
		a.newInstallCmd(),
		a.newHookCmd(),
		a.newListCmd(),
		a.newDoctorCmd(),
	)
	return cmd
}

// session은 명령 한 번 동안 쓰는 설정, 레지스트리, 로거 묶음이다.
// 레지스트리 잠금은 open부터 close까지 유지된다.
type session struct {
	cfg *config.Config
	reg *registry.Registry
	cmd cmdexec.Commander
	log zerolog.Logger
}

func (a *App) open(c *cobra.Command) (*session, error) {
	cfg, err := config.Load(a.CfgPath)
	if err != nil {
		return nil, err
	}
	reg, err := registry.Acquire(cfg.RegistryPath())
	if err != nil {
		return nil, fmt.Errorf("cli: %w", err)
	}
	commander := a.Commander
	if commander == nil {
		commander = &cmdexec.RealCommander{Timeout: cfg.Timeout()}
	}
	return &session{
		cfg: cfg,
		reg: reg,
		cmd: commander,
		log: logging.New(c.ErrOrStderr(), cfg.LogLevel, a.verbose),
	}, nil
}

// close는 open에서 잡은 레지스트리 잠금을 푼다.
func (s *session) close() {
	if err := s.reg.Release(); err != nil {
		s.log.Warn().Err(err).Msg("레지스트리 잠금 해제 실패")
	}
}

func (s *session) lifecycle(p *project.Project, opts ...project.Option) (*project.Lifecycle, error) {
	base := []project.Option{
		project.WithLogger(s.log),
		project.WithUVPath(s.cfg.UVPath),
		project.WithDirStructure(s.cfg.DirStructure),
	}
	return project.NewLifecycle(p, s.cmd, s.reg, s.cfg, append(base, opts...)...)
}

func (a *App) prompter() Prompter {
	if a.Prompter == nil {
		return HuhPrompter{}
	}
	return a.Prompter
}
