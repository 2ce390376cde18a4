// Package cli 命令行入口
package cli

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"meshcircuit/config"
	"meshcircuit/logging"
)

// app 命令共享状态
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     logr.Logger
}

// setup 绑定参数并读取配置文件，再按配置的日志级别创建日志
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	log, _, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	cmd.SetContext(logging.IntoContext(cmd.Context(), log))
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New(), log: logr.Discard()}
	root := &cobra.Command{
		Use:   "meshcircuit",
		Short: "Mesh-current DC circuit solver",
		Long: `meshcircuit solves planar resistive DC circuits described as meshes
sharing branches. It assembles the mesh impedance matrix, factors it with
Doolittle LU and reports mesh currents, branch currents and dissipated power.

Examples:
  meshcircuit solve circuit.xml                   # writes circuit_solved.txt
  meshcircuit solve --orientation oriented c.yaml # signed branch currents
  meshcircuit solve --chart out.html c.cir        # HTML charts of the solution
  meshcircuit validate circuit.xml                # topology check only`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().String(config.KeyLogLevel, "info", "log level (debug, info, warn, error, v1, v2...)")

	root.AddCommand(newSolveCmd(a), newValidateCmd(a))
	return root
}

// Execute 执行命令
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
