package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"meshcircuit/config"
	"meshcircuit/graph"
	"meshcircuit/load"
	"meshcircuit/maths"
	"meshcircuit/mesh"
	"meshcircuit/mesh/debug"
	"meshcircuit/report"
	"meshcircuit/types"
)

func newSolveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <circuit-file>",
		Short: "Solve a circuit and write the results report",
		Long: `Read a circuit (.xml, .yaml/.yml or .cir/.net), solve the mesh currents
and write the text report. No report is written when any stage fails.

Examples:
  meshcircuit solve circuit.xml
  meshcircuit solve -o result.txt --plot power.png circuit.xml
  meshcircuit solve --record steps.json --metrics circuit.prom circuit.cir`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSolve(cmd, args[0])
		},
	}
	config.AddFlags(cmd.Flags())
	return cmd
}

func (a *app) runSolve(cmd *cobra.Command, input string) error {
	cfg := a.cfg
	ctx := cmd.Context()

	topo, err := load.File(ctx, input)
	if err != nil {
		return classify(err)
	}

	// 需要图表或过程记录时启用调试记录
	var charts *debug.Charts
	opts := cfg.MeshOptions()
	if cfg.Chart != "" || cfg.Record != "" {
		charts = &debug.Charts{Record: debug.Record{Log: a.log}}
		opts.Debug = charts
	}
	res, err := mesh.Solve(ctx, topo, opts)
	if err != nil {
		return classify(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Circuit solved in %g milliseconds\n", float64(res.Elapsed.Microseconds())/1000)

	output := cfg.Output
	if output == "" {
		output = report.DefaultOutput(input)
	}
	if err := report.SaveText(ctx, topo, output); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saving results to %s\n", output)

	if cfg.Plot != "" {
		if err := report.PlotPower(topo, cfg.Plot); err != nil {
			return err
		}
	}
	if cfg.Chart != "" {
		if err := writeFile(ctx, cfg.Chart, charts); err != nil {
			return err
		}
	}
	if cfg.Record != "" {
		if err := writeFile(ctx, cfg.Record, &charts.Record); err != nil {
			return err
		}
	}
	if cfg.Metrics != "" {
		if err := report.WriteMetrics(topo, res, cfg.Metrics); err != nil {
			return err
		}
	}
	return nil
}

// writeFile 渲染调试输出到文件
func writeFile(ctx context.Context, path string, d types.Debug) (err error) {
	logr.FromContextOrDiscard(ctx).V(1).Info("writing debug output", "path", path)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return d.Render(f)
}

// classify 为错误加上类别，便于命令行定位问题来源
func classify(err error) error {
	var kind string
	switch {
	case errors.Is(err, load.ErrUnsupportedFormat):
		kind = "unsupported input"
	case errors.Is(err, graph.ErrConflictingElement):
		kind = "conflicting element"
	case errors.Is(err, graph.ErrInvalidValue):
		kind = "invalid value"
	case errors.Is(err, graph.ErrMalformedTopology):
		kind = "malformed topology"
	case errors.Is(err, maths.ErrSingularSystem):
		kind = "singular system"
	case errors.Is(err, maths.ErrDimensionMismatch):
		kind = "dimension mismatch"
	case errors.Is(err, maths.ErrNonFinite):
		kind = "non-finite value"
	default:
		return err
	}
	return fmt.Errorf("%s: %w", kind, err)
}
