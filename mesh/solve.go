package mesh

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"meshcircuit/graph"
	"meshcircuit/maths"
	"meshcircuit/types"
)

// Options 求解参数
type Options struct {
	Tolerance float64     // 主元判零阈值
	Mode      Mode        // 支路电流分配方式
	Parallel  int         // 维度达到该值时并行分解，0 为关闭
	Debug     types.Debug // 调试记录，nil 时不记录
}

// DefaultOptions 默认参数
func DefaultOptions() Options {
	return Options{
		Tolerance: types.PivotTolerance,
		Mode:      ModeHeuristic,
		Parallel:  types.ParallelThreshold,
	}
}

// Result 求解结果
type Result struct {
	System   *System            // 阻抗矩阵与电压向量
	Factors  *maths.LUFactors   // LU分解结果
	Currents *maths.DenseVector // 网孔电流
	Residual float64            // ‖Z*I - V‖∞
	Elapsed  time.Duration      // 求解耗时
}

// Solve 装配方程组、LU分解求解并分配支路电流
// 任一步骤失败时不修改任何网孔或支路的电流
func Solve(ctx context.Context, topo *graph.Topology, opts Options) (*Result, error) {
	log := logr.FromContextOrDiscard(ctx)
	dbg := opts.Debug
	if dbg == nil {
		dbg = &debug{}
	}
	fail := func(err error) (*Result, error) {
		dbg.Error(err)
		return nil, err
	}

	log.Info("solving circuit", "meshes", topo.MeshCount(), "branches", topo.BranchCount(), "mode", opts.Mode.String())
	begin := time.Now()
	dbg.Init(topo.Meshes(), topo.Branches())

	// 创建方程组
	sys, err := Assemble(topo, opts.Mode)
	if err != nil {
		return fail(fmt.Errorf("mesh: assemble system: %w", err))
	}
	dbg.System(sys.Matrix, sys.Voltages)
	log.V(1).Info("system assembled", "dim", sys.Dim())

	// 求解方程组
	mathOpts := []maths.Option{maths.WithTolerance(opts.Tolerance), maths.WithParallel(opts.Parallel)}
	factors, err := maths.Decompose(sys.Matrix, mathOpts...)
	if err != nil {
		return fail(fmt.Errorf("mesh: decompose impedance matrix: %w", err))
	}
	dbg.Factors(factors.L, factors.U)
	currents, err := maths.SolveLU(factors, sys.Voltages, mathOpts...)
	if err != nil {
		return fail(fmt.Errorf("mesh: solve mesh currents: %w", err))
	}
	residual, err := maths.Residual(sys.Matrix, currents, sys.Voltages)
	if err != nil {
		return fail(fmt.Errorf("mesh: residual: %w", err))
	}

	// 分配支路电流
	if err := Distribute(topo, currents, opts.Mode); err != nil {
		return fail(fmt.Errorf("mesh: distribute currents: %w", err))
	}
	elapsed := time.Since(begin)
	dbg.Update(currents, topo.Meshes(), topo.Branches())

	log.Info("circuit solved", "elapsedMs", float64(elapsed.Microseconds())/1000, "residual", residual)
	return &Result{
		System:   sys,
		Factors:  factors,
		Currents: currents,
		Residual: residual,
		Elapsed:  elapsed,
	}, nil
}
