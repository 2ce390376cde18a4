package types

import (
	"io"

	"meshcircuit/maths"
)

// Debug 调试接口
// 求解流程在每个阶段回调，用于记录中间结果
type Debug interface {
	IsDebug() bool
	SetDebug(is bool)
	Init(meshes []*Mesh, branches []*Branch)                          // 拓扑就绪
	System(matrix maths.Matrix, voltages maths.Vector)                // 方程组装配完成
	Factors(l, u maths.Matrix)                                        // LU分解完成
	Update(currents maths.Vector, meshes []*Mesh, branches []*Branch) // 电流分配完成
	Render(w io.Writer) error
	Error(err error)
}
