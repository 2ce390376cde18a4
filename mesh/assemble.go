package mesh

import (
	"meshcircuit/graph"
	"meshcircuit/maths"
	"meshcircuit/types"
)

// System 网孔电流方程组 Z*I = V
type System struct {
	MeshIDs  []types.MeshID     // 行列对应的网孔（与拓扑顺序一致）
	Matrix   *maths.DenseMatrix // 阻抗矩阵
	Voltages *maths.DenseVector // 电压向量
}

// Dim 方程组维度
func (s *System) Dim() int { return len(s.MeshIDs) }

// Assemble 根据拓扑装配阻抗矩阵与电压向量
//
//	对角线: 网孔自阻抗
//	非对角: 两网孔唯一共享支路的阻抗取负，无共享支路为0
//
// 两个网孔共享多条支路时返回 *graph.TopologyError
func Assemble(topo *graph.Topology, mode Mode) (*System, error) {
	if err := topo.Validate(); err != nil {
		return nil, err
	}
	meshes := topo.Meshes()
	n := len(meshes)
	sys := &System{
		MeshIDs:  make([]types.MeshID, n),
		Matrix:   maths.NewDenseMatrix(n, n),
		Voltages: maths.NewDenseVector(n),
	}
	for i, m := range meshes {
		sys.MeshIDs[i] = m.ID
		if mode == ModeOriented {
			sys.Voltages.Set(i, m.OrientedSource)
		} else {
			sys.Voltages.Set(i, m.VoltageSource)
		}
		sys.Matrix.Set(i, i, m.Impedance)
	}
	for i, mi := range meshes {
		for j, mj := range meshes {
			if i == j {
				continue
			}
			shared := graph.SharedBranches(mi, mj)
			switch len(shared) {
			case 0:
				continue
			case 1:
			default:
				return nil, &graph.TopologyError{
					Reason:   "meshes share more than one branch",
					Meshes:   []types.MeshID{mi.ID, mj.ID},
					Branches: shared,
				}
			}
			b, _ := topo.Branch(shared[0])
			if mode == ModeOriented {
				sign := mi.Orientation(b.ID).Sign() * mj.Orientation(b.ID).Sign()
				sys.Matrix.Increment(i, j, sign*b.Impedance)
			} else {
				sys.Matrix.Increment(i, j, -b.Impedance)
			}
		}
	}
	return sys, nil
}
