package mesh

import (
	"meshcircuit/graph"
	"meshcircuit/maths"
	"meshcircuit/types"
)

// Distribute 将网孔电流写回网孔与支路，并计算电阻耗散功率
// currents 的顺序必须与装配时的网孔顺序一致
func Distribute(topo *graph.Topology, currents maths.Vector, mode Mode) error {
	meshes := topo.Meshes()
	if currents.Length() != len(meshes) {
		return &maths.DimensionError{What: "current vector length", Want: len(meshes), Got: currents.Length()}
	}
	for i, m := range meshes {
		m.Current = currents.Get(i)
		m.Solved = true
	}
	for _, b := range topo.Branches() {
		if mode == ModeOriented {
			b.Current = orientedCurrent(b, meshes)
		} else {
			b.Current = heuristicCurrent(b, meshes)
		}
		b.Power = make([]float64, len(b.Impedances))
		for l, imp := range b.Impedances {
			b.Power[l] = b.Current * b.Current * imp.Value
		}
		b.Solved = true
	}
	return nil
}

// heuristicCurrent 第一个经过支路的网孔直接设定电流
// 之后的网孔：累计值仍为0时相加，否则电流为正相减、非正相加
func heuristicCurrent(b *types.Branch, meshes []*types.Mesh) float64 {
	current := 0.0
	for _, m := range meshes {
		if !m.HasBranch(b.ID) {
			continue
		}
		switch {
		case current == 0:
			current += m.Current
		case m.Current > 0:
			current -= m.Current
		default:
			current += m.Current
		}
	}
	return current
}

// orientedCurrent 按绕行方向求和
func orientedCurrent(b *types.Branch, meshes []*types.Mesh) float64 {
	current := 0.0
	for _, m := range meshes {
		if m.HasBranch(b.ID) {
			current += m.Orientation(b.ID).Sign() * m.Current
		}
	}
	return current
}
