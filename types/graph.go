package types

// Mesh 网孔记录
type Mesh struct {
	ID             MeshID  // 网孔标识
	VoltageSource  float64 // 网孔内电池电动势之和（按声明原样累加）
	OrientedSource float64 // 按绕行方向加符号后的电动势之和
	Impedance      float64 // 网孔自阻抗（所有支路电阻之和）
	Current        float64 // 求解后的网孔电流
	Solved         bool    // 电流是否已写入

	branches  []BranchID               // 网孔经过的支路（按声明顺序，无重复）
	branchSet map[BranchID]Orientation // 支路查找表及绕行方向
}

// NewMesh 创建网孔
func NewMesh(id MeshID) *Mesh {
	return &Mesh{ID: id, branchSet: map[BranchID]Orientation{}}
}

// AddBranch 登记支路，已存在时返回 false
func (m *Mesh) AddBranch(id BranchID, o Orientation) bool {
	if _, ok := m.branchSet[id]; ok {
		return false
	}
	m.branches = append(m.branches, id)
	m.branchSet[id] = o
	return true
}

// HasBranch 网孔是否经过该支路
func (m *Mesh) HasBranch(id BranchID) bool {
	_, ok := m.branchSet[id]
	return ok
}

// Orientation 网孔经过该支路的方向
func (m *Mesh) Orientation(id BranchID) Orientation {
	return m.branchSet[id]
}

// Branches 网孔经过的支路列表副本
func (m *Mesh) Branches() []BranchID {
	return append([]BranchID(nil), m.branches...)
}

// BranchCount 支路数量
func (m *Mesh) BranchCount() int { return len(m.branches) }

// Branch 支路记录，每条物理支路只存在一份
type Branch struct {
	ID         BranchID    // 支路标识
	Impedances []Impedance // 支路上的电阻（按声明顺序）
	Impedance  float64     // 支路电阻之和
	Meshes     []MeshID    // 引用该支路的网孔（按引用顺序）
	Current    float64     // 求解后的支路电流（带符号）
	Power      []float64   // 每个电阻的耗散功率，与 Impedances 一一对应
	Solved     bool        // 电流是否已写入
}

// NewBranch 创建支路
func NewBranch(id BranchID) *Branch {
	return &Branch{ID: id}
}

// HasImpedance 支路上是否已登记该电阻
func (b *Branch) HasImpedance(id ElementID) (Impedance, bool) {
	for _, imp := range b.Impedances {
		if imp.ID == id {
			return imp, true
		}
	}
	return Impedance{}, false
}

// TotalPower 支路总耗散功率
func (b *Branch) TotalPower() float64 {
	sum := 0.0
	for _, p := range b.Power {
		sum += p
	}
	return sum
}
