package graph

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"meshcircuit/maths"
	"meshcircuit/types"
)

// Topology 网孔与支路拓扑
// 独占所有 Mesh 与 Branch 记录，按声明顺序保存网孔与支路
type Topology struct {
	meshes      []*types.Mesh                    // 网孔列表（顺序决定矩阵行列）
	meshIndex   map[types.MeshID]int             // 网孔查找表
	branches    map[types.BranchID]*types.Branch // 支路查找表
	branchOrder []types.BranchID                 // 支路首次出现顺序
	seen        map[elementKey]types.Element     // 已登记元件，用于重复声明判定
	declared    []elementKey                     // 元件登记顺序
	log         logr.Logger
}

// elementKey 元件在某网孔某支路上的唯一键
type elementKey struct {
	mesh    types.MeshID
	branch  types.BranchID
	element types.ElementID
}

// Option 拓扑参数
type Option func(*Topology)

// WithLogger 设置日志
func WithLogger(log logr.Logger) Option {
	return func(t *Topology) { t.log = log }
}

// NewTopology 创建空拓扑
func NewTopology(opts ...Option) *Topology {
	t := &Topology{
		meshIndex: map[types.MeshID]int{},
		branches:  map[types.BranchID]*types.Branch{},
		seen:      map[elementKey]types.Element{},
		log:       logr.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// AddMesh 声明网孔，重复声明返回错误
func (t *Topology) AddMesh(id types.MeshID) (*types.Mesh, error) {
	if id == "" {
		return nil, &ElementError{Mesh: id, Reason: "empty mesh identifier", Err: ErrInvalidValue}
	}
	if _, ok := t.meshIndex[id]; ok {
		return nil, &TopologyError{Reason: "mesh declared twice", Meshes: []types.MeshID{id}}
	}
	return t.addMesh(id), nil
}

func (t *Topology) addMesh(id types.MeshID) *types.Mesh {
	m := types.NewMesh(id)
	t.meshIndex[id] = len(t.meshes)
	t.meshes = append(t.meshes, m)
	t.log.V(1).Info("creating mesh", "mesh", id)
	return m
}

// mesh 获取网孔，不存在时创建
func (t *Topology) mesh(id types.MeshID) *types.Mesh {
	if i, ok := t.meshIndex[id]; ok {
		return t.meshes[i]
	}
	return t.addMesh(id)
}

// branch 获取支路，首次出现时创建
func (t *Topology) branch(id types.BranchID) *types.Branch {
	if b, ok := t.branches[id]; ok {
		return b
	}
	b := types.NewBranch(id)
	t.branches[id] = b
	t.branchOrder = append(t.branchOrder, id)
	return b
}

// RegisterBranch 将支路登记到网孔（支路不含元件时也属于该网孔）
func (t *Topology) RegisterBranch(meshID types.MeshID, branchID types.BranchID, o types.Orientation) error {
	if meshID == "" || branchID == "" {
		return &ElementError{Mesh: meshID, Branch: branchID, Reason: "empty identifier", Err: ErrInvalidValue}
	}
	m := t.mesh(meshID)
	b := t.branch(branchID)
	if m.HasBranch(branchID) {
		if o != types.OrientationAuto && o != m.Orientation(branchID) {
			return &ElementError{Mesh: meshID, Branch: branchID,
				Reason: fmt.Sprintf("direction %s conflicts with %s", o, m.Orientation(branchID)),
				Err:    ErrConflictingElement}
		}
		return nil
	}
	if o == types.OrientationAuto {
		// 首个经过该支路的网孔为同向，其余为反向
		o = types.OrientationForward
		if len(b.Meshes) > 0 {
			o = types.OrientationReverse
		}
	}
	m.AddBranch(branchID, o)
	b.Meshes = append(b.Meshes, meshID)
	return nil
}

// RecordElement 登记网孔某支路上的元件（方向由首次引用决定）
func (t *Topology) RecordElement(meshID types.MeshID, branchID types.BranchID, kind types.ElementKind, id types.ElementID, value float64) error {
	return t.RecordElementOriented(meshID, branchID, types.OrientationAuto, kind, id, value)
}

// RecordElementOriented 登记元件并声明网孔经过支路的方向
//
//	电池: 电动势累加到网孔电压源
//	电阻: 追加到支路电阻列表并累加支路阻抗与网孔自阻抗
//
// 同一网孔同一支路上重复提交相同元件不产生任何效果
func (t *Topology) RecordElementOriented(meshID types.MeshID, branchID types.BranchID, o types.Orientation, kind types.ElementKind, id types.ElementID, value float64) error {
	if id == "" {
		return &ElementError{Mesh: meshID, Branch: branchID, Element: id, Reason: "empty element identifier", Err: ErrInvalidValue}
	}
	if !maths.IsFinite(value) {
		return &ElementError{Mesh: meshID, Branch: branchID, Element: id, Reason: fmt.Sprintf("value %v is not finite", value), Err: ErrInvalidValue}
	}
	if kind != types.KindBattery && kind != types.KindResistance {
		return &ElementError{Mesh: meshID, Branch: branchID, Element: id, Reason: "unknown element kind", Err: ErrInvalidValue}
	}

	// 冲突检查先于任何登记，失败时拓扑保持不变
	key := elementKey{mesh: meshID, branch: branchID, element: id}
	el := types.Element{ID: id, Kind: kind, Value: value}
	prev, redeclared := t.seen[key]
	if redeclared && prev != el {
		return &ElementError{Mesh: meshID, Branch: branchID, Element: id,
			Reason: fmt.Sprintf("%s %v redeclared as %s %v", prev.Kind, prev.Value, kind, value),
			Err:    ErrConflictingElement}
	}
	if b, ok := t.branches[branchID]; ok && kind == types.KindResistance {
		if imp, ok := b.HasImpedance(id); ok && imp.Value != value {
			return &ElementError{Mesh: meshID, Branch: branchID, Element: id,
				Reason: fmt.Sprintf("resistance %v redeclared as %v", imp.Value, value),
				Err:    ErrConflictingElement}
		}
	}
	if err := t.RegisterBranch(meshID, branchID, o); err != nil {
		return err
	}
	if redeclared {
		return nil
	}

	m := t.mesh(meshID)
	b := t.branch(branchID)
	switch kind {
	case types.KindBattery:
		t.remember(key, el)
		m.VoltageSource += value
		m.OrientedSource += m.Orientation(branchID).Sign() * value
		t.log.V(1).Info("found battery", "mesh", meshID, "branch", branchID, "battery", id, "value", value)
	case types.KindResistance:
		// 共享支路上的同一电阻：只计入本网孔自阻抗
		if _, ok := b.HasImpedance(id); !ok {
			b.Impedances = append(b.Impedances, types.Impedance{ID: id, Value: value})
			b.Impedance += value
		}
		t.remember(key, el)
		m.Impedance += value
		t.log.V(1).Info("found impedance", "mesh", meshID, "branch", branchID, "resistance", id, "value", value)
	}
	return nil
}

func (t *Topology) remember(key elementKey, el types.Element) {
	t.seen[key] = el
	t.declared = append(t.declared, key)
}

// Elements 网孔在某支路上登记的元件（登记顺序）
func (t *Topology) Elements(meshID types.MeshID, branchID types.BranchID) []types.Element {
	var out []types.Element
	for _, key := range t.declared {
		if key.mesh == meshID && key.branch == branchID {
			out = append(out, t.seen[key])
		}
	}
	return out
}

// Validate 检查拓扑是否满足网孔分析前提
// 返回所有问题的合并错误（可用 errors.Is 匹配 ErrMalformedTopology）
func (t *Topology) Validate() error {
	if len(t.meshes) == 0 {
		return &TopologyError{Reason: "circuit has no meshes"}
	}
	var errs []error
	for _, m := range t.meshes {
		if m.BranchCount() == 0 {
			errs = append(errs, &TopologyError{Reason: "mesh has no branches", Meshes: []types.MeshID{m.ID}})
		}
	}
	for _, id := range t.branchOrder {
		b := t.branches[id]
		switch n := len(b.Meshes); {
		case n == 0:
			errs = append(errs, &TopologyError{Reason: "branch is not referenced by any mesh", Branches: []types.BranchID{id}})
		case n > types.MaxBranchMeshes:
			errs = append(errs, &TopologyError{
				Reason:   fmt.Sprintf("branch is shared by %d meshes", n),
				Meshes:   append([]types.MeshID(nil), b.Meshes...),
				Branches: []types.BranchID{id},
			})
		}
	}
	return errors.Join(errs...)
}

// SharedBranches 两个网孔共同经过的支路（按网孔a的支路顺序）
func SharedBranches(a, b *types.Mesh) []types.BranchID {
	var shared []types.BranchID
	for _, id := range a.Branches() {
		if b.HasBranch(id) {
			shared = append(shared, id)
		}
	}
	return shared
}

// Meshes 网孔列表（声明顺序）
func (t *Topology) Meshes() []*types.Mesh {
	return append([]*types.Mesh(nil), t.meshes...)
}

// Branches 支路列表（首次出现顺序）
func (t *Topology) Branches() []*types.Branch {
	out := make([]*types.Branch, len(t.branchOrder))
	for i, id := range t.branchOrder {
		out[i] = t.branches[id]
	}
	return out
}

// Mesh 按标识查找网孔
func (t *Topology) Mesh(id types.MeshID) (*types.Mesh, bool) {
	i, ok := t.meshIndex[id]
	if !ok {
		return nil, false
	}
	return t.meshes[i], true
}

// Branch 按标识查找支路
func (t *Topology) Branch(id types.BranchID) (*types.Branch, bool) {
	b, ok := t.branches[id]
	return b, ok
}

// MeshCount 网孔数量
func (t *Topology) MeshCount() int { return len(t.meshes) }

// BranchCount 支路数量
func (t *Topology) BranchCount() int { return len(t.branchOrder) }

// TotalPower 全电路耗散功率
func (t *Topology) TotalPower() float64 {
	sum := 0.0
	for _, id := range t.branchOrder {
		sum += t.branches[id].TotalPower()
	}
	return sum
}

// Solved 所有网孔和支路是否都已写入电流
func (t *Topology) Solved() bool {
	if len(t.meshes) == 0 {
		return false
	}
	for _, m := range t.meshes {
		if !m.Solved {
			return false
		}
	}
	for _, id := range t.branchOrder {
		if !t.branches[id].Solved {
			return false
		}
	}
	return true
}
