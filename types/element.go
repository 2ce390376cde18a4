package types

// MeshID 网孔标识
type MeshID string

// BranchID 支路标识（多个网孔共享同一支路时标识相同）
type BranchID string

// ElementID 元件标识
type ElementID string

// Element 支路上声明的单个元件
type Element struct {
	ID    ElementID   // 元件标识
	Kind  ElementKind // 元件类型
	Value float64     // 电动势(V)或电阻(Ω)
}

// Impedance 支路上的电阻元件
type Impedance struct {
	ID    ElementID // 元件标识
	Value float64   // 阻值(Ω)
}
