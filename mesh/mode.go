package mesh

import "fmt"

// Mode 支路电流分配方式
type Mode uint8

const (
	// ModeHeuristic 按网孔顺序累加，后续网孔电流为正时相减（与历史输出逐位一致）
	ModeHeuristic Mode = iota
	// ModeOriented 按登记的绕行方向求和 I_b = Σ dir(m,b)·I_m
	ModeOriented
)

// String 返回分配方式名称
func (m Mode) String() string {
	switch m {
	case ModeHeuristic:
		return "heuristic"
	case ModeOriented:
		return "oriented"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode 解析分配方式
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "heuristic":
		return ModeHeuristic, nil
	case "oriented":
		return ModeOriented, nil
	}
	return ModeHeuristic, fmt.Errorf("unknown orientation mode %q", s)
}
