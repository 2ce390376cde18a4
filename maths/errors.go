package maths

import (
	"errors"
	"fmt"
)

// 求解器哨兵错误，调用方使用 errors.Is 匹配
var (
	// ErrSingularSystem 分解或回代过程中遇到零（或容差内为零）的主元
	ErrSingularSystem = errors.New("maths: singular system")
	// ErrDimensionMismatch 矩阵与向量维度不一致
	ErrDimensionMismatch = errors.New("maths: dimension mismatch")
	// ErrNonFinite 输入中出现 NaN 或 ±Inf
	ErrNonFinite = errors.New("maths: NaN or Inf encountered")
)

// Stage 出错的计算阶段
type Stage string

const (
	StageDecompose Stage = "lu decomposition"
	StageForward   Stage = "forward substitution"
	StageBackward  Stage = "back substitution"
)

// SingularError 记录奇异主元的位置
type SingularError struct {
	Stage Stage   // 出错阶段
	Pivot int     // 主元下标（对角线行号）
	Value float64 // 主元值
}

func (e *SingularError) Error() string {
	return fmt.Sprintf("maths: singular system: %s pivot %d is %g", e.Stage, e.Pivot, e.Value)
}

func (e *SingularError) Unwrap() error { return ErrSingularSystem }

// DimensionError 维度不匹配
type DimensionError struct {
	What string // 被检查的对象
	Want int    // 期望维度
	Got  int    // 实际维度
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("maths: dimension mismatch: %s want %d, got %d", e.What, e.Want, e.Got)
}

func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }

// NonFiniteError 非有限元素的位置
type NonFiniteError struct {
	Row, Col int
	Value    float64
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("maths: NaN or Inf encountered: entry (%d,%d) is %v", e.Row, e.Col, e.Value)
}

func (e *NonFiniteError) Unwrap() error { return ErrNonFinite }
