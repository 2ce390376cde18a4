package maths

import (
	"math"

	"golang.org/x/exp/constraints"
)

// DefaultTolerance 主元判零的默认阈值
const DefaultTolerance = 1e-16

// Abs 返回浮点数的绝对值
func Abs[T constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// IsZero 判断 v 在容差 tol 内是否为零（|v| <= tol）
func IsZero[T constraints.Float](v, tol T) bool {
	return Abs(v) <= tol
}

// IsFinite 判断数值既不是 NaN 也不是 ±Inf
func IsFinite[T constraints.Float](v T) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// checkFinite 检查矩阵所有元素均为有限值
func checkFinite(a Matrix) error {
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			if !IsFinite(a.Get(i, j)) {
				return &NonFiniteError{Row: i, Col: j, Value: a.Get(i, j)}
			}
		}
	}
	return nil
}
