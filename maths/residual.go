package maths

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ToGonum 转换为 gonum 稠密矩阵
// 空矩阵返回 nil（gonum 不允许零维矩阵）
func ToGonum(a Matrix) *mat.Dense {
	if a.Rows() == 0 || a.Cols() == 0 {
		return nil
	}
	d := mat.NewDense(a.Rows(), a.Cols(), nil)
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			d.Set(i, j, a.Get(i, j))
		}
	}
	return d
}

// Residual 计算 ‖A*x - b‖∞，用于求解后的自检
func Residual(a Matrix, x, b Vector) (float64, error) {
	if x.Length() != a.Cols() {
		return 0, &DimensionError{What: "solution length", Want: a.Cols(), Got: x.Length()}
	}
	if b.Length() != a.Rows() {
		return 0, &DimensionError{What: "right-hand side length", Want: a.Rows(), Got: b.Length()}
	}
	if a.Rows() == 0 || a.Cols() == 0 {
		return 0, nil
	}
	var r mat.VecDense
	r.MulVec(ToGonum(a), mat.NewVecDense(x.Length(), x.ToDense()))
	r.SubVec(&r, mat.NewVecDense(b.Length(), b.ToDense()))
	return mat.Norm(&r, math.Inf(1)), nil
}
