package maths

import (
	"fmt"
	"strings"
)

// DenseMatrix 稠密矩阵数据结构
type DenseMatrix struct {
	rows, cols int
	data       [][]float64 // 二维数组存储所有元素
}

// NewDenseMatrix 创建新的稠密矩阵（所有元素为零）
func NewDenseMatrix(rows, cols int) *DenseMatrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("invalid matrix shape %dx%d", rows, cols))
	}
	data := make([][]float64, rows)
	for i := range data {
		data[i] = make([]float64, cols)
	}
	return &DenseMatrix{
		rows: rows,
		cols: cols,
		data: data,
	}
}

// NewDenseMatrixFrom 从二维切片创建稠密矩阵（数据被复制，不同长度的行会panic）
func NewDenseMatrixFrom(dense [][]float64) *DenseMatrix {
	cols := 0
	if len(dense) > 0 {
		cols = len(dense[0])
	}
	m := NewDenseMatrix(len(dense), cols)
	for i := range dense {
		if len(dense[i]) != cols {
			panic(fmt.Sprintf("row %d has %d columns, want %d", i, len(dense[i]), cols))
		}
		copy(m.data[i], dense[i])
	}
	return m
}

// checkIndex 越界检查
func (m *DenseMatrix) checkIndex(row, col int) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("index (%d,%d) out of range for %dx%d matrix", row, col, m.rows, m.cols))
	}
}

// Set 设置矩阵元素
func (m *DenseMatrix) Set(row, col int, value float64) {
	m.checkIndex(row, col)
	m.data[row][col] = value
}

// Increment 增量设置矩阵元素（累加值）
func (m *DenseMatrix) Increment(row, col int, value float64) {
	m.checkIndex(row, col)
	m.data[row][col] += value
}

// Get 获取矩阵元素
func (m *DenseMatrix) Get(row, col int) float64 {
	m.checkIndex(row, col)
	return m.data[row][col]
}

// Rows 返回行数
func (m *DenseMatrix) Rows() int {
	return m.rows
}

// Cols 返回列数
func (m *DenseMatrix) Cols() int {
	return m.cols
}

// IsSquare 检查是否为方阵
func (m *DenseMatrix) IsSquare() bool {
	return m.rows == m.cols
}

// String 字符串表示
func (m *DenseMatrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			fmt.Fprintf(&sb, "%8.4f ", m.data[i][j])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ToDense 转换为二维切片副本
func (m *DenseMatrix) ToDense() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range m.data {
		out[i] = make([]float64, m.cols)
		copy(out[i], m.data[i])
	}
	return out
}

// MatrixVectorMultiply 执行矩阵向量乘法
func (m *DenseMatrix) MatrixVectorMultiply(x Vector) Vector {
	if x.Length() != m.cols {
		panic(fmt.Sprintf("vector dimension mismatch: x length=%d, matrix cols=%d", x.Length(), m.cols))
	}
	result := NewDenseVector(m.rows)
	for i := 0; i < m.rows; i++ {
		sum := 0.0
		for j := 0; j < m.cols; j++ {
			sum += m.data[i][j] * x.Get(j)
		}
		result.data[i] = sum
	}
	return result
}

// IsSymmetric 检查方阵在容差内是否对称
func (m *DenseMatrix) IsSymmetric(tol float64) bool {
	if !m.IsSquare() {
		return false
	}
	for i := 0; i < m.rows; i++ {
		for j := i + 1; j < m.cols; j++ {
			if Abs(m.data[i][j]-m.data[j][i]) > tol {
				return false
			}
		}
	}
	return true
}

// Multiply 矩阵乘法 a*b
// 用于验证 L*U 是否还原原矩阵
func Multiply(a, b Matrix) (*DenseMatrix, error) {
	if a.Cols() != b.Rows() {
		return nil, &DimensionError{What: "matrix product inner dimension", Want: a.Cols(), Got: b.Rows()}
	}
	out := NewDenseMatrix(a.Rows(), b.Cols())
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < b.Cols(); j++ {
			sum := 0.0
			for k := 0; k < a.Cols(); k++ {
				sum += a.Get(i, k) * b.Get(k, j)
			}
			out.data[i][j] = sum
		}
	}
	return out, nil
}
