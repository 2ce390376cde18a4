package maths

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// LUFactors Doolittle分解结果 A = L*U
//
//	L - 单位下三角矩阵（对角线为1）
//	U - 上三角矩阵
//
// 不做行列置换，因此 L*U 直接还原原矩阵
type LUFactors struct {
	L *DenseMatrix // 下三角矩阵L
	U *DenseMatrix // 上三角矩阵U
}

// Dim 获取矩阵维度
func (f *LUFactors) Dim() int {
	return f.L.Rows()
}

// Option 分解与求解参数
type Option func(*options)

type options struct {
	tolerance float64 // 主元判零阈值
	parallel  int     // 维度达到该值时按行并行，0 表示关闭
	workers   int     // 并行协程数
}

func newOptions(opts []Option) options {
	o := options{
		tolerance: DefaultTolerance,
		workers:   runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}

// WithTolerance 设置主元判零阈值，|pivot| <= tol 视为奇异
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol >= 0 {
			o.tolerance = tol
		}
	}
}

// WithParallel 当矩阵维度 >= threshold 时按行并行计算U行与L列
// 每个元素的累加顺序与串行一致，结果逐位相同
func WithParallel(threshold int) Option {
	return func(o *options) { o.parallel = threshold }
}

// WithWorkers 设置并行协程数（默认 GOMAXPROCS）
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// Decompose 执行Doolittle LU分解（无主元选择）
// 参数:
//
//	a    - 输入矩阵A（必须为方阵，维度>=1）
//	opts - 容差与并行参数
//
// 返回:
//
//	LU分解结果，错误信息（维度错误、非有限值、零主元）
//
// 算法步骤（对每一行 i）:
//  1. U[i][k] = A[i][k] - Σ_{j<i} L[i][j]*U[j][k]，k >= i
//  2. 检查 U[i][i]，在容差内为零则返回 SingularError
//  3. L[i][i] = 1
//  4. L[k][i] = (A[k][i] - Σ_{j<i} L[k][j]*U[j][i]) / U[i][i]，k > i
func Decompose(a Matrix, opts ...Option) (*LUFactors, error) {
	o := newOptions(opts)
	if !a.IsSquare() {
		return nil, &DimensionError{What: "matrix columns", Want: a.Rows(), Got: a.Cols()}
	}
	n := a.Rows()
	if n < 1 {
		return nil, &DimensionError{What: "matrix dimension", Want: 1, Got: n}
	}
	if err := checkFinite(a); err != nil {
		return nil, err
	}

	f := &LUFactors{
		L: NewDenseMatrix(n, n),
		U: NewDenseMatrix(n, n),
	}
	L, U := f.L.data, f.U.data
	parallel := o.parallel > 0 && n >= o.parallel && o.workers > 1

	for i := 0; i < n; i++ {
		// 上三角
		upper := func(k int) {
			sum := 0.0
			for j := 0; j < i; j++ {
				sum += L[i][j] * U[j][k]
			}
			U[i][k] = a.Get(i, k) - sum
		}
		if parallel {
			forRange(i, n, o.workers, upper)
		} else {
			for k := i; k < n; k++ {
				upper(k)
			}
		}

		pivot := U[i][i]
		if IsZero(pivot, o.tolerance) {
			return nil, &SingularError{Stage: StageDecompose, Pivot: i, Value: pivot}
		}

		// 下三角
		L[i][i] = 1
		lower := func(k int) {
			sum := 0.0
			for j := 0; j < i; j++ {
				sum += L[k][j] * U[j][i]
			}
			L[k][i] = (a.Get(k, i) - sum) / pivot
		}
		if parallel {
			forRange(i+1, n, o.workers, lower)
		} else {
			for k := i + 1; k < n; k++ {
				lower(k)
			}
		}
	}
	return f, nil
}

// forRange 对 [from, to) 的每个下标执行 fn，同时最多 workers 个协程
func forRange(from, to, workers int, fn func(k int)) {
	var g errgroup.Group
	g.SetLimit(workers)
	for k := from; k < to; k++ {
		g.Go(func() error {
			fn(k)
			return nil
		})
	}
	_ = g.Wait()
}

// SolveLU 利用分解结果求解 L*U*x = b
// 参数:
//
//	f - LU分解结果
//	b - 右侧向量b
//
// 返回:
//
//	解向量x，错误信息（维度不匹配或对角除数为零）
//
// 数学步骤:
//  1. 前向替换：求解 L*y = b
//  2. 后向替换：求解 U*x = y
func SolveLU(f *LUFactors, b Vector, opts ...Option) (*DenseVector, error) {
	o := newOptions(opts)
	n := f.Dim()
	if n < 1 {
		return nil, &DimensionError{What: "factor dimension", Want: 1, Got: n}
	}
	if b.Length() != n {
		return nil, &DimensionError{What: "right-hand side length", Want: n, Got: b.Length()}
	}
	L, U := f.L.data, f.U.data

	// 前向替换: L*y = b
	y := make([]float64, n)
	if IsZero(L[0][0], o.tolerance) {
		return nil, &SingularError{Stage: StageForward, Pivot: 0, Value: L[0][0]}
	}
	y[0] = b.Get(0) / L[0][0]
	for i := 1; i < n; i++ {
		subtract := 0.0
		for j := i - 1; j >= 0; j-- {
			subtract -= y[j] * L[i][j]
		}
		if IsZero(L[i][i], o.tolerance) {
			return nil, &SingularError{Stage: StageForward, Pivot: i, Value: L[i][i]}
		}
		y[i] = (b.Get(i) + subtract) / L[i][i]
	}

	// 后向替换: U*x = y
	x := NewDenseVector(n)
	if IsZero(U[n-1][n-1], o.tolerance) {
		return nil, &SingularError{Stage: StageBackward, Pivot: n - 1, Value: U[n-1][n-1]}
	}
	x.data[n-1] = y[n-1] / U[n-1][n-1]
	for i := n - 2; i >= 0; i-- {
		subtract := 0.0
		for j := i + 1; j < n; j++ {
			subtract -= x.data[j] * U[i][j]
		}
		if IsZero(U[i][i], o.tolerance) {
			return nil, &SingularError{Stage: StageBackward, Pivot: i, Value: U[i][i]}
		}
		x.data[i] = (y[i] + subtract) / U[i][i]
	}
	return x, nil
}

// Solve 分解矩阵A并求解 A*x = b
func Solve(a Matrix, b Vector, opts ...Option) (*DenseVector, *LUFactors, error) {
	if b.Length() != a.Rows() {
		return nil, nil, &DimensionError{What: "right-hand side length", Want: a.Rows(), Got: b.Length()}
	}
	f, err := Decompose(a, opts...)
	if err != nil {
		return nil, nil, err
	}
	x, err := SolveLU(f, b, opts...)
	if err != nil {
		return nil, nil, err
	}
	return x, f, nil
}
