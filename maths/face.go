package maths

// Matrix 通用矩阵接口
// 定义稠密矩阵的基本操作，网孔阻抗矩阵与LU因子都通过该接口访问
type Matrix interface {
	// 基础属性方法
	Rows() int      // 获取矩阵行数
	Cols() int      // 获取矩阵列数
	IsSquare() bool // 判断是否为方阵（行数=列数）
	String() string // 格式化字符串输出

	// 数据访问方法
	Get(row, col int) float64              // 获取指定行列元素值
	Set(row, col int, value float64)       // 设置指定行列元素值
	Increment(row, col int, value float64) // 增量更新元素（value累加）

	// 数据转换与运算
	ToDense() [][]float64                 // 转换为二维切片副本
	MatrixVectorMultiply(x Vector) Vector // 矩阵向量乘法（返回A*x）
}

// Vector 通用向量接口
type Vector interface {
	Length() int    // 获取向量长度
	String() string // 格式化字符串输出

	Get(index int) float64              // 获取指定索引元素值
	Set(index int, value float64)       // 设置指定索引元素值
	Increment(index int, value float64) // 增量更新元素（value累加）

	ToDense() []float64 // 转换为稠密切片副本
}
