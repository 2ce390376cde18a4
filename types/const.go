package types

// 默认参数常量定义
var (
	PivotTolerance    = 1e-16 // 主元判零阈值
	ParallelThreshold = 0     // 按行并行分解的维度阈值，0 为关闭
	MaxBranchMeshes   = 2     // 一条支路最多被两个网孔共享（平面网孔假设）
)
