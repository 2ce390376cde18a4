package maths

import (
	"fmt"
	"strings"
)

// DenseVector 稠密向量数据结构
type DenseVector struct {
	data []float64 // 一维数组存储所有元素
}

// NewDenseVector 创建新的稠密向量
func NewDenseVector(length int) *DenseVector {
	return &DenseVector{data: make([]float64, length)}
}

// NewDenseVectorFrom 从现有数据创建稠密向量（数据被复制）
func NewDenseVectorFrom(data []float64) *DenseVector {
	v := &DenseVector{data: make([]float64, len(data))}
	copy(v.data, data)
	return v
}

func (v *DenseVector) checkIndex(index int) {
	if index < 0 || index >= len(v.data) {
		panic(fmt.Sprintf("index %d out of range for vector of length %d", index, len(v.data)))
	}
}

// Set 设置向量元素
func (v *DenseVector) Set(index int, value float64) {
	v.checkIndex(index)
	v.data[index] = value
}

// Increment 增量设置向量元素（累加值）
func (v *DenseVector) Increment(index int, value float64) {
	v.checkIndex(index)
	v.data[index] += value
}

// Get 获取向量元素
func (v *DenseVector) Get(index int) float64 {
	v.checkIndex(index)
	return v.data[index]
}

// Length 返回向量长度
func (v *DenseVector) Length() int {
	return len(v.data)
}

// String 字符串表示
func (v *DenseVector) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for _, x := range v.data {
		fmt.Fprintf(&sb, "%8.4f ", x)
	}
	sb.WriteByte(']')
	return sb.String()
}

// ToDense 转换为稠密向量
func (v *DenseVector) ToDense() []float64 {
	result := make([]float64, len(v.data))
	copy(result, v.data)
	return result
}
