package tree

import (
	"fmt"
	"math/bits"
)

// SegmentTree 是一个为加权随机抽样优化的线段树。
// 宝石属性的品质加权掷点通过它完成：先Rebuild一张权重表，
// 再用 [0, TotalSum) 区间内的随机数调用Find定位条目。
type SegmentTree struct {
	tree         []float64 // 存储树的节点，大小为 2 * alignedSize
	originalSize int       // 用户请求的原始大小 (N)
	alignedSize  int       // 对齐到2的幂次后的大小
}

// NewSegmentTree 创建一个指定大小的空线段树。
func NewSegmentTree(size int) (*SegmentTree, error) {
	if size <= 0 {
		return nil, fmt.Errorf("树的大小必须为正数")
	}
	alignedSize := 1 << bits.Len(uint(size))
	return &SegmentTree{
		tree:         make([]float64, 2*alignedSize),
		originalSize: size,
		alignedSize:  alignedSize,
	}, nil
}

// Rebuild 从一个给定的权重数组重建树。
// 数组长度必须与树的原始大小匹配。
func (st *SegmentTree) Rebuild(weights []float64) error {
	if len(weights) != st.originalSize {
		return fmt.Errorf("权重数组大小 (%d) 与树的原始大小 (%d) 不匹配", len(weights), st.originalSize)
	}

	// 填充叶子节点，多余的叶子清零
	for i := 0; i < st.originalSize; i++ {
		st.tree[st.alignedSize+i] = weights[i]
	}
	for i := st.originalSize; i < st.alignedSize; i++ {
		st.tree[st.alignedSize+i] = 0
	}

	// 非递归地从下到上构建父节点
	for i := st.alignedSize - 1; i > 0; i-- {
		st.tree[i] = st.tree[2*i] + st.tree[2*i+1]
	}
	return nil
}

// Update 非递归地更新指定索引的权重值。
func (st *SegmentTree) Update(index int, value float64) error {
	if index < 0 || index >= st.originalSize {
		return fmt.Errorf("索引 %d 超出范围 [0, %d)", index, st.originalSize)
	}

	pos := st.alignedSize + index
	st.tree[pos] = value

	for pos > 1 {
		pos /= 2
		st.tree[pos] = st.tree[2*pos] + st.tree[2*pos+1]
	}
	return nil
}

// TotalSum 返回所有权重的总和。
func (st *SegmentTree) TotalSum() float64 {
	return st.tree[1]
}

// Find 定位第一个使前缀和超过给定权重的索引。
// 权重应落在 [0, TotalSum()) 区间内。
func (st *SegmentTree) Find(weight float64) (int, error) {
	if weight < 0 || weight >= st.TotalSum() {
		return 0, fmt.Errorf("权重 %f 超出范围 [0, %f)", weight, st.TotalSum())
	}

	pos := 1
	for pos < st.alignedSize {
		left := 2 * pos
		if weight < st.tree[left] {
			pos = left
		} else {
			weight -= st.tree[left]
			pos = left + 1
		}
	}

	index := pos - st.alignedSize
	if index >= st.originalSize {
		// 浮点误差落入了清零的补齐叶子，归到最后一个真实条目
		index = st.originalSize - 1
	}
	return index, nil
}
