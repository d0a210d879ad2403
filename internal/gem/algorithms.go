package gem

import (
	"fmt"
	"math/rand"

	"github.com/SlpAus/destiny-wheel-backend/pkg/tree"
)

// --- 费用表 ---

// RevealCost 返回揭示指定品质宝石所需的骨币数量，随品质单调递增。
func RevealCost(quality Quality) uint64 {
	switch quality {
	case QualityLesser:
		return 125000
	case QualityRegular:
		return 250000
	case QualityGreater:
		return 500000
	}
	return 0
}

// RotateCost 返回轮换激活宝石时，按新宝石品质收取的费用。
func RotateCost(quality Quality) uint64 {
	switch quality {
	case QualityLesser:
		return 25000
	case QualityRegular:
		return 50000
	case QualityGreater:
		return 100000
	}
	return 0
}

// RevelationPoints 返回激活宝石为其亲和颜色贡献的启示点数。
func RevelationPoints(quality Quality) uint16 {
	switch quality {
	case QualityLesser:
		return 150
	case QualityRegular:
		return 300
	case QualityGreater:
		return 450
	}
	return 0
}

// --- 品质加权掷点 ---
// 基础词条的出现概率随品质偏移：低品质偏向生命/魔力/负重等平庸词条，
// 高品质偏向抗性和减伤词条。权重表在启动时构建成线段树，
// 掷点时用随机前缀和定位词条。

var basicRollWeights = map[Quality][]float64{
	QualityLesser: {
		0,   // BasicNone 不可掷出
		5,   // 物理抗性
		5,   // 能量抗性
		5,   // 土系抗性
		5,   // 火系抗性
		5,   // 冰系抗性
		3,   // 神圣抗性
		3,   // 死亡抗性
		4,   // 减伤
		25,  // 生命
		25,  // 魔力
		15,  // 负重
	},
	QualityRegular: {
		0,
		10, 10, 10, 10, 10,
		6, 6,
		8,
		12, 12, 6,
	},
	QualityGreater: {
		0,
		14, 14, 14, 14, 14,
		8, 8,
		10,
		2, 2, 0,
	},
}

// 至高词条只对Greater品质掷出，权重彼此接近，压低回避类词条。
var supremeRollWeights = []float64{
	0,  // SupremeNone 不可掷出
	12, // 生命偷取
	12, // 魔力偷取
	10, // 暴击几率
	10, // 暴击伤害
	8,  // 化身冷却
	12, // 光束精通伤害
	12, // 处刑者投掷伤害
	12, // 神圣手雷伤害
	12, // 双重爆发伤害
	10, // 林祝愿治疗
}

var (
	basicRollTrees  map[Quality]*tree.SegmentTree
	supremeRollTree *tree.SegmentTree
)

func init() {
	basicRollTrees = make(map[Quality]*tree.SegmentTree, len(basicRollWeights))
	for quality, weights := range basicRollWeights {
		st, err := tree.NewSegmentTree(len(weights))
		if err != nil {
			panic(fmt.Sprintf("无法创建宝石基础词条权重树: %v", err))
		}
		if err := st.Rebuild(weights); err != nil {
			panic(fmt.Sprintf("无法构建宝石基础词条权重树: %v", err))
		}
		basicRollTrees[quality] = st
	}

	st, err := tree.NewSegmentTree(len(supremeRollWeights))
	if err != nil {
		panic(fmt.Sprintf("无法创建宝石至高词条权重树: %v", err))
	}
	if err := st.Rebuild(supremeRollWeights); err != nil {
		panic(fmt.Sprintf("无法构建宝石至高词条权重树: %v", err))
	}
	supremeRollTree = st
}

// rollAffinity 均匀掷出宝石亲和。
func rollAffinity() Affinity {
	return Affinity(rand.Intn(int(AffinityCount)))
}

// rollBasicModifier 按品质加权掷出一个基础词条，并避开已占用的词条。
func rollBasicModifier(quality Quality, exclude BasicModifier) BasicModifier {
	st := basicRollTrees[quality]
	for {
		index, err := st.Find(rand.Float64() * st.TotalSum())
		if err != nil {
			// 权重树不可用属于构建期错误，掷点退化为均匀分布
			index = 1 + rand.Intn(int(basicModifierCount)-1)
		}
		mod := BasicModifier(index)
		if mod != exclude && mod != BasicNone {
			return mod
		}
	}
}

// rollSupremeModifier 为Greater品质宝石掷出至高词条，其余品质返回SupremeNone。
func rollSupremeModifier(quality Quality) SupremeModifier {
	if quality != QualityGreater {
		return SupremeNone
	}
	index, err := supremeRollTree.Find(rand.Float64() * supremeRollTree.TotalSum())
	if err != nil {
		index = 1 + rand.Intn(int(supremeModifierCount)-1)
	}
	return SupremeModifier(index)
}
