package gem

import (
	"fmt"

	"github.com/SlpAus/destiny-wheel-backend/internal/platform/kv"
)

// RevealedNamespace 是宝石在玩家KV存储中的命名空间。
// 每颗宝石以自身uuid为键独立存储。
const RevealedNamespace = "revealed"

// Affinity 是宝石的亲和属性，对应轮盘的四个颜色象限。
type Affinity uint8

const (
	AffinityGreen Affinity = iota
	AffinityRed
	AffinityBlue
	AffinityPurple
	AffinityCount
)

// Quality 是宝石的品质等级，决定揭示/轮换费用和加成幅度。
type Quality uint8

const (
	QualityLesser Quality = iota + 1
	QualityRegular
	QualityGreater
)

// Domain 表示宝石当前所处的作用域。
// 基础域的宝石只提供基础属性加成，至高域的宝石可以被设为激活宝石。
// 作用域是会话期状态，不随宝石一起持久化。
type Domain uint8

const (
	DomainBasic Domain = iota
	DomainSupreme
)

// BasicModifier 是宝石的基础属性词条。
type BasicModifier uint8

const (
	BasicNone BasicModifier = iota
	BasicPhysicalResistance
	BasicEnergyResistance
	BasicEarthResistance
	BasicFireResistance
	BasicIceResistance
	BasicHolyResistance
	BasicDeathResistance
	BasicMitigation
	BasicHealth
	BasicMana
	BasicCapacity
	basicModifierCount
)

// SupremeModifier 是高品质宝石才会出现的至高词条。
type SupremeModifier uint8

const (
	SupremeNone SupremeModifier = iota
	SupremeLifeLeech
	SupremeManaLeech
	SupremeCriticalChance
	SupremeCriticalDamage
	SupremeAvatarCooldown
	SupremeBeamMasteryDamage
	SupremeExecutionersThrowDamage
	SupremeDivineGrenadeDamage
	SupremeTwinBurstDamage
	SupremeBlessingGroveHeal
	supremeModifierCount
)

// NoIndex 是索引查找未命中时返回的哨兵值。
const NoIndex = -1

// Gem 是一颗已揭示的宝石。字段布局与KV中的持久化形态一一对应。
// 零值即空哨兵宝石：查找未命中时返回它而不是错误。
type Gem struct {
	UUID            string
	Locked          bool
	Affinity        Affinity
	Quality         Quality
	BasicModifier1  BasicModifier
	BasicModifier2  BasicModifier
	SupremeModifier SupremeModifier
}

// IsNull 判断宝石是否为空哨兵。
func (g Gem) IsNull() bool {
	return g.UUID == ""
}

func (g Gem) String() string {
	return fmt.Sprintf("[Gem] uuid: %s, locked: %t, affinity: %d, quality: %d, basicModifier1: %d, basicModifier2: %d, supremeModifier: %d",
		g.UUID, g.Locked, g.Affinity, g.Quality, g.BasicModifier1, g.BasicModifier2, g.SupremeModifier)
}

// Save 将宝石覆盖写入revealed命名空间。
func (g Gem) Save(store kv.Store) error {
	return store.Scoped(RevealedNamespace).Set(g.UUID, g.serialize())
}

// Remove 从revealed命名空间删除宝石。
func (g Gem) Remove(store kv.Store) error {
	return store.Scoped(RevealedNamespace).Remove(g.UUID)
}

// Load 按uuid读取一颗宝石。键缺失或值损坏时返回空哨兵宝石，不返回错误。
func Load(store kv.Store, uuid string) Gem {
	value, ok, err := store.Scoped(RevealedNamespace).Get(uuid)
	if err != nil || !ok {
		return Gem{}
	}
	return deserialize(uuid, value)
}

func (g Gem) serialize() kv.Value {
	return kv.Value{
		"uuid":            g.UUID,
		"locked":          g.Locked,
		"affinity":        int(g.Affinity),
		"quality":         int(g.Quality),
		"basicModifier1":  int(g.BasicModifier1),
		"basicModifier2":  int(g.BasicModifier2),
		"supremeModifier": int(g.SupremeModifier),
	}
}

func deserialize(uuid string, value kv.Value) Gem {
	if len(value) == 0 {
		return Gem{}
	}
	return Gem{
		UUID:            uuid,
		Locked:          asBool(value["locked"]),
		Affinity:        Affinity(asInt(value["affinity"])),
		Quality:         Quality(asInt(value["quality"])),
		BasicModifier1:  BasicModifier(asInt(value["basicModifier1"])),
		BasicModifier2:  BasicModifier(asInt(value["basicModifier2"])),
		SupremeModifier: SupremeModifier(asInt(value["supremeModifier"])),
	}
}

// asInt 兼容JSON反序列化产生的float64和内存存储中的原生int。
func asInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	default:
		return 0
	}
}

func asBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}
