package wheel

import (
	"github.com/SlpAus/destiny-wheel-backend/internal/gem"
)

// --- 槽位几何 ---
// 轮盘分为四个颜色象限，每个象限9个槽位，从内到外四环：
// 第一环1个（上限50，无前置），第二环2个（上限75，前置第一环），
// 第三环3个（上限100，前置相邻的第二环槽位），
// 第四环3个（上限200，前置对应的第三环槽位）。

type slotInfo struct {
	color   Color
	cap     uint16
	prereqs []uint8
}

var slotTable [slotTotal]slotInfo

func init() {
	for q := uint8(0); q < uint8(ColorCount); q++ {
		base := q * 9
		color := Color(q)
		slotTable[base+1] = slotInfo{color: color, cap: 50}
		slotTable[base+2] = slotInfo{color: color, cap: 75, prereqs: []uint8{base + 1}}
		slotTable[base+3] = slotInfo{color: color, cap: 75, prereqs: []uint8{base + 1}}
		slotTable[base+4] = slotInfo{color: color, cap: 100, prereqs: []uint8{base + 2}}
		slotTable[base+5] = slotInfo{color: color, cap: 100, prereqs: []uint8{base + 2, base + 3}}
		slotTable[base+6] = slotInfo{color: color, cap: 100, prereqs: []uint8{base + 3}}
		slotTable[base+7] = slotInfo{color: color, cap: 200, prereqs: []uint8{base + 4}}
		slotTable[base+8] = slotInfo{color: color, cap: 200, prereqs: []uint8{base + 5}}
		slotTable[base+9] = slotInfo{color: color, cap: 200, prereqs: []uint8{base + 6}}
	}
}

// slotColor 返回槽位所属的颜色象限，越界返回ColorCount。
func slotColor(slot uint8) Color {
	if slot < 1 || slot > SlotCount {
		return ColorCount
	}
	return slotTable[slot].color
}

// slotRing 返回槽位所在的环序号1..4。
func slotRing(slot uint8) uint8 {
	switch (slot - 1) % 9 {
	case 0:
		return 1
	case 1, 2:
		return 2
	case 3, 4, 5:
		return 3
	default:
		return 4
	}
}

// --- 阶段 ---
// 颜色象限的累计点数（含启示点数）跨过阈值时阶段提升，
// 阶段单调不降于投入的点数。

var stageThresholds = [...]uint16{250, 500, 1000}

// MaxStage 是单个颜色象限可达到的最高阶段。
const MaxStage = uint8(len(stageThresholds))

func stageForPoints(points uint32) uint8 {
	stage := uint8(0)
	for _, threshold := range stageThresholds {
		if points >= uint32(threshold) {
			stage++
		}
	}
	return stage
}

// --- 启示能力 ---
// 绿色象限的启示能力全职业相同，其余三色按职业区分。

const abilityGiftOfLife = "Gift of Life"

var redAbilityByVocation = map[Vocation]string{
	VocationKnight:   "Combat Mastery",
	VocationPaladin:  "Divine Empowerment",
	VocationSorcerer: "Drain Body",
	VocationDruid:    "Blessing of the Grove",
}

var blueAbilityByVocation = map[Vocation]string{
	VocationKnight:   "Executioner's Throw",
	VocationPaladin:  "Divine Grenade",
	VocationSorcerer: "Beam Mastery",
	VocationDruid:    "Twin Burst",
}

var purpleAbilityByVocation = map[Vocation]string{
	VocationKnight:   "Avatar of Steel",
	VocationPaladin:  "Avatar of Light",
	VocationSorcerer: "Avatar of Storm",
	VocationDruid:    "Avatar of Nature",
}

// revelationAbility 返回职业在指定颜色象限解锁的启示能力名。
func revelationAbility(vocation Vocation, color Color) string {
	switch color {
	case ColorGreen:
		return abilityGiftOfLife
	case ColorRed:
		return redAbilityByVocation[vocation]
	case ColorBlue:
		return blueAbilityByVocation[vocation]
	case ColorPurple:
		return purpleAbilityByVocation[vocation]
	}
	return ""
}

// --- 奉献与信念 ---
// 奉献加成按已分配的每一点发放，数值随职业不同；
// 信念加成按加满的槽位发放，数值随环序号放大。

type dedicationRates struct {
	health   int32
	mana     int32
	capacity int32
}

var dedicationByVocation = map[Vocation]dedicationRates{
	VocationKnight:   {health: 3, mana: 1, capacity: 5},
	VocationPaladin:  {health: 2, mana: 3, capacity: 4},
	VocationSorcerer: {health: 1, mana: 6, capacity: 2},
	VocationDruid:    {health: 1, mana: 6, capacity: 2},
}

// convictionStatByColor 决定加满槽位时信念加成落在哪个属性上。
var convictionStatByColor = [ColorCount]Stat{
	ColorGreen:  StatHealing,
	ColorRed:    StatDamage,
	ColorBlue:   StatCriticalChance,
	ColorPurple: StatMitigation,
}

// --- 宝石加成映射 ---
// 基础词条落在属性或抗性数组上，幅度随品质放大；
// 至高词条落在属性或对应启示法术的加成记录上。

var basicGemStatByModifier = map[gem.BasicModifier]Stat{
	gem.BasicMitigation: StatMitigation,
	gem.BasicHealth:     StatHealth,
	gem.BasicMana:       StatMana,
	gem.BasicCapacity:   StatCapacity,
}

var basicGemElementByModifier = map[gem.BasicModifier]Element{
	gem.BasicPhysicalResistance: ElementPhysical,
	gem.BasicEnergyResistance:   ElementEnergy,
	gem.BasicEarthResistance:    ElementEarth,
	gem.BasicFireResistance:     ElementFire,
	gem.BasicIceResistance:      ElementIce,
	gem.BasicHolyResistance:     ElementHoly,
	gem.BasicDeathResistance:    ElementDeath,
}

// basicGemAmount 返回基础词条的加成幅度。
// 抗性和减伤以百分点计，生命/魔力/负重以绝对值计。
func basicGemAmount(modifier gem.BasicModifier, quality gem.Quality) int32 {
	q := int32(quality)
	switch modifier {
	case gem.BasicHealth, gem.BasicMana:
		return 100 * q
	case gem.BasicCapacity:
		return 50 * q
	case gem.BasicMitigation:
		return q
	default:
		return q
	}
}

var supremeGemStatByModifier = map[gem.SupremeModifier]Stat{
	gem.SupremeLifeLeech:      StatLifeLeech,
	gem.SupremeManaLeech:      StatManaLeech,
	gem.SupremeCriticalChance: StatCriticalChance,
	gem.SupremeCriticalDamage: StatCriticalDamage,
}

// supremeGemSpellByModifier 把法术类至高词条映射到它增强的启示能力名。
var supremeGemSpellByModifier = map[gem.SupremeModifier]string{
	gem.SupremeBeamMasteryDamage:       "Beam Mastery",
	gem.SupremeExecutionersThrowDamage: "Executioner's Throw",
	gem.SupremeDivineGrenadeDamage:     "Divine Grenade",
	gem.SupremeTwinBurstDamage:         "Twin Burst",
	gem.SupremeBlessingGroveHeal:       "Blessing of the Grove",
}

// supremeGemAmount 返回至高词条的加成幅度，属性类和法术类共用。
func supremeGemAmount(quality gem.Quality) int32 {
	return 2 * int32(quality)
}

// avatarCooldownReduction 返回化身冷却词条减少的冷却毫秒数。
func avatarCooldownReduction(quality gem.Quality) int32 {
	return 60000 * int32(quality)
}

// --- 化身 ---
// 紫色象限的阶段决定化身形态的战斗加成。

func avatarSkillValue(skill AvatarSkill, stage uint8) int32 {
	if stage == 0 {
		return 0
	}
	switch skill {
	case AvatarSkillDamageReduction:
		return 5 * int32(stage)
	case AvatarSkillCriticalChance:
		return int32(stage)
	case AvatarSkillCriticalDamage:
		return 5 * int32(stage)
	}
	return 0
}

// --- 生命之礼 ---

// giftOfLifeHealPercent 返回触发时恢复的生命百分比。
func giftOfLifeHealPercent(stage uint8) uint8 {
	switch stage {
	case 1:
		return 25
	case 2:
		return 45
	case 3:
		return 75
	}
	return 0
}

// giftOfLifeTotalCooldown 是生命之礼触发后的完整冷却，单位秒。
const giftOfLifeTotalCooldown = int32(30 * 60)

// --- 减伤 ---

// mitigationFloor 是减伤乘数的下限，伤害至少保留这一比例。
const mitigationFloor = 0.05
