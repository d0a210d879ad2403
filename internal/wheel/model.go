package wheel

// 轮盘共有36个可加点的槽位，编号1..36。
// 下标0保留不用，以保持与客户端协议一致的1起始编号。
const (
	SlotCount = 36
	slotTotal = SlotCount + 1
)

// Color 是轮盘的四个颜色象限，序数与宝石亲和一一对应。
type Color uint8

const (
	ColorGreen Color = iota
	ColorRed
	ColorBlue
	ColorPurple
	ColorCount
)

func (c Color) String() string {
	switch c {
	case ColorGreen:
		return "green"
	case ColorRed:
		return "red"
	case ColorBlue:
		return "blue"
	case ColorPurple:
		return "purple"
	}
	return "unknown"
}

// Vocation 是玩家的职业。
type Vocation uint8

const (
	VocationNone Vocation = iota
	VocationKnight
	VocationPaladin
	VocationSorcerer
	VocationDruid
)

// Element 是伤害元素类别，抗性数组以它为下标。
type Element uint8

const (
	ElementPhysical Element = iota
	ElementEnergy
	ElementEarth
	ElementFire
	ElementIce
	ElementHoly
	ElementDeath
	ElementCount
)

// Stat 是可累加的数值属性类别。
type Stat uint8

const (
	StatHealth Stat = iota
	StatMana
	StatCapacity
	StatMitigation
	StatMelee
	StatDistance
	StatMagic
	StatLifeLeech
	StatManaLeech
	StatHealing
	StatDamage
	StatCriticalChance
	StatCriticalDamage
	statCount
)

// Major 是由周期检查整体覆写的主属性类别。
type Major uint8

const (
	MajorMelee Major = iota
	MajorDistance
	MajorMagic
	MajorDefense
	MajorDamage
	MajorCriticalDamage
	MajorHolyResistance
	MajorMitigation
	majorCount
)

// Instant 是布尔开关型的被动能力。
type Instant uint8

const (
	InstantBattleInstinct Instant = iota
	InstantBattleHealing
	InstantPositionalTactics
	InstantBallisticMastery
	InstantHealingLink
	InstantRunicMastery
	InstantFocusMastery
	instantCount
)

// OnThink 是周期检查的计时器类别。
type OnThink uint8

const (
	OnThinkBattleInstinct OnThink = iota
	OnThinkPositionalTactics
	OnThinkBallisticMastery
	OnThinkCombatMastery
	OnThinkDivineEmpowerment
	OnThinkGiftOfLife
	onThinkCount
)

// AvatarSkill 是化身形态提供的战斗加成类别。
type AvatarSkill uint8

const (
	AvatarSkillNone AvatarSkill = iota
	AvatarSkillDamageReduction
	AvatarSkillCriticalChance
	AvatarSkillCriticalDamage
)

// SpellGrade 是法术的升级档位。
type SpellGrade uint8

const (
	GradeNone SpellGrade = iota
	GradeRegular
	GradeUpgraded
	GradeMax
)

// SpellBoost 是法术加成查询的维度。
type SpellBoost uint8

const (
	BoostCooldown SpellBoost = iota
	BoostManaCost
	BoostSecondaryGroupCooldown
	BoostCriticalChance
	BoostCriticalDamage
	BoostDamage
	BoostDamageReduction
	BoostHeal
	BoostLifeLeech
	BoostManaLeech
)

// SpellBonus 是单个法术累积的全部加成，按减免/增强/偷取分组。
// 多个来源的加成对数值字段做加法合并，范围标记为整体覆写。
type SpellBonus struct {
	Decrease SpellDecrease
	Increase SpellIncrease
	Leech    SpellLeech
}

type SpellDecrease struct {
	Cooldown               int32
	ManaCost               int32
	SecondaryGroupCooldown int32
}

type SpellIncrease struct {
	AdditionalTarget int32
	Area             bool
	CriticalChance   int32
	CriticalDamage   int32
	Damage           int32
	DamageReduction  int32
	Duration         int32
	Heal             int32
}

type SpellLeech struct {
	Life int32
	Mana int32
}

// Merge 将另一份加成按字段合并进当前记录。
// 数值字段累加，范围标记以后到者为准。
func (b *SpellBonus) Merge(other SpellBonus) {
	b.Decrease.Cooldown += other.Decrease.Cooldown
	b.Decrease.ManaCost += other.Decrease.ManaCost
	b.Decrease.SecondaryGroupCooldown += other.Decrease.SecondaryGroupCooldown
	b.Increase.AdditionalTarget += other.Increase.AdditionalTarget
	b.Increase.Area = other.Increase.Area
	b.Increase.CriticalChance += other.Increase.CriticalChance
	b.Increase.CriticalDamage += other.Increase.CriticalDamage
	b.Increase.Damage += other.Increase.Damage
	b.Increase.DamageReduction += other.Increase.DamageReduction
	b.Increase.Duration += other.Increase.Duration
	b.Increase.Heal += other.Increase.Heal
	b.Leech.Life += other.Leech.Life
	b.Leech.Mana += other.Leech.Mana
}

// Target 是伤害钩子读取目标状态的最小能力接口。
// 由战斗管线的生物实现，测试中用桩实现替换。
type Target interface {
	Health() int64
	MaxHealth() int64
}
