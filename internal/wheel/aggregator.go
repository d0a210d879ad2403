package wheel

// Aggregator 持有一名玩家的全部派生加成数组。
// 所有数组以枚举序数为下标定长分配，重算时整体清零后重新写入，
// 因此对相同输入的重算是幂等的。
type Aggregator struct {
	stages      [ColorCount]uint8
	onThink     [onThinkCount]int64
	stats       [statCount]int32
	majorStats  [majorCount]int32
	instants    [instantCount]bool
	resistances [ElementCount]int32

	spellBonuses map[string]SpellBonus
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		spellBonuses: make(map[string]SpellBonus),
	}
}

// --- 阶段 ---

func (a *Aggregator) SetStage(color Color, value uint8) {
	if color < ColorCount {
		a.stages[color] = value
	}
}

func (a *Aggregator) Stage(color Color) uint8 {
	if color >= ColorCount {
		return 0
	}
	return a.stages[color]
}

// --- 周期计时器 ---
// 计时器记录下一次允许检查的毫秒时间戳，不随重算清零。

func (a *Aggregator) SetOnThinkTimer(kind OnThink, at int64) {
	if kind < onThinkCount {
		a.onThink[kind] = at
	}
}

func (a *Aggregator) OnThinkTimer(kind OnThink) int64 {
	if kind >= onThinkCount {
		return 0
	}
	return a.onThink[kind]
}

// --- 属性 ---

// AddStat 向属性累加数值，同一轮重算内多个来源依次叠加。
func (a *Aggregator) AddStat(stat Stat, value int32) {
	if stat < statCount {
		a.stats[stat] += value
	}
}

func (a *Aggregator) Stat(stat Stat) int32 {
	if stat >= statCount {
		return 0
	}
	return a.stats[stat]
}

// SetMajorStat 整体覆写主属性，由周期检查调用。
func (a *Aggregator) SetMajorStat(major Major, value int32) {
	if major < majorCount {
		a.majorStats[major] = value
	}
}

func (a *Aggregator) MajorStat(major Major) int32 {
	if major >= majorCount {
		return 0
	}
	return a.majorStats[major]
}

// --- 开关 ---

func (a *Aggregator) SetInstant(instant Instant, toggle bool) {
	if instant < instantCount {
		a.instants[instant] = toggle
	}
}

func (a *Aggregator) Instant(instant Instant) bool {
	if instant >= instantCount {
		return false
	}
	return a.instants[instant]
}

// instantByName 把法术名映射到开关类别。
var instantByName = map[string]Instant{
	"Battle Instinct":    InstantBattleInstinct,
	"Battle Healing":     InstantBattleHealing,
	"Positional Tactics": InstantPositionalTactics,
	"Ballistic Mastery":  InstantBallisticMastery,
	"Healing Link":       InstantHealingLink,
	"Runic Mastery":      InstantRunicMastery,
	"Focus Mastery":      InstantFocusMastery,
}

// SetInstantByName 按法术名设置开关，未知名字为无操作。
func (a *Aggregator) SetInstantByName(name string, toggle bool) {
	if instant, ok := instantByName[name]; ok {
		a.SetInstant(instant, toggle)
	}
}

// InstantByName 按法术名查询开关状态，未知名字返回false。
func (a *Aggregator) InstantByName(name string) bool {
	instant, ok := instantByName[name]
	if !ok {
		return false
	}
	return a.Instant(instant)
}

// --- 抗性 ---

func (a *Aggregator) AddResistance(element Element, value int32) {
	if element < ElementCount {
		a.resistances[element] += value
	}
}

func (a *Aggregator) Resistance(element Element) int32 {
	if element >= ElementCount {
		return 0
	}
	return a.resistances[element]
}

// --- 清零 ---
// 每轮完整重算开始时调用，周期计时器除外。

func (a *Aggregator) ResetStats() {
	a.stats = [statCount]int32{}
	a.majorStats = [majorCount]int32{}
	a.instants = [instantCount]bool{}
	a.stages = [ColorCount]uint8{}
}

func (a *Aggregator) ResetResistance() {
	a.resistances = [ElementCount]int32{}
}

func (a *Aggregator) ResetSpellBonuses() {
	a.spellBonuses = make(map[string]SpellBonus)
}

// --- 法术加成 ---

// AddSpellBonus 将加成合并进指定法术的累积记录。
// 首个来源直接成为记录本身，后续来源按字段累加。
func (a *Aggregator) AddSpellBonus(name string, bonus SpellBonus) {
	existing, ok := a.spellBonuses[name]
	if !ok {
		a.spellBonuses[name] = bonus
		return
	}
	existing.Merge(bonus)
	a.spellBonuses[name] = existing
}

// GetSpellBonus 按维度查询法术的累积加成，无记录时返回0。
func (a *Aggregator) GetSpellBonus(name string, boost SpellBoost) int32 {
	bonus, ok := a.spellBonuses[name]
	if !ok {
		return 0
	}
	switch boost {
	case BoostCooldown:
		return bonus.Decrease.Cooldown
	case BoostManaCost:
		return bonus.Decrease.ManaCost
	case BoostSecondaryGroupCooldown:
		return bonus.Decrease.SecondaryGroupCooldown
	case BoostCriticalChance:
		return bonus.Increase.CriticalChance
	case BoostCriticalDamage:
		return bonus.Increase.CriticalDamage
	case BoostDamage:
		return bonus.Increase.Damage
	case BoostDamageReduction:
		return bonus.Increase.DamageReduction
	case BoostHeal:
		return bonus.Increase.Heal
	case BoostLifeLeech:
		return bonus.Leech.Life
	case BoostManaLeech:
		return bonus.Leech.Mana
	}
	return 0
}

// SpellBonusRecord 返回法术的完整累积记录，供按组读取的调用方使用。
func (a *Aggregator) SpellBonusRecord(name string) (SpellBonus, bool) {
	bonus, ok := a.spellBonuses[name]
	return bonus, ok
}
