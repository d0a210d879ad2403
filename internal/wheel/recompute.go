package wheel

import (
	"github.com/SlpAus/destiny-wheel-backend/internal/gem"
)

// 完整重算把槽位分配、激活宝石、奉献/信念加成和法术升级选择
// 汇总进聚合器。重算是幂等的：数组先整体清零再重新写入，
// 输入不变时两次重算得到完全相同的内容。

// ReloadPlayerData 在槽位或宝石发生变化后触发一次完整重算。
func (w *PlayerWheel) ReloadPlayerData() {
	w.LoadPlayerBonusData()
}

// LoadPlayerBonusData 清零派生数组后执行完整重算。
func (w *PlayerWheel) LoadPlayerBonusData() {
	w.ResetPlayerBonusData()
	w.RegisterPlayerBonusData()
}

// ResetPlayerBonusData 清零全部派生加成。
// 周期计时器和生命之礼冷却不在清零范围内。
func (w *PlayerWheel) ResetPlayerBonusData() {
	w.agg.ResetStats()
	w.agg.ResetResistance()
	w.agg.ResetSpellBonuses()
	w.vault.ResetRevelationBonus()
	w.learnedSpells = w.learnedSpells[:0]
}

// RegisterPlayerBonusData 按固定顺序写入各来源的加成：
// 先由激活宝石累积启示点数和属性加成，再据此推导各颜色阶段，
// 然后发放启示能力、奉献/信念加成和法术升级加成。
func (w *PlayerWheel) RegisterPlayerBonusData() {
	w.loadGemBonuses()
	w.loadStages()
	w.loadRevelationPerks()
	w.loadDedicationAndConvictionPerks()
	w.loadSpellSelections()
}

// --- 宝石 ---

func (w *PlayerWheel) loadGemBonuses() {
	for _, g := range w.vault.ActiveGems() {
		if g.IsNull() {
			continue
		}
		w.vault.AddRevelationBonus(g.Affinity, gem.RevelationPoints(g.Quality))
		w.applyBasicModifier(g.BasicModifier1, g.Quality)
		w.applyBasicModifier(g.BasicModifier2, g.Quality)
		w.applySupremeModifier(g.SupremeModifier, g.Quality)
	}
}

func (w *PlayerWheel) applyBasicModifier(modifier gem.BasicModifier, quality gem.Quality) {
	if stat, ok := basicGemStatByModifier[modifier]; ok {
		w.agg.AddStat(stat, basicGemAmount(modifier, quality))
		return
	}
	if element, ok := basicGemElementByModifier[modifier]; ok {
		w.agg.AddResistance(element, basicGemAmount(modifier, quality))
	}
}

func (w *PlayerWheel) applySupremeModifier(modifier gem.SupremeModifier, quality gem.Quality) {
	if stat, ok := supremeGemStatByModifier[modifier]; ok {
		w.agg.AddStat(stat, supremeGemAmount(quality))
		return
	}
	if spell, ok := supremeGemSpellByModifier[modifier]; ok {
		w.agg.AddSpellBonus(spell, SpellBonus{
			Increase: SpellIncrease{Damage: supremeGemAmount(quality), Heal: supremeGemAmount(quality)},
		})
		return
	}
	if modifier == gem.SupremeAvatarCooldown {
		avatar := revelationAbility(w.player.Vocation(), ColorPurple)
		if avatar != "" {
			w.agg.AddSpellBonus(avatar, SpellBonus{
				Decrease: SpellDecrease{Cooldown: avatarCooldownReduction(quality)},
			})
		}
	}
}

// --- 阶段 ---

func (w *PlayerWheel) loadStages() {
	var colorPoints [ColorCount]uint32
	for slot := uint8(1); slot <= SlotCount; slot++ {
		colorPoints[slotColor(slot)] += uint32(w.slots[slot])
	}
	for color := Color(0); color < ColorCount; color++ {
		total := colorPoints[color] + uint32(w.vault.RevelationBonus(gem.Affinity(color)))
		w.agg.SetStage(color, stageForPoints(total))
	}
}

// SliceStage 返回指定颜色象限当前的阶段。
func (w *PlayerWheel) SliceStage(color Color) uint8 {
	return w.agg.Stage(color)
}

// --- 启示能力 ---

func (w *PlayerWheel) loadRevelationPerks() {
	vocation := w.player.Vocation()
	for color := Color(0); color < ColorCount; color++ {
		stage := w.agg.Stage(color)
		if stage == 0 {
			continue
		}
		ability := revelationAbility(vocation, color)
		if ability == "" {
			continue
		}
		w.addSpellToVector(ability)
		w.agg.SetInstantByName(ability, true)

		// 高阶启示能力附带基础的法术强度加成，三阶解锁范围效果
		w.agg.AddSpellBonus(ability, SpellBonus{
			Increase: SpellIncrease{
				Damage: 5 * int32(stage),
				Heal:   5 * int32(stage),
				Area:   stage >= MaxStage,
			},
		})
	}
}

// addSpellToVector 把法术加入已习得列表，已存在时不重复加入。
func (w *PlayerWheel) addSpellToVector(spellName string) {
	for _, name := range w.learnedSpells {
		if name == spellName {
			return
		}
	}
	w.learnedSpells = append(w.learnedSpells, spellName)
}

// LearnedSpells 返回本轮重算解锁的法术名列表。
func (w *PlayerWheel) LearnedSpells() []string {
	spells := make([]string, len(w.learnedSpells))
	copy(spells, w.learnedSpells)
	return spells
}

// --- 奉献与信念 ---

func (w *PlayerWheel) loadDedicationAndConvictionPerks() {
	rates, ok := dedicationByVocation[w.player.Vocation()]
	if !ok {
		return
	}

	for slot := uint8(1); slot <= SlotCount; slot++ {
		points := int32(w.slots[slot])
		if points == 0 {
			continue
		}

		// 奉献：每一点都折算为基础属性
		w.agg.AddStat(StatHealth, rates.health*points)
		w.agg.AddStat(StatMana, rates.mana*points)
		w.agg.AddStat(StatCapacity, rates.capacity*points)

		// 信念：加满的槽位额外发放按环放大的颜色属性
		if w.slots[slot] == slotTable[slot].cap {
			stat := convictionStatByColor[slotTable[slot].color]
			w.agg.AddStat(stat, int32(slotRing(slot)))
		}
	}
}

// --- 法术升级 ---

func (w *PlayerWheel) loadSpellSelections() {
	for name, grade := range w.spellsSelected {
		if grade == GradeNone {
			continue
		}
		w.agg.AddSpellBonus(name, spellGradeBonus(grade))
	}
}

// spellGradeBonus 返回法术升级档位对应的通用加成。
func spellGradeBonus(grade SpellGrade) SpellBonus {
	g := int32(grade)
	return SpellBonus{
		Decrease: SpellDecrease{Cooldown: 1000 * g, ManaCost: 2 * g},
		Increase: SpellIncrease{Damage: 3 * g, Duration: 500 * g},
	}
}
