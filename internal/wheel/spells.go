package wheel

// 法术升级簿记：玩家对已解锁法术的升级档位选择，
// 以及法术引擎按名字查询累积加成的入口。

// UpgradeSpell 把法术提升一个档位，已达上限时为无操作。
// 档位变化后触发一次完整重算使加成生效。
func (w *PlayerWheel) UpgradeSpell(name string) {
	grade := w.spellsSelected[name]
	if grade >= GradeMax {
		return
	}
	w.spellsSelected[name] = grade + 1
	w.ReloadPlayerData()
}

// DowngradeSpell 把法术降低一个档位，降到零档时移除记录。
func (w *PlayerWheel) DowngradeSpell(name string) {
	grade, ok := w.spellsSelected[name]
	if !ok {
		return
	}
	if grade <= GradeRegular {
		delete(w.spellsSelected, name)
	} else {
		w.spellsSelected[name] = grade - 1
	}
	w.ReloadPlayerData()
}

// ResetUpgradedSpells 清空全部升级选择并重算。
func (w *PlayerWheel) ResetUpgradedSpells() {
	if len(w.spellsSelected) == 0 {
		return
	}
	w.spellsSelected = make(map[string]SpellGrade)
	w.ReloadPlayerData()
}

// GetSpellUpgrade 返回法术当前的升级档位，未升级返回GradeNone。
func (w *PlayerWheel) GetSpellUpgrade(name string) SpellGrade {
	return w.spellsSelected[name]
}

// GetHealingLinkUpgrade 判断治疗链接是否已升至最高档。
func (w *PlayerWheel) GetHealingLinkUpgrade(spell string) bool {
	if !w.agg.Instant(InstantHealingLink) {
		return false
	}
	return w.spellsSelected[spell] >= GradeMax
}

// ReduceAllSpellsCooldownTimer 为所有已升级法术追加冷却减免。
// 由化身等全局效果调用，数值并入各法术的累积记录。
func (w *PlayerWheel) ReduceAllSpellsCooldownTimer(value int32) {
	for name := range w.spellsSelected {
		w.agg.AddSpellBonus(name, SpellBonus{
			Decrease: SpellDecrease{Cooldown: value},
		})
	}
}

// --- 法术引擎查询 ---

// GetSpellAdditionalTarget 返回法术的额外目标数。
func (w *PlayerWheel) GetSpellAdditionalTarget(spellName string) int32 {
	bonus, ok := w.agg.SpellBonusRecord(spellName)
	if !ok {
		return 0
	}
	return bonus.Increase.AdditionalTarget
}

// GetSpellAdditionalDuration 返回法术的额外持续时间（毫秒）。
func (w *PlayerWheel) GetSpellAdditionalDuration(spellName string) int32 {
	bonus, ok := w.agg.SpellBonusRecord(spellName)
	if !ok {
		return 0
	}
	return bonus.Increase.Duration
}

// GetSpellAdditionalArea 判断法术是否解锁了范围效果。
func (w *PlayerWheel) GetSpellAdditionalArea(spellName string) bool {
	bonus, ok := w.agg.SpellBonusRecord(spellName)
	if !ok {
		return false
	}
	return bonus.Increase.Area
}

// GetMajorStatConditional 在指定开关点亮时返回主属性值，否则返回0。
func (w *PlayerWheel) GetMajorStatConditional(instant string, major Major) int32 {
	if !w.agg.InstantByName(instant) {
		return 0
	}
	return w.agg.MajorStat(major)
}
