package wheel

import (
	"time"
)

// nowMilli 取当前毫秒时间戳，测试中可替换。
var nowMilli = func() int64 {
	return time.Now().UnixMilli()
}

// 各周期检查的重检间隔与生命之礼的衰减间隔，单位毫秒。
const (
	abilityCheckInterval = int64(2000)
	giftOfLifeInterval   = int64(1000)
)

// OnThink 执行一轮周期检查。
// force为假时每项检查只在自身计时器到期后重新评估；
// force为真时绕过全部计时器，用于进出战斗等状态突变。
// 本方法同步执行、从不阻塞，也不返回错误。
func (w *PlayerWheel) OnThink(force bool) {
	now := nowMilli()

	w.checkGiftOfLife(now, force)
	w.checkBattleInstinct(now, force)
	w.checkPositionalTactics(now, force)
	w.checkBallisticMastery(now, force)
	w.checkCombatMastery(now, force)
	w.checkDivineEmpowerment(now, force)
}

// --- 生命之礼冷却衰减 ---

func (w *PlayerWheel) checkGiftOfLife(now int64, force bool) {
	if w.giftOfLifeCooldown <= 0 {
		return
	}
	if !force && w.agg.OnThinkTimer(OnThinkGiftOfLife) > now {
		return
	}
	w.DecreaseGiftOfCooldown(1)
	w.agg.SetOnThinkTimer(OnThinkGiftOfLife, now+giftOfLifeInterval)
}

// --- 周边生物门控的专精检查 ---
// 各项检查比较当前周边生物数量与阈值，整体覆写对应的主属性。
// 开关未点亮时主属性被清零，保证检查结果只反映当前状态。

func (w *PlayerWheel) checkBattleInstinct(now int64, force bool) {
	if !force && w.agg.OnThinkTimer(OnThinkBattleInstinct) > now {
		return
	}
	w.agg.SetOnThinkTimer(OnThinkBattleInstinct, now+abilityCheckInterval)

	if !w.agg.Instant(InstantBattleInstinct) {
		w.agg.SetMajorStat(MajorMelee, 0)
		w.agg.SetMajorStat(MajorDefense, 0)
		return
	}

	// 周边每多一个生物提升一级近战和防御，上限8级
	creatures := int32(w.player.NearbyCreatures())
	bonus := creatures - 1
	if bonus < 0 {
		bonus = 0
	}
	if bonus > 8 {
		bonus = 8
	}
	w.agg.SetMajorStat(MajorMelee, bonus)
	w.agg.SetMajorStat(MajorDefense, bonus*2)
}

func (w *PlayerWheel) checkPositionalTactics(now int64, force bool) {
	if !force && w.agg.OnThinkTimer(OnThinkPositionalTactics) > now {
		return
	}
	w.agg.SetOnThinkTimer(OnThinkPositionalTactics, now+abilityCheckInterval)

	if !w.agg.Instant(InstantPositionalTactics) {
		w.agg.SetMajorStat(MajorDistance, 0)
		w.agg.SetMajorStat(MajorMagic, 0)
		return
	}

	// 无人近身时远程占优，被近身后转为法术强化
	if w.player.NearbyCreatures() == 0 {
		w.agg.SetMajorStat(MajorDistance, 3)
		w.agg.SetMajorStat(MajorMagic, 0)
		return
	}
	w.agg.SetMajorStat(MajorDistance, 0)
	w.agg.SetMajorStat(MajorMagic, 3)
}

func (w *PlayerWheel) checkBallisticMastery(now int64, force bool) {
	if !force && w.agg.OnThinkTimer(OnThinkBallisticMastery) > now {
		return
	}
	w.agg.SetOnThinkTimer(OnThinkBallisticMastery, now+abilityCheckInterval)

	if !w.agg.Instant(InstantBallisticMastery) {
		w.agg.SetMajorStat(MajorCriticalDamage, 0)
		return
	}
	w.agg.SetMajorStat(MajorCriticalDamage, 10)
}

func (w *PlayerWheel) checkCombatMastery(now int64, force bool) {
	if !force && w.agg.OnThinkTimer(OnThinkCombatMastery) > now {
		return
	}
	w.agg.SetOnThinkTimer(OnThinkCombatMastery, now+abilityCheckInterval)

	stage := w.stageOfAbility(VocationKnight, ColorRed)
	if stage == 0 {
		w.agg.SetMajorStat(MajorDamage, 0)
		return
	}

	// 被围攻越狠，战斗精通的增伤越高
	creatures := int32(w.player.NearbyCreatures())
	if creatures < 2 {
		w.agg.SetMajorStat(MajorDamage, 0)
		return
	}
	bonus := int32(stage) * 2
	if creatures >= 5 {
		bonus *= 2
	}
	w.agg.SetMajorStat(MajorDamage, bonus)
}

func (w *PlayerWheel) checkDivineEmpowerment(now int64, force bool) {
	if !force && w.agg.OnThinkTimer(OnThinkDivineEmpowerment) > now {
		return
	}
	w.agg.SetOnThinkTimer(OnThinkDivineEmpowerment, now+abilityCheckInterval)

	stage := w.stageOfAbility(VocationPaladin, ColorRed)
	if stage == 0 {
		w.agg.SetMajorStat(MajorHolyResistance, 0)
		return
	}
	w.agg.SetMajorStat(MajorHolyResistance, int32(stage)*3)
}

// stageOfAbility 返回颜色象限的阶段，职业不匹配时视为未解锁。
func (w *PlayerWheel) stageOfAbility(vocation Vocation, color Color) uint8 {
	if w.player.Vocation() != vocation {
		return 0
	}
	return w.agg.Stage(color)
}

// --- 伤害钩子 ---
// 以下函数是战斗管线调用的纯读函数：只读聚合状态和目标引用，
// 返回计算出的数值，不修改任何持久状态。

// CheckDrainBodyLeech 返回吸身术对目标生效时的生命偷取量。
func (w *PlayerWheel) CheckDrainBodyLeech(target Target) int32 {
	stage := w.stageOfAbility(VocationSorcerer, ColorRed)
	if stage == 0 || target == nil {
		return 0
	}
	return int32(stage) * 150
}

// CheckBeamMasteryDamage 返回光束精通的增伤百分比。
func (w *PlayerWheel) CheckBeamMasteryDamage() int32 {
	stage := w.stageOfAbility(VocationSorcerer, ColorBlue)
	if stage == 0 {
		return 0
	}
	return int32(stage) + w.agg.GetSpellBonus("Beam Mastery", BoostDamage)
}

// CheckBattleHealingAmount 返回战斗治疗每次跳动的治疗量。
func (w *PlayerWheel) CheckBattleHealingAmount() int32 {
	if !w.agg.Instant(InstantBattleHealing) {
		return 0
	}
	return w.agg.Stat(StatHealing) + int32(w.player.Level()/10)
}

// CheckBlessingGroveHealingByTarget 返回林祝愿对目标的治疗增幅百分比。
// 目标生命低于三成时增幅翻倍。
func (w *PlayerWheel) CheckBlessingGroveHealingByTarget(target Target) int32 {
	stage := w.stageOfAbility(VocationDruid, ColorRed)
	if stage == 0 || target == nil || target.MaxHealth() <= 0 {
		return 0
	}
	bonus := int32(stage) * 4
	if target.Health()*100/target.MaxHealth() < 30 {
		bonus *= 2
	}
	return bonus
}

// CheckTwinBurstByTarget 返回双重爆发对目标的增伤百分比。
// 只对生命高于六成的目标生效。
func (w *PlayerWheel) CheckTwinBurstByTarget(target Target) int32 {
	stage := w.stageOfAbility(VocationDruid, ColorBlue)
	if stage == 0 || target == nil || target.MaxHealth() <= 0 {
		return 0
	}
	if target.Health()*100/target.MaxHealth() <= 60 {
		return 0
	}
	return int32(stage) * 5
}

// CheckExecutionersThrow 返回处刑者投掷对目标的增伤百分比。
// 只对生命低于三成的目标生效。
func (w *PlayerWheel) CheckExecutionersThrow(target Target) int32 {
	stage := w.stageOfAbility(VocationKnight, ColorBlue)
	if stage == 0 || target == nil || target.MaxHealth() <= 0 {
		return 0
	}
	if target.Health()*100/target.MaxHealth() >= 30 {
		return 0
	}
	return int32(stage) * 5
}

// CheckDivineGrenade 返回神圣手雷对目标的增伤百分比。
func (w *PlayerWheel) CheckDivineGrenade(target Target) int32 {
	stage := w.stageOfAbility(VocationPaladin, ColorBlue)
	if stage == 0 || target == nil {
		return 0
	}
	return int32(stage)*4 + w.agg.GetSpellBonus("Divine Grenade", BoostDamage)
}

// CheckAvatarSkill 返回化身形态提供的指定类别加成。
func (w *PlayerWheel) CheckAvatarSkill(skill AvatarSkill) int32 {
	return avatarSkillValue(skill, w.agg.Stage(ColorPurple))
}

// CheckFocusMasteryDamage 返回专注精通的一次性增伤百分比。
// 开关点亮时读取即消耗，下一次施法前不再生效。
func (w *PlayerWheel) CheckFocusMasteryDamage() int32 {
	if !w.agg.Instant(InstantFocusMastery) {
		return 0
	}
	w.agg.SetInstant(InstantFocusMastery, false)
	return 35
}

// CheckElementSensitiveReduction 返回对指定元素伤害的减免百分比。
func (w *PlayerWheel) CheckElementSensitiveReduction(element Element) int32 {
	reduction := w.agg.Resistance(element)
	if element == ElementHoly {
		reduction += w.agg.MajorStat(MajorHolyResistance)
	}
	return reduction
}

// --- 减伤 ---

// CalculateMitigation 计算当前减伤比例，范围[0, 1-下限]。
func (w *PlayerWheel) CalculateMitigation() float64 {
	percent := w.agg.Stat(StatMitigation) + w.agg.MajorStat(MajorMitigation)
	percent += avatarSkillValue(AvatarSkillDamageReduction, w.agg.Stage(ColorPurple))

	mitigation := float64(percent) / 100
	if mitigation < 0 {
		return 0
	}
	if mitigation > 1-mitigationFloor {
		return 1 - mitigationFloor
	}
	return mitigation
}

// GetMitigationMultiplier 返回作用于入站伤害的乘数。
// 乘数永不为负，且不低于配置的下限。
func (w *PlayerWheel) GetMitigationMultiplier() float64 {
	return 1 - w.CalculateMitigation()
}
