package wheel

import (
	"testing"
)

func TestAddSpellBonusMergesAdditively(t *testing.T) {
	b1 := SpellBonus{
		Decrease: SpellDecrease{Cooldown: 1000, ManaCost: 5},
		Increase: SpellIncrease{Damage: 10, AdditionalTarget: 1},
		Leech:    SpellLeech{Life: 3},
	}
	b2 := SpellBonus{
		Decrease: SpellDecrease{Cooldown: 500, SecondaryGroupCooldown: 200},
		Increase: SpellIncrease{Damage: 5, Heal: 7, Area: true},
		Leech:    SpellLeech{Mana: 2},
	}

	// 分两次合并
	sequential := NewAggregator()
	sequential.AddSpellBonus("Fireball", b1)
	sequential.AddSpellBonus("Fireball", b2)

	// 一次合并字段和
	sum := b1
	sum.Merge(b2)
	combined := NewAggregator()
	combined.AddSpellBonus("Fireball", sum)

	boosts := []SpellBoost{
		BoostCooldown, BoostManaCost, BoostSecondaryGroupCooldown,
		BoostCriticalChance, BoostCriticalDamage, BoostDamage,
		BoostDamageReduction, BoostHeal, BoostLifeLeech, BoostManaLeech,
	}
	for _, boost := range boosts {
		if sequential.GetSpellBonus("Fireball", boost) != combined.GetSpellBonus("Fireball", boost) {
			t.Errorf("维度 %d 的两种合并路径结果不一致", boost)
		}
	}

	if sequential.GetSpellBonus("Fireball", BoostCooldown) != 1500 {
		t.Errorf("冷却减免应累加到1500, 实际 %d",
			sequential.GetSpellBonus("Fireball", BoostCooldown))
	}

	record, ok := sequential.SpellBonusRecord("Fireball")
	if !ok {
		t.Fatal("应存在累积记录")
	}
	if !record.Increase.Area {
		t.Error("范围标记应被后到的加成覆写为真")
	}
	if record.Increase.AdditionalTarget != 1 {
		t.Errorf("额外目标数应为1, 实际 %d", record.Increase.AdditionalTarget)
	}
}

func TestGetSpellBonusAbsentReturnsZero(t *testing.T) {
	agg := NewAggregator()
	if agg.GetSpellBonus("missing", BoostDamage) != 0 {
		t.Error("无记录的法术应返回0")
	}
	if _, ok := agg.SpellBonusRecord("missing"); ok {
		t.Error("无记录的法术不应命中")
	}
}

func TestResetClearsArraysButNotTimers(t *testing.T) {
	agg := NewAggregator()
	agg.AddStat(StatHealth, 100)
	agg.AddResistance(ElementFire, 5)
	agg.SetMajorStat(MajorMelee, 3)
	agg.SetInstant(InstantBattleHealing, true)
	agg.SetStage(ColorGreen, 2)
	agg.SetOnThinkTimer(OnThinkGiftOfLife, 12345)
	agg.AddSpellBonus("Fireball", SpellBonus{Increase: SpellIncrease{Damage: 1}})

	agg.ResetStats()
	agg.ResetResistance()
	agg.ResetSpellBonuses()

	if agg.Stat(StatHealth) != 0 || agg.Resistance(ElementFire) != 0 {
		t.Error("属性和抗性应被清零")
	}
	if agg.MajorStat(MajorMelee) != 0 || agg.Instant(InstantBattleHealing) || agg.Stage(ColorGreen) != 0 {
		t.Error("主属性、开关和阶段应被清零")
	}
	if agg.GetSpellBonus("Fireball", BoostDamage) != 0 {
		t.Error("法术加成应被清零")
	}
	if agg.OnThinkTimer(OnThinkGiftOfLife) != 12345 {
		t.Error("周期计时器不应被清零")
	}
}

func TestInstantByName(t *testing.T) {
	agg := NewAggregator()
	agg.SetInstantByName("Battle Instinct", true)
	if !agg.Instant(InstantBattleInstinct) {
		t.Error("按名字设置开关应生效")
	}
	if !agg.InstantByName("Battle Instinct") {
		t.Error("按名字查询开关应命中")
	}

	agg.SetInstantByName("No Such Spell", true)
	if agg.InstantByName("No Such Spell") {
		t.Error("未知名字应返回false")
	}
}
