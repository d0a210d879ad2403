package wheel

import (
	"testing"
)

// withFixedClock 固定时间源并在测试结束后恢复。
func withFixedClock(t *testing.T, at int64) func(int64) {
	t.Helper()
	original := nowMilli
	current := at
	nowMilli = func() int64 { return current }
	t.Cleanup(func() { nowMilli = original })
	return func(to int64) { current = to }
}

func TestGiftOfLifeCooldownDecay(t *testing.T) {
	advance := withFixedClock(t, 1000)

	ctx := &fakeContext{uuid: "p1", level: 1000}
	w, _ := newTestWheel(t, ctx)
	w.SetGiftOfCooldown(10, false)

	// 第一次检查衰减1秒并设置计时器
	w.OnThink(false)
	if got := w.GiftOfCooldown(); got != 9 {
		t.Fatalf("首次检查应衰减到9, 实际 %d", got)
	}

	// 计时器未到期时不再衰减
	w.OnThink(false)
	if got := w.GiftOfCooldown(); got != 9 {
		t.Errorf("计时器未到期不应衰减, 实际 %d", got)
	}

	// force绕过计时器
	w.OnThink(true)
	if got := w.GiftOfCooldown(); got != 8 {
		t.Errorf("force应绕过计时器, 实际 %d", got)
	}

	// 时间推进后恢复衰减
	advance(10000)
	w.OnThink(false)
	if got := w.GiftOfCooldown(); got != 7 {
		t.Errorf("计时器到期后应恢复衰减, 实际 %d", got)
	}
}

func TestGiftOfCooldownNeverNegative(t *testing.T) {
	ctx := &fakeContext{uuid: "p1", level: 1000}
	w, _ := newTestWheel(t, ctx)

	w.SetGiftOfCooldown(1, false)
	w.DecreaseGiftOfCooldown(100)
	if got := w.GiftOfCooldown(); got != 0 {
		t.Errorf("冷却不应为负, 实际 %d", got)
	}

	w.SetGiftOfCooldown(-5, false)
	if got := w.GiftOfCooldown(); got != 0 {
		t.Errorf("负值写入应被钳到0, 实际 %d", got)
	}
}

func TestBattleInstinctScalesWithCreatures(t *testing.T) {
	withFixedClock(t, 1000)

	ctx := &fakeContext{uuid: "p1", vocation: VocationKnight, level: 1000, nearby: 4}
	w, _ := newTestWheel(t, ctx)
	w.Aggregator().SetInstant(InstantBattleInstinct, true)

	w.OnThink(true)
	if got := w.Aggregator().MajorStat(MajorMelee); got != 3 {
		t.Errorf("4个周边生物应给3级近战, 实际 %d", got)
	}
	if got := w.Aggregator().MajorStat(MajorDefense); got != 6 {
		t.Errorf("防御应为近战的两倍, 实际 %d", got)
	}

	// 生物散去后主属性回落
	ctx.nearby = 0
	w.OnThink(true)
	if got := w.Aggregator().MajorStat(MajorMelee); got != 0 {
		t.Errorf("无周边生物时应回落到0, 实际 %d", got)
	}

	// 超过上限被钳制
	ctx.nearby = 100
	w.OnThink(true)
	if got := w.Aggregator().MajorStat(MajorMelee); got != 8 {
		t.Errorf("近战加成应钳制在8, 实际 %d", got)
	}
}

func TestMasteryInactiveClearsMajors(t *testing.T) {
	withFixedClock(t, 1000)

	ctx := &fakeContext{uuid: "p1", vocation: VocationPaladin, level: 1000, nearby: 3}
	w, _ := newTestWheel(t, ctx)

	// 开关未点亮时检查应把主属性清零
	w.Aggregator().SetMajorStat(MajorDistance, 99)
	w.OnThink(true)
	if got := w.Aggregator().MajorStat(MajorDistance); got != 0 {
		t.Errorf("开关未点亮时主属性应清零, 实际 %d", got)
	}
}

func TestPositionalTacticsSwitchesByProximity(t *testing.T) {
	withFixedClock(t, 1000)

	ctx := &fakeContext{uuid: "p1", vocation: VocationPaladin, level: 1000, nearby: 0}
	w, _ := newTestWheel(t, ctx)
	w.Aggregator().SetInstant(InstantPositionalTactics, true)

	w.OnThink(true)
	if w.Aggregator().MajorStat(MajorDistance) == 0 || w.Aggregator().MajorStat(MajorMagic) != 0 {
		t.Error("无人近身时应强化远程")
	}

	ctx.nearby = 2
	w.OnThink(true)
	if w.Aggregator().MajorStat(MajorDistance) != 0 || w.Aggregator().MajorStat(MajorMagic) == 0 {
		t.Error("被近身后应转为法术强化")
	}
}

func TestMitigationBounds(t *testing.T) {
	ctx := &fakeContext{uuid: "p1", level: 1000}
	w, _ := newTestWheel(t, ctx)

	// 无任何加成时不减伤
	if got := w.CalculateMitigation(); got != 0 {
		t.Errorf("无加成时减伤应为0, 实际 %f", got)
	}
	if got := w.GetMitigationMultiplier(); got != 1 {
		t.Errorf("无加成时乘数应为1, 实际 %f", got)
	}

	// 堆叠到极端值时被钳制在下限之上
	w.Aggregator().AddStat(StatMitigation, 500)
	if got := w.CalculateMitigation(); got != 1-mitigationFloor {
		t.Errorf("减伤应钳制在 %f, 实际 %f", 1-mitigationFloor, got)
	}
	if got := w.GetMitigationMultiplier(); got != mitigationFloor {
		t.Errorf("乘数不应低于下限, 实际 %f", got)
	}
}

func TestDamageHooksRequireStageAndTarget(t *testing.T) {
	ctx := &fakeContext{uuid: "p1", vocation: VocationKnight, level: 1000}
	w, _ := newTestWheel(t, ctx)

	target := &fakeTarget{health: 20, maxHealth: 100}

	// 无阶段时全部返回0
	if w.CheckExecutionersThrow(target) != 0 {
		t.Error("无阶段时处刑者投掷应为0")
	}
	if w.CheckBeamMasteryDamage() != 0 {
		t.Error("职业不符时光束精通应为0")
	}

	// 手动写入蓝色阶段后，低血量目标触发增伤
	w.Aggregator().SetStage(ColorBlue, 2)
	if got := w.CheckExecutionersThrow(target); got != 10 {
		t.Errorf("二阶处刑者投掷应为10, 实际 %d", got)
	}

	// 高血量目标不触发
	target.health = 90
	if w.CheckExecutionersThrow(target) != 0 {
		t.Error("高血量目标不应触发处刑者投掷")
	}

	// 目标缺失不触发
	if w.CheckExecutionersThrow(nil) != 0 {
		t.Error("无目标时应为0")
	}
}

func TestFocusMasteryConsumedOnRead(t *testing.T) {
	ctx := &fakeContext{uuid: "p1", vocation: VocationSorcerer, level: 1000}
	w, _ := newTestWheel(t, ctx)

	w.Aggregator().SetInstant(InstantFocusMastery, true)
	if got := w.CheckFocusMasteryDamage(); got == 0 {
		t.Fatal("开关点亮时应返回增伤")
	}
	if got := w.CheckFocusMasteryDamage(); got != 0 {
		t.Errorf("读取即消耗, 第二次应为0, 实际 %d", got)
	}
}

// fakeTarget 是伤害钩子测试用的目标桩。
type fakeTarget struct {
	health    int64
	maxHealth int64
}

func (t *fakeTarget) Health() int64    { return t.health }
func (t *fakeTarget) MaxHealth() int64 { return t.maxHealth }
