package wheel

import (
	"testing"

	"github.com/SlpAus/destiny-wheel-backend/internal/gem"
	"github.com/SlpAus/destiny-wheel-backend/internal/platform/config"
	"github.com/SlpAus/destiny-wheel-backend/internal/platform/kv"
)

// newTestWheelWithGem 预先在存储中铺好一颗宝石再创建引擎，
// 使测试可以对确定的词条断言。
func newTestWheelWithGem(t *testing.T, ctx *fakeContext, g gem.Gem) *PlayerWheel {
	t.Helper()
	store := kv.NewMemoryStore()
	if err := g.Save(store); err != nil {
		t.Fatalf("预置宝石失败: %v", err)
	}
	gateway := NewGateway(newScriptedSaver(), config.Cfg.Wheel.SaveRetryPasses)
	w, err := NewPlayerWheel(ctx, store, gateway)
	if err != nil {
		t.Fatalf("创建引擎失败: %v", err)
	}
	return w
}

func TestStagesFromSlotPoints(t *testing.T) {
	ctx := &fakeContext{uuid: "p1", vocation: VocationKnight, level: 10000}
	w, _ := newTestWheel(t, ctx)

	// 绿色象限投入250点跨过一阶阈值
	w.SetPointsBySlotType(1, 50)
	w.SetPointsBySlotType(2, 75)
	w.SetPointsBySlotType(3, 75)
	w.SetPointsBySlotType(4, 50)
	w.ReloadPlayerData()

	if got := w.SliceStage(ColorGreen); got != 1 {
		t.Errorf("250点应达到一阶, 实际 %d", got)
	}
	if got := w.SliceStage(ColorRed); got != 0 {
		t.Errorf("未投入的象限应为零阶, 实际 %d", got)
	}
}

func TestDedicationAndConvictionPerks(t *testing.T) {
	ctx := &fakeContext{uuid: "p1", vocation: VocationKnight, level: 10000}
	w, _ := newTestWheel(t, ctx)

	// 槽位1加满50点：奉献按点发放，信念按满槽发放
	w.SetPointsBySlotType(1, 50)
	w.ReloadPlayerData()

	agg := w.Aggregator()
	if got := agg.Stat(StatHealth); got != 3*50 {
		t.Errorf("骑士奉献生命应为150, 实际 %d", got)
	}
	if got := agg.Stat(StatMana); got != 1*50 {
		t.Errorf("骑士奉献魔力应为50, 实际 %d", got)
	}
	if got := agg.Stat(StatCapacity); got != 5*50 {
		t.Errorf("骑士奉献负重应为250, 实际 %d", got)
	}
	// 绿色象限第一环的信念加成
	if got := agg.Stat(StatHealing); got != 1 {
		t.Errorf("满槽信念治疗应为1, 实际 %d", got)
	}

	// 未满的槽位没有信念加成
	w.SetPointsBySlotType(1, 49)
	w.ReloadPlayerData()
	if got := w.Aggregator().Stat(StatHealing); got != 0 {
		t.Errorf("未满槽不应有信念加成, 实际 %d", got)
	}
}

func TestActiveGemContributions(t *testing.T) {
	ctx := &fakeContext{uuid: "p1", vocation: VocationKnight, level: 10000}
	crafted := gem.Gem{
		UUID:            "gem-1",
		Affinity:        gem.AffinityRed,
		Quality:         gem.QualityGreater,
		BasicModifier1:  gem.BasicFireResistance,
		BasicModifier2:  gem.BasicHealth,
		SupremeModifier: gem.SupremeCriticalChance,
	}
	w := newTestWheelWithGem(t, ctx, crafted)

	vault := w.Vault()
	if !vault.SwitchGemDomain(0) {
		t.Fatal("切换作用域应成功")
	}
	if !vault.SetActiveGem(gem.AffinityRed, 0) {
		t.Fatal("激活应成功")
	}
	w.ReloadPlayerData()

	agg := w.Aggregator()
	if got := agg.Resistance(ElementFire); got != 3 {
		t.Errorf("Greater火抗词条应为3, 实际 %d", got)
	}
	if got := agg.Stat(StatHealth); got != 300 {
		t.Errorf("Greater生命词条应为300, 实际 %d", got)
	}
	if got := agg.Stat(StatCriticalChance); got != 6 {
		t.Errorf("至高暴击词条应为6, 实际 %d", got)
	}

	// 激活宝石的启示点数足以把红色象限推到一阶
	if got := vault.RevelationBonus(gem.AffinityRed); got != gem.RevelationPoints(gem.QualityGreater) {
		t.Errorf("启示点数应为450, 实际 %d", got)
	}
	if got := w.SliceStage(ColorRed); got != 1 {
		t.Errorf("启示点数应把红色推到一阶, 实际 %d", got)
	}

	// 骑士的红色启示能力随阶段解锁
	found := false
	for _, name := range w.LearnedSpells() {
		if name == "Combat Mastery" {
			found = true
		}
	}
	if !found {
		t.Errorf("应解锁战斗精通, 实际 %v", w.LearnedSpells())
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	ctx := &fakeContext{uuid: "p1", vocation: VocationDruid, level: 10000}
	crafted := gem.Gem{
		UUID:            "gem-1",
		Affinity:        gem.AffinityBlue,
		Quality:         gem.QualityRegular,
		BasicModifier1:  gem.BasicMitigation,
		BasicModifier2:  gem.BasicMana,
		SupremeModifier: gem.SupremeNone,
	}
	w := newTestWheelWithGem(t, ctx, crafted)

	vault := w.Vault()
	vault.SwitchGemDomain(0)
	vault.SetActiveGem(gem.AffinityBlue, 0)
	w.SetPointsBySlotType(1, 30)
	w.UpgradeSpell("Heavy Strike")

	w.ReloadPlayerData()
	first := snapshotAggregates(w)

	w.ReloadPlayerData()
	second := snapshotAggregates(w)

	if first != second {
		t.Errorf("输入不变时重算结果应一致:\n%v\n%v", first, second)
	}
}

type aggregateSnapshot struct {
	health     int32
	mana       int32
	mitigation int32
	stageBlue  uint8
	revelation uint16
	spellDmg   int32
}

func snapshotAggregates(w *PlayerWheel) aggregateSnapshot {
	return aggregateSnapshot{
		health:     w.Aggregator().Stat(StatHealth),
		mana:       w.Aggregator().Stat(StatMana),
		mitigation: w.Aggregator().Stat(StatMitigation),
		stageBlue:  w.SliceStage(ColorBlue),
		revelation: w.Vault().RevelationBonus(gem.AffinityBlue),
		spellDmg:   w.Aggregator().GetSpellBonus("Heavy Strike", BoostDamage),
	}
}

func TestUpgradeDowngradeSpell(t *testing.T) {
	ctx := &fakeContext{uuid: "p1", vocation: VocationKnight, level: 10000}
	w, _ := newTestWheel(t, ctx)

	w.UpgradeSpell("Heavy Strike")
	if got := w.GetSpellUpgrade("Heavy Strike"); got != GradeRegular {
		t.Errorf("首次升级应到一档, 实际 %d", got)
	}
	if w.Aggregator().GetSpellBonus("Heavy Strike", BoostCooldown) == 0 {
		t.Error("升级后应有冷却减免")
	}

	w.UpgradeSpell("Heavy Strike")
	w.UpgradeSpell("Heavy Strike")
	w.UpgradeSpell("Heavy Strike") // 超过上限的升级是无操作
	if got := w.GetSpellUpgrade("Heavy Strike"); got != GradeMax {
		t.Errorf("应停留在最高档, 实际 %d", got)
	}

	w.DowngradeSpell("Heavy Strike")
	if got := w.GetSpellUpgrade("Heavy Strike"); got != GradeUpgraded {
		t.Errorf("降级应到二档, 实际 %d", got)
	}

	w.DowngradeSpell("Heavy Strike")
	w.DowngradeSpell("Heavy Strike")
	if got := w.GetSpellUpgrade("Heavy Strike"); got != GradeNone {
		t.Errorf("降到零档应移除记录, 实际 %d", got)
	}
	if w.Aggregator().GetSpellBonus("Heavy Strike", BoostCooldown) != 0 {
		t.Error("移除后不应再有加成")
	}
}
