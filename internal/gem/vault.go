package gem

import (
	"fmt"
	"sort"

	"github.com/SlpAus/destiny-wheel-backend/internal/platform/kv"
	"github.com/google/uuid"
)

// PlayerContext 是金库对玩家能力的最小依赖：查询和扣除骨币。
// 由player模块的会话实现，测试中用桩实现替换。
type PlayerContext interface {
	Bones() uint64
	SpendBones(amount uint64) bool
}

// Vault 管理一名玩家已揭示宝石的完整生命周期。
// 宝石记录在每次状态变化时立即写入KV存储；
// 激活映射、作用域开关和启示点数是会话期状态，随登录重建。
type Vault struct {
	player PlayerContext
	store  kv.Store

	// revealed 是已揭示宝石的会话内缓存，索引即各操作使用的宝石下标
	revealed []Gem
	// domains 记录宝石当前所处的作用域，键为宝石uuid，缺省为基础域
	domains map[string]Domain
	// active 是 亲和 → revealed下标 的激活映射，每个亲和最多一颗
	active map[Affinity]int

	revelation [AffinityCount]uint16
}

// NewVault 创建一个绑定到玩家和其KV存储的金库，并加载已揭示的宝石。
// 加载在会话开始时一次完成，宝石按uuid排序以获得稳定的下标。
func NewVault(player PlayerContext, store kv.Store) (*Vault, error) {
	v := &Vault{
		player:  player,
		store:   store,
		domains: make(map[string]Domain),
		active:  make(map[Affinity]int),
	}

	keys, err := store.Scoped(RevealedNamespace).Keys()
	if err != nil {
		return nil, fmt.Errorf("无法加载已揭示的宝石: %w", err)
	}
	sort.Strings(keys)

	for _, key := range keys {
		g := Load(store, key)
		if g.IsNull() {
			continue
		}
		v.revealed = append(v.revealed, g)
	}
	return v, nil
}

// --- 查询 ---

// GetGemByIndex 返回指定下标的宝石，越界时返回空哨兵宝石。
func (v *Vault) GetGemByIndex(index int) Gem {
	if index < 0 || index >= len(v.revealed) {
		return Gem{}
	}
	return v.revealed[index]
}

// GetGemByUUID 线性扫描已揭示的宝石，未命中时返回空哨兵宝石。
func (v *Vault) GetGemByUUID(uuid string) Gem {
	index := v.GetGemIndex(uuid)
	if index == NoIndex {
		return Gem{}
	}
	return v.revealed[index]
}

// GetGemIndex 返回uuid对应的下标，未命中时返回NoIndex。
func (v *Vault) GetGemIndex(uuid string) int {
	for i, g := range v.revealed {
		if g.UUID == uuid {
			return i
		}
	}
	return NoIndex
}

// RevealedGems 返回已揭示宝石的快照。
func (v *Vault) RevealedGems() []Gem {
	gems := make([]Gem, len(v.revealed))
	copy(gems, v.revealed)
	return gems
}

// ActiveGems 返回当前已激活的宝石，按亲和排列，空位为哨兵宝石。
func (v *Vault) ActiveGems() [AffinityCount]Gem {
	var gems [AffinityCount]Gem
	for affinity, index := range v.active {
		gems[affinity] = v.GetGemByIndex(index)
	}
	return gems
}

// ActiveGemIndex 返回亲和位上激活宝石的下标，空位返回NoIndex。
func (v *Vault) ActiveGemIndex(affinity Affinity) int {
	index, ok := v.active[affinity]
	if !ok {
		return NoIndex
	}
	return index
}

// GemDomain 返回宝石当前所处的作用域，默认为基础域。
func (v *Vault) GemDomain(uuid string) Domain {
	return v.domains[uuid]
}

// --- 生命周期操作 ---
// 所有校验失败都以布尔值拒绝，不抛错误、不产生部分修改。

// RevealGem 花费骨币揭示一颗指定品质的新宝石。
// 骨币不足或存储写入失败时失败：不扣费、不产生任何修改。
// 扣费在宝石成功落库之后进行，保证失败分支不吞掉货币。
func (v *Vault) RevealGem(quality Quality) (Gem, bool) {
	cost := RevealCost(quality)
	if cost == 0 || v.player.Bones() < cost {
		return Gem{}, false
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Gem{}, false
	}

	first := rollBasicModifier(quality, BasicNone)
	g := Gem{
		UUID:            id.String(),
		Affinity:        rollAffinity(),
		Quality:         quality,
		BasicModifier1:  first,
		BasicModifier2:  rollBasicModifier(quality, first),
		SupremeModifier: rollSupremeModifier(quality),
	}

	if err := g.Save(v.store); err != nil {
		fmt.Printf("警告: 无法持久化新揭示的宝石 %s: %v\n", g.UUID, err)
		return Gem{}, false
	}
	if !v.player.SpendBones(cost) {
		_ = g.Remove(v.store)
		return Gem{}, false
	}

	v.revealed = append(v.revealed, g)
	return g, true
}

// DestroyGem 销毁指定下标的宝石。锁定的宝石拒绝销毁。
func (v *Vault) DestroyGem(index int) bool {
	g := v.GetGemByIndex(index)
	if g.IsNull() || g.Locked {
		return false
	}

	if err := g.Remove(v.store); err != nil {
		fmt.Printf("警告: 无法从存储中删除宝石 %s: %v\n", g.UUID, err)
		return false
	}

	v.revealed = append(v.revealed[:index], v.revealed[index+1:]...)
	delete(v.domains, g.UUID)

	// 修正激活映射中因删除而移位的下标
	for affinity, activeIndex := range v.active {
		switch {
		case activeIndex == index:
			delete(v.active, affinity)
		case activeIndex > index:
			v.active[affinity] = activeIndex - 1
		}
	}
	return true
}

// SwitchGemDomain 在基础域和至高域之间切换宝石。锁定的宝石拒绝切换。
// 切回基础域时会同时解除该宝石的激活状态。
func (v *Vault) SwitchGemDomain(index int) bool {
	g := v.GetGemByIndex(index)
	if g.IsNull() || g.Locked {
		return false
	}

	if v.domains[g.UUID] == DomainBasic {
		v.domains[g.UUID] = DomainSupreme
		return true
	}

	v.domains[g.UUID] = DomainBasic
	if v.ActiveGemIndex(g.Affinity) == index {
		delete(v.active, g.Affinity)
	}
	return true
}

// ToggleGemLock 翻转宝石的锁定标记。锁定的宝石无法被销毁或切换作用域。
func (v *Vault) ToggleGemLock(index int) bool {
	g := v.GetGemByIndex(index)
	if g.IsNull() {
		return false
	}

	v.revealed[index].Locked = !g.Locked
	if err := v.revealed[index].Save(v.store); err != nil {
		// 回滚内存状态，保持与存储一致
		v.revealed[index].Locked = g.Locked
		fmt.Printf("警告: 无法持久化宝石 %s 的锁定状态: %v\n", g.UUID, err)
		return false
	}
	return true
}

// SetActiveGem 将指定下标的宝石设为其亲和位上的激活宝石。
// 宝石必须处于至高域且亲和匹配。顶替已有的真实占位者时，
// 按新宝石品质收取一次轮换费用；首次填充空位不收费。
func (v *Vault) SetActiveGem(affinity Affinity, index int) bool {
	g := v.GetGemByIndex(index)
	if g.IsNull() || g.Affinity != affinity || v.domains[g.UUID] != DomainSupreme {
		return false
	}

	previous, occupied := v.active[affinity]
	if occupied && previous == index {
		return false // 已经是激活宝石，无事可做
	}

	if occupied {
		if !v.player.SpendBones(RotateCost(g.Quality)) {
			return false
		}
	}

	v.active[affinity] = index
	return true
}

// RemoveActiveGem 解除亲和位上的激活宝石。空位时为无操作。
func (v *Vault) RemoveActiveGem(affinity Affinity) {
	delete(v.active, affinity)
}

// --- 启示点数 ---
// 启示点数由重算流程写入，与宝石的移除相互独立。

// AddRevelationBonus 为亲和累积启示点数。
func (v *Vault) AddRevelationBonus(affinity Affinity, points uint16) {
	if affinity < AffinityCount {
		v.revelation[affinity] += points
	}
}

// ResetRevelationBonus 清零所有亲和的启示点数。
func (v *Vault) ResetRevelationBonus() {
	v.revelation = [AffinityCount]uint16{}
}

// RevelationBonus 返回亲和位上累积的启示点数。
func (v *Vault) RevelationBonus(affinity Affinity) uint16 {
	if affinity >= AffinityCount {
		return 0
	}
	return v.revelation[affinity]
}
