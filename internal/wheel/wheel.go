package wheel

import (
	"fmt"

	"github.com/SlpAus/destiny-wheel-backend/internal/gem"
	"github.com/SlpAus/destiny-wheel-backend/internal/platform/kv"
)

// PlayerContext 是轮盘引擎对玩家能力的抽象。
// 引擎在构造时绑定到唯一一名玩家，之后按需读取其实时属性，
// 不持有也不修改玩家的核心身份字段。
type PlayerContext interface {
	UUID() string
	Vocation() Vocation
	Level() uint32
	Bones() uint64
	SpendBones(amount uint64) bool
	ExtraPoints() uint16
	PromotionScrolls() uint16
	NearbyCreatures() int
	InTempleRange() bool
}

// PlayerWheel 是一名玩家的命运轮盘引擎。
// 槽位分配、派生加成和激活宝石映射随会话存续；
// 宝石记录经金库即时持久化，槽位分配经网关在登出时落库。
type PlayerWheel struct {
	player  PlayerContext
	vault   *gem.Vault
	gateway *Gateway
	agg     *Aggregator

	// slots 下标1..36有效，下标0保留
	slots [slotTotal]uint16

	spellsSelected map[string]SpellGrade
	learnedSpells  []string

	giftOfLifeCooldown int32
}

// NewPlayerWheel 创建绑定到玩家的轮盘引擎。
// 宝石金库在此一并创建并完成加载；槽位分配需随后
// 调用LoadAllocationOnLogin在首个周期检查之前载入。
func NewPlayerWheel(player PlayerContext, store kv.Store, gateway *Gateway) (*PlayerWheel, error) {
	vault, err := gem.NewVault(player, store)
	if err != nil {
		return nil, fmt.Errorf("无法初始化宝石金库: %w", err)
	}
	return &PlayerWheel{
		player:         player,
		vault:          vault,
		gateway:        gateway,
		agg:            NewAggregator(),
		spellsSelected: make(map[string]SpellGrade),
	}, nil
}

// Vault 返回玩家的宝石金库。
func (w *PlayerWheel) Vault() *gem.Vault {
	return w.vault
}

// Aggregator 返回玩家的加成聚合器，战斗管线经它读取派生数值。
func (w *PlayerWheel) Aggregator() *Aggregator {
	return w.agg
}

// Owner 返回引擎绑定的玩家上下文。
func (w *PlayerWheel) Owner() PlayerContext {
	return w.player
}

// --- 槽位访问 ---

// Slots 返回槽位分配的快照，下标0保留。
func (w *PlayerWheel) Slots() [slotTotal]uint16 {
	return w.slots
}

// GetPointsBySlotType 返回指定槽位的当前点数，越界返回0。
func (w *PlayerWheel) GetPointsBySlotType(slot uint8) uint16 {
	if slot < 1 || slot > SlotCount {
		return 0
	}
	return w.slots[slot]
}

// SetPointsBySlotType 直接写入槽位点数，校验由调用方负责。
func (w *PlayerWheel) SetPointsBySlotType(slot uint8, points uint16) {
	if slot >= 1 && slot <= SlotCount {
		w.slots[slot] = points
	}
}

// --- 生命之礼 ---

// GiftOfLifeTotalCooldown 返回生命之礼的完整冷却秒数，未解锁返回0。
func (w *PlayerWheel) GiftOfLifeTotalCooldown() int32 {
	if w.agg.Stage(ColorGreen) == 0 {
		return 0
	}
	return giftOfLifeTotalCooldown
}

// GiftOfLifeValue 返回触发时恢复的生命百分比。
func (w *PlayerWheel) GiftOfLifeValue() uint8 {
	return giftOfLifeHealPercent(w.agg.Stage(ColorGreen))
}

// GiftOfCooldown 返回生命之礼的剩余冷却秒数。
func (w *PlayerWheel) GiftOfCooldown() int32 {
	return w.giftOfLifeCooldown
}

// SetGiftOfCooldown 写入剩余冷却。周期检查内的写入会顺带
// 重置下一次衰减的计时器，外部触发的写入立即生效。
func (w *PlayerWheel) SetGiftOfCooldown(value int32, isOnThink bool) {
	if value < 0 {
		value = 0
	}
	w.giftOfLifeCooldown = value
	if !isOnThink {
		w.agg.SetOnThinkTimer(OnThinkGiftOfLife, 0)
	}
}

// DecreaseGiftOfCooldown 衰减剩余冷却，不会降到0以下。
func (w *PlayerWheel) DecreaseGiftOfCooldown(value int32) {
	if value >= w.giftOfLifeCooldown {
		w.giftOfLifeCooldown = 0
		return
	}
	w.giftOfLifeCooldown -= value
}

// --- 持久化边界 ---

// LoadAllocationOnLogin 从持久层载入槽位分配并完成首次重算。
// 必须在引擎参与任何周期检查之前调用。
func (w *PlayerWheel) LoadAllocationOnLogin() error {
	slots, err := w.gateway.LoadAllocation(w.player.UUID())
	if err != nil {
		return fmt.Errorf("无法载入玩家 %s 的槽位分配: %w", w.player.UUID(), err)
	}
	w.slots = slots
	w.ReloadPlayerData()
	return nil
}

// SaveAllocationOnLogout 把槽位分配写入持久层。
// 返回重试机制耗尽后仍未落库的条目数，0表示全部持久。
func (w *PlayerWheel) SaveAllocationOnLogout() int {
	return w.gateway.SaveAllocation(w.player.UUID(), w.slots)
}
