package wheel

import (
	"github.com/SlpAus/destiny-wheel-backend/internal/platform/config"
)

// --- 点数预算 ---

// WheelPoints 返回玩家可用的轮盘点数。
// 基础点数按超出起算等级的部分逐级累计，低于起算等级为0；
// includeExtra为真时计入晋升等外部来源授予的额外点数。
// 打开轮盘窗口时传false，因为额外点数在载荷中单独下发。
func (w *PlayerWheel) WheelPoints(includeExtra bool) uint16 {
	cfg := config.Cfg.Wheel
	level := w.player.Level()

	var base uint16
	if level > uint32(cfg.MinLevel) {
		base = uint16((level - uint32(cfg.MinLevel)) * uint32(cfg.PointsPerLevel))
	}
	if includeExtra {
		base += w.ExtraPoints()
	}
	return base
}

// ExtraPoints 返回外部来源授予的额外点数。
func (w *PlayerWheel) ExtraPoints() uint16 {
	return w.player.ExtraPoints()
}

// UnusedPoints 返回尚未分配的点数。
func (w *PlayerWheel) UnusedPoints() uint16 {
	total := w.WheelPoints(true)
	var used uint16
	for slot := uint8(1); slot <= SlotCount; slot++ {
		used += w.slots[slot]
	}
	if used >= total {
		return 0
	}
	return total - used
}

// MaxPointsForSlot 返回槽位的点数上限，按槽位所在的环查表。
func (w *PlayerWheel) MaxPointsForSlot(slot uint8) uint16 {
	if slot < 1 || slot > SlotCount {
		return 0
	}
	return slotTable[slot].cap
}

// --- 槽位校验 ---

// CanSelectSlotFullOrPartial 判断槽位是否还能合法地再放至少一点。
func (w *PlayerWheel) CanSelectSlotFullOrPartial(slot uint8) bool {
	if slot < 1 || slot > SlotCount {
		return false
	}
	if w.slots[slot] >= slotTable[slot].cap {
		return false
	}
	return w.UnusedPoints() > 0
}

// CanPlayerSelectPointOnSlot 在上限校验之外要求前置槽位已有点数。
// recursive为真时沿前置链一路校验到第一环，为假时只看直接前置。
func (w *PlayerWheel) CanPlayerSelectPointOnSlot(slot uint8, recursive bool) bool {
	if !w.CanSelectSlotFullOrPartial(slot) {
		return false
	}
	return w.prerequisitesSatisfied(slot, recursive)
}

func (w *PlayerWheel) prerequisitesSatisfied(slot uint8, recursive bool) bool {
	for _, prereq := range slotTable[slot].prereqs {
		if w.slots[prereq] == 0 {
			return false
		}
		if recursive && !w.prerequisitesSatisfied(prereq, true) {
			return false
		}
	}
	return true
}

// CheckSavePointsBySlotType 校验把槽位改写为目标点数是否合法。
// 返回false时保证不产生任何修改：上限、预算和前置链任一违反都拒绝。
func (w *PlayerWheel) CheckSavePointsBySlotType(slot uint8, points uint16) bool {
	if slot < 1 || slot > SlotCount {
		return false
	}
	if points > slotTable[slot].cap {
		return false
	}

	current := w.slots[slot]
	if points > current {
		if points-current > w.UnusedPoints() {
			return false
		}
		if !w.prerequisitesSatisfied(slot, true) {
			return false
		}
	}
	return true
}

// SlotChange 是批量保存请求中的一项槽位改动。
type SlotChange struct {
	Slot   uint8  `json:"slot" binding:"required"`
	Points uint16 `json:"points"`
}

// SaveSlotChanges 应用一批槽位改动。
// 每项独立校验，非法项被拒绝但不中止整批；任何一项生效后
// 触发一次完整重算。返回被接受的改动下标。
// allowDecrease为假时对应只可加点的窗口操作码，减点项被拒绝。
func (w *PlayerWheel) SaveSlotChanges(changes []SlotChange, allowDecrease bool) []int {
	accepted := make([]int, 0, len(changes))
	for i, change := range changes {
		if !w.CheckSavePointsBySlotType(change.Slot, change.Points) {
			continue
		}
		if !allowDecrease && change.Points < w.slots[change.Slot] {
			continue
		}
		w.slots[change.Slot] = change.Points
		accepted = append(accepted, i)
	}
	if len(accepted) > 0 {
		w.ReloadPlayerData()
	}
	return accepted
}
