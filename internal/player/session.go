package player

import (
	"fmt"
	"sync"

	"github.com/SlpAus/destiny-wheel-backend/internal/platform/database"
	"github.com/SlpAus/destiny-wheel-backend/internal/wheel"
)

// Session 是一名在线玩家的会话。
// 它持有玩家记录的内存副本和轮盘引擎，并作为引擎的PlayerContext。
// 对同一会话的访问经mu串行化：HTTP请求由中间件在请求期间持锁，
// 后台循环逐个会话持锁，保证引擎始终只有单一访问者。
type Session struct {
	mu     sync.Mutex
	record Player
	wheel  *wheel.PlayerWheel

	inCombat        bool
	nearbyCreatures int
}

// Wheel 返回会话的轮盘引擎。
func (s *Session) Wheel() *wheel.PlayerWheel {
	return s.wheel
}

// InCombat 返回玩家是否处于战斗状态。
func (s *Session) InCombat() bool {
	return s.inCombat
}

// --- wheel.PlayerContext ---

func (s *Session) UUID() string {
	return s.record.UUID
}

func (s *Session) Vocation() wheel.Vocation {
	return wheel.Vocation(s.record.Vocation)
}

func (s *Session) Level() uint32 {
	return s.record.Level
}

func (s *Session) Bones() uint64 {
	return s.record.Bones
}

// SpendBones 扣除骨币并立即落库。余额不足或落库失败时
// 不产生任何扣减，以布尔值拒绝。
func (s *Session) SpendBones(amount uint64) bool {
	if s.record.Bones < amount {
		return false
	}

	remaining := s.record.Bones - amount
	err := database.DB.Model(&Player{}).
		Where("uuid = ?", s.record.UUID).
		Update("bones", remaining).Error
	if err != nil {
		fmt.Printf("警告: 无法持久化玩家 %s 的骨币余额: %v\n", s.record.UUID, err)
		return false
	}

	s.record.Bones = remaining
	return true
}

func (s *Session) ExtraPoints() uint16 {
	return s.record.ExtraPoints
}

func (s *Session) PromotionScrolls() uint16 {
	return s.record.PromotionScrolls
}

func (s *Session) NearbyCreatures() int {
	return s.nearbyCreatures
}

// InTempleRange 判断玩家是否在神殿范围内（同层10格以内）。
func (s *Session) InTempleRange() bool {
	if s.record.PosZ != s.record.TempleZ {
		return false
	}
	dx := s.record.PosX - s.record.TempleX
	dy := s.record.PosY - s.record.TempleY
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx <= 10 && dy <= 10
}

// --- 状态变更 ---

// SetCombatState 更新战斗状态和周边生物数量。
// 状态突变后立即强制执行一轮周期检查。
func (s *Session) SetCombatState(inCombat bool, nearbyCreatures int) {
	if nearbyCreatures < 0 {
		nearbyCreatures = 0
	}
	s.inCombat = inCombat
	s.nearbyCreatures = nearbyCreatures
	s.wheel.OnThink(true)
}

// SetPosition 更新玩家的当前坐标。
func (s *Session) SetPosition(x, y, z int32) {
	s.record.PosX = x
	s.record.PosY = y
	s.record.PosZ = z
}
