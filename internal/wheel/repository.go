package wheel

import (
	"fmt"

	"github.com/SlpAus/destiny-wheel-backend/internal/platform/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SlotRecord 是数据库中一名玩家单个槽位的持久化行。
type SlotRecord struct {
	PlayerUUID string `gorm:"primaryKey;type:varchar(36)"`
	Slot       uint8  `gorm:"primaryKey"`
	Points     uint16 `gorm:"not null"`
}

// Saver 是网关对持久层的最小依赖，测试中用脚本化实现替换。
type Saver interface {
	SaveSlot(playerUUID string, slot uint8, points uint16) error
	LoadSlots(playerUUID string) (map[uint8]uint16, error)
}

// gormSaver 把槽位行写入SQLite，主键冲突时整行更新。
type gormSaver struct {
	db *gorm.DB
}

// NewGormSaver 创建基于全局数据库连接的持久层实现。
func NewGormSaver() Saver {
	return &gormSaver{db: database.DB}
}

func (s *gormSaver) SaveSlot(playerUUID string, slot uint8, points uint16) error {
	record := SlotRecord{PlayerUUID: playerUUID, Slot: slot, Points: points}
	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_uuid"}, {Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"points"}),
	}).Create(&record)
	if result.Error != nil {
		return fmt.Errorf("无法写入槽位记录: %w", result.Error)
	}
	return nil
}

func (s *gormSaver) LoadSlots(playerUUID string) (map[uint8]uint16, error) {
	var records []SlotRecord
	if err := s.db.Where("player_uuid = ?", playerUUID).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("无法读取槽位记录: %w", err)
	}
	slots := make(map[uint8]uint16, len(records))
	for _, record := range records {
		slots[record.Slot] = record.Points
	}
	return slots, nil
}

// Gateway 在登录/登出边界上搬运槽位分配。
// 登出保存采用有界重试：单个条目在 待写 → 已尝试 → 持久|重排
// 之间流转，轮次耗尽后未落库的条目保持上一次的持久值。
type Gateway struct {
	saver       Saver
	retryPasses int
}

// NewGateway 创建网关。retryPasses是首轮之后的重试轮次上限。
func NewGateway(saver Saver, retryPasses int) *Gateway {
	if retryPasses < 0 {
		retryPasses = 0
	}
	return &Gateway{saver: saver, retryPasses: retryPasses}
}

type pendingSlot struct {
	slot   uint8
	points uint16
}

// SaveAllocation 把整张槽位分配写入持久层。
// 首轮尝试全部槽位，失败的条目带着错误计数进入重试列表；
// 之后每轮把列表中的条目各尝试一次，成功递减计数并移除，
// 失败重新排队。返回轮次耗尽后剩余的错误计数，0表示全部持久。
func (g *Gateway) SaveAllocation(playerUUID string, slots [slotTotal]uint16) int {
	retryTable := make([]pendingSlot, 0)
	errors := 0

	for slot := uint8(1); slot <= SlotCount; slot++ {
		if err := g.saver.SaveSlot(playerUUID, slot, slots[slot]); err != nil {
			retryTable = append(retryTable, pendingSlot{slot: slot, points: slots[slot]})
			errors++
		}
	}

	for pass := 0; pass < g.retryPasses && len(retryTable) > 0; pass++ {
		requeued := make([]pendingSlot, 0, len(retryTable))
		for _, entry := range retryTable {
			if err := g.saver.SaveSlot(playerUUID, entry.slot, entry.points); err != nil {
				requeued = append(requeued, entry)
				continue
			}
			errors--
		}
		retryTable = requeued
	}

	if errors > 0 {
		fmt.Printf("警告: 玩家 %s 有 %d 个槽位在重试耗尽后仍未落库\n", playerUUID, errors)
	}
	return errors
}

// LoadAllocation 读取玩家的全部槽位分配，缺失的槽位为0。
func (g *Gateway) LoadAllocation(playerUUID string) ([slotTotal]uint16, error) {
	var slots [slotTotal]uint16

	stored, err := g.saver.LoadSlots(playerUUID)
	if err != nil {
		return slots, err
	}
	for slot, points := range stored {
		if slot >= 1 && slot <= SlotCount {
			slots[slot] = points
		}
	}
	return slots, nil
}
