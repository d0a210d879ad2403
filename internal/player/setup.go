package player

import (
	"fmt"

	"github.com/SlpAus/destiny-wheel-backend/internal/platform/database"
)

// SetupPlayer 迁移玩家表结构，装配槽位网关，
// 并把已注册玩家的uuid预热进Redis缓存。
func SetupPlayer() error {
	if err := database.DB.AutoMigrate(&Player{}); err != nil {
		return fmt.Errorf("无法迁移玩家表: %w", err)
	}
	fmt.Println("玩家数据库表迁移成功。")

	slotGateway = newSlotGateway()

	if err := warmupKnownPlayers(); err != nil {
		return err
	}
	return nil
}

// warmupKnownPlayers 把数据库中全部玩家uuid写入Redis集合，
// 供外围服务在不查库的情况下判断玩家是否存在。
func warmupKnownPlayers() error {
	var uuids []string
	if err := database.DB.Model(&Player{}).Pluck("uuid", &uuids).Error; err != nil {
		return fmt.Errorf("无法读取玩家uuid列表: %w", err)
	}
	if len(uuids) == 0 {
		fmt.Println("没有需要预热的玩家。")
		return nil
	}

	members := make([]interface{}, len(uuids))
	for i, id := range uuids {
		members[i] = id
	}
	if err := database.RDB.SAdd(database.Ctx, knownPlayersKey, members...).Err(); err != nil {
		return fmt.Errorf("无法预热已知玩家缓存: %w", err)
	}
	fmt.Printf("已预热 %d 名玩家到Redis缓存。\n", len(uuids))
	return nil
}
