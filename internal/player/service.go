package player

import (
	"errors"
	"fmt"

	"github.com/SlpAus/destiny-wheel-backend/internal/platform/config"
	"github.com/SlpAus/destiny-wheel-backend/internal/platform/database"
	"github.com/SlpAus/destiny-wheel-backend/internal/platform/kv"
	"github.com/SlpAus/destiny-wheel-backend/internal/wheel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// knownPlayersKey 是Redis中已注册玩家uuid集合的键。
const knownPlayersKey = "wheel:players:known"

// playerStorePrefix 返回玩家KV存储的根命名空间。
func playerStorePrefix(playerUUID string) string {
	return "wheel:player:" + playerUUID
}

// slotGateway 是全部会话共用的槽位持久化网关，在SetupPlayer中装配。
var slotGateway *wheel.Gateway

// Login 让玩家上线：找到或创建玩家记录，装配轮盘引擎，
// 完成登录加载后把会话加入注册表。重复登录返回已有会话。
func Login(name string, vocation uint8, level uint32) (*Session, error) {
	if name == "" {
		return nil, errors.New("玩家名不能为空")
	}
	// 宝石库装载依赖Redis，不可用期间拒绝登录而不是装载残缺数据
	if !database.IsRedisHealthy() {
		return nil, errors.New("缓存服务暂时不可用，请稍后重试")
	}

	record, err := findOrCreatePlayer(name, vocation, level)
	if err != nil {
		return nil, err
	}

	if existing := GetSession(record.UUID); existing != nil {
		return existing, nil
	}

	session := &Session{record: record}
	store := kv.NewRedisStore(database.Ctx, database.RDB, playerStorePrefix(record.UUID))

	engine, err := wheel.NewPlayerWheel(session, store, slotGateway)
	if err != nil {
		return nil, fmt.Errorf("无法创建玩家 %s 的轮盘引擎: %w", record.UUID, err)
	}
	session.wheel = engine

	// 槽位加载和首次重算必须先于注册完成，
	// 注册之后会话才会被周期循环触达
	if err := engine.LoadAllocationOnLogin(); err != nil {
		return nil, err
	}
	registerSession(session)

	if err := database.RDB.SAdd(database.Ctx, knownPlayersKey, record.UUID).Err(); err != nil {
		fmt.Printf("警告: 无法更新已知玩家缓存: %v\n", err)
	}

	fmt.Printf("玩家 %s (%s) 已登录。\n", record.Name, record.UUID)
	return session, nil
}

// Logout 让玩家下线：先移出注册表使周期循环不再触达，
// 再保存槽位分配。调用方必须已持有该会话的锁（HTTP路径上
// 由会话中间件持有）。返回重试耗尽后未落库的条目数。
func Logout(session *Session) int {
	deregisterSession(session.record.UUID)
	failed := session.wheel.SaveAllocationOnLogout()
	fmt.Printf("玩家 %s 已登出。\n", session.record.UUID)
	return failed
}

// FlushAllSessions 保存所有在线会话的槽位分配。
// 由停机协调器在后台服务停止后调用，返回未落库的条目总数。
func FlushAllSessions() int {
	total := 0
	for _, session := range snapshotSessions() {
		session.mu.Lock()
		total += session.wheel.SaveAllocationOnLogout()
		session.mu.Unlock()
	}
	return total
}

func findOrCreatePlayer(name string, vocation uint8, level uint32) (Player, error) {
	var record Player
	err := database.DB.Where("name = ?", name).First(&record).Error
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Player{}, fmt.Errorf("无法查询玩家 %s: %w", name, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Player{}, fmt.Errorf("无法生成玩家uuid: %w", err)
	}
	if level == 0 {
		level = 1
	}
	record = Player{
		UUID:     id.String(),
		Name:     name,
		Vocation: vocation,
		Level:    level,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		return Player{}, fmt.Errorf("无法创建玩家 %s: %w", name, err)
	}
	return record, nil
}

// newSlotGateway 按配置装配槽位持久化网关。
func newSlotGateway() *wheel.Gateway {
	return wheel.NewGateway(wheel.NewGormSaver(), config.Cfg.Wheel.SaveRetryPasses)
}
