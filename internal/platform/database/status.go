package database

import (
	"fmt"
	"sync"
	"time"
)

const pingInterval = 5 * time.Second

// statusManager 负责线程安全地管理和提供Redis的健康状态。
// 玩家登录在Redis不可用期间会被拒绝，避免装载残缺的宝石库。
type statusManager struct {
	mu             sync.RWMutex
	isRedisHealthy bool
}

// 全局的状态管理器实例
var globalStatus = &statusManager{
	isRedisHealthy: true, // 默认启动时是健康的
}

// IsRedisHealthy 返回当前Redis的健康状态。
func IsRedisHealthy() bool {
	globalStatus.mu.RLock()
	defer globalStatus.mu.RUnlock()
	return globalStatus.isRedisHealthy
}

// updateStatus 用于线程安全地更新健康状态。
func updateStatus(isHealthy bool) {
	globalStatus.mu.Lock()
	defer globalStatus.mu.Unlock()

	// 只有当状态发生变化时才打印日志
	if globalStatus.isRedisHealthy != isHealthy {
		globalStatus.isRedisHealthy = isHealthy
		if isHealthy {
			fmt.Println("健康检查: Redis服务状态已更新为 [可用]")
		} else {
			fmt.Println("健康检查警告: Redis服务状态已更新为 [不可用]")
		}
	}
}

// StartRedisHealthCheck 启动一个后台Goroutine来定期、阻塞式地执行Ping检查。
func StartRedisHealthCheck() {
	fmt.Println("Redis健康检查器已启动。")
	timer := time.NewTimer(pingInterval)
	defer timer.Stop()

	for {
		<-timer.C
		_, err := RDB.Ping(Ctx).Result()
		updateStatus(err == nil)
		timer.Reset(pingInterval)
	}
}
