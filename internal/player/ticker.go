package player

import (
	"fmt"
	"time"

	"github.com/SlpAus/destiny-wheel-backend/internal/platform/config"
	"github.com/SlpAus/destiny-wheel-backend/pkg/lifecycle"
)

// snapshotInterval 是后台定期落库的周期。
const snapshotInterval = 5 * time.Minute

// StartWheelTicker 启动周期检查循环。
// 每个游戏刻为所有在线会话执行一次OnThink(false)，
// 逐个会话持锁，与HTTP请求互斥。
func StartWheelTicker(manager *lifecycle.Manager) error {
	handle, err := manager.NewServiceHandle("轮盘周期循环")
	if err != nil {
		return err
	}

	interval := time.Duration(config.Cfg.Wheel.TickIntervalMs) * time.Millisecond

	go func() {
		defer handle.Close()
		fmt.Printf("轮盘周期循环已启动，间隔 %v。\n", interval)

		for {
			if err := handle.Sleep(interval); err != nil {
				fmt.Println("轮盘周期循环已停止。")
				return
			}
			for _, session := range snapshotSessions() {
				session.mu.Lock()
				session.wheel.OnThink(false)
				session.mu.Unlock()
			}
		}
	}()
	return nil
}

// StartSnapshotScheduler 启动后台落库循环。
// 定期把所有在线会话的槽位分配写入持久层，
// 降低进程异常退出时丢失的改动量。
func StartSnapshotScheduler(manager *lifecycle.Manager) error {
	handle, err := manager.NewServiceHandle("槽位快照循环")
	if err != nil {
		return err
	}

	go func() {
		defer handle.Close()
		fmt.Printf("槽位快照循环已启动，间隔 %v。\n", snapshotInterval)

		for {
			if err := handle.Sleep(snapshotInterval); err != nil {
				fmt.Println("槽位快照循环已停止。")
				return
			}
			if failed := FlushAllSessions(); failed > 0 {
				fmt.Printf("警告: 快照落库有 %d 个条目未成功。\n", failed)
			}
		}
	}()
	return nil
}
