package startup

import (
	"fmt"

	"github.com/SlpAus/destiny-wheel-backend/internal/platform/metadata"
	"github.com/SlpAus/destiny-wheel-backend/internal/player"
	"github.com/SlpAus/destiny-wheel-backend/internal/wheel"
)

// InitializeApplication 是应用启动时执行的总入口：
// 按依赖顺序完成各模块的表迁移和缓存预热。
func InitializeApplication() error {
	fmt.Println("开始应用初始化...")

	if err := metadata.SetupMetadata(); err != nil {
		return err
	}
	if err := wheel.SetupWheel(); err != nil {
		return err
	}
	if err := player.SetupPlayer(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}
