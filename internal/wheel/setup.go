package wheel

import (
	"fmt"

	"github.com/SlpAus/destiny-wheel-backend/internal/platform/database"
)

// SetupWheel 迁移轮盘模块的数据库表结构。
func SetupWheel() error {
	if err := database.DB.AutoMigrate(&SlotRecord{}); err != nil {
		return fmt.Errorf("无法迁移槽位记录表: %w", err)
	}
	fmt.Println("轮盘数据库表迁移成功。")
	return nil
}
