package metadata

import "gorm.io/gorm"

// Metadata 定义了存储系统元数据的键值对表结构
type Metadata struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	gorm.Model

	// Key 是元数据的唯一键，例如 "schema_version"
	Key string `gorm:"uniqueIndex;not null;type:varchar(255)"`

	// Value 存储元数据的值
	Value string `gorm:"type:varchar(255)"`
}

const (
	// SchemaVersionKey 记录当前数据库表结构的版本号。
	SchemaVersionKey = "schema_version"

	// LastShutdownKey 记录上一次正常停机的时间戳（Unix秒）。
	// 启动时缺失或陈旧意味着上一次退出不干净。
	LastShutdownKey = "last_shutdown_at"
)

// CurrentSchemaVersion 是本版本代码期望的表结构版本。
const CurrentSchemaVersion = "1"
