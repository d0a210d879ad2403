package metadata

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SlpAus/destiny-wheel-backend/internal/platform/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetValue 读取指定键的元数据值，键不存在时返回空字符串。
func GetValue(db *gorm.DB, key string) (string, error) {
	var meta Metadata
	err := db.Where("key = ?", key).First(&meta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("无法读取元数据 %s: %w", key, err)
	}
	return meta.Value, nil
}

// SetValue 写入指定键的元数据值，键已存在时覆盖。
func SetValue(db *gorm.DB, key string, value string) error {
	meta := Metadata{Key: key, Value: value}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&meta).Error
	if err != nil {
		return fmt.Errorf("无法写入元数据 %s: %w", key, err)
	}
	return nil
}

// SetupMetadata 迁移元数据表并校验表结构版本。
// 版本缺失时写入当前版本，版本不匹配时返回错误要求人工介入。
func SetupMetadata() error {
	if err := database.DB.AutoMigrate(&Metadata{}); err != nil {
		return fmt.Errorf("无法迁移元数据表: %w", err)
	}

	version, err := GetValue(database.DB, SchemaVersionKey)
	if err != nil {
		return err
	}
	if version == "" {
		return SetValue(database.DB, SchemaVersionKey, CurrentSchemaVersion)
	}
	if version != CurrentSchemaVersion {
		return fmt.Errorf("数据库表结构版本不匹配: 期望 %s, 实际 %s", CurrentSchemaVersion, version)
	}
	return nil
}

// RecordShutdown 记录本次正常停机的时间戳。
func RecordShutdown() error {
	return SetValue(database.DB, LastShutdownKey, strconv.FormatInt(time.Now().Unix(), 10))
}
