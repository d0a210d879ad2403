package player

// Player 是玩家在数据库中的持久化记录。
// 轮盘引擎只按需读取这些字段，不拥有玩家的核心身份。
type Player struct {
	UUID             string `gorm:"primaryKey;type:varchar(36)"`
	Name             string `gorm:"uniqueIndex;not null"`
	Vocation         uint8  `gorm:"not null"`
	Level            uint32 `gorm:"not null;default:1"`
	Bones            uint64 `gorm:"not null;default:0"`
	ExtraPoints      uint16 `gorm:"not null;default:0"`
	PromotionScrolls uint16 `gorm:"not null;default:0"`

	PosX int32 `gorm:"not null;default:0"`
	PosY int32 `gorm:"not null;default:0"`
	PosZ int32 `gorm:"not null;default:0"`

	TempleX int32 `gorm:"not null;default:0"`
	TempleY int32 `gorm:"not null;default:0"`
	TempleZ int32 `gorm:"not null;default:0"`
}
