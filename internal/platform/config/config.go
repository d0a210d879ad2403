package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cfg 是一个全局变量，用于存储所有应用程序的配置
var Cfg *Config

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Wheel    WheelConfig    `mapstructure:"wheel"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了数据库和缓存相关的配置
type DatabaseConfig struct {
	Redis  RedisConfig  `mapstructure:"redis"`
	Sqlite SqliteConfig `mapstructure:"sqlite"`
}

// RedisConfig 定义了Redis的配置
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SqliteConfig 定义了SQLite数据库文件的配置
type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

// WheelConfig 定义了命运之轮引擎的可调参数
type WheelConfig struct {
	// MinLevel 是开始累积轮盘点数的最低等级
	MinLevel uint `mapstructure:"minLevel"`
	// PointsPerLevel 是超过最低等级后，每级获得的点数
	PointsPerLevel uint `mapstructure:"pointsPerLevel"`
	// SaveRetryPasses 是登出保存时重试轮次的上限
	SaveRetryPasses int `mapstructure:"saveRetryPasses"`
	// TickIntervalMs 是后台OnThink循环的周期（毫秒）
	TickIntervalMs int `mapstructure:"tickIntervalMs"`
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 它会在指定的路径中查找名为 config.yaml 的文件
func LoadConfig() (*Config, error) {
	// 先加载.env文件（不存在时静默忽略），让环境变量覆盖生效
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// 可以添加多个路径，Viper会按顺序查找
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// 允许通过环境变量覆盖配置，例如 SERVER_ADDRESS=:9090
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 未提供配置文件时使用内置默认值
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.redis.address", "localhost:6379")
	v.SetDefault("database.sqlite.path", "wheel.db")
	v.SetDefault("wheel.minLevel", 50)
	v.SetDefault("wheel.pointsPerLevel", 1)
	v.SetDefault("wheel.saveRetryPasses", 3)
	v.SetDefault("wheel.tickIntervalMs", 1000)

	if err := v.ReadInConfig(); err != nil {
		// 配置文件缺失不是致命错误，默认值足以启动
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	Cfg = &cfg

	return Cfg, nil
}
