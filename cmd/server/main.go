package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/destiny-wheel-backend/api"
	"github.com/SlpAus/destiny-wheel-backend/internal/platform/config"
	"github.com/SlpAus/destiny-wheel-backend/internal/platform/database"
	"github.com/SlpAus/destiny-wheel-backend/internal/platform/shutdown"
	"github.com/SlpAus/destiny-wheel-backend/internal/platform/startup"
	"github.com/SlpAus/destiny-wheel-backend/internal/player"
	"github.com/SlpAus/destiny-wheel-backend/pkg/lifecycle"
	"github.com/SlpAus/destiny-wheel-backend/pkg/token"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 加载配置并生成签名密钥
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("配置加载失败: %v", err))
	}
	token.GenerateSecretKey()

	// 2. 初始化数据库和Redis连接
	database.InitDB(cfg.Database.Sqlite)
	database.InitRedis(cfg.Database.Redis)

	// 3. 执行应用启动初始化流程
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 4. 创建生命周期管理器并启动后台服务
	gracefulManager := lifecycle.NewManager()
	forcefulManager := lifecycle.NewManager()

	go database.StartRedisHealthCheck()

	if err := player.StartWheelTicker(gracefulManager); err != nil {
		panic(fmt.Sprintf("无法启动轮盘周期循环: %v", err))
	}
	if err := player.StartSnapshotScheduler(gracefulManager); err != nil {
		panic(fmt.Sprintf("无法启动槽位快照循环: %v", err))
	}

	// 5. 装配HTTP服务器
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("服务器启动失败: " + err.Error())
		}
	}()

	// 6. 阻塞等待停机信号并编排优雅停机
	coordinator := shutdown.NewCoordinator(gracefulManager, forcefulManager)
	coordinator.ListenForSignalsAndShutdown(server)
}
