package api

import (
	"github.com/SlpAus/destiny-wheel-backend/internal/gem"
	"github.com/SlpAus/destiny-wheel-backend/internal/player"
	"github.com/SlpAus/destiny-wheel-backend/internal/wheel"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	// 轮盘和宝石处理器通过解析函数取得当前玩家的引擎，
	// 两个解析器都建立在玩家会话中间件之上
	resolveWheel := func(c *gin.Context) *wheel.PlayerWheel {
		session := player.SessionFromContext(c)
		if session == nil {
			return nil
		}
		return session.Wheel()
	}
	resolveGemEngine := func(c *gin.Context) gem.Engine {
		engine := resolveWheel(c)
		if engine == nil {
			return nil
		}
		return engine
	}

	api := router.Group("/api")
	api.Use(player.SessionMiddleware())
	{
		// 玩家会话相关的路由
		player.RegisterRoutes(api.Group("/player"))

		// 轮盘窗口相关的路由
		wheelRoutes := api.Group("/wheel")
		wheel.RegisterRoutes(wheelRoutes, resolveWheel)

		// 宝石相关的路由
		gem.RegisterRoutes(wheelRoutes.Group("/gems"), resolveGemEngine)
	}
}
