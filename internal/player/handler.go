package player

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Vocation uint8  `json:"vocation"`
	Level    uint32 `json:"level"`
}

type combatRequestBody struct {
	InCombat        *bool `json:"inCombat" binding:"required"`
	NearbyCreatures int   `json:"nearbyCreatures"`
}

// RegisterRoutes 注册玩家会话相关的API路由。
func RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", loginHandler)
	rg.POST("/logout", logoutHandler)
	rg.POST("/combat", combatHandler)
}

func loginHandler(c *gin.Context) {
	var body loginRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	session, err := Login(body.Name, body.Vocation, body.Level)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "登录失败: " + err.Error()})
		return
	}

	// Cookie有效期一天，HttpOnly防止脚本读取
	c.SetCookie(CookieName, session.UUID(), 3600*24, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"uuid":  session.UUID(),
		"level": session.Level(),
		"bones": session.Bones(),
	})
}

func logoutHandler(c *gin.Context) {
	session := SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "玩家未登录"})
		return
	}

	failed := Logout(session)
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"unsavedSlots": failed})
}

func combatHandler(c *gin.Context) {
	session := SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "玩家未登录"})
		return
	}

	var body combatRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	session.SetCombatState(*body.InCombat, body.NearbyCreatures)
	c.JSON(http.StatusOK, gin.H{"inCombat": session.InCombat()})
}
