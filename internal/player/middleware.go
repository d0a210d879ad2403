package player

import (
	"github.com/gin-gonic/gin"
)

const (
	// sessionContextKey 是会话在gin上下文中的键。
	sessionContextKey = "playerSession"
	// CookieName 是携带玩家uuid的Cookie名。
	CookieName = "player_uuid"
)

// SessionMiddleware 从Cookie解析玩家会话并在请求期间持有会话锁。
// 持锁保证同一会话的请求与周期循环互斥，引擎始终单访问者。
// 未登录的请求原样放行，由各处理器自行拒绝。
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		playerUUID, err := c.Cookie(CookieName)
		if err != nil || playerUUID == "" {
			c.Next()
			return
		}

		session := GetSession(playerUUID)
		if session == nil {
			c.Next()
			return
		}

		session.mu.Lock()
		c.Set(sessionContextKey, session)
		c.Next()
		session.mu.Unlock()
	}
}

// SessionFromContext 返回请求绑定的会话，未登录时返回nil。
func SessionFromContext(c *gin.Context) *Session {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return nil
	}
	session, ok := value.(*Session)
	if !ok {
		return nil
	}
	return session
}
