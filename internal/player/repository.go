package player

import (
	"sync"
)

// 会话注册表：uuid → 在线会话。
// 注册表自身的读写经registryMu保护，会话内部状态另由会话锁串行化。
var (
	registryMu sync.RWMutex
	sessions   = make(map[string]*Session)
)

// GetSession 返回指定玩家的在线会话，不在线时返回nil。
func GetSession(uuid string) *Session {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return sessions[uuid]
}

// registerSession 把会话加入注册表。加入之后会话才对
// HTTP请求和后台循环可见，因此登录时的加载先于注册完成。
func registerSession(s *Session) {
	registryMu.Lock()
	defer registryMu.Unlock()
	sessions[s.record.UUID] = s
}

// deregisterSession 把会话移出注册表。
// 移除之后后台循环不再触达该会话，登出保存得以独占写入。
func deregisterSession(uuid string) *Session {
	registryMu.Lock()
	defer registryMu.Unlock()
	s := sessions[uuid]
	delete(sessions, uuid)
	return s
}

// snapshotSessions 返回当前在线会话的切片快照。
// 后台循环在快照上迭代，避免迭代期间持有注册表锁。
func snapshotSessions() []*Session {
	registryMu.RLock()
	defer registryMu.RUnlock()
	snapshot := make([]*Session, 0, len(sessions))
	for _, s := range sessions {
		snapshot = append(snapshot, s)
	}
	return snapshot
}

// OnlineCount 返回当前在线会话数。
func OnlineCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(sessions)
}
