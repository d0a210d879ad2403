package kv

// Value 是KV存储中的结构化值，以JSON格式持久化。
type Value = map[string]interface{}

// Store 是一个支持命名空间划分的键值存储能力接口。
// 查不到键不是错误：Get通过第二个返回值表示键是否存在，
// 调用方据此返回各自的哨兵对象。
type Store interface {
	// Scoped 返回一个限定在子命名空间下的存储视图。
	Scoped(namespace string) Store
	// Get 返回键对应的结构化值。键不存在时返回 (nil, false, nil)。
	Get(key string) (Value, bool, error)
	// Set 覆盖写入键对应的结构化值。
	Set(key string, value Value) error
	// Remove 删除键。键不存在时不是错误。
	Remove(key string) error
	// Keys 返回当前命名空间下的所有键，顺序不保证。
	Keys() ([]string, error)
}
