package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisStore 是Store接口基于Redis Hash的实现。
// 每个命名空间对应一个Hash键，结构化值序列化为JSON后存入field。
type redisStore struct {
	rdb    *redis.Client
	ctx    context.Context
	prefix string
}

// NewRedisStore 创建一个以指定前缀为根命名空间的Redis存储。
// 前缀通常形如 "wheel:player:<uuid>"。
func NewRedisStore(ctx context.Context, rdb *redis.Client, prefix string) Store {
	return &redisStore{rdb: rdb, ctx: ctx, prefix: prefix}
}

func (s *redisStore) Scoped(namespace string) Store {
	return &redisStore{
		rdb:    s.rdb,
		ctx:    s.ctx,
		prefix: s.prefix + ":" + namespace,
	}
}

func (s *redisStore) Get(key string) (Value, bool, error) {
	raw, err := s.rdb.HGet(s.ctx, s.prefix, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("无法从Redis读取键 %s/%s: %w", s.prefix, key, err)
	}

	var value Value
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		// 损坏的值按缺失处理，由调用方返回哨兵对象
		return nil, false, nil
	}
	return value, true, nil
}

func (s *redisStore) Set(key string, value Value) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("无法序列化键 %s/%s 的值: %w", s.prefix, key, err)
	}
	if err := s.rdb.HSet(s.ctx, s.prefix, key, raw).Err(); err != nil {
		return fmt.Errorf("无法向Redis写入键 %s/%s: %w", s.prefix, key, err)
	}
	return nil
}

func (s *redisStore) Remove(key string) error {
	if err := s.rdb.HDel(s.ctx, s.prefix, key).Err(); err != nil {
		return fmt.Errorf("无法从Redis删除键 %s/%s: %w", s.prefix, key, err)
	}
	return nil
}

func (s *redisStore) Keys() ([]string, error) {
	keys, err := s.rdb.HKeys(s.ctx, s.prefix).Result()
	if err != nil {
		return nil, fmt.Errorf("无法列出命名空间 %s 的键: %w", s.prefix, err)
	}
	return keys, nil
}
