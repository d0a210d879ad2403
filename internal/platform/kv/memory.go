package kv

import "sync"

// memoryStore 是Store接口的进程内实现，用于测试和单机开发。
// 所有命名空间共享同一个底层map与锁，Scoped只是改变前缀。
type memoryStore struct {
	mu     *sync.RWMutex
	data   map[string]map[string]Value
	prefix string
}

// NewMemoryStore 创建一个空的内存存储。
func NewMemoryStore() Store {
	return &memoryStore{
		mu:   &sync.RWMutex{},
		data: make(map[string]map[string]Value),
	}
}

func (s *memoryStore) Scoped(namespace string) Store {
	return &memoryStore{
		mu:     s.mu,
		data:   s.data,
		prefix: s.prefix + ":" + namespace,
	}
}

func (s *memoryStore) Get(key string) (Value, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ns, ok := s.data[s.prefix]
	if !ok {
		return nil, false, nil
	}
	value, ok := ns[key]
	if !ok {
		return nil, false, nil
	}
	return value, true, nil
}

func (s *memoryStore) Set(key string, value Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.data[s.prefix]
	if !ok {
		ns = make(map[string]Value)
		s.data[s.prefix] = ns
	}
	ns[key] = value
	return nil
}

func (s *memoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ns, ok := s.data[s.prefix]; ok {
		delete(ns, key)
	}
	return nil
}

func (s *memoryStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ns, ok := s.data[s.prefix]
	if !ok {
		return nil, nil
	}
	keys := make([]string, 0, len(ns))
	for key := range ns {
		keys = append(keys, key)
	}
	return keys, nil
}
