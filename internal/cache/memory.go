package cache

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore 进程内缓存后端，用于测试替身或无 Redis 的降级部署。
type MemoryStore struct {
	mu     sync.RWMutex
	kv     map[string]string
	hashes map[string]map[string]string
}

// NewMemoryStore 创建内存缓存后端
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		kv:     make(map[string]string),
		hashes: make(map[string]map[string]string),
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.kv[key]
	if !ok {
		return "", ErrMiss
	}
	return value, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv[key] = value
	return nil
}

func (m *MemoryStore) HashGetAll(_ context.Context, key string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fields, ok := m.hashes[key]
	if !ok || len(fields) == 0 {
		return nil, ErrMiss
	}
	copied := make(map[string]string, len(fields))
	for field, value := range fields {
		copied[field] = value
	}
	return copied, nil
}

func (m *MemoryStore) HashSetAll(_ context.Context, key string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	hash, ok := m.hashes[key]
	if !ok {
		hash = make(map[string]string, len(fields))
		m.hashes[key] = hash
	}
	for field, value := range fields {
		hash[field] = toString(value)
	}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.kv, key)
	delete(m.hashes, key)
	return nil
}

func toString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
