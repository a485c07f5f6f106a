package testutil

import (
	"context"
	"time"
)

type MockRedisClient struct {
	SetNXFunc func(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	DelFunc   func(ctx context.Context, key string) error
}

func (m *MockRedisClient) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if m.SetNXFunc != nil {
		return m.SetNXFunc(ctx, key, value, ttl)
	}

	return true, nil
}

func (m *MockRedisClient) Del(ctx context.Context, key string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key)
	}

	return nil
}

func (m *MockRedisClient) Close() error {
	return nil
}

// MemoryRedisClient keeps keys in memory and ignores their ttl.
type MemoryRedisClient struct {
	keys map[string]string
}

func NewMemoryRedisClient() *MemoryRedisClient {
	return &MemoryRedisClient{keys: map[string]string{}}
}

func (m *MemoryRedisClient) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if _, ok := m.keys[key]; ok {
		return false, nil
	}

	m.keys[key] = value
	return true, nil
}

func (m *MemoryRedisClient) Del(ctx context.Context, key string) error {
	delete(m.keys, key)
	return nil
}

func (m *MemoryRedisClient) Close() error {
	return nil
}
