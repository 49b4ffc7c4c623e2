package testutil

import (
	"context"
	"errors"
	"time"
)

type MockRedisClient struct {
	DelFunc    func(ctx context.Context, key ...string) error
	KeysFunc   func(ctx context.Context, pattern string) ([]string, error)
	SetObjFunc func(ctx context.Context, key string, obj any, ttl time.Duration) error
	GetObjFunc func(ctx context.Context, key string, v any) error
}

func (m *MockRedisClient) Del(ctx context.Context, key ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key...)
	}

	return nil
}

func (m *MockRedisClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	if m.KeysFunc != nil {
		return m.KeysFunc(ctx, pattern)
	}

	return nil, nil
}

func (m *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	if m.SetObjFunc != nil {
		return m.SetObjFunc(ctx, key, obj, ttl)
	}

	return nil
}

func (m *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	if m.GetObjFunc != nil {
		return m.GetObjFunc(ctx, key, v)
	}

	return errors.New("not found")
}
