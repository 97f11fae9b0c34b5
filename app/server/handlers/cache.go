package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// cacheGet 尝试从缓存中取出 JSON 值，缓存不可用时按未命中处理
func (a *App) cacheGet(ctx context.Context, key string, target any) bool {
	cacheBytes, err := a.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			a.l.Error("failed to query cache", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err = json.Unmarshal(cacheBytes, target); err != nil {
		a.l.Error("failed to unmarshal cache", zap.String("key", key), zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
		// 可能是无效的缓存，清理掉
		a.rdb.Del(ctx, key)
		return false
	}

	return true
}

// cacheSet 格式化并加入缓存，方便下一次查询
func (a *App) cacheSet(ctx context.Context, key string, value any, expire time.Duration) {
	if cacheBytes, err := json.Marshal(value); err != nil {
		a.l.Error("failed to marshal cache", zap.String("key", key), zap.Error(err))
	} else {
		a.rdb.Set(ctx, key, cacheBytes, expire)
	}
}

// cacheDel 在相关数据变更后使缓存失效
func (a *App) cacheDel(ctx context.Context, keys ...string) {
	a.rdb.Del(ctx, keys...)
}
