package catalog

import (
	"context"
	"encoding/json"
	"time"

	myredis "cine_social_server/internal/dao/redis"

	"go.uber.org/zap"
)

// CachedService 在 MetadataService 外层加 Redis 缓存
// 缓存读写失败只记日志，回源查询
type CachedService struct {
	next  MetadataService
	cache myredis.CacheService
	ttl   time.Duration
}

func NewCachedService(next MetadataService, cache myredis.CacheService, ttl time.Duration) *CachedService {
	return &CachedService{next: next, cache: cache, ttl: ttl}
}

func (s *CachedService) GetMetadata(ctx context.Context, itemId int64) (*Metadata, error) {
	key := myredis.CatalogKey(itemId)
	if raw, err := s.cache.Get(ctx, key); err != nil {
		zap.L().Warn("catalog cache get failed", zap.String("key", key), zap.Error(err))
	} else if raw != "" {
		var md Metadata
		if err := json.Unmarshal([]byte(raw), &md); err == nil {
			return &md, nil
		}
	}

	md, err := s.next.GetMetadata(ctx, itemId)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(md); err == nil {
		if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
			zap.L().Warn("catalog cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return md, nil
}
