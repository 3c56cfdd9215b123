package recommend

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"cine_social_server/internal/config"
	myredis "cine_social_server/internal/dao/redis"
	"cine_social_server/internal/dto/respond"
	"cine_social_server/internal/infrastructure/catalog"
	"cine_social_server/pkg/errorx"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const decorateConcurrency = 8

type recommendService struct {
	engine  *Engine
	cache   myredis.CacheService    // 可为 nil
	catalog catalog.MetadataService // 可为 nil
	conf    config.RecommendConfig
}

// NewRecommendService 在引擎外层加上 limit 校正、结果缓存和影片信息装饰
func NewRecommendService(engine *Engine, cache myredis.CacheService, md catalog.MetadataService, conf config.RecommendConfig) *recommendService {
	return &recommendService{engine: engine, cache: cache, catalog: md, conf: conf}
}

func (s *recommendService) clampLimit(limit int) int {
	if limit <= 0 && s.conf.DefaultLimit > 0 {
		limit = s.conf.DefaultLimit
	}
	if s.conf.MaxLimit > 0 && limit > s.conf.MaxLimit {
		limit = s.conf.MaxLimit
	}
	return ClampLimit(limit)
}

// Recommend 返回用户的推荐列表
func (s *recommendService) Recommend(ctx context.Context, userId string, limit int) (*respond.RecommendRespond, error) {
	limit = s.clampLimit(limit)

	// 版本号在计算前读取，计算期间好友关系变了，结果只会写进已经过期的版本
	version, cacheable := s.cacheVersion(ctx, userId)
	key := myredis.RecommendKey(userId, version, limit)
	if cacheable {
		if cached := s.readCache(ctx, key); cached != nil {
			return cached, nil
		}
	}

	rsp, err := s.engine.Recommend(ctx, userId, limit)
	if err != nil {
		return nil, err
	}
	s.decorate(ctx, rsp.Items)
	if cacheable {
		s.writeCache(ctx, key, rsp)
	}
	return rsp, nil
}

// cacheVersion 读取用户推荐结果的版本号，不存在视为 0
// 读不到版本号时本次请求不走缓存
func (s *recommendService) cacheVersion(ctx context.Context, userId string) (int64, bool) {
	if s.cache == nil || s.cacheTTL() <= 0 {
		return 0, false
	}
	verKey := myredis.RecommendVersionKey(userId)
	raw, err := s.cache.Get(ctx, verKey)
	if err != nil {
		zap.L().Warn("recommend cache version get failed", zap.String("key", verKey), zap.Error(err))
		return 0, false
	}
	if raw == "" {
		return 0, true
	}
	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		zap.L().Warn("recommend cache version corrupted", zap.String("key", verKey), zap.String("value", raw))
		return 0, false
	}
	return version, true
}

func (s *recommendService) cacheTTL() time.Duration {
	return time.Duration(s.conf.CacheTTLSeconds) * time.Second
}

func (s *recommendService) readCache(ctx context.Context, key string) *respond.RecommendRespond {
	if s.cache == nil || s.cacheTTL() <= 0 {
		return nil
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		zap.L().Warn("recommend cache get failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	if raw == "" {
		return nil
	}
	var rsp respond.RecommendRespond
	if err := json.Unmarshal([]byte(raw), &rsp); err != nil {
		zap.L().Warn("recommend cache corrupted", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &rsp
}

func (s *recommendService) writeCache(ctx context.Context, key string, rsp *respond.RecommendRespond) {
	if s.cache == nil || s.cacheTTL() <= 0 {
		return
	}
	raw, err := json.Marshal(rsp)
	if err != nil {
		zap.L().Error("marshal recommend result failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL()); err != nil {
		zap.L().Warn("recommend cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// decorate 并发补齐片名、海报和评分，查询失败的条目保持原样
func (s *recommendService) decorate(ctx context.Context, items []respond.RecommendItemRespond) {
	if s.catalog == nil || len(items) == 0 {
		return
	}
	var g errgroup.Group
	g.SetLimit(decorateConcurrency)
	for i := range items {
		i := i
		g.Go(func() error {
			md, err := s.catalog.GetMetadata(ctx, items[i].ItemId)
			if err != nil {
				if !errorx.IsNotFound(err) {
					zap.L().Warn("catalog metadata unavailable", zap.Int64("item_id", items[i].ItemId), zap.Error(err))
				}
				return nil
			}
			items[i].Title = md.Title
			items[i].PosterPath = md.PosterPath
			items[i].Rating = md.Rating
			return nil
		})
	}
	_ = g.Wait()
}
