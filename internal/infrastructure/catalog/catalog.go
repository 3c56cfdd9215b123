// Package catalog 查询影片元数据（片名、海报、评分），用于装饰推荐结果
// 推荐本身只依赖影片 id，元数据缺失不影响结果
package catalog

import (
	"context"
	"time"

	"cine_social_server/internal/config"
	myredis "cine_social_server/internal/dao/redis"
)

// Metadata 影片元数据
type Metadata struct {
	ItemId     int64   `json:"item_id"`
	Title      string  `json:"title"`
	PosterPath string  `json:"poster_path"`
	Rating     float64 `json:"rating"`
}

// MetadataService 影片元数据查询接口
type MetadataService interface {
	// GetMetadata 影片不存在返回 CodeNotFound，外部服务异常返回 CodeUnavailable
	GetMetadata(ctx context.Context, itemId int64) (*Metadata, error)
}

// NewService 按配置组装：TMDB 客户端 + 熔断 + 限流，外层套 Redis 缓存
// apiKey 为空时返回 nil，调用方不做装饰
func NewService(conf *config.CatalogConfig, cache myredis.CacheService) MetadataService {
	if conf.APIKey == "" {
		return nil
	}
	var svc MetadataService = NewTMDBClient(conf.BaseURL, conf.APIKey, time.Duration(conf.TimeoutSeconds)*time.Second)
	if cache != nil {
		svc = NewCachedService(svc, cache, time.Duration(conf.CacheTTLMinutes)*time.Minute)
	}
	return svc
}
