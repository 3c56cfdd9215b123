// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"time"

	"cine_social_server/internal/config"
	"cine_social_server/internal/dao/mysql/repository"
	myredis "cine_social_server/internal/dao/redis"
	"cine_social_server/internal/infrastructure/catalog"
	"cine_social_server/internal/service/friendship"
	"cine_social_server/internal/service/recommend"
	"cine_social_server/internal/service/watchlist"
)

// Services 聚合所有 Service 实例
type Services struct {
	Friendship FriendshipService
	Recommend  RecommendService
}

// Deps 构造 Services 所需的外部依赖
// Cache 与 Catalog 可为 nil：前者关闭缓存，后者关闭影片信息装饰
type Deps struct {
	Repos     *repository.Repositories
	Cache     myredis.AsyncCacheService
	Catalog   catalog.MetadataService
	Recommend config.RecommendConfig
}

// NewServices 创建并注入所有 Service 实例
// 推荐引擎通过好友服务读取好友列表，与接口层看到的好友列表一致
func NewServices(deps Deps) *Services {
	friendSvc := friendship.NewFriendshipService(deps.Repos, deps.Cache)

	snapshots := watchlist.NewProvider(
		deps.Repos.Watchlist,
		time.Duration(deps.Recommend.SnapshotTimeoutMillis)*time.Millisecond,
	)
	engine := recommend.NewEngine(friendSvc, snapshots, deps.Recommend.MaxFanout)

	var cache myredis.CacheService
	if deps.Cache != nil {
		cache = deps.Cache
	}
	return &Services{
		Friendship: friendSvc,
		Recommend:  recommend.NewRecommendService(engine, cache, deps.Catalog, deps.Recommend),
	}
}
