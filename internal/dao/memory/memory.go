// Package memory 提供 Repository 接口的内存实现
// 用于 storageConfig.driver = "memory" 的本地运行以及服务层测试
package memory

import (
	"cine_social_server/internal/dao/mysql/repository"
)

// NewRepositories 创建一组互相独立的内存 Repository
func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		Relationship: NewRelationshipRepository(),
		User:         NewUserRepository(),
		Watchlist:    NewWatchlistRepository(),
	}
}
