// Package repository 定义数据访问层接口和聚合结构，并提供基于 GORM 的实现
// 内存实现见 internal/dao/memory，两者满足同一组接口
package repository

import (
	"context"

	"cine_social_server/internal/model"

	"gorm.io/gorm"
)

// RelationshipRepository 好友关系存储
// 同一对用户（不分方向）至多一条记录，Create 的唯一性检查与写入是原子的
type RelationshipRepository interface {
	// FindByUuid 按关系 id 查找，不存在返回 CodeNotFound
	FindByUuid(ctx context.Context, uuid string) (*model.Relationship, error)
	// FindByPair 按无序用户对查找，不存在返回 CodeNotFound
	FindByPair(ctx context.Context, a, b string) (*model.Relationship, error)
	// Create 写入一条 pending 关系
	// 双方相同返回 CodeInvalidPair，该用户对已有记录返回 CodeDuplicateRelationship
	Create(ctx context.Context, requesterId, recipientId string) (*model.Relationship, error)
	// SetStatus 修改状态；首次进入 accepted 时写入 accepted_at，之后不再改动
	SetStatus(ctx context.Context, uuid string, status model.RelationshipStatus) (*model.Relationship, error)
	// TransitionStatus 仅当当前状态为 from 时改为 to，返回更新后的记录
	// 记录不存在返回 CodeNotFound，状态不是 from 返回 CodeInvalidState
	TransitionStatus(ctx context.Context, uuid string, from, to model.RelationshipStatus) (*model.Relationship, error)
	// Delete 物理删除，记录不存在视为成功
	Delete(ctx context.Context, uuid string) error
	// DeleteInStatus 仅当当前状态为 status 时删除
	// 记录不存在返回 CodeNotFound，状态不符返回 CodeInvalidState
	DeleteInStatus(ctx context.Context, uuid string, status model.RelationshipStatus) error
	// ListAccepted 用户参与的 accepted 关系，按 accepted_at 升序
	ListAccepted(ctx context.Context, userId string) ([]model.Relationship, error)
	// ListPending 用户收到或发出的 pending 关系，按创建时间倒序
	ListPending(ctx context.Context, userId string, direction model.PendingDirection) ([]model.Relationship, error)
	// CountAccepted 用户当前的好友数
	CountAccepted(ctx context.Context, userId string) (int64, error)
}

// UserRepository 用户资料访问接口
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户，不存在返回 CodeNotFound
	FindByUuid(ctx context.Context, uuid string) (*model.UserInfo, error)
	// FindByUuids 批量查找，不存在的 UUID 直接忽略
	FindByUuids(ctx context.Context, uuids []string) ([]model.UserInfo, error)
	// Create 创建用户资料
	Create(ctx context.Context, user *model.UserInfo) error
	// UpdateFriendsCount 覆盖写入好友数
	UpdateFriendsCount(ctx context.Context, uuid string, count int64) error
}

// WatchlistRepository 片单访问接口
type WatchlistRepository interface {
	// ListItemIds 用户片单中的影片 id，按加入时间升序
	ListItemIds(ctx context.Context, userId string) ([]int64, error)
	// Add 向片单加入影片，重复加入忽略
	Add(ctx context.Context, userId string, itemId int64) error
}

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	Relationship RelationshipRepository
	User         UserRepository
	Watchlist    WatchlistRepository
}

// NewRepositories 基于 GORM 创建所有 Repository 实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Relationship: NewRelationshipRepository(db),
		User:         NewUserRepository(db),
		Watchlist:    NewWatchlistRepository(db),
	}
}
