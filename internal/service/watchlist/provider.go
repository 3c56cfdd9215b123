// Package watchlist 提供片单快照读取，推荐引擎只通过这里读片单
package watchlist

import (
	"context"
	"time"

	"cine_social_server/internal/dao/mysql/repository"
	"cine_social_server/pkg/errorx"
)

// SnapshotProvider 读取用户当前片单（影片 id，按加入顺序）
// 任何失败（包括超时）都以 CodeUnavailable 返回
type SnapshotProvider interface {
	Get(ctx context.Context, userId string) ([]int64, error)
}

type repositoryProvider struct {
	repo    repository.WatchlistRepository
	timeout time.Duration
}

// NewProvider 基于片单 Repository 的实现，每次读取受 timeout 约束
func NewProvider(repo repository.WatchlistRepository, timeout time.Duration) SnapshotProvider {
	return &repositoryProvider{repo: repo, timeout: timeout}
}

func (p *repositoryProvider) Get(ctx context.Context, userId string) ([]int64, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	ids, err := p.repo.ListItemIds(ctx, userId)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, errorx.Wrapf(err, errorx.CodeUnavailable, "读取片单 user_id=%s", userId)
	}
	return ids, nil
}
