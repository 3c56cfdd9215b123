package repository

import (
	"context"
	"time"

	"cine_social_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type watchlistRepository struct {
	db *gorm.DB
}

// NewWatchlistRepository 创建片单 Repository
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

func (r *watchlistRepository) ListItemIds(ctx context.Context, userId string) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&model.WatchlistItem{}).
		Where("user_id = ?", userId).
		Order("added_at ASC").Order("id ASC").
		Pluck("item_id", &ids).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询片单 user_id=%s", userId)
	}
	return ids, nil
}

func (r *watchlistRepository) Add(ctx context.Context, userId string, itemId int64) error {
	item := &model.WatchlistItem{UserId: userId, ItemId: itemId, AddedAt: time.Now()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(item).Error
	if err != nil {
		return wrapDBErrorf(err, "加入片单 user_id=%s item_id=%d", userId, itemId)
	}
	return nil
}
