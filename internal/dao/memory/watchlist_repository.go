package memory

import (
	"context"
	"sync"

	"cine_social_server/internal/dao/mysql/repository"
)

// WatchlistRepository 内存版片单，切片顺序即加入顺序
type WatchlistRepository struct {
	mu    sync.RWMutex
	items map[string][]int64
}

var _ repository.WatchlistRepository = (*WatchlistRepository)(nil)

func NewWatchlistRepository() *WatchlistRepository {
	return &WatchlistRepository{items: make(map[string][]int64)}
}

func (r *WatchlistRepository) ListItemIds(_ context.Context, userId string) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]int64(nil), r.items[userId]...), nil
}

func (r *WatchlistRepository) Add(_ context.Context, userId string, itemId int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.items[userId] {
		if id == itemId {
			return nil
		}
	}
	r.items[userId] = append(r.items[userId], itemId)
	return nil
}
