package memory

import (
	"context"
	"sync"
	"time"

	"cine_social_server/internal/dao/mysql/repository"
	"cine_social_server/internal/model"
	"cine_social_server/pkg/errorx"
)

// UserRepository 内存版用户资料
type UserRepository struct {
	mu     sync.RWMutex
	nextId uint
	users  map[string]*model.UserInfo
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*model.UserInfo)}
}

func (r *UserRepository) FindByUuid(_ context.Context, uuid string) (*model.UserInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[uuid]
	if !ok {
		return nil, notFound("查询用户 uuid=%s", uuid)
	}
	c := *u
	return &c, nil
}

func (r *UserRepository) FindByUuids(_ context.Context, uuids []string) ([]model.UserInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.UserInfo, 0, len(uuids))
	for _, uuid := range uuids {
		if u, ok := r.users[uuid]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *UserRepository) Create(_ context.Context, user *model.UserInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Uuid]; exists {
		return errorx.Newf(errorx.CodeDBError, "创建用户: uuid=%s 已存在", user.Uuid)
	}
	r.nextId++
	user.Id = r.nextId
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	c := *user
	r.users[user.Uuid] = &c
	return nil
}

// UpdateFriendsCount 用户不存在时静默忽略，与 GORM 的 UPDATE 影响 0 行一致
func (r *UserRepository) UpdateFriendsCount(_ context.Context, uuid string, count int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[uuid]; ok {
		u.FriendsCount = int(count)
		u.UpdatedAt = time.Now()
	}
	return nil
}
