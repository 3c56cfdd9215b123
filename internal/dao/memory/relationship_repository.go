package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"cine_social_server/internal/dao/mysql/repository"
	"cine_social_server/internal/model"
	"cine_social_server/pkg/errorx"
	"cine_social_server/pkg/util/random"
)

// RelationshipRepository 内存版好友关系存储
// 所有读写在同一把锁下完成，Create 的“检查用户对 + 写入”因此是原子的
type RelationshipRepository struct {
	mu     sync.RWMutex
	nextId uint
	byUuid map[string]*model.Relationship
	byPair map[string]string // pair_key -> uuid
	now    func() time.Time
}

var _ repository.RelationshipRepository = (*RelationshipRepository)(nil)

func NewRelationshipRepository() *RelationshipRepository {
	return &RelationshipRepository{
		byUuid: make(map[string]*model.Relationship),
		byPair: make(map[string]string),
		now:    time.Now,
	}
}

func notFound(format string, args ...any) error {
	return errorx.Wrapf(errorx.ErrNotFound, errorx.CodeNotFound, format, args...)
}

func copyRelationship(r *model.Relationship) *model.Relationship {
	c := *r
	if r.AcceptedAt != nil {
		t := *r.AcceptedAt
		c.AcceptedAt = &t
	}
	return &c
}

func (r *RelationshipRepository) FindByUuid(_ context.Context, uuid string) (*model.Relationship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rel, ok := r.byUuid[uuid]
	if !ok {
		return nil, notFound("查询好友关系 uuid=%s", uuid)
	}
	return copyRelationship(rel), nil
}

func (r *RelationshipRepository) FindByPair(_ context.Context, a, b string) (*model.Relationship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	uuid, ok := r.byPair[model.PairKey(a, b)]
	if !ok {
		return nil, notFound("查询好友关系 %s-%s", a, b)
	}
	return copyRelationship(r.byUuid[uuid]), nil
}

func (r *RelationshipRepository) Create(_ context.Context, requesterId, recipientId string) (*model.Relationship, error) {
	if requesterId == recipientId {
		return nil, errorx.ErrInvalidPair
	}
	key := model.PairKey(requesterId, recipientId)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byPair[key]; exists {
		return nil, errorx.Wrapf(errorx.ErrDuplicateRelationship, errorx.CodeDuplicateRelationship,
			"创建好友关系 %s->%s", requesterId, recipientId)
	}

	r.nextId++
	now := r.now()
	rel := &model.Relationship{
		Id:          r.nextId,
		Uuid:        "R" + random.GetNowAndLenRandomString(11),
		RequesterId: requesterId,
		RecipientId: recipientId,
		PairKey:     key,
		Status:      model.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.byUuid[rel.Uuid] = rel
	r.byPair[key] = rel.Uuid
	return copyRelationship(rel), nil
}

func (r *RelationshipRepository) SetStatus(_ context.Context, uuid string, status model.RelationshipStatus) (*model.Relationship, error) {
	if !status.Valid() {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "未知的关系状态 %q", status)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rel, ok := r.byUuid[uuid]
	if !ok {
		return nil, notFound("更新好友关系状态 uuid=%s", uuid)
	}
	now := r.now()
	rel.Status = status
	rel.UpdatedAt = now
	if status == model.StatusAccepted && rel.AcceptedAt == nil {
		rel.AcceptedAt = &now
	}
	return copyRelationship(rel), nil
}

func (r *RelationshipRepository) TransitionStatus(_ context.Context, uuid string, from, to model.RelationshipStatus) (*model.Relationship, error) {
	if !to.Valid() {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "未知的关系状态 %q", to)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rel, ok := r.byUuid[uuid]
	if !ok {
		return nil, notFound("更新好友关系状态 uuid=%s", uuid)
	}
	if rel.Status != from {
		return nil, invalidState(uuid, rel.Status, from)
	}
	now := r.now()
	rel.Status = to
	rel.UpdatedAt = now
	if to == model.StatusAccepted && rel.AcceptedAt == nil {
		rel.AcceptedAt = &now
	}
	return copyRelationship(rel), nil
}

func invalidState(uuid string, current, want model.RelationshipStatus) error {
	return errorx.Wrapf(errorx.ErrInvalidState, errorx.CodeInvalidState,
		"好友关系 uuid=%s 当前状态为 %s，期望 %s", uuid, current, want)
}

func (r *RelationshipRepository) DeleteInStatus(_ context.Context, uuid string, status model.RelationshipStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rel, ok := r.byUuid[uuid]
	if !ok {
		return notFound("删除好友关系 uuid=%s", uuid)
	}
	if rel.Status != status {
		return invalidState(uuid, rel.Status, status)
	}
	delete(r.byPair, rel.PairKey)
	delete(r.byUuid, uuid)
	return nil
}

func (r *RelationshipRepository) Delete(_ context.Context, uuid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rel, ok := r.byUuid[uuid]; ok {
		delete(r.byPair, rel.PairKey)
		delete(r.byUuid, uuid)
	}
	return nil
}

// collect 在读锁下筛选并复制记录
func (r *RelationshipRepository) collect(match func(*model.Relationship) bool) []model.Relationship {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Relationship
	for _, rel := range r.byUuid {
		if match(rel) {
			out = append(out, *copyRelationship(rel))
		}
	}
	return out
}

func (r *RelationshipRepository) ListAccepted(_ context.Context, userId string) ([]model.Relationship, error) {
	rels := r.collect(func(rel *model.Relationship) bool {
		return rel.Status == model.StatusAccepted && rel.Involves(userId)
	})
	sort.Slice(rels, func(i, j int) bool {
		ai, aj := rels[i].AcceptedAt, rels[j].AcceptedAt
		if ai != nil && aj != nil && !ai.Equal(*aj) {
			return ai.Before(*aj)
		}
		return rels[i].Id < rels[j].Id
	})
	return rels, nil
}

func (r *RelationshipRepository) ListPending(_ context.Context, userId string, direction model.PendingDirection) ([]model.Relationship, error) {
	rels := r.collect(func(rel *model.Relationship) bool {
		if rel.Status != model.StatusPending {
			return false
		}
		if direction == model.PendingSent {
			return rel.RequesterId == userId
		}
		return rel.RecipientId == userId
	})
	sort.Slice(rels, func(i, j int) bool {
		if !rels[i].CreatedAt.Equal(rels[j].CreatedAt) {
			return rels[i].CreatedAt.After(rels[j].CreatedAt)
		}
		return rels[i].Id > rels[j].Id
	})
	return rels, nil
}

func (r *RelationshipRepository) CountAccepted(_ context.Context, userId string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, rel := range r.byUuid {
		if rel.Status == model.StatusAccepted && rel.Involves(userId) {
			count++
		}
	}
	return count, nil
}
