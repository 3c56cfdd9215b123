package repository

import (
	"context"
	"time"

	"cine_social_server/internal/model"
	"cine_social_server/pkg/errorx"
	"cine_social_server/pkg/util/random"

	"gorm.io/gorm"
)

type relationshipRepository struct {
	db *gorm.DB
}

// NewRelationshipRepository 创建好友关系 Repository
// 用户对唯一性依赖 relationship.pair_key 上的唯一索引
func NewRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &relationshipRepository{db: db}
}

func (r *relationshipRepository) FindByUuid(ctx context.Context, uuid string) (*model.Relationship, error) {
	var rel model.Relationship
	if err := r.db.WithContext(ctx).First(&rel, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询好友关系 uuid=%s", uuid)
	}
	return &rel, nil
}

func (r *relationshipRepository) FindByPair(ctx context.Context, a, b string) (*model.Relationship, error) {
	var rel model.Relationship
	if err := r.db.WithContext(ctx).First(&rel, "pair_key = ?", model.PairKey(a, b)).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询好友关系 %s-%s", a, b)
	}
	return &rel, nil
}

func (r *relationshipRepository) Create(ctx context.Context, requesterId, recipientId string) (*model.Relationship, error) {
	if requesterId == recipientId {
		return nil, errorx.ErrInvalidPair
	}
	rel := &model.Relationship{
		Uuid:        "R" + random.GetNowAndLenRandomString(11),
		RequesterId: requesterId,
		RecipientId: recipientId,
		PairKey:     model.PairKey(requesterId, recipientId),
		Status:      model.StatusPending,
	}
	// 并发的 create(A,B) 与 create(B,A) 由唯一索引裁决，后到者得到 ErrDuplicatedKey
	if err := r.db.WithContext(ctx).Create(rel).Error; err != nil {
		return nil, wrapDBErrorf(err, "创建好友关系 %s->%s", requesterId, recipientId)
	}
	return rel, nil
}

// SetStatus 以读到的状态作为更新条件，读写之间记录被删除或被改动时不会覆盖
func (r *relationshipRepository) SetStatus(ctx context.Context, uuid string, status model.RelationshipStatus) (*model.Relationship, error) {
	if !status.Valid() {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "未知的关系状态 %q", status)
	}
	rel, err := r.FindByUuid(ctx, uuid)
	if err != nil {
		return nil, err
	}
	return r.TransitionStatus(ctx, uuid, rel.Status, status)
}

func (r *relationshipRepository) TransitionStatus(ctx context.Context, uuid string, from, to model.RelationshipStatus) (*model.Relationship, error) {
	if !to.Valid() {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "未知的关系状态 %q", to)
	}
	now := time.Now()
	updates := map[string]any{"status": to, "updated_at": now}
	if to == model.StatusAccepted {
		// accepted_at 只在第一次进入 accepted 时写入
		updates["accepted_at"] = gorm.Expr("COALESCE(accepted_at, ?)", now)
	}
	res := r.db.WithContext(ctx).Model(&model.Relationship{}).
		Where("uuid = ? AND status = ?", uuid, from).
		Updates(updates)
	if res.Error != nil {
		return nil, wrapDBErrorf(res.Error, "更新好友关系状态 uuid=%s", uuid)
	}

	rel, err := r.FindByUuid(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		// MySQL 对值未变化的行返回 0，from == to 且状态一致时按成功处理
		if from == to && rel.Status == to {
			return rel, nil
		}
		return nil, errorx.Wrapf(errorx.ErrInvalidState, errorx.CodeInvalidState,
			"好友关系 uuid=%s 当前状态为 %s，期望 %s", uuid, rel.Status, from)
	}
	return rel, nil
}

func (r *relationshipRepository) Delete(ctx context.Context, uuid string) error {
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).Delete(&model.Relationship{}).Error; err != nil {
		return wrapDBErrorf(err, "删除好友关系 uuid=%s", uuid)
	}
	return nil
}

func (r *relationshipRepository) DeleteInStatus(ctx context.Context, uuid string, status model.RelationshipStatus) error {
	res := r.db.WithContext(ctx).Where("uuid = ? AND status = ?", uuid, status).Delete(&model.Relationship{})
	if res.Error != nil {
		return wrapDBErrorf(res.Error, "删除好友关系 uuid=%s", uuid)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	rel, err := r.FindByUuid(ctx, uuid)
	if err != nil {
		return err
	}
	return errorx.Wrapf(errorx.ErrInvalidState, errorx.CodeInvalidState,
		"好友关系 uuid=%s 当前状态为 %s，期望 %s", uuid, rel.Status, status)
}

func (r *relationshipRepository) ListAccepted(ctx context.Context, userId string) ([]model.Relationship, error) {
	var rels []model.Relationship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? OR recipient_id = ?) AND status = ?", userId, userId, model.StatusAccepted).
		Order("accepted_at ASC").Order("id ASC").
		Find(&rels).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询好友列表 user_id=%s", userId)
	}
	return rels, nil
}

func (r *relationshipRepository) ListPending(ctx context.Context, userId string, direction model.PendingDirection) ([]model.Relationship, error) {
	column := "recipient_id"
	if direction == model.PendingSent {
		column = "requester_id"
	}
	var rels []model.Relationship
	err := r.db.WithContext(ctx).
		Where(column+" = ? AND status = ?", userId, model.StatusPending).
		Order("created_at DESC").Order("id DESC").
		Find(&rels).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询待处理申请 user_id=%s direction=%s", userId, direction)
	}
	return rels, nil
}

func (r *relationshipRepository) CountAccepted(ctx context.Context, userId string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Relationship{}).
		Where("(requester_id = ? OR recipient_id = ?) AND status = ?", userId, userId, model.StatusAccepted).
		Count(&count).Error
	if err != nil {
		return 0, wrapDBErrorf(err, "统计好友数 user_id=%s", userId)
	}
	return count, nil
}
