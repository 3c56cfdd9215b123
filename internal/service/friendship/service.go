// Package friendship 实现好友关系状态机：申请、同意、拒绝、删除以及列表查询
//
// 状态流转：
//
//	(无) --申请--> pending --同意--> accepted --删除--> (无)
//	pending --拒绝/删除--> (无)
//
// 拒绝即删除，被拒绝的用户可以立即重新申请。blocked 只读，本服务不写入。
package friendship

import (
	"context"
	"time"

	"cine_social_server/internal/dao/mysql/repository"
	myredis "cine_social_server/internal/dao/redis"
	"cine_social_server/internal/dto/respond"
	"cine_social_server/internal/model"
	"cine_social_server/pkg/constants"
	"cine_social_server/pkg/errorx"

	"go.uber.org/zap"
)

const timeLayout = "2006-01-02 15:04:05"

type friendshipService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService // 可为 nil
}

// NewFriendshipService 构造函数
// cache 用于在好友关系变化后异步清理双方的推荐缓存，为 nil 时跳过
func NewFriendshipService(repos *repository.Repositories, cache myredis.AsyncCacheService) *friendshipService {
	return &friendshipService{repos: repos, cache: cache}
}

// SendRequest 发送好友申请
func (s *friendshipService) SendRequest(ctx context.Context, requesterId, recipientId string) (*respond.RelationshipRespond, error) {
	if requesterId == recipientId {
		return nil, errorx.ErrSelfRequest
	}
	if _, err := s.repos.User.FindByUuid(ctx, recipientId); err != nil {
		return nil, err
	}

	existing, err := s.repos.Relationship.FindByPair(ctx, requesterId, recipientId)
	switch {
	case err == nil:
		return nil, existingRelationshipError(existing)
	case !errorx.IsNotFound(err):
		return nil, err
	}

	rel, err := s.repos.Relationship.Create(ctx, requesterId, recipientId)
	if err != nil {
		// 并发申请时由存储层裁决，这里原样返回 DuplicateRelationship
		return nil, err
	}
	return toRelationshipRespond(rel), nil
}

// existingRelationshipError 已有记录时给出具体原因，方便前端展示
func existingRelationshipError(rel *model.Relationship) error {
	switch rel.Status {
	case model.StatusAccepted:
		return errorx.ErrAlreadyFriends
	case model.StatusPending:
		return errorx.ErrRequestAlreadyPending
	case model.StatusBlocked:
		return errorx.ErrBlocked
	default:
		return errorx.ErrDuplicateRelationship
	}
}

// loadPendingForRecipient 同意/拒绝前的公共校验：存在、操作者是接收人、状态为 pending
func (s *friendshipService) loadPendingForRecipient(ctx context.Context, relationshipId, actingUserId string) (*model.Relationship, error) {
	rel, err := s.repos.Relationship.FindByUuid(ctx, relationshipId)
	if err != nil {
		return nil, err
	}
	if rel.RecipientId != actingUserId {
		return nil, errorx.ErrForbidden
	}
	if rel.Status != model.StatusPending {
		return nil, errorx.ErrInvalidState
	}
	return rel, nil
}

// AcceptRequest 同意好友申请，并按 accepted 关系重新计算双方好友数
func (s *friendshipService) AcceptRequest(ctx context.Context, relationshipId, actingUserId string) (*respond.RelationshipRespond, error) {
	rel, err := s.loadPendingForRecipient(ctx, relationshipId, actingUserId)
	if err != nil {
		return nil, err
	}
	// 以 pending 为条件更新，校验之后被并发删除或处理的申请不会被“同意”
	rel, err = s.repos.Relationship.TransitionStatus(ctx, rel.Uuid, model.StatusPending, model.StatusAccepted)
	if err != nil {
		return nil, err
	}

	s.recountFriends(ctx, rel.RequesterId, rel.RecipientId)
	s.invalidateRecommendations(rel.RequesterId, rel.RecipientId)
	return toRelationshipRespond(rel), nil
}

// RejectRequest 拒绝好友申请，直接删除记录
// pending 关系不计入好友数，无需重新计数
func (s *friendshipService) RejectRequest(ctx context.Context, relationshipId, actingUserId string) error {
	rel, err := s.loadPendingForRecipient(ctx, relationshipId, actingUserId)
	if err != nil {
		return err
	}
	return s.repos.Relationship.DeleteInStatus(ctx, rel.Uuid, model.StatusPending)
}

// RemoveFriendship 删除好友关系（任意状态），只重新计算操作者自己的好友数
// 对方的好友数在其下一次好友变更时重新计算，期间可能短暂偏大
func (s *friendshipService) RemoveFriendship(ctx context.Context, relationshipId, actingUserId string) error {
	rel, err := s.repos.Relationship.FindByUuid(ctx, relationshipId)
	if err != nil {
		return err
	}
	if !rel.Involves(actingUserId) {
		return errorx.ErrForbidden
	}
	if err := s.repos.Relationship.Delete(ctx, rel.Uuid); err != nil {
		return err
	}

	s.recountFriends(ctx, actingUserId)
	s.invalidateRecommendations(rel.RequesterId, rel.RecipientId)
	return nil
}

// ListFriends 好友列表，按成为好友的时间升序
func (s *friendshipService) ListFriends(ctx context.Context, userId string) ([]respond.FriendRespond, error) {
	rels, err := s.repos.Relationship.ListAccepted(ctx, userId)
	if err != nil {
		return nil, err
	}

	otherIds := make([]string, 0, len(rels))
	for i := range rels {
		otherIds = append(otherIds, rels[i].Other(userId))
	}
	profiles := s.loadProfiles(ctx, otherIds)

	friends := make([]respond.FriendRespond, 0, len(rels))
	for i := range rels {
		otherId := otherIds[i]
		friend := respond.FriendRespond{
			UserId:       otherId,
			Nickname:     profiles[otherId].Nickname,
			Avatar:       profiles[otherId].Avatar,
			FriendshipId: rels[i].Uuid,
		}
		if rels[i].AcceptedAt != nil {
			friend.FriendsSince = rels[i].AcceptedAt.Format(timeLayout)
		}
		friends = append(friends, friend)
	}
	return friends, nil
}

// ListPendingRequests 收到和发出的待处理申请
func (s *friendshipService) ListPendingRequests(ctx context.Context, userId string) (*respond.PendingRequestsRespond, error) {
	received, err := s.repos.Relationship.ListPending(ctx, userId, model.PendingReceived)
	if err != nil {
		return nil, err
	}
	sent, err := s.repos.Relationship.ListPending(ctx, userId, model.PendingSent)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(received)+len(sent))
	for i := range received {
		ids = append(ids, received[i].RequesterId)
	}
	for i := range sent {
		ids = append(ids, sent[i].RecipientId)
	}
	profiles := s.loadProfiles(ctx, ids)

	return &respond.PendingRequestsRespond{
		Received: toPendingList(received, userId, profiles),
		Sent:     toPendingList(sent, userId, profiles),
	}, nil
}

func toPendingList(rels []model.Relationship, userId string, profiles map[string]model.UserInfo) []respond.PendingRequestRespond {
	out := make([]respond.PendingRequestRespond, 0, len(rels))
	for i := range rels {
		otherId := rels[i].Other(userId)
		out = append(out, respond.PendingRequestRespond{
			RelationshipId: rels[i].Uuid,
			UserId:         otherId,
			Nickname:       profiles[otherId].Nickname,
			Avatar:         profiles[otherId].Avatar,
			CreatedAt:      rels[i].CreatedAt.Format(timeLayout),
		})
	}
	return out
}

// loadProfiles 批量读取用户资料；失败时返回空表，列表照常展示 id
func (s *friendshipService) loadProfiles(ctx context.Context, userIds []string) map[string]model.UserInfo {
	profiles := make(map[string]model.UserInfo, len(userIds))
	if len(userIds) == 0 {
		return profiles
	}
	users, err := s.repos.User.FindByUuids(ctx, userIds)
	if err != nil {
		zap.L().Warn("batch load user profiles failed", zap.Int("count", len(userIds)), zap.Error(err))
		return profiles
	}
	for _, u := range users {
		profiles[u.Uuid] = u
	}
	return profiles
}

// recountFriends 按 accepted 关系重新统计并覆盖写入好友数
// 关系变更已经成功，计数失败只记日志，下次变更时会自愈
func (s *friendshipService) recountFriends(ctx context.Context, userIds ...string) {
	for _, uid := range userIds {
		count, err := s.repos.Relationship.CountAccepted(ctx, uid)
		if err != nil {
			zap.L().Error("count accepted relationships failed", zap.String("user_id", uid), zap.Error(err))
			continue
		}
		if err := s.repos.User.UpdateFriendsCount(ctx, uid, count); err != nil {
			zap.L().Error("update friends_count failed", zap.String("user_id", uid), zap.Int64("count", count), zap.Error(err))
		}
	}
}

// invalidateRecommendations 异步让用户的推荐缓存失效
// 先自增版本号，之后计算的结果写入新版本；旧版本条目随后清理，清理失败也只是等 TTL 过期
func (s *friendshipService) invalidateRecommendations(userIds ...string) {
	if s.cache == nil {
		return
	}
	for _, uid := range userIds {
		verKey := myredis.RecommendVersionKey(uid)
		pattern := myredis.RecommendPattern(uid)
		s.cache.SubmitTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), constants.REDIS_TIMEOUT*time.Second)
			defer cancel()
			if _, err := s.cache.Incr(ctx, verKey); err != nil {
				zap.L().Warn("bump recommendation cache version failed", zap.String("key", verKey), zap.Error(err))
			}
			if err := s.cache.DeleteByPattern(ctx, pattern); err != nil {
				zap.L().Warn("invalidate recommendation cache failed", zap.String("pattern", pattern), zap.Error(err))
			}
		})
	}
}

func toRelationshipRespond(rel *model.Relationship) *respond.RelationshipRespond {
	rsp := &respond.RelationshipRespond{
		RelationshipId: rel.Uuid,
		RequesterId:    rel.RequesterId,
		RecipientId:    rel.RecipientId,
		Status:         string(rel.Status),
		CreatedAt:      rel.CreatedAt.Format(timeLayout),
	}
	if rel.AcceptedAt != nil {
		rsp.AcceptedAt = rel.AcceptedAt.Format(timeLayout)
	}
	return rsp
}
