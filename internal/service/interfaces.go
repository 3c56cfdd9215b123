// Package service 定义业务层接口，供 Handler 层调用
package service

import (
	"context"

	"cine_social_server/internal/dto/respond"
)

// FriendshipService 好友关系业务接口
// 操作者身份（actingUserId/requesterId）由 Handler 从登录态取得
type FriendshipService interface {
	// SendRequest 发送好友申请
	SendRequest(ctx context.Context, requesterId, recipientId string) (*respond.RelationshipRespond, error)
	// AcceptRequest 同意申请，仅接收人可操作
	AcceptRequest(ctx context.Context, relationshipId, actingUserId string) (*respond.RelationshipRespond, error)
	// RejectRequest 拒绝申请，仅接收人可操作
	RejectRequest(ctx context.Context, relationshipId, actingUserId string) error
	// RemoveFriendship 删除好友或撤回申请，关系双方均可操作
	RemoveFriendship(ctx context.Context, relationshipId, actingUserId string) error
	// ListFriends 好友列表
	ListFriends(ctx context.Context, userId string) ([]respond.FriendRespond, error)
	// ListPendingRequests 待处理申请
	ListPendingRequests(ctx context.Context, userId string) (*respond.PendingRequestsRespond, error)
}

// RecommendService 推荐业务接口
type RecommendService interface {
	// Recommend 返回至多 limit 条推荐
	Recommend(ctx context.Context, userId string, limit int) (*respond.RecommendRespond, error)
}
